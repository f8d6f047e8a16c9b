// Package info реализует HTTP-обработчик чтения личного кабинета.
//
// Обработчик получает свежий снимок аккаунта у бэкенда, определяет
// текущий профиль движком резолюции, согласует локацию с выбранной
// пользователем и публикует событие смены текущего профиля. Результат —
// аккаунт, пригодные профили, текущий профиль и действующая локация.
package info

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/ekazakovv/clients-hub/internal/events"
	"github.com/ekazakovv/clients-hub/internal/http/middlewarectx"
	"github.com/ekazakovv/clients-hub/internal/http/response"
	"github.com/ekazakovv/clients-hub/internal/lib/sl"
	"github.com/ekazakovv/clients-hub/internal/models"
	personservice "github.com/ekazakovv/clients-hub/internal/services/person"
)

// Gateway описывает чтение снимка аккаунта.
type Gateway interface {
	GetUserInfo(ctx context.Context, token, phone string, orders, services int) (*models.UserInfo, error)
}

// Resolver описывает выбор текущего профиля.
type Resolver interface {
	ResolveCurrent(ctx context.Context, token string, info *models.UserInfo) (*models.Person, error)
}

// LocationSyncer описывает согласование локации текущего профиля.
type LocationSyncer interface {
	Sync(ctx context.Context, token string, person *models.Person, selectedID string) (*models.Location, error)
}

// Handler обрабатывает HTTP-запросы чтения личного кабинета.
type Handler struct {
	log        *slog.Logger
	gateway    Gateway
	resolver   Resolver
	locations  LocationSyncer
	dispatcher events.Dispatcher
}

// New создает новый Handler.
func New(log *slog.Logger, gateway Gateway, resolver Resolver, locations LocationSyncer, dispatcher events.Dispatcher) *Handler {
	return &Handler{
		log:        log,
		gateway:    gateway,
		resolver:   resolver,
		locations:  locations,
		dispatcher: dispatcher,
	}
}

// ServeHTTP godoc
// @Summary Личный кабинет
// @Description Возвращает аккаунт, профили, текущий профиль и локацию. Параметр location задаёт выбранную пользователем локацию.
// @Tags Account
// @Produce  json
// @Param location query string false "ID выбранной локации"
// @Success 200 {object} map[string]any "Снимок личного кабинета"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 502 {object} response.ErrorResponse "Ошибка бэкенда"
// @Security BearerAuth
// @Router /account [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.account.info"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	session, ok := middlewarectx.SessionFromContext(r.Context())
	if !ok {
		log.Error("session not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	info, err := h.gateway.GetUserInfo(r.Context(), session.AccessToken, session.Phone, 1, 1)
	if err != nil {
		log.Error("failed to fetch user info", sl.Err(err))
		w.WriteHeader(http.StatusBadGateway)
		render.JSON(w, r, response.Error("could not fetch account"))
		return
	}

	current, err := h.resolver.ResolveCurrent(r.Context(), session.AccessToken, info)
	if err != nil {
		log.Error("failed to resolve current person", sl.Err(err))
		w.WriteHeader(http.StatusBadGateway)
		render.JSON(w, r, response.Error("could not resolve current person"))
		return
	}

	location, err := h.locations.Sync(r.Context(), session.AccessToken, current, r.URL.Query().Get("location"))
	if err != nil {
		log.Error("failed to sync location", sl.Err(err))
		w.WriteHeader(http.StatusBadGateway)
		render.JSON(w, r, response.Error("could not sync location"))
		return
	}

	if current != nil {
		h.dispatcher.Publish(models.Event{
			Name:    models.EventCurrentChanged,
			Phone:   session.Phone,
			Payload: current,
		})
	}

	log.Info("account snapshot resolved",
		slog.Bool("registered", info.Account.Registered),
		slog.Int("persons", len(info.Persons)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"account":        info.Account,
		"persons":        personservice.Candidates(info.Persons),
		"current_person": current,
		"location":       location,
	}))
}
