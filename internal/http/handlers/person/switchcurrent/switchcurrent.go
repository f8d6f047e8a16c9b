// Package switchcurrent реализует HTTP-обработчик смены текущего профиля.
//
// Выбранный профиль становится профилем по умолчанию для аккаунта
// и будет возвращаться как текущий при последующих запросах.
package switchcurrent

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/ekazakovv/clients-hub/internal/events"
	"github.com/ekazakovv/clients-hub/internal/http/middlewarectx"
	"github.com/ekazakovv/clients-hub/internal/http/response"
	"github.com/ekazakovv/clients-hub/internal/lib/sl"
	"github.com/ekazakovv/clients-hub/internal/models"
)

// Handler обрабатывает HTTP-запросы на смену текущего профиля.
type Handler struct {
	log        *slog.Logger      // Логгер для записи информации и ошибок
	service    Service           // Сервис бизнес-логики профилей
	dispatcher events.Dispatcher // Диспетчер событий смены состояния
}

// Service описывает интерфейс бизнес-логики смены текущего профиля.
type Service interface {
	SwitchCurrent(ctx context.Context, token, personID string) (*models.Person, error)
}

// New создает новый Handler с переданными логгером, сервисом и диспетчером событий.
func New(log *slog.Logger, service Service, dispatcher events.Dispatcher) *Handler {
	return &Handler{
		log:        log,
		service:    service,
		dispatcher: dispatcher,
	}
}

// ServeHTTP godoc
// @Summary Сменить текущий профиль
// @Description Делает указанный профиль профилем по умолчанию и возвращает его.
// @Tags Persons
// @Produce  json
// @Param profileId path string true "Идентификатор профиля"
// @Success 200 {object} map[string]any "Новый текущий профиль"
// @Failure 400 {object} response.ErrorResponse "Отсутствует идентификатор профиля"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 502 {object} response.ErrorResponse "Ошибка бэкенда"
// @Security BearerAuth
// @Router /persons/{profileId}/switch [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.person.switchcurrent"
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

	personID := chi.URLParam(r, "profileId")
	if personID == "" {
		log.Error("empty person id in url")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("person id is required"))
		return
	}

	current, err := h.service.SwitchCurrent(r.Context(), session.AccessToken, personID)
	if err != nil {
		log.Error("failed to switch current person", sl.Err(err))
		w.WriteHeader(http.StatusBadGateway)
		render.JSON(w, r, response.Error("could not switch current person"))
		return
	}

	h.dispatcher.Publish(models.Event{
		Name:  models.EventCurrentChanged,
		Phone: session.Phone,
		Payload: map[string]any{
			"person": personID,
		},
	})

	log.Info("current person switched", slog.String("person_id", personID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"current_person": current,
	}))
}
