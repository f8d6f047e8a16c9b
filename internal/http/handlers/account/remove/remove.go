// Package remove реализует HTTP-обработчик удаления учётной записи.
//
// Операция терминальная: аккаунт удаляется на бэкенде, все сессии
// гасятся, публикуется событие удаления.
package remove

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
)

// Handler обрабатывает HTTP-запросы удаления учётной записи.
type Handler struct {
	log        *slog.Logger
	service    Service
	dispatcher events.Dispatcher
}

// Service описывает интерфейс бизнес-логики удаления учётной записи.
type Service interface {
	DeleteAccount(ctx context.Context, session *models.Session) error
}

// New создает новый Handler.
func New(log *slog.Logger, service Service, dispatcher events.Dispatcher) *Handler {
	return &Handler{
		log:        log,
		service:    service,
		dispatcher: dispatcher,
	}
}

// ServeHTTP godoc
// @Summary Удалить учётную запись
// @Description Удаляет аккаунт на бэкенде и гасит все сессии. Операция необратима.
// @Tags Account
// @Produce  json
// @Success 200 {object} response.Response "Аккаунт удалён"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 502 {object} response.ErrorResponse "Ошибка бэкенда"
// @Security BearerAuth
// @Router /account [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.account.remove"
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

	if err := h.service.DeleteAccount(r.Context(), session); err != nil {
		log.Error("failed to delete account", sl.Err(err))
		w.WriteHeader(http.StatusBadGateway)
		render.JSON(w, r, response.Error("could not delete account"))
		return
	}

	h.dispatcher.Publish(models.Event{Name: models.EventAccountDeleted, Phone: session.Phone})

	log.Info("account deleted", slog.String("phone", session.Phone))
	render.JSON(w, r, response.OK())
}
