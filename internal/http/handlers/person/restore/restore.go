// Package restore реализует HTTP-обработчик восстановления профиля из архива.
package restore

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
	personservice "github.com/ekazakovv/clients-hub/internal/services/person"
)

// Handler обрабатывает HTTP-запросы на восстановление профилей.
type Handler struct {
	log        *slog.Logger      // Логгер для записи информации и ошибок
	service    Service           // Сервис бизнес-логики профилей
	dispatcher events.Dispatcher // Диспетчер событий смены состояния
}

// Service описывает интерфейс бизнес-логики восстановления профиля.
type Service interface {
	Archive(ctx context.Context, token, personID, mode string) error
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
// @Summary Восстановить профиль
// @Description Возвращает архивный профиль в список кандидатов аккаунта.
// @Tags Persons
// @Produce  json
// @Param profileId path string true "Идентификатор профиля"
// @Success 200 {object} response.Response "Профиль восстановлен"
// @Failure 400 {object} response.ErrorResponse "Отсутствует идентификатор профиля"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 502 {object} response.ErrorResponse "Ошибка бэкенда"
// @Security BearerAuth
// @Router /persons/{profileId}/restore [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.person.restore"
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

	if err := h.service.Archive(r.Context(), session.AccessToken, personID, personservice.ArchiveModeRestore); err != nil {
		log.Error("failed to restore person", sl.Err(err))
		w.WriteHeader(http.StatusBadGateway)
		render.JSON(w, r, response.Error("could not restore person"))
		return
	}

	h.dispatcher.Publish(models.Event{
		Name:  models.EventPersonArchived,
		Phone: session.Phone,
		Payload: map[string]any{
			"person": personID,
			"mode":   personservice.ArchiveModeRestore,
		},
	})

	log.Info("person restored", slog.String("person_id", personID))
	render.JSON(w, r, response.OK())
}
