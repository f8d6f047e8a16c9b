// Package merge реализует HTTP-обработчик объединения профилей.
//
// Обработчик принимает идентификатор главного профиля и список
// поглощаемых профилей. После объединения поглощённые профили
// исчезают из списка кандидатов аккаунта.
package merge

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/ekazakovv/clients-hub/internal/events"
	"github.com/ekazakovv/clients-hub/internal/http/middlewarectx"
	"github.com/ekazakovv/clients-hub/internal/http/response"
	"github.com/ekazakovv/clients-hub/internal/lib/sl"
	"github.com/ekazakovv/clients-hub/internal/models"
)

// Handler обрабатывает HTTP-запросы на объединение профилей.
type Handler struct {
	log        *slog.Logger        // Логгер для записи информации и ошибок
	service    Service             // Сервис бизнес-логики профилей
	validate   *validator.Validate // Валидатор структуры входящих данных
	dispatcher events.Dispatcher   // Диспетчер событий смены состояния
}

// Service описывает интерфейс бизнес-логики объединения профилей.
type Service interface {
	Merge(ctx context.Context, token, main string, merged []string) error
}

// Request описывает тело запроса на объединение профилей.
type Request struct {
	Main   string   `json:"main" validate:"required"`
	Merged []string `json:"merged" validate:"required,min=1,dive,required"`
}

// New создает новый Handler с переданными логгером, сервисом и диспетчером событий.
func New(log *slog.Logger, service Service, dispatcher events.Dispatcher) *Handler {
	return &Handler{
		log:        log,
		service:    service,
		validate:   validator.New(),
		dispatcher: dispatcher,
	}
}

// ServeHTTP godoc
// @Summary Объединить профили
// @Description Объединяет указанные профили в главный. Поглощённые профили перестают быть кандидатами.
// @Tags Persons
// @Accept  json
// @Produce  json
// @Param request body Request true "Главный профиль и список поглощаемых"
// @Success 200 {object} response.Response "Профили объединены"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 502 {object} response.ErrorResponse "Ошибка бэкенда"
// @Security BearerAuth
// @Router /persons/merge [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.person.merge"
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

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	if err := h.service.Merge(r.Context(), session.AccessToken, req.Main, req.Merged); err != nil {
		log.Error("failed to merge persons", sl.Err(err))
		w.WriteHeader(http.StatusBadGateway)
		render.JSON(w, r, response.Error("could not merge persons"))
		return
	}

	h.dispatcher.Publish(models.Event{
		Name:  models.EventPersonMerged,
		Phone: session.Phone,
		Payload: map[string]any{
			"main":   req.Main,
			"merged": req.Merged,
		},
	})

	log.Info("persons merged",
		slog.String("main", req.Main),
		slog.Int("merged_count", len(req.Merged)),
	)
	render.JSON(w, r, response.OK())
}
