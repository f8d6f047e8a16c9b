// Package login реализует HTTP-обработчик входа по одноразовому коду.
//
// Handler принимает телефон и код, делегирует вход сервису аутентификации
// и при успехе возвращает JWT сессии и refresh-токен, публикуя событие входа.
package login

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/ekazakovv/clients-hub/internal/events"
	"github.com/ekazakovv/clients-hub/internal/http/response"
	"github.com/ekazakovv/clients-hub/internal/lib/sl"
	"github.com/ekazakovv/clients-hub/internal/models"
)

// Request — структура входных данных для входа.
type Request struct {
	Phone      string `json:"phone" validate:"required,e164"`
	Otp        string `json:"otp" validate:"required,numeric,min=4,max=8"`
	RememberMe bool   `json:"remember_me"`
}

// Handler обрабатывает HTTP-запросы на вход.
type Handler struct {
	log        *slog.Logger        // Логгер для записи операций и ошибок
	service    Service             // Сервис аутентификации
	dispatcher events.Dispatcher   // Диспетчер событий смены состояния
	validate   *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики входа.
type Service interface {
	Login(ctx context.Context, phone, otp string, rememberMe bool) (accessJWT, refreshToken string, err error)
}

// New создает новый Handler с переданными логгером, сервисом и диспетчером.
func New(log *slog.Logger, service Service, dispatcher events.Dispatcher) *Handler {
	return &Handler{
		log:        log,
		service:    service,
		dispatcher: dispatcher,
		validate:   validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Вход по одноразовому коду
// @Description Обменивает телефон и код на JWT сессии и refresh-токен.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Телефон, код и признак запомнить меня"
// @Success 200 {object} map[string]any "Успешный вход"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Неверный код"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /auth/login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

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

	accessJWT, refreshToken, err := h.service.Login(r.Context(), req.Phone, req.Otp, req.RememberMe)
	if err != nil {
		log.Error("login failed", sl.Err(err))
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("invalid phone or otp code"))
		return
	}

	h.dispatcher.Publish(models.Event{Name: models.EventLogin, Phone: req.Phone})

	log.Info("login success", slog.String("phone", req.Phone))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"token":         accessJWT,
		"refresh_token": refreshToken,
	}))
}
