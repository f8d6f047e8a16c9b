// Package otp реализует HTTP-обработчик запроса одноразового кода.
//
// Handler принимает JSON с номером телефона, валидирует его и запрашивает
// отправку кода через сервис аутентификации. Повторный запрос раньше
// разрешённого интервала отклоняется со статусом 429.
package otp

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/ekazakovv/clients-hub/internal/http/response"
	"github.com/ekazakovv/clients-hub/internal/lib/sl"
	authservice "github.com/ekazakovv/clients-hub/internal/services/auth"
)

// Request — структура входных данных для запроса кода.
type Request struct {
	Phone string `json:"phone" validate:"required,e164"`
}

// Handler обрабатывает HTTP-запросы на отправку одноразового кода.
type Handler struct {
	log      *slog.Logger        // Логгер для записи операций и ошибок
	service  Service             // Сервис аутентификации
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики запроса кода.
type Service interface {
	RequestOtp(ctx context.Context, phone string) error
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Запросить одноразовый код
// @Description Отправляет одноразовый код на указанный номер телефона.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Номер телефона"
// @Success 200 {object} response.Response "Код отправлен"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 429 {object} response.ErrorResponse "Код уже отправлен"
// @Failure 500 {object} response.ErrorResponse "Ошибка при запросе кода"
// @Router /auth/otp [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.otp"
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

	if err := h.service.RequestOtp(r.Context(), req.Phone); err != nil {
		if errors.Is(err, authservice.ErrOtpThrottled) {
			log.Info("otp request throttled", slog.String("phone", req.Phone))
			w.WriteHeader(http.StatusTooManyRequests)
			render.JSON(w, r, response.Error("code already sent, try again later"))
			return
		}
		log.Error("failed to request otp", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not request otp code"))
		return
	}

	log.Info("otp code requested", slog.String("phone", req.Phone))
	render.JSON(w, r, response.OK())
}
