// Package register реализует HTTP-обработчик завершения регистрации аккаунта.
//
// Данные анкеты уходят на бэкенд операцией register; дата рождения
// приводится к формату DD-MM-YYYY перед отправкой.
package register

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/ekazakovv/clients-hub/internal/http/middlewarectx"
	"github.com/ekazakovv/clients-hub/internal/http/response"
	"github.com/ekazakovv/clients-hub/internal/lib/birthdate"
	"github.com/ekazakovv/clients-hub/internal/lib/sl"
	"github.com/ekazakovv/clients-hub/internal/remote"
)

// Request — структура анкеты регистрации.
type Request struct {
	LastName   string `json:"last_name" validate:"required"`
	FirstName  string `json:"first_name"`
	MiddleName string `json:"middle_name"`
	Email      string `json:"email" validate:"required,email"`
	Gender     string `json:"gender" validate:"required,oneof=M F"`
	BirthDate  string `json:"birth_date" validate:"required"`
}

// Handler обрабатывает HTTP-запросы завершения регистрации.
type Handler struct {
	log      *slog.Logger
	gateway  Gateway
	validate *validator.Validate
}

// Gateway описывает операцию регистрации на бэкенде.
type Gateway interface {
	RegisterAccount(ctx context.Context, token string, fields remote.RegisterFields) error
}

// New создает новый Handler.
func New(log *slog.Logger, gateway Gateway) *Handler {
	return &Handler{
		log:      log,
		gateway:  gateway,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Завершить регистрацию аккаунта
// @Description Отправляет анкету аккаунта на бэкенд. Дата рождения принимается в ISO или DD-MM-YYYY.
// @Tags Account
// @Accept  json
// @Produce  json
// @Param request body Request true "Анкета аккаунта"
// @Success 200 {object} response.Response "Регистрация завершена"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 502 {object} response.ErrorResponse "Ошибка бэкенда"
// @Security BearerAuth
// @Router /account/register [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.account.register"
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

	bd, err := birthdate.Format(req.BirthDate)
	if err != nil {
		log.Error("invalid birth date", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error("invalid birth date"))
		return
	}

	err = h.gateway.RegisterAccount(r.Context(), session.AccessToken, remote.RegisterFields{
		LastName:   req.LastName,
		FirstName:  req.FirstName,
		MiddleName: req.MiddleName,
		Email:      req.Email,
		Gender:     req.Gender,
		BirthDate:  bd,
	})
	if err != nil {
		log.Error("failed to register account", sl.Err(err))
		w.WriteHeader(http.StatusBadGateway)
		render.JSON(w, r, response.Error("could not register account"))
		return
	}

	log.Info("account registered", slog.String("phone", session.Phone))
	render.JSON(w, r, response.OK())
}
