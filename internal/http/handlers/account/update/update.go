// Package update реализует HTTP-обработчик изменения данных аккаунта.
//
// Поля анкеты уходят на выделенный endpoint бэкенда; дата рождения
// приводится к формату DD-MM-YYYY перед отправкой.
package update

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
	"github.com/ekazakovv/clients-hub/internal/models"
	"github.com/ekazakovv/clients-hub/internal/remote"
)

// Request — структура анкеты обновления аккаунта.
type Request struct {
	LastName   string `json:"last_name" validate:"required"`
	FirstName  string `json:"first_name"`
	MiddleName string `json:"middle_name"`
	Email      string `json:"email" validate:"required,email"`
	Gender     string `json:"gender" validate:"required,oneof=M F"`
	BirthDate  string `json:"birth_date" validate:"required"`
}

// Handler обрабатывает HTTP-запросы изменения аккаунта.
type Handler struct {
	log      *slog.Logger
	gateway  Gateway
	validate *validator.Validate
}

// Gateway описывает операцию обновления аккаунта на бэкенде.
type Gateway interface {
	UpdateAccount(ctx context.Context, token string, fields remote.AccountFields) (*models.Account, error)
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
// @Summary Обновить данные аккаунта
// @Description Отправляет изменённую анкету аккаунта на бэкенд. Дата рождения принимается в ISO или DD-MM-YYYY.
// @Tags Account
// @Accept  json
// @Produce  json
// @Param request body Request true "Анкета аккаунта"
// @Success 200 {object} response.Response "Аккаунт обновлён"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 502 {object} response.ErrorResponse "Ошибка бэкенда"
// @Security BearerAuth
// @Router /account [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.account.update"
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

	account, err := h.gateway.UpdateAccount(r.Context(), session.AccessToken, remote.AccountFields{
		LastName:   req.LastName,
		FirstName:  req.FirstName,
		MiddleName: req.MiddleName,
		Email:      req.Email,
		Gender:     req.Gender,
		BirthDate:  bd,
	})
	if err != nil {
		log.Error("failed to update account", sl.Err(err))
		w.WriteHeader(http.StatusBadGateway)
		render.JSON(w, r, response.Error("could not update account"))
		return
	}

	log.Info("account updated", slog.String("phone", session.Phone))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"account": account,
	}))
}
