// Package emailinvoice реализует HTTP-обработчик отправки счета заказа на почту.
//
// Адрес получателя бэкенд берет из аккаунта, поэтому тело запроса
// содержит только адрес центра обслуживания, если он известен клиенту.
package emailinvoice

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/ekazakovv/clients-hub/internal/http/middlewarectx"
	"github.com/ekazakovv/clients-hub/internal/http/response"
	"github.com/ekazakovv/clients-hub/internal/lib/sl"
)

// Handler обрабатывает HTTP-запросы на отправку счета по почте.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики документов
}

// Service описывает интерфейс бизнес-логики отправки счета.
type Service interface {
	EmailInvoice(ctx context.Context, token, orderID, centersURL string) error
}

// Request описывает тело запроса на отправку счета. Тело опционально.
type Request struct {
	CentersURL string `json:"centers_url"`
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Отправить счет на почту
// @Description Отправляет счет по заказу на почту, привязанную к аккаунту.
// @Tags Documents
// @Accept  json
// @Produce  json
// @Param id path string true "Идентификатор заказа"
// @Param request body Request false "Адрес центра обслуживания"
// @Success 200 {object} response.Response "Письмо отправлено"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 502 {object} response.ErrorResponse "Ошибка бэкенда"
// @Security BearerAuth
// @Router /orders/{id}/email-invoice [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.documents.emailinvoice"
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

	orderID := chi.URLParam(r, "id")
	if orderID == "" {
		log.Error("empty order id in url")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("order id is required"))
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.service.EmailInvoice(r.Context(), session.AccessToken, orderID, req.CentersURL); err != nil {
		log.Error("failed to email invoice", sl.Err(err))
		w.WriteHeader(http.StatusBadGateway)
		render.JSON(w, r, response.Error("could not email invoice"))
		return
	}

	log.Info("invoice emailed", slog.String("order_id", orderID))
	render.JSON(w, r, response.OK())
}
