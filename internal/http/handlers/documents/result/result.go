// Package result реализует HTTP-обработчик получения документа результатов заказа.
//
// Документ приходит от бэкенда готовым JSON и проксируется клиенту
// без разбора на стороне сервиса.
package result

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/ekazakovv/clients-hub/internal/http/middlewarectx"
	"github.com/ekazakovv/clients-hub/internal/http/response"
	"github.com/ekazakovv/clients-hub/internal/lib/sl"
)

// Handler обрабатывает HTTP-запросы на получение результатов заказа.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики документов
}

// Service описывает интерфейс бизнес-логики получения результатов.
type Service interface {
	Result(ctx context.Context, token, orderID string) (json.RawMessage, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Результаты заказа
// @Description Возвращает документ результатов по идентификатору заказа.
// @Tags Documents
// @Produce  json
// @Param id path string true "Идентификатор заказа"
// @Success 200 {object} map[string]any "Документ результатов"
// @Failure 400 {object} response.ErrorResponse "Отсутствует идентификатор заказа"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 502 {object} response.ErrorResponse "Ошибка бэкенда"
// @Security BearerAuth
// @Router /orders/{id}/result [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.documents.result"
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

	doc, err := h.service.Result(r.Context(), session.AccessToken, orderID)
	if err != nil {
		log.Error("failed to get order result", sl.Err(err))
		w.WriteHeader(http.StatusBadGateway)
		render.JSON(w, r, response.Error("could not get order result"))
		return
	}

	log.Info("order result returned", slog.String("order_id", orderID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"result": doc,
	}))
}
