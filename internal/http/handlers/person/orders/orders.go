// Package orders реализует HTTP-обработчик получения заказов профиля.
package orders

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/ekazakovv/clients-hub/internal/http/middlewarectx"
	"github.com/ekazakovv/clients-hub/internal/http/response"
	"github.com/ekazakovv/clients-hub/internal/lib/sl"
	"github.com/ekazakovv/clients-hub/internal/models"
)

// Handler обрабатывает HTTP-запросы на получение заказов профиля.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики профилей
}

// Service описывает интерфейс бизнес-логики получения заказов.
type Service interface {
	Orders(ctx context.Context, token, phone, profileID string) ([]models.Order, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Заказы профиля
// @Description Возвращает список заказов указанного профиля. Для профиля без заказов возвращается пустой список.
// @Tags Persons
// @Produce  json
// @Param profileId path string true "Идентификатор профиля"
// @Success 200 {object} map[string]any "Список заказов"
// @Failure 400 {object} response.ErrorResponse "Отсутствует идентификатор профиля"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 502 {object} response.ErrorResponse "Ошибка бэкенда"
// @Security BearerAuth
// @Router /persons/{profileId}/orders [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.person.orders"
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

	profileID := chi.URLParam(r, "profileId")
	if profileID == "" {
		log.Error("empty profile id in url")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("profile id is required"))
		return
	}

	list, err := h.service.Orders(r.Context(), session.AccessToken, session.Phone, profileID)
	if err != nil {
		log.Error("failed to get orders", sl.Err(err))
		w.WriteHeader(http.StatusBadGateway)
		render.JSON(w, r, response.Error("could not get orders"))
		return
	}

	log.Info("orders returned",
		slog.String("profile_id", profileID),
		slog.Int("count", len(list)),
	)
	render.JSON(w, r, response.OKWithData(map[string]any{
		"orders": list,
	}))
}
