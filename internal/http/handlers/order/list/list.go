// Package list предоставляет HTTP‑обработчик списка заказов посетителя.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/pizza-orders/internal/http/middlewarectx"
	"github.com/magabrotheeeer/pizza-orders/internal/http/response"
	"github.com/magabrotheeeer/pizza-orders/internal/lib/sl"
	"github.com/magabrotheeeer/pizza-orders/internal/models"
)

// Response — страница заказов посетителя.
type Response struct {
	DinerID int            `json:"dinerId"`
	Orders  []models.Order `json:"orders"`
	Page    int            `json:"page"`
}

// Service описывает контракт координатора заказов для чтения истории.
type Service interface {
	List(ctx context.Context, dinerID, page, limit int) ([]models.Order, bool, error)
}

// Handler обрабатывает запросы истории заказов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP возвращает страницу заказов текущего пользователя.
//
// @Summary Заказы посетителя
// @Tags order
// @Produce json
// @Security BearerAuth
// @Param page query int false "Номер страницы"
// @Param limit query int false "Размер страницы"
// @Success 200 {object} Response
// @Failure 401 {object} response.ErrorResponse "Токен отсутствует или отозван"
// @Router /api/order [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.order.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	diner := middlewarectx.UserFromContext(r.Context())
	if diner == nil {
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if page < 1 {
		page = 1
	}

	orders, _, err := h.service.List(r.Context(), diner.ID, page, limit)
	if err != nil {
		log.Error("failed to list orders", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list orders"))
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}

	render.JSON(w, r, Response{DinerID: diner.ID, Orders: orders, Page: page})
}
