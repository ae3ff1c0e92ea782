// Package menulist предоставляет открытый HTTP‑обработчик общего меню.
package menulist

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/pizza-orders/internal/http/response"
	"github.com/magabrotheeeer/pizza-orders/internal/lib/sl"
	"github.com/magabrotheeeer/pizza-orders/internal/models"
)

// Service описывает контракт сервиса справочника для чтения меню.
type Service interface {
	GetMenu(ctx context.Context) ([]models.MenuItem, error)
}

// Handler обрабатывает запросы меню.
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

// ServeHTTP возвращает все позиции меню.
//
// @Summary Меню пиццерии
// @Tags order
// @Produce json
// @Success 200 {array} models.MenuItem
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка"
// @Router /api/order/menu [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.order.menulist"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	menu, err := h.service.GetMenu(r.Context())
	if err != nil {
		log.Error("failed to get menu", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to get menu"))
		return
	}
	if menu == nil {
		menu = []models.MenuItem{}
	}

	render.JSON(w, r, menu)
}
