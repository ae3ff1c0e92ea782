// Package list предоставляет открытый HTTP‑обработчик списка франшиз
// с пагинацией и фильтром по имени.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/pizza-orders/internal/http/response"
	"github.com/magabrotheeeer/pizza-orders/internal/lib/sl"
	"github.com/magabrotheeeer/pizza-orders/internal/models"
)

// Response — страница франшиз и признак наличия следующей страницы.
type Response struct {
	Franchises []*models.Franchise `json:"franchises"`
	More       bool                `json:"more"`
}

// Service описывает контракт сервиса справочника для списка франшиз.
type Service interface {
	ListFranchises(ctx context.Context, page, limit int, nameFilter string) ([]*models.Franchise, bool, error)
}

// Handler обрабатывает запросы списка франшиз.
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

// ServeHTTP возвращает страницу франшиз. Параметры запроса:
// page, limit, name (поддерживает подстановочный знак *).
//
// @Summary Список франшиз
// @Tags franchise
// @Produce json
// @Param page query int false "Номер страницы"
// @Param limit query int false "Размер страницы"
// @Param name query string false "Фильтр по имени"
// @Success 200 {object} Response
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка"
// @Router /api/franchise [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.franchise.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	name := r.URL.Query().Get("name")

	franchises, more, err := h.service.ListFranchises(r.Context(), page, limit, name)
	if err != nil {
		log.Error("failed to list franchises", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list franchises"))
		return
	}
	if franchises == nil {
		franchises = []*models.Franchise{}
	}

	render.JSON(w, r, Response{Franchises: franchises, More: more})
}
