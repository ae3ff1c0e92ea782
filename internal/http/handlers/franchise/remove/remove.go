// Package remove предоставляет HTTP‑обработчик удаления франшизы.
// Доступно только администратору; точки продаж удаляются вместе с франшизой.
package remove

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/pizza-orders/internal/http/middlewarectx"
	"github.com/magabrotheeeer/pizza-orders/internal/http/response"
	"github.com/magabrotheeeer/pizza-orders/internal/lib/sl"
	"github.com/magabrotheeeer/pizza-orders/internal/models"
	"github.com/magabrotheeeer/pizza-orders/internal/services/authz"
)

// Service описывает контракт сервиса справочника для удаления франшизы.
type Service interface {
	DeleteFranchise(ctx context.Context, id int) error
}

// Handler обрабатывает запросы удаления франшизы.
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

// ServeHTTP удаляет франшизу вместе с её точками продаж.
//
// @Summary Удалить франшизу
// @Tags franchise
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID франшизы"
// @Success 200 {object} map[string]string
// @Failure 401 {object} response.ErrorResponse "Токен отсутствует или отозван"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Router /api/franchise/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.franchise.remove"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid franchise id"))
		return
	}

	user := middlewarectx.UserFromContext(r.Context())
	if err := authz.Authorize(user, authz.ActionDeleteFranchise, authz.Target{FranchiseID: id}); err != nil {
		if errors.Is(err, models.ErrForbidden) {
			log.Warn("franchise deletion rejected", slog.Int("franchise_id", id))
			render.Status(r, http.StatusForbidden)
			render.JSON(w, r, response.Error("unable to delete a franchise"))
			return
		}
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	if err := h.service.DeleteFranchise(r.Context(), id); err != nil {
		log.Error("failed to delete franchise", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to delete franchise"))
		return
	}

	render.JSON(w, r, map[string]string{"message": "franchise deleted"})
}
