// Package storeremove предоставляет HTTP‑обработчик удаления точки продаж.
// Доступно администратору или франчайзи соответствующей франшизы.
package storeremove

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

// Service описывает контракт сервиса справочника для удаления точки продаж.
type Service interface {
	DeleteStore(ctx context.Context, franchiseID, storeID int) error
}

// Handler обрабатывает запросы удаления точки продаж.
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

// ServeHTTP удаляет точку продаж франшизы из URL.
//
// @Summary Удалить точку продаж
// @Tags franchise
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID франшизы"
// @Param storeId path int true "ID точки продаж"
// @Success 200 {object} map[string]string
// @Failure 401 {object} response.ErrorResponse "Токен отсутствует или отозван"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Router /api/franchise/{id}/store/{storeId} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.franchise.storeremove"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	franchiseID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("failed to decode franchise id from url", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid franchise id"))
		return
	}
	storeID, err := strconv.Atoi(chi.URLParam(r, "storeId"))
	if err != nil {
		log.Error("failed to decode store id from url", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid store id"))
		return
	}

	user := middlewarectx.UserFromContext(r.Context())
	if err := authz.Authorize(user, authz.ActionDeleteStore, authz.Target{FranchiseID: franchiseID}); err != nil {
		if errors.Is(err, models.ErrForbidden) {
			log.Warn("store deletion rejected",
				slog.Int("franchise_id", franchiseID), slog.Int("store_id", storeID))
			render.Status(r, http.StatusForbidden)
			render.JSON(w, r, response.Error("unable to delete a store"))
			return
		}
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	if err := h.service.DeleteStore(r.Context(), franchiseID, storeID); err != nil {
		log.Error("failed to delete store", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to delete store"))
		return
	}

	render.JSON(w, r, map[string]string{"message": "store deleted"})
}
