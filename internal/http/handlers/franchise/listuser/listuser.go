// Package listuser предоставляет HTTP‑обработчик списка франшиз пользователя.
// Список видит сам пользователь или администратор; остальным возвращается
// пустой массив, а не ошибка.
package listuser

import (
	"context"
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

// Service описывает контракт сервиса справочника для франшиз пользователя.
type Service interface {
	ListUserFranchises(ctx context.Context, userID int) ([]*models.Franchise, error)
}

// Handler обрабатывает запросы франшиз пользователя.
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

// ServeHTTP возвращает франшизы, которыми управляет пользователь из URL.
//
// @Summary Франшизы пользователя
// @Tags franchise
// @Produce json
// @Security BearerAuth
// @Param userId path int true "ID пользователя"
// @Success 200 {array} models.Franchise
// @Failure 401 {object} response.ErrorResponse "Токен отсутствует или отозван"
// @Router /api/franchise/{userId} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.franchise.listuser"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID, err := strconv.Atoi(chi.URLParam(r, "userId"))
	if err != nil {
		log.Error("failed to decode user id from url", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid user id"))
		return
	}

	user := middlewarectx.UserFromContext(r.Context())
	if err := authz.Authorize(user, authz.ActionViewUserFranchises, authz.Target{UserID: userID}); err != nil {
		// Чужой список не раскрывается, но и не считается ошибкой.
		render.JSON(w, r, []*models.Franchise{})
		return
	}

	franchises, err := h.service.ListUserFranchises(r.Context(), userID)
	if err != nil {
		log.Error("failed to list user franchises", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list franchises"))
		return
	}
	if franchises == nil {
		franchises = []*models.Franchise{}
	}

	render.JSON(w, r, franchises)
}
