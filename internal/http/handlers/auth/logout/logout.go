// Package logout предоставляет HTTP‑обработчик выхода. Токен отзывается
// немедленно: все последующие запросы с ним получают 401.
package logout

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/pizza-orders/internal/http/middlewarectx"
	"github.com/magabrotheeeer/pizza-orders/internal/http/response"
	"github.com/magabrotheeeer/pizza-orders/internal/lib/sl"
)

// Service описывает контракт сервиса аутентификации для выхода.
type Service interface {
	Logout(ctx context.Context, tokenStr string) error
}

// Handler обрабатывает запросы выхода.
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

// ServeHTTP отзывает токен текущего запроса.
//
// @Summary Выход пользователя
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Failure 401 {object} response.ErrorResponse "Токен отсутствует или отозван"
// @Router /api/auth [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	tokenStr := middlewarectx.TokenFromRequest(r)
	if err := h.service.Logout(r.Context(), tokenStr); err != nil {
		log.Error("logout failed", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to logout"))
		return
	}
	log.Info("user logged out")

	render.JSON(w, r, map[string]string{"message": "logout successful"})
}
