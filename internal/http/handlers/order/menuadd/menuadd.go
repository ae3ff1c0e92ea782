// Package menuadd предоставляет HTTP‑обработчик добавления позиции меню.
// Доступно только администратору; в ответ возвращается обновленное меню целиком.
package menuadd

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/pizza-orders/internal/http/middlewarectx"
	"github.com/magabrotheeeer/pizza-orders/internal/http/response"
	"github.com/magabrotheeeer/pizza-orders/internal/lib/sl"
	"github.com/magabrotheeeer/pizza-orders/internal/models"
	"github.com/magabrotheeeer/pizza-orders/internal/services/authz"
)

// Request — входные данные новой позиции меню.
type Request struct {
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description" validate:"required"`
	Image       string  `json:"image" validate:"required"`
	Price       float64 `json:"price" validate:"required,gt=0"`
}

// Service описывает контракт сервиса справочника для добавления позиции меню.
type Service interface {
	AddMenuItem(ctx context.Context, item models.MenuItem) ([]models.MenuItem, error)
}

// Handler обрабатывает запросы добавления позиции меню.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP добавляет позицию в меню и возвращает обновленное меню.
//
// @Summary Добавить позицию меню
// @Tags order
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body Request true "Новая позиция меню"
// @Success 200 {array} models.MenuItem
// @Failure 400 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 401 {object} response.ErrorResponse "Токен отсутствует или отозван"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Router /api/order/menu [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.order.menuadd"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	user := middlewarectx.UserFromContext(r.Context())
	if err := authz.Authorize(user, authz.ActionAddMenuItem, authz.Target{}); err != nil {
		if errors.Is(err, models.ErrForbidden) {
			log.Warn("menu item addition rejected")
			render.Status(r, http.StatusForbidden)
			render.JSON(w, r, response.Error("unable to add menu item"))
			return
		}
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	menu, err := h.service.AddMenuItem(r.Context(), models.MenuItem{
		Title:       req.Title,
		Description: req.Description,
		Image:       req.Image,
		Price:       req.Price,
	})
	if err != nil {
		log.Error("failed to add menu item", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to add menu item"))
		return
	}

	render.JSON(w, r, menu)
}
