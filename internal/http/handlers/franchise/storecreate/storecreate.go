// Package storecreate предоставляет HTTP‑обработчик создания точки продаж.
// Доступно администратору или франчайзи соответствующей франшизы.
package storecreate

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/pizza-orders/internal/http/middlewarectx"
	"github.com/magabrotheeeer/pizza-orders/internal/http/response"
	"github.com/magabrotheeeer/pizza-orders/internal/lib/sl"
	"github.com/magabrotheeeer/pizza-orders/internal/models"
	"github.com/magabrotheeeer/pizza-orders/internal/services/authz"
)

// Request — входные данные для создания точки продаж.
type Request struct {
	Name string `json:"name" validate:"required"`
}

// Service описывает контракт сервиса справочника для создания точки продаж.
type Service interface {
	CreateStore(ctx context.Context, franchiseID int, name string) (*models.Store, error)
}

// Handler обрабатывает запросы создания точки продаж.
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

// ServeHTTP создает точку продаж внутри франшизы из URL.
//
// @Summary Создать точку продаж
// @Tags franchise
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID франшизы"
// @Param request body Request true "Название точки продаж"
// @Success 200 {object} models.Store
// @Failure 400 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 401 {object} response.ErrorResponse "Токен отсутствует или отозван"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 404 {object} response.ErrorResponse "Франшиза не найдена"
// @Router /api/franchise/{id}/store [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.franchise.storecreate"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	franchiseID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid franchise id"))
		return
	}

	user := middlewarectx.UserFromContext(r.Context())
	if err := authz.Authorize(user, authz.ActionCreateStore, authz.Target{FranchiseID: franchiseID}); err != nil {
		if errors.Is(err, models.ErrForbidden) {
			log.Warn("store creation rejected",
				slog.Int("franchise_id", franchiseID))
			render.Status(r, http.StatusForbidden)
			render.JSON(w, r, response.Error("unable to create a store"))
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

	store, err := h.service.CreateStore(r.Context(), franchiseID, req.Name)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("franchise not found"))
			return
		}
		log.Error("failed to create store", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to create store"))
		return
	}

	render.JSON(w, r, store)
}
