// Package create предоставляет HTTP‑обработчик создания франшизы.
// Доступно только администратору; каждый email администратора франшизы
// должен принадлежать зарегистрированному пользователю.
package create

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

// Admin — email будущего администратора франшизы.
type Admin struct {
	Email string `json:"email" validate:"required,email"`
}

// Request — входные данные для создания франшизы.
type Request struct {
	Name   string  `json:"name" validate:"required"`
	Admins []Admin `json:"admins" validate:"dive"`
}

// Service описывает контракт сервиса справочника для создания франшизы.
type Service interface {
	CreateFranchise(ctx context.Context, name string, adminEmails []string) (*models.Franchise, error)
}

// Handler обрабатывает запросы создания франшизы.
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

// ServeHTTP создает франшизу и возвращает её с разрешенными администраторами.
//
// @Summary Создать франшизу
// @Tags franchise
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body Request true "Название и email администраторов"
// @Success 200 {object} models.Franchise
// @Failure 400 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 401 {object} response.ErrorResponse "Токен отсутствует или отозван"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 404 {object} response.ErrorResponse "Неизвестный email администратора"
// @Router /api/franchise [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.franchise.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	user := middlewarectx.UserFromContext(r.Context())
	if err := authz.Authorize(user, authz.ActionCreateFranchise, authz.Target{}); err != nil {
		if errors.Is(err, models.ErrForbidden) {
			log.Warn("franchise creation rejected")
			render.Status(r, http.StatusForbidden)
			render.JSON(w, r, response.Error("unable to create a franchise"))
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

	emails := make([]string, 0, len(req.Admins))
	for _, admin := range req.Admins {
		emails = append(emails, admin.Email)
	}

	franchise, err := h.service.CreateFranchise(r.Context(), req.Name, emails)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			log.Error("unknown franchise admin email", sl.Err(err))
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("unknown user for franchise admin"))
			return
		}
		log.Error("failed to create franchise", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to create franchise"))
		return
	}

	render.JSON(w, r, franchise)
}
