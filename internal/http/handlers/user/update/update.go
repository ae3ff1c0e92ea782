// Package update предоставляет HTTP‑обработчик обновления профиля.
// Пользователь может менять только собственный профиль; администратор — любой.
// После обновления выдается новый токен с актуальными claims.
package update

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

// Request — входные данные для обновления профиля. Пустые поля не меняются.
type Request struct {
	Name     string `json:"name"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password"`
}

// Response — обновленный пользователь и переизданный токен.
type Response struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// Service описывает контракт сервиса аутентификации для обновления профиля.
type Service interface {
	UpdateUser(ctx context.Context, id int, name, email, password string) (*models.User, string, error)
}

// Handler обрабатывает запросы обновления профиля.
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

// ServeHTTP обновляет профиль пользователя из URL и возвращает его
// вместе с новым токеном.
//
// @Summary Обновить профиль пользователя
// @Tags user
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID пользователя"
// @Param request body Request true "Новые имя, email и/или пароль"
// @Success 200 {object} Response
// @Failure 400 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 401 {object} response.ErrorResponse "Токен отсутствует или отозван"
// @Failure 403 {object} response.ErrorResponse "Чужой профиль"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Router /api/user/{id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.update"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid user id"))
		return
	}

	user := middlewarectx.UserFromContext(r.Context())
	if err := authz.Authorize(user, authz.ActionUpdateUser, authz.Target{UserID: id}); err != nil {
		if errors.Is(err, models.ErrForbidden) {
			log.Warn("update of another user rejected",
				slog.Int("target_id", id))
			render.Status(r, http.StatusForbidden)
			render.JSON(w, r, response.Error("unauthorized"))
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

	updated, token, err := h.service.UpdateUser(r.Context(), id, req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("user not found"))
			return
		}
		log.Error("failed to update user", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to update user"))
		return
	}
	log.Info("user updated", slog.Int("user_id", id))

	render.JSON(w, r, Response{User: updated, Token: token})
}
