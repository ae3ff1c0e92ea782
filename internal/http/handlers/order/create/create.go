// Package create предоставляет HTTP‑обработчик оформления заказа.
// Заказ подтверждается внешней фабрикой синхронно; без её подтверждения
// успешный ответ невозможен.
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
	"github.com/magabrotheeeer/pizza-orders/internal/services/order"
)

// Item — позиция заказа в запросе.
type Item struct {
	MenuID      int     `json:"menuId" validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"required,gt=0"`
}

// Request — входные данные для оформления заказа.
type Request struct {
	FranchiseID int    `json:"franchiseId" validate:"required"`
	StoreID     int    `json:"storeId" validate:"required"`
	Items       []Item `json:"items" validate:"required,min=1,dive"`
}

// Response — сохраненный заказ, токен выдачи фабрики и ссылка на отчет.
type Response struct {
	Order     *models.Order `json:"order"`
	JWT       string        `json:"jwt"`
	ReportURL string        `json:"reportUrl,omitempty"`
}

// FailureResponse — тело ответа при отказе фабрики.
type FailureResponse struct {
	Message   string `json:"message"`
	ReportURL string `json:"reportUrl,omitempty"`
}

// Service описывает контракт координатора заказов.
type Service interface {
	Submit(ctx context.Context, diner *models.User, o models.Order) (*order.Result, error)
}

// Handler обрабатывает запросы оформления заказа.
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

// ServeHTTP оформляет заказ и возвращает его вместе с токеном выдачи.
// При отказе фабрики возвращается 500 со ссылкой на отчет, если она есть.
//
// @Summary Оформить заказ
// @Tags order
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body Request true "Франшиза, точка продаж и позиции"
// @Success 200 {object} Response
// @Failure 400 {object} response.ErrorResponse "Ошибка валидации или неизвестная позиция меню"
// @Failure 401 {object} response.ErrorResponse "Токен отсутствует или отозван"
// @Failure 500 {object} FailureResponse "Фабрика отклонила заказ"
// @Router /api/order [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.order.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	diner := middlewarectx.UserFromContext(r.Context())
	if diner == nil {
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

	items := make([]models.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, models.OrderItem{
			MenuID:      item.MenuID,
			Description: item.Description,
			Price:       item.Price,
		})
	}

	result, err := h.service.Submit(r.Context(), diner, models.Order{
		FranchiseID: req.FranchiseID,
		StoreID:     req.StoreID,
		Items:       items,
	})
	if err != nil {
		var fulfillErr *models.FulfillmentError
		switch {
		case errors.As(err, &fulfillErr):
			log.Error("factory rejected order", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, FailureResponse{
				Message:   "Failed to fulfill order at factory",
				ReportURL: fulfillErr.ReportURL,
			})
		case errors.Is(err, models.ErrNotFound), errors.Is(err, models.ErrPriceMismatch):
			log.Error("order items rejected", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid order item"))
		default:
			log.Error("failed to submit order", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to create order"))
		}
		return
	}
	log.Info("order fulfilled", slog.Int("order_id", result.Order.ID))

	render.JSON(w, r, Response{
		Order:     result.Order,
		JWT:       result.JWT,
		ReportURL: result.ReportURL,
	})
}
