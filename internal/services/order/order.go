// Package order содержит координатор оформления заказов: проверку позиций
// по меню, сохранение заказа, синхронное подтверждение внешней фабрикой
// и фиксацию итогового статуса. Фабрика — единственный источник токена
// выдачи: без её подтверждения заказ никогда не считается успешным.
package order

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/pizza-orders/internal/factory"
	"github.com/magabrotheeeer/pizza-orders/internal/lib/sl"
	"github.com/magabrotheeeer/pizza-orders/internal/metrics"
	"github.com/magabrotheeeer/pizza-orders/internal/models"
)

// Repository описывает методы хранилища для заказов.
type Repository interface {
	// CreateOrder сохраняет заказ со статусом pending и возвращает его с ID.
	CreateOrder(ctx context.Context, order models.Order) (*models.Order, error)
	// UpdateOrderStatus фиксирует итог вызова фабрики.
	UpdateOrderStatus(ctx context.Context, orderID int, status models.OrderStatus, reportURL string) error
	// ListDinerOrders возвращает страницу заказов посетителя.
	ListDinerOrders(ctx context.Context, dinerID, limit, offset int) ([]models.Order, error)
}

// MenuProvider возвращает актуальное меню для проверки позиций заказа.
type MenuProvider interface {
	GetMenu(ctx context.Context) ([]models.MenuItem, error)
}

// FactoryClient подтверждает заказ на внешней фабрике.
type FactoryClient interface {
	ConfirmOrder(ctx context.Context, reqParams factory.ConfirmOrderRequest) (*factory.ConfirmOrderResponse, error)
}

// EventPublisher публикует события жизненного цикла заказов для точек продаж.
// Публикация не влияет на ответ клиенту.
type EventPublisher interface {
	PublishOrderEvent(routingKey string, order *models.Order) error
}

// Result — итог оформления заказа: сохраненный заказ, токен выдачи
// и ссылка на отчет фабрики.
type Result struct {
	Order     *models.Order
	JWT       string
	ReportURL string
}

// OrderService координирует оформление заказов.
type OrderService struct {
	repo    Repository
	menu    MenuProvider
	factory FactoryClient
	events  EventPublisher
	log     *slog.Logger
}

// New создает новый экземпляр OrderService. events может быть nil,
// если брокер не настроен.
func New(repo Repository, menu MenuProvider, factoryClient FactoryClient, events EventPublisher, log *slog.Logger) *OrderService {
	return &OrderService{
		repo:    repo,
		menu:    menu,
		factory: factoryClient,
		events:  events,
		log:     log,
	}
}

// Submit проверяет позиции заказа по меню, сохраняет заказ и отправляет его
// фабрике. При отказе фабрики заказ помечается failed, а вызывающая сторона
// получает *models.FulfillmentError со ссылкой на отчет, если она есть.
func (s *OrderService) Submit(ctx context.Context, diner *models.User, order models.Order) (*Result, error) {
	const op = "order.Submit"

	if err := s.validateItems(ctx, order.Items); err != nil {
		return nil, err
	}

	order.DinerID = diner.ID
	created, err := s.repo.CreateOrder(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	start := time.Now()
	confirmation, err := s.factory.ConfirmOrder(ctx, factory.ConfirmOrderRequest{
		Diner: factory.Diner{ID: diner.ID, Name: diner.Name, Email: diner.Email},
		Order: factory.OrderPayload{
			FranchiseID: created.FranchiseID,
			StoreID:     created.StoreID,
			Items:       created.Items,
		},
	})
	metrics.FactoryRequestDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		reportURL := ""
		var respErr *factory.ResponseError
		if errors.As(err, &respErr) {
			reportURL = respErr.ReportURL
		}
		s.finalize(ctx, created, models.OrderStatusFailed, reportURL)
		s.log.Error("factory rejected order",
			slog.Int("order_id", created.ID), sl.Err(err))
		return nil, &models.FulfillmentError{ReportURL: reportURL, Err: err}
	}

	s.finalize(ctx, created, models.OrderStatusFulfilled, confirmation.ReportURL)
	s.log.Info("order fulfilled",
		slog.Int("order_id", created.ID), slog.Int("diner_id", diner.ID))

	return &Result{Order: created, JWT: confirmation.JWT, ReportURL: confirmation.ReportURL}, nil
}

// List возвращает страницу заказов посетителя и признак следующей страницы.
func (s *OrderService) List(ctx context.Context, dinerID, page, limit int) ([]models.Order, bool, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	// Запрашивается на одну запись больше, чтобы определить наличие
	// следующей страницы без отдельного COUNT.
	orders, err := s.repo.ListDinerOrders(ctx, dinerID, limit+1, (page-1)*limit)
	if err != nil {
		return nil, false, err
	}
	more := len(orders) > limit
	if more {
		orders = orders[:limit]
	}
	return orders, more, nil
}

// validateItems проверяет, что каждая позиция ссылается на существующий
// пункт меню и цена совпадает с текущей ценой меню.
func (s *OrderService) validateItems(ctx context.Context, items []models.OrderItem) error {
	menu, err := s.menu.GetMenu(ctx)
	if err != nil {
		return err
	}
	prices := make(map[int]float64, len(menu))
	for _, m := range menu {
		prices[m.ID] = m.Price
	}

	for _, item := range items {
		price, ok := prices[item.MenuID]
		if !ok {
			return fmt.Errorf("unknown menu item %d: %w", item.MenuID, models.ErrNotFound)
		}
		if item.Price != price {
			return fmt.Errorf("menu item %d: %w", item.MenuID, models.ErrPriceMismatch)
		}
	}
	return nil
}

// finalize фиксирует итоговый статус заказа, обновляет метрики
// и публикует событие, если брокер настроен.
func (s *OrderService) finalize(ctx context.Context, order *models.Order, status models.OrderStatus, reportURL string) {
	order.Status = status
	order.ReportURL = reportURL
	metrics.OrdersTotal.WithLabelValues(string(status)).Inc()

	if err := s.repo.UpdateOrderStatus(ctx, order.ID, status, reportURL); err != nil {
		s.log.Error("failed to update order status",
			slog.Int("order_id", order.ID), sl.Err(err))
	}
	if s.events != nil {
		if err := s.events.PublishOrderEvent(string(status), order); err != nil {
			s.log.Warn("failed to publish order event",
				slog.Int("order_id", order.ID), sl.Err(err))
		}
	}
}
