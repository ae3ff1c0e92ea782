package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/pizza-orders/internal/models"
)

// CreateOrder сохраняет заказ вместе с позициями в одной транзакции
// и возвращает его с присвоенным ID. Статус нового заказа — pending.
func (s *Storage) CreateOrder(ctx context.Context, order models.Order) (*models.Order, error) {
	const op = "storage.CreateOrder"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	order.Status = models.OrderStatusPending
	query := `INSERT INTO orders (diner_id, franchise_id, store_id, status)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id`
	if err := tx.QueryRowContext(ctx, query,
		order.DinerID, order.FranchiseID, order.StoreID, string(order.Status)).Scan(&order.ID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for _, item := range order.Items {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO order_items (order_id, menu_id, description, price) VALUES ($1, $2, $3, $4)`,
			order.ID, item.MenuID, item.Description, item.Price); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &order, nil
}

// UpdateOrderStatus фиксирует итог внешнего вызова фабрики для заказа.
func (s *Storage) UpdateOrderStatus(ctx context.Context, orderID int, status models.OrderStatus, reportURL string) error {
	const op = "storage.UpdateOrderStatus"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE orders SET status = $1, report_url = $2 WHERE id = $3`
	if _, err := s.DB.ExecContext(ctx, query, string(status), reportURL, orderID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListDinerOrders возвращает страницу заказов посетителя вместе с позициями.
func (s *Storage) ListDinerOrders(ctx context.Context, dinerID, limit, offset int) ([]models.Order, error) {
	const op = "storage.ListDinerOrders"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, franchise_id, store_id, status, COALESCE(report_url, '')
			  FROM orders
			  WHERE diner_id = $1
			  ORDER BY id
			  LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, dinerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []models.Order
	for rows.Next() {
		order := models.Order{DinerID: dinerID}
		var status string
		if err := rows.Scan(&order.ID, &order.FranchiseID, &order.StoreID, &status, &order.ReportURL); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		order.Status = models.OrderStatus(status)
		result = append(result, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for i := range result {
		items, err := s.getOrderItems(ctx, result[i].ID)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result[i].Items = items
	}
	return result, nil
}

// getOrderItems возвращает позиции заказа в порядке добавления.
func (s *Storage) getOrderItems(ctx context.Context, orderID int) ([]models.OrderItem, error) {
	const op = "storage.getOrderItems"

	query := `SELECT menu_id, description, price
			  FROM order_items
			  WHERE order_id = $1
			  ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var items []models.OrderItem
	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(&item.MenuID, &item.Description, &item.Price); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return items, nil
}
