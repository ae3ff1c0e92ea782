package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/pizza-orders/internal/models"
)

// GetMenu возвращает все позиции общего меню в порядке добавления.
func (s *Storage) GetMenu(ctx context.Context) ([]models.MenuItem, error) {
	const op = "storage.GetMenu"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, description, image, price
			  FROM menu_items
			  ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []models.MenuItem
	for rows.Next() {
		var item models.MenuItem
		if err := rows.Scan(&item.ID, &item.Title, &item.Description, &item.Image, &item.Price); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// AddMenuItem добавляет позицию в меню и возвращает её с присвоенным ID.
func (s *Storage) AddMenuItem(ctx context.Context, item models.MenuItem) (*models.MenuItem, error) {
	const op = "storage.AddMenuItem"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO menu_items (title, description, image, price)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id`
	if err := s.DB.QueryRowContext(ctx, query,
		item.Title, item.Description, item.Image, item.Price).Scan(&item.ID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &item, nil
}
