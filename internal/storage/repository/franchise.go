package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/pizza-orders/internal/models"
)

// CreateFranchise сохраняет франшизу с привязкой администраторов
// и выдаёт каждому из них роль franchisee для этой франшизы.
func (s *Storage) CreateFranchise(ctx context.Context, name string, adminIDs []int) (int, error) {
	const op = "storage.CreateFranchise"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var franchiseID int
	query := `INSERT INTO franchises (name) VALUES ($1) RETURNING id`
	if err := tx.QueryRowContext(ctx, query, name).Scan(&franchiseID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	for _, adminID := range adminIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO franchise_admins (franchise_id, user_id) VALUES ($1, $2)`,
			franchiseID, adminID); err != nil {
			return 0, fmt.Errorf("%s: %w", op, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO user_roles (user_id, role, object_id) VALUES ($1, $2, $3)
			 ON CONFLICT (user_id, role, object_id) DO NOTHING`,
			adminID, string(models.RoleFranchisee), franchiseID); err != nil {
			return 0, fmt.Errorf("%s: %w", op, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return franchiseID, nil
}

// GetFranchise возвращает франшизу с администраторами и точками продаж.
func (s *Storage) GetFranchise(ctx context.Context, id int) (*models.Franchise, error) {
	const op = "storage.GetFranchise"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	f := &models.Franchise{}
	query := `SELECT id, name FROM franchises WHERE id = $1`
	if err := s.DB.QueryRowContext(ctx, query, id).Scan(&f.ID, &f.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.fillFranchise(ctx, f); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return f, nil
}

// ListFranchises возвращает страницу франшиз с фильтром по имени
// и признаком наличия следующей страницы.
func (s *Storage) ListFranchises(ctx context.Context, limit, offset int, nameFilter string) ([]*models.Franchise, bool, error) {
	const op = "storage.ListFranchises"
	select {
	case <-ctx.Done():
		return nil, false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name
			  FROM franchises
			  WHERE name ILIKE $1
			  ORDER BY id
			  LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, nameFilter, limit+1, offset)
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Franchise
	for rows.Next() {
		f := &models.Franchise{}
		if err := rows.Scan(&f.ID, &f.Name); err != nil {
			return nil, false, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, f)
	}
	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}

	more := false
	if len(result) > limit {
		more = true
		result = result[:limit]
	}

	for _, f := range result {
		if err := s.fillFranchise(ctx, f); err != nil {
			return nil, false, fmt.Errorf("%s: %w", op, err)
		}
	}
	return result, more, nil
}

// ListUserFranchises возвращает франшизы, которыми управляет пользователь.
func (s *Storage) ListUserFranchises(ctx context.Context, userID int) ([]*models.Franchise, error) {
	const op = "storage.ListUserFranchises"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT f.id, f.name
			  FROM franchises f
			  JOIN franchise_admins fa ON fa.franchise_id = f.id
			  WHERE fa.user_id = $1
			  ORDER BY f.id`
	rows, err := s.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Franchise
	for rows.Next() {
		f := &models.Franchise{}
		if err := rows.Scan(&f.ID, &f.Name); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for _, f := range result {
		if err := s.fillFranchise(ctx, f); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}
	return result, nil
}

// DeleteFranchise удаляет франшизу вместе с её точками продаж,
// привязками администраторов и ролями franchisee.
func (s *Storage) DeleteFranchise(ctx context.Context, id int) error {
	const op = "storage.DeleteFranchise"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM stores WHERE franchise_id = $1`, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM franchise_admins WHERE franchise_id = $1`, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM user_roles WHERE role = $1 AND object_id = $2`,
		string(models.RoleFranchisee), id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM franchises WHERE id = $1`, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// CreateStore сохраняет новую точку продаж франшизы.
func (s *Storage) CreateStore(ctx context.Context, franchiseID int, name string) (*models.Store, error) {
	const op = "storage.CreateStore"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	store := &models.Store{FranchiseID: franchiseID, Name: name}
	query := `INSERT INTO stores (franchise_id, name) VALUES ($1, $2) RETURNING id`
	if err := s.DB.QueryRowContext(ctx, query, franchiseID, name).Scan(&store.ID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return store, nil
}

// DeleteStore удаляет точку продаж франшизы.
func (s *Storage) DeleteStore(ctx context.Context, franchiseID, storeID int) error {
	const op = "storage.DeleteStore"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM stores WHERE franchise_id = $1 AND id = $2`
	if _, err := s.DB.ExecContext(ctx, query, franchiseID, storeID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// fillFranchise дозагружает администраторов и точки продаж с выручкой.
func (s *Storage) fillFranchise(ctx context.Context, f *models.Franchise) error {
	const op = "storage.fillFranchise"

	adminsQuery := `SELECT u.id, u.name, u.email
			  FROM users u
			  JOIN franchise_admins fa ON fa.user_id = u.id
			  WHERE fa.franchise_id = $1
			  ORDER BY u.id`
	rows, err := s.DB.QueryContext(ctx, adminsQuery, f.ID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	for rows.Next() {
		var admin models.FranchiseAdmin
		if err := rows.Scan(&admin.ID, &admin.Name, &admin.Email); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		f.Admins = append(f.Admins, admin)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	storesQuery := `SELECT st.id, st.franchise_id, st.name,
			      COALESCE(SUM(oi.price), 0) AS total_revenue
			  FROM stores st
			  LEFT JOIN orders o ON o.store_id = st.id AND o.status = 'fulfilled'
			  LEFT JOIN order_items oi ON oi.order_id = o.id
			  WHERE st.franchise_id = $1
			  GROUP BY st.id, st.franchise_id, st.name
			  ORDER BY st.id`
	storeRows, err := s.DB.QueryContext(ctx, storesQuery, f.ID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = storeRows.Close()
	}()
	for storeRows.Next() {
		var store models.Store
		if err := storeRows.Scan(&store.ID, &store.FranchiseID, &store.Name, &store.TotalRevenue); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		f.Stores = append(f.Stores, store)
	}
	if err := storeRows.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
