package repository

import (
	"context"
	"fmt"
)

// Таблица активных токенов — единственный источник истины о действительности
// токена: корректно подписанный, но отозванный или никогда не выданный токен
// недействителен.

// LoginUser записывает подпись выданного токена как активную для пользователя.
func (s *Storage) LoginUser(ctx context.Context, tokenSignature string, userID int) error {
	const op = "storage.LoginUser"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO auth (token_signature, user_id)
			  VALUES ($1, $2)
			  ON CONFLICT (token_signature) DO UPDATE SET user_id = EXCLUDED.user_id`
	if _, err := s.DB.ExecContext(ctx, query, tokenSignature, userID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// IsLoggedIn сообщает, числится ли подпись токена среди активных.
func (s *Storage) IsLoggedIn(ctx context.Context, tokenSignature string) (bool, error) {
	const op = "storage.IsLoggedIn"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT EXISTS (SELECT 1 FROM auth WHERE token_signature = $1)`
	var exists bool
	if err := s.DB.QueryRowContext(ctx, query, tokenSignature).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return exists, nil
}

// LogoutUser удаляет подпись токена из активных. Повторный отзыв
// уже отозванного токена не является ошибкой.
func (s *Storage) LogoutUser(ctx context.Context, tokenSignature string) error {
	const op = "storage.LogoutUser"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM auth WHERE token_signature = $1`
	if _, err := s.DB.ExecContext(ctx, query, tokenSignature); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
