// Package auth содержит логику бизнес-уровня для регистрации, входа,
// выхода и разрешения личности по токену.
//
// Действительность токена определяется таблицей активных токенов, а не
// только подписью: после выхода токен отзывается немедленно и безусловно.
// Эта проверка выполняется заново на каждом запросе.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/magabrotheeeer/pizza-orders/internal/lib/password"
	"github.com/magabrotheeeer/pizza-orders/internal/lib/token"
	"github.com/magabrotheeeer/pizza-orders/internal/models"
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// CreateUser сохраняет нового пользователя с ролями и возвращает его с ID.
	CreateUser(ctx context.Context, user models.User) (*models.User, error)
	// GetUserByEmail возвращает пользователя по email или ErrNotFound.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// GetUserByID возвращает пользователя по ID или ErrNotFound.
	GetUserByID(ctx context.Context, id int) (*models.User, error)
	// UpdateUser обновляет имя/email/хэш пароля; пустые значения пропускаются.
	UpdateUser(ctx context.Context, id int, name, email, passwordHash string) (*models.User, error)
}

// TokenRepository описывает контракт таблицы активных токенов.
type TokenRepository interface {
	// LoginUser записывает подпись токена как активную для пользователя.
	LoginUser(ctx context.Context, tokenSignature string, userID int) error
	// IsLoggedIn сообщает, активна ли подпись токена.
	IsLoggedIn(ctx context.Context, tokenSignature string) (bool, error)
	// LogoutUser отзывает подпись токена; идемпотентен.
	LogoutUser(ctx context.Context, tokenSignature string) error
}

// AuthService отвечает за регистрацию, вход, выход и разрешение личности.
type AuthService struct {
	users  UserRepository
	tokens TokenRepository
	maker  token.Maker
}

// New создает новый экземпляр AuthService.
func New(users UserRepository, tokens TokenRepository, maker token.Maker) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		maker:  maker,
	}
}

// Register создает нового пользователя с хэшированием пароля и выдает токен.
// Если роли не указаны, пользователь получает роль diner.
func (s *AuthService) Register(ctx context.Context, name, email, rawPassword string, roles []models.RoleGrant) (*models.User, string, error) {
	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return nil, "", err
	}
	if len(roles) == 0 {
		roles = []models.RoleGrant{{Role: models.RoleDiner}}
	}
	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hashed,
		Roles:        roles,
	}
	created, err := s.users.CreateUser(ctx, user)
	if err != nil {
		return nil, "", err
	}

	tokenStr, err := s.issue(ctx, created)
	if err != nil {
		return nil, "", err
	}
	return created, tokenStr, nil
}

// Login проверяет пароль пользователя и выдает новый токен.
// Неизвестный email и неверный пароль неразличимы для вызывающей стороны.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (*models.User, string, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, "", models.ErrInvalidCredentials
		}
		return nil, "", err
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return nil, "", models.ErrInvalidCredentials
	}

	tokenStr, err := s.issue(ctx, user)
	if err != nil {
		return nil, "", err
	}
	return user, tokenStr, nil
}

// Logout отзывает токен. Отзыв уже недействительного токена не является ошибкой.
func (s *AuthService) Logout(ctx context.Context, tokenStr string) error {
	return s.tokens.LogoutUser(ctx, token.Signature(tokenStr))
}

// IsValid сообщает, числится ли токен среди активных. Некорректно
// устроенный токен дает false, а не ошибку.
func (s *AuthService) IsValid(ctx context.Context, tokenStr string) (bool, error) {
	sig := token.Signature(tokenStr)
	if sig == "" {
		return false, nil
	}
	return s.tokens.IsLoggedIn(ctx, sig)
}

// Resolve возвращает пользователя, которому был выдан токен.
// Любой недействительный токен дает ErrUnauthenticated.
func (s *AuthService) Resolve(ctx context.Context, tokenStr string) (*models.User, error) {
	const op = "auth.Resolve"

	claims, err := s.maker.Parse(tokenStr)
	if err != nil {
		return nil, models.ErrUnauthenticated
	}

	active, err := s.tokens.IsLoggedIn(ctx, token.Signature(tokenStr))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !active {
		return nil, models.ErrUnauthenticated
	}

	userID, err := strconv.Atoi(claims.Subject)
	if err != nil {
		return nil, models.ErrUnauthenticated
	}
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrUnauthenticated
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

// UpdateUser обновляет профиль пользователя и выдает новый токен,
// чтобы claims отражали актуальные данные.
func (s *AuthService) UpdateUser(ctx context.Context, id int, name, email, rawPassword string) (*models.User, string, error) {
	var hashed string
	if rawPassword != "" {
		var err error
		hashed, err = password.GetHash(rawPassword)
		if err != nil {
			return nil, "", err
		}
	}

	user, err := s.users.UpdateUser(ctx, id, name, email, hashed)
	if err != nil {
		return nil, "", err
	}

	tokenStr, err := s.issue(ctx, user)
	if err != nil {
		return nil, "", err
	}
	return user, tokenStr, nil
}

// issue генерирует токен и записывает его подпись в таблицу активных токенов.
func (s *AuthService) issue(ctx context.Context, user *models.User) (string, error) {
	tokenStr, err := s.maker.Generate(user)
	if err != nil {
		return "", err
	}
	if err := s.tokens.LoginUser(ctx, token.Signature(tokenStr), user.ID); err != nil {
		return "", err
	}
	return tokenStr, nil
}
