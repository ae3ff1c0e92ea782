// Package token реализует выпуск и разбор JWT токенов доступа.
//
// Важно: подпись токена не является источником истины о его действительности.
// Действительность определяется записью в таблице активных токенов
// (см. хранилище), чтобы выход из системы отзывал токен немедленно.
package token

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/magabrotheeeer/pizza-orders/internal/models"
)

// Claims описывает данные пользователя, хранящиеся в JWT.
type Claims struct {
	Name                 string             `json:"name"`
	Email                string             `json:"email"`
	Roles                []models.RoleGrant `json:"roles"`
	jwt.RegisteredClaims                    // Стандартные claims (ExpiresAt, IssuedAt, ID и пр.)
}

// Maker описывает интерфейс для генерации и разбора токенов доступа.
type Maker interface {
	// Generate создает подписанный токен с данными пользователя.
	Generate(user *models.User) (string, error)
	// Parse разбирает токен и возвращает claims, если подпись корректна.
	Parse(tokenStr string) (*Claims, error)
}

// MakerImpl реализует Maker на основе секретного ключа и времени жизни токена.
type MakerImpl struct {
	secretKey string
	tokenTTL  time.Duration
}

// NewMaker создаёт новый экземпляр MakerImpl.
func NewMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
}

// Generate создает JWT со структурой header.payload.signature,
// подписанный секретным ключом. В claim ID записывается uuid выпуска.
func (m *MakerImpl) Generate(user *models.User) (string, error) {
	claims := Claims{
		Name:  user.Name,
		Email: user.Email,
		Roles: user.Roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", user.ID),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.secretKey))
}

// Parse проверяет подпись токена и возвращает claims.
func (m *MakerImpl) Parse(tokenStr string) (*Claims, error) {
	const op = "token.Parse"
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(_ *jwt.Token) (any, error) {
		return []byte(m.secretKey), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%s: invalid token", op)
	}
	return claims, nil
}

// Signature возвращает сегмент подписи токена: всё после последней точки.
// Для строки без точек возвращается пустая строка.
func Signature(tokenStr string) string {
	idx := strings.LastIndex(tokenStr, ".")
	if idx < 0 {
		return ""
	}
	return tokenStr[idx+1:]
}
