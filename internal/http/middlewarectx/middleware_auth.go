// Package middlewarectx содержит HTTP middleware аутентификации и ограничения
// частоты запросов.
//
// AuthMiddleware извлекает токен из заголовка Authorization и разрешает
// личность пользователя заново на каждом запросе: токен, отозванный выходом,
// перестает действовать немедленно, независимо от корректности подписи.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/pizza-orders/internal/http/response"
	"github.com/magabrotheeeer/pizza-orders/internal/lib/sl"
	"github.com/magabrotheeeer/pizza-orders/internal/models"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// UserKey — ключ для аутентифицированного пользователя в контексте.
const UserKey Key = "user"

// Service описывает интерфейс для разрешения личности по токену.
type Service interface {
	// Resolve возвращает пользователя, которому был выдан токен,
	// или ErrUnauthenticated.
	Resolve(ctx context.Context, tokenStr string) (*models.User, error)
}

// UserFromContext возвращает аутентифицированного пользователя из контекста
// запроса или nil, если middleware не отработал.
func UserFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(UserKey).(*models.User)
	return user
}

// TokenFromRequest извлекает bearer-токен из заголовка Authorization.
// Возвращает пустую строку, если заголовок отсутствует или некорректен.
func TokenFromRequest(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(authHeader, "Bearer ")
}

// AuthMiddleware возвращает HTTP middleware, который разрешает пользователя
// по токену из заголовка Authorization.
//
// Если токен действителен, добавляет *models.User в контекст запроса,
// иначе возвращает HTTP 401 Unauthorized.
func AuthMiddleware(authService Service, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.AuthMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			tokenStr := TokenFromRequest(r)
			if tokenStr == "" {
				log.Error("missing or invalid authorization header")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("unauthorized"))
				return
			}

			user, err := authService.Resolve(r.Context(), tokenStr)
			if err != nil {
				log.Error("invalid or revoked token", sl.Err(err))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("unauthorized"))
				return
			}

			ctx := context.WithValue(r.Context(), UserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
