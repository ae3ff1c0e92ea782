// Package pizzaorders предоставляет маршруты для основного приложения.
package pizzaorders

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/pizza-orders/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/pizza-orders/internal/http/handlers/auth/logout"
	"github.com/magabrotheeeer/pizza-orders/internal/http/handlers/auth/register"
	franchisecreate "github.com/magabrotheeeer/pizza-orders/internal/http/handlers/franchise/create"
	franchiselist "github.com/magabrotheeeer/pizza-orders/internal/http/handlers/franchise/list"
	"github.com/magabrotheeeer/pizza-orders/internal/http/handlers/franchise/listuser"
	franchiseremove "github.com/magabrotheeeer/pizza-orders/internal/http/handlers/franchise/remove"
	"github.com/magabrotheeeer/pizza-orders/internal/http/handlers/franchise/storecreate"
	"github.com/magabrotheeeer/pizza-orders/internal/http/handlers/franchise/storeremove"
	"github.com/magabrotheeeer/pizza-orders/internal/http/handlers/health"
	ordercreate "github.com/magabrotheeeer/pizza-orders/internal/http/handlers/order/create"
	orderlist "github.com/magabrotheeeer/pizza-orders/internal/http/handlers/order/list"
	"github.com/magabrotheeeer/pizza-orders/internal/http/handlers/order/menuadd"
	"github.com/magabrotheeeer/pizza-orders/internal/http/handlers/order/menulist"
	"github.com/magabrotheeeer/pizza-orders/internal/http/handlers/user/me"
	userupdate "github.com/magabrotheeeer/pizza-orders/internal/http/handlers/user/update"
	"github.com/magabrotheeeer/pizza-orders/internal/http/middlewarectx"
	authservice "github.com/magabrotheeeer/pizza-orders/internal/services/auth"
	directoryservice "github.com/magabrotheeeer/pizza-orders/internal/services/directory"
	orderservice "github.com/magabrotheeeer/pizza-orders/internal/services/order"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, authService *authservice.AuthService, directoryService *directoryservice.DirectoryService, orderService *orderservice.OrderService) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api", func(r chi.Router) {
		// Открытые конечные точки
		r.Get("/health", health.New())
		r.Post("/auth", register.New(logger, authService).ServeHTTP)
		r.Put("/auth", login.New(logger, authService).ServeHTTP)
		r.Get("/franchise", franchiselist.New(logger, directoryService).ServeHTTP)
		r.Get("/order/menu", menulist.New(logger, directoryService).ServeHTTP)

		// Группа с аутентификацией по токену
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.AuthMiddleware(authService, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Delete("/auth", logout.New(logger, authService).ServeHTTP)
			r.Get("/user/me", me.New(logger).ServeHTTP)
			r.Put("/user/{id}", userupdate.New(logger, authService).ServeHTTP)
			r.Post("/franchise", franchisecreate.New(logger, directoryService).ServeHTTP)
			r.Get("/franchise/{userId}", listuser.New(logger, directoryService).ServeHTTP)
			r.Delete("/franchise/{id}", franchiseremove.New(logger, directoryService).ServeHTTP)
			r.Post("/franchise/{id}/store", storecreate.New(logger, directoryService).ServeHTTP)
			r.Delete("/franchise/{id}/store/{storeId}", storeremove.New(logger, directoryService).ServeHTTP)
			r.Put("/order/menu", menuadd.New(logger, directoryService).ServeHTTP)
			r.Post("/order", ordercreate.New(logger, orderService).ServeHTTP)
			r.Get("/order", orderlist.New(logger, orderService).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
