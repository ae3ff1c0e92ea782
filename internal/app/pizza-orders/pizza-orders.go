// Package pizzaorders собирает приложение: хранилище с миграциями, кеш,
// клиент фабрики, опциональный брокер событий, сервисы и HTTP-сервер.
package pizzaorders

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/pizza-orders/internal/cache"
	"github.com/magabrotheeeer/pizza-orders/internal/config"
	"github.com/magabrotheeeer/pizza-orders/internal/factory"
	"github.com/magabrotheeeer/pizza-orders/internal/lib/password"
	"github.com/magabrotheeeer/pizza-orders/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/pizza-orders/internal/lib/sl"
	"github.com/magabrotheeeer/pizza-orders/internal/lib/token"
	"github.com/magabrotheeeer/pizza-orders/internal/migrations"
	"github.com/magabrotheeeer/pizza-orders/internal/models"
	authservice "github.com/magabrotheeeer/pizza-orders/internal/services/auth"
	directoryservice "github.com/magabrotheeeer/pizza-orders/internal/services/directory"
	orderservice "github.com/magabrotheeeer/pizza-orders/internal/services/order"
	"github.com/magabrotheeeer/pizza-orders/internal/storage/repository"
)

// App — собранное приложение с HTTP-сервером и его зависимостями.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
}

// New инициализирует зависимости приложения в порядке:
// база и миграции, кеш, брокер, сервисы, маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	maker := token.NewMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	authService := authservice.New(db, db, maker)
	directoryService := directoryservice.New(db, cacheRedis, logger)

	factoryClient := factory.NewClient(cfg.FactoryURL, cfg.FactoryAPIKey, cfg.FactoryTimeout)

	var events orderservice.EventPublisher
	if cfg.AmqpURL != "" {
		conn, err := rabbitmq.Connect(cfg.AmqpURL, 5, 2*time.Second)
		if err != nil {
			return nil, err
		}
		ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetOrderQueues())
		if err != nil {
			return nil, err
		}
		events = rabbitmq.NewPublisher(ch)
		logger.Info("order events publisher enabled")
	}

	orderService := orderservice.New(db, directoryService, factoryClient, events, logger)

	if err := seedDefaultAdmin(ctx, db, cfg.DefaultAdmin, logger); err != nil {
		return nil, err
	}

	router := chi.NewRouter()
	RegisterRoutes(router, logger, authService, directoryService, orderService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его при отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		_ = a.db.DB.Close()
		return err
	}
}

// seedDefaultAdmin создает глобального администратора при первом запуске.
// Пустой пароль в конфигурации отключает создание.
func seedDefaultAdmin(ctx context.Context, db *repository.Storage, cfg config.DefaultAdmin, logger *slog.Logger) error {
	if cfg.AdminPassword == "" {
		return nil
	}

	_, err := db.GetUserByEmail(ctx, cfg.AdminEmail)
	if err == nil {
		return nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return err
	}

	hashed, err := password.GetHash(cfg.AdminPassword)
	if err != nil {
		return err
	}
	_, err = db.CreateUser(ctx, models.User{
		Name:         "admin",
		Email:        cfg.AdminEmail,
		PasswordHash: hashed,
		Roles:        []models.RoleGrant{{Role: models.RoleAdmin}},
	})
	if err != nil {
		logger.Error("failed to seed default admin", sl.Err(err))
		return err
	}
	logger.Info("seeded default admin", slog.String("email", cfg.AdminEmail))
	return nil
}
