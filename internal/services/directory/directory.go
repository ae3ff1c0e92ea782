// Package directory содержит бизнес-логику управления справочником:
// франшизами, точками продаж и общим меню. Авторизация мутаций
// выполняется на уровне HTTP-обработчиков движком authz.
package directory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/magabrotheeeer/pizza-orders/internal/models"
)

// menuCacheKey — ключ кеша общего меню.
const menuCacheKey = "menu"

// Repository определяет методы хранилища для справочника.
type Repository interface {
	// CreateFranchise сохраняет франшизу и привязывает администраторов.
	CreateFranchise(ctx context.Context, name string, adminIDs []int) (int, error)
	// GetFranchise возвращает франшизу с администраторами и точками продаж.
	GetFranchise(ctx context.Context, id int) (*models.Franchise, error)
	// ListFranchises возвращает страницу франшиз и признак следующей страницы.
	ListFranchises(ctx context.Context, limit, offset int, nameFilter string) ([]*models.Franchise, bool, error)
	// ListUserFranchises возвращает франшизы, которыми управляет пользователь.
	ListUserFranchises(ctx context.Context, userID int) ([]*models.Franchise, error)
	// DeleteFranchise удаляет франшизу вместе с точками продаж.
	DeleteFranchise(ctx context.Context, id int) error
	// CreateStore сохраняет точку продаж франшизы.
	CreateStore(ctx context.Context, franchiseID int, name string) (*models.Store, error)
	// DeleteStore удаляет точку продаж франшизы.
	DeleteStore(ctx context.Context, franchiseID, storeID int) error
	// GetMenu возвращает все позиции меню.
	GetMenu(ctx context.Context) ([]models.MenuItem, error)
	// AddMenuItem добавляет позицию в меню.
	AddMenuItem(ctx context.Context, item models.MenuItem) (*models.MenuItem, error)
	// GetUserByEmail возвращает пользователя по email или ErrNotFound.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// DirectoryService реализует операции над справочником, включая кеширование меню.
type DirectoryService struct {
	repo  Repository
	cache Cache
	log   *slog.Logger
}

// New создает новый экземпляр DirectoryService.
func New(repo Repository, cache Cache, log *slog.Logger) *DirectoryService {
	return &DirectoryService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// CreateFranchise создает франшизу, разрешая каждый email администратора
// в зарегистрированного пользователя. Неизвестный email дает ErrNotFound,
// а не общую ошибку валидации.
func (s *DirectoryService) CreateFranchise(ctx context.Context, name string, adminEmails []string) (*models.Franchise, error) {
	var adminIDs []int
	for _, email := range adminEmails {
		user, err := s.repo.GetUserByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				return nil, fmt.Errorf("unknown admin email %s: %w", email, models.ErrNotFound)
			}
			return nil, err
		}
		adminIDs = append(adminIDs, user.ID)
	}

	franchiseID, err := s.repo.CreateFranchise(ctx, name, adminIDs)
	if err != nil {
		return nil, err
	}
	s.log.Info("created new franchise", slog.Int("id", franchiseID), slog.String("name", name))

	return s.repo.GetFranchise(ctx, franchiseID)
}

// ListFranchises возвращает страницу франшиз. Фильтр имени поддерживает
// подстановочный знак *; пустой фильтр означает все франшизы.
func (s *DirectoryService) ListFranchises(ctx context.Context, page, limit int, nameFilter string) ([]*models.Franchise, bool, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if nameFilter == "" {
		nameFilter = "*"
	}
	nameFilter = strings.ReplaceAll(nameFilter, "*", "%")

	return s.repo.ListFranchises(ctx, limit, (page-1)*limit, nameFilter)
}

// ListUserFranchises возвращает франшизы, которыми управляет пользователь.
func (s *DirectoryService) ListUserFranchises(ctx context.Context, userID int) ([]*models.Franchise, error) {
	return s.repo.ListUserFranchises(ctx, userID)
}

// DeleteFranchise удаляет франшизу вместе с её точками продаж.
func (s *DirectoryService) DeleteFranchise(ctx context.Context, id int) error {
	if err := s.repo.DeleteFranchise(ctx, id); err != nil {
		return err
	}
	s.log.Info("deleted franchise", slog.Int("id", id))
	return nil
}

// CreateStore создает точку продаж внутри существующей франшизы.
func (s *DirectoryService) CreateStore(ctx context.Context, franchiseID int, name string) (*models.Store, error) {
	if _, err := s.repo.GetFranchise(ctx, franchiseID); err != nil {
		return nil, err
	}
	return s.repo.CreateStore(ctx, franchiseID, name)
}

// DeleteStore удаляет точку продаж франшизы.
func (s *DirectoryService) DeleteStore(ctx context.Context, franchiseID, storeID int) error {
	return s.repo.DeleteStore(ctx, franchiseID, storeID)
}

// GetMenu возвращает общее меню, используя кеш или хранилище.
func (s *DirectoryService) GetMenu(ctx context.Context) ([]models.MenuItem, error) {
	var cached []models.MenuItem
	found, err := s.cache.Get(menuCacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read menu from cache", slog.Any("err", err))
	}
	if found {
		return cached, nil
	}

	menu, err := s.repo.GetMenu(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(menuCacheKey, menu, time.Hour); err != nil {
		s.log.Warn("failed to cache menu", slog.Any("err", err))
	}
	return menu, nil
}

// AddMenuItem добавляет позицию в меню, инвалидирует кеш
// и возвращает обновленное меню целиком.
func (s *DirectoryService) AddMenuItem(ctx context.Context, item models.MenuItem) ([]models.MenuItem, error) {
	added, err := s.repo.AddMenuItem(ctx, item)
	if err != nil {
		return nil, err
	}
	s.log.Info("added menu item", slog.Int("id", added.ID), slog.String("title", added.Title))

	if err := s.cache.Invalidate(menuCacheKey); err != nil {
		s.log.Warn("failed to invalidate menu cache", slog.Any("err", err))
	}
	return s.repo.GetMenu(ctx)
}
