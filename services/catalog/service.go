package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	serviceRepo "homehelper/database/repository/service"
	"homehelper/models"
	"homehelper/utils"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	cacheKeyAll    = "catalog:all"
	cacheKeyPrefix = "catalog:category:"
	cacheTTL       = 5 * time.Minute
)

// Service is the browse and admin surface of the service catalog.
type Service interface {
	ListServices(ctx context.Context) ([]models.Service, error)
	ListByCategory(ctx context.Context, category models.ServiceCategory) ([]models.Service, error)
	GetService(ctx context.Context, id string) (*models.Service, error)
	CreateService(ctx context.Context, svc *models.Service) error
	UpdateService(ctx context.Context, svc *models.Service) error
	SetAvailability(ctx context.Context, id string, available bool) error
}

// DefaultCatalogService backs the catalog with MongoDB and keeps a short-lived
// Redis read-through cache for the browse lists. Cache is optional: a nil
// client falls straight through to the repository.
type DefaultCatalogService struct {
	Repo  serviceRepo.ServiceRepository
	Cache *redis.Client
}

func NewCatalogService(repo serviceRepo.ServiceRepository, cache *redis.Client) Service {
	return &DefaultCatalogService{Repo: repo, Cache: cache}
}

// ListServices returns every available service, cached for a few minutes.
func (s *DefaultCatalogService) ListServices(ctx context.Context) ([]models.Service, error) {
	if cached := s.readCache(ctx, cacheKeyAll); cached != nil {
		return cached, nil
	}

	services, err := s.Repo.GetAll(true)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}

	s.writeCache(ctx, cacheKeyAll, services)
	return services, nil
}

// ListByCategory returns the available services in one category.
func (s *DefaultCatalogService) ListByCategory(ctx context.Context, category models.ServiceCategory) ([]models.Service, error) {
	key := cacheKeyPrefix + string(category)
	if cached := s.readCache(ctx, key); cached != nil {
		return cached, nil
	}

	services, err := s.Repo.GetByCategory(category)
	if err != nil {
		return nil, fmt.Errorf("failed to list services for category %s: %w", category, err)
	}

	s.writeCache(ctx, key, services)
	return services, nil
}

// GetService fetches one service by id. Not cached; detail reads hit Mongo.
func (s *DefaultCatalogService) GetService(ctx context.Context, id string) (*models.Service, error) {
	svc, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch service %s: %w", id, err)
	}
	if svc == nil {
		return nil, fmt.Errorf("service %s not found", id)
	}
	return svc, nil
}

// CreateService adds a catalog entry. Admin use.
func (s *DefaultCatalogService) CreateService(ctx context.Context, svc *models.Service) error {
	if svc.Name == "" || svc.Category == "" {
		return fmt.Errorf("service name and category are required")
	}
	if svc.Price < 0 {
		return fmt.Errorf("service price cannot be negative")
	}
	if svc.ID == "" {
		svc.ID = uuid.New().String()
	}
	if svc.PriceUnit == "" {
		svc.PriceUnit = "hour"
	}
	if svc.Duration <= 0 {
		svc.Duration = 60
	}
	svc.Available = true

	if err := s.Repo.Create(svc); err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}
	s.invalidate(ctx, svc.Category)
	return nil
}

// UpdateService replaces a catalog entry.
func (s *DefaultCatalogService) UpdateService(ctx context.Context, svc *models.Service) error {
	if svc.ID == "" {
		return fmt.Errorf("service id is required")
	}
	if err := s.Repo.Update(svc); err != nil {
		return fmt.Errorf("failed to update service: %w", err)
	}
	s.invalidate(ctx, svc.Category)
	return nil
}

// SetAvailability toggles whether a service can be booked.
func (s *DefaultCatalogService) SetAvailability(ctx context.Context, id string, available bool) error {
	svc, err := s.Repo.GetByID(id)
	if err != nil {
		return fmt.Errorf("failed to fetch service %s: %w", id, err)
	}
	if svc == nil {
		return fmt.Errorf("service %s not found", id)
	}
	if err := s.Repo.SetAvailable(id, available); err != nil {
		return fmt.Errorf("failed to update availability for service %s: %w", id, err)
	}
	s.invalidate(ctx, svc.Category)
	return nil
}

func (s *DefaultCatalogService) readCache(ctx context.Context, key string) []models.Service {
	if s.Cache == nil {
		return nil
	}
	data, err := s.Cache.Get(ctx, key).Result()
	if err != nil {
		return nil
	}
	var services []models.Service
	if err := json.Unmarshal([]byte(data), &services); err != nil {
		// Corrupt entry: drop it and fall through to Mongo.
		_ = s.Cache.Del(ctx, key).Err()
		return nil
	}
	return services
}

func (s *DefaultCatalogService) writeCache(ctx context.Context, key string, services []models.Service) {
	if s.Cache == nil {
		return
	}
	data, err := json.Marshal(services)
	if err != nil {
		return
	}
	if err := s.Cache.Set(ctx, key, data, cacheTTL).Err(); err != nil {
		utils.GetLogger().Warn("catalog: failed to write cache", zap.String("key", key), zap.Error(err))
	}
}

func (s *DefaultCatalogService) invalidate(ctx context.Context, category models.ServiceCategory) {
	if s.Cache == nil {
		return
	}
	keys := []string{cacheKeyAll}
	if category != "" {
		keys = append(keys, cacheKeyPrefix+string(category))
	}
	if err := s.Cache.Del(ctx, keys...).Err(); err != nil {
		utils.GetLogger().Warn("catalog: failed to invalidate cache", zap.Error(err))
	}
}
