package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/servlyhq/booking-system/internal/core/domain"
	"github.com/servlyhq/booking-system/internal/core/ports"
)

const featuredLimit = 6

// CatalogService manages the category tree and the bookable services under it.
type CatalogService struct {
	categories ports.CategoryRepository
	services   ports.ServiceRepository
	logger     zerolog.Logger
}

func NewCatalogService(categories ports.CategoryRepository, services ports.ServiceRepository, logger zerolog.Logger) *CatalogService {
	return &CatalogService{categories: categories, services: services, logger: logger}
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	return s.categories.List(ctx)
}

func (s *CatalogService) CreateCategory(ctx context.Context, input ports.CategoryInput) (*domain.Category, error) {
	if input.Name == "" || input.Slug == "" {
		return nil, fmt.Errorf("category: name and slug are required")
	}

	now := time.Now().UTC()
	cat := &domain.Category{
		ID:          uuid.NewString(),
		Name:        input.Name,
		Slug:        input.Slug,
		Description: input.Description,
		Icon:        input.Icon,
		Color:       input.Color,
		SortOrder:   input.SortOrder,
		IsActive:    input.IsActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.categories.Insert(ctx, cat); err != nil {
		s.logger.Error().Err(err).Str("slug", input.Slug).Msg("failed to create category")
		return nil, err
	}
	s.logger.Info().Str("category_id", cat.ID).Str("slug", cat.Slug).Msg("category created")
	return cat, nil
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id string, input ports.CategoryInput) (*domain.Category, error) {
	cat, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	cat.Name = input.Name
	cat.Slug = input.Slug
	cat.Description = input.Description
	cat.Icon = input.Icon
	cat.Color = input.Color
	cat.SortOrder = input.SortOrder
	cat.IsActive = input.IsActive
	cat.UpdatedAt = time.Now().UTC()

	if err := s.categories.Update(ctx, cat); err != nil {
		return nil, err
	}
	s.logger.Info().Str("category_id", cat.ID).Msg("category updated")
	return cat, nil
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id string) error {
	if err := s.categories.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("category_id", id).Msg("category deleted")
	return nil
}

func (s *CatalogService) ListServices(ctx context.Context) ([]*domain.Service, error) {
	return s.services.List(ctx)
}

func (s *CatalogService) FeaturedServices(ctx context.Context) ([]*domain.Service, error) {
	return s.services.ListFeatured(ctx, featuredLimit)
}

func (s *CatalogService) ServicesByCategory(ctx context.Context, categoryID string) ([]*domain.Service, error) {
	if _, err := s.categories.FindByID(ctx, categoryID); err != nil {
		return nil, err
	}
	return s.services.ListByCategory(ctx, categoryID)
}

func (s *CatalogService) GetService(ctx context.Context, id string) (*domain.Service, error) {
	return s.services.FindByID(ctx, id)
}

func (s *CatalogService) CreateService(ctx context.Context, input ports.ServiceInput) (*domain.Service, error) {
	if input.Title == "" || input.CategoryID == "" {
		return nil, fmt.Errorf("service: title and category_id are required")
	}
	if _, err := s.categories.FindByID(ctx, input.CategoryID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	svc := &domain.Service{
		ID:           uuid.NewString(),
		CategoryID:   input.CategoryID,
		Title:        input.Title,
		Description:  input.Description,
		ProviderID:   input.ProviderID,
		ProviderName: input.ProviderName,
		Price:        input.Price,
		PriceUnit:    input.PriceUnit,
		Duration:     input.Duration,
		Featured:     input.Featured,
		IsActive:     input.IsActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.services.Insert(ctx, svc); err != nil {
		s.logger.Error().Err(err).Str("title", input.Title).Msg("failed to create service")
		return nil, err
	}
	s.logger.Info().Str("service_id", svc.ID).Str("category_id", svc.CategoryID).Msg("service created")
	return svc, nil
}

func (s *CatalogService) UpdateService(ctx context.Context, id string, input ports.ServiceInput) (*domain.Service, error) {
	svc, err := s.services.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	svc.CategoryID = input.CategoryID
	svc.Title = input.Title
	svc.Description = input.Description
	svc.ProviderID = input.ProviderID
	svc.ProviderName = input.ProviderName
	svc.Price = input.Price
	svc.PriceUnit = input.PriceUnit
	svc.Duration = input.Duration
	svc.Featured = input.Featured
	svc.IsActive = input.IsActive
	svc.UpdatedAt = time.Now().UTC()

	if err := s.services.Update(ctx, svc); err != nil {
		return nil, err
	}
	s.logger.Info().Str("service_id", svc.ID).Msg("service updated")
	return svc, nil
}

func (s *CatalogService) ServiceCountByCategory(ctx context.Context) (map[string]int64, error) {
	return s.services.CountByCategory(ctx)
}
