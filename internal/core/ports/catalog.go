package ports

import (
	"context"

	"github.com/servlyhq/booking-system/internal/core/domain"
)

// CategoryInput carries category fields for create/update.
type CategoryInput struct {
	Name        string
	Slug        string
	Description string
	Icon        string
	Color       string
	SortOrder   int
	IsActive    bool
}

// ServiceInput carries service fields for create/update.
type ServiceInput struct {
	CategoryID   string
	Title        string
	Description  string
	ProviderID   string
	ProviderName string
	Price        float64
	PriceUnit    string
	Duration     string
	Featured     bool
	IsActive     bool
}

// CatalogService manages categories and bookable services.
type CatalogService interface {
	ListCategories(ctx context.Context) ([]*domain.Category, error)
	CreateCategory(ctx context.Context, input CategoryInput) (*domain.Category, error)
	UpdateCategory(ctx context.Context, id string, input CategoryInput) (*domain.Category, error)
	DeleteCategory(ctx context.Context, id string) error

	ListServices(ctx context.Context) ([]*domain.Service, error)
	FeaturedServices(ctx context.Context) ([]*domain.Service, error)
	ServicesByCategory(ctx context.Context, categoryID string) ([]*domain.Service, error)
	GetService(ctx context.Context, id string) (*domain.Service, error)
	CreateService(ctx context.Context, input ServiceInput) (*domain.Service, error)
	UpdateService(ctx context.Context, id string, input ServiceInput) (*domain.Service, error)
	ServiceCountByCategory(ctx context.Context) (map[string]int64, error)
}

// CategoryRepository defines persistence operations for categories.
type CategoryRepository interface {
	Insert(ctx context.Context, c *domain.Category) error
	Update(ctx context.Context, c *domain.Category) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*domain.Category, error)
	// List returns categories ordered by sort_order ascending.
	List(ctx context.Context) ([]*domain.Category, error)
}

// ServiceRepository defines persistence operations for catalog services.
type ServiceRepository interface {
	Insert(ctx context.Context, s *domain.Service) error
	Update(ctx context.Context, s *domain.Service) error
	FindByID(ctx context.Context, id string) (*domain.Service, error)
	// List returns all services, featured first.
	List(ctx context.Context) ([]*domain.Service, error)
	// ListFeatured returns up to limit featured services.
	ListFeatured(ctx context.Context, limit int) ([]*domain.Service, error)
	// ListByCategory returns a category's services ordered by rating descending.
	ListByCategory(ctx context.Context, categoryID string) ([]*domain.Service, error)
	CountByCategory(ctx context.Context) (map[string]int64, error)
}
