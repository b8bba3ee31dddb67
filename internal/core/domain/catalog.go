package domain

import (
	"errors"
	"time"
)

var ErrCategoryNotFound = errors.New("category not found")
var ErrServiceNotFound = errors.New("service not found")
var ErrDuplicateSlug = errors.New("category slug already exists")

// Category groups services on the marketplace home screen.
type Category struct {
	ID          string    `json:"id" bson:"_id"`
	Name        string    `json:"name" bson:"name"`
	Slug        string    `json:"slug" bson:"slug"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	Icon        string    `json:"icon,omitempty" bson:"icon,omitempty"`
	Color       string    `json:"color,omitempty" bson:"color,omitempty"`
	SortOrder   int       `json:"sort_order" bson:"sort_order"`
	IsActive    bool      `json:"is_active" bson:"is_active"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// Service is a bookable offering published by a provider.
type Service struct {
	ID           string    `json:"id" bson:"_id"`
	CategoryID   string    `json:"category_id" bson:"category_id"`
	Title        string    `json:"title" bson:"title"`
	Description  string    `json:"description,omitempty" bson:"description,omitempty"`
	ProviderID   string    `json:"provider_id" bson:"provider_id"`
	ProviderName string    `json:"provider_name" bson:"provider_name"`
	Rating       float64   `json:"rating" bson:"rating"`
	ReviewCount  int       `json:"review_count" bson:"review_count"`
	Price        float64   `json:"price" bson:"price"`
	PriceUnit    string    `json:"price_unit" bson:"price_unit"`
	Duration     string    `json:"duration,omitempty" bson:"duration,omitempty"`
	Featured     bool      `json:"featured" bson:"featured"`
	IsActive     bool      `json:"is_active" bson:"is_active"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}
