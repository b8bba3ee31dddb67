package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/servlyhq/booking-system/internal/core/ports"
)

// CatalogHandler serves the public catalog and the admin CRUD surface for
// categories and services.
type CatalogHandler struct {
	service ports.CatalogService
}

func NewCatalogHandler(service ports.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

type categoryRequest struct {
	Name        string `json:"name"       validate:"required"`
	Slug        string `json:"slug"       validate:"required"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
	SortOrder   int    `json:"sort_order"`
	IsActive    bool   `json:"is_active"`
}

type serviceRequest struct {
	CategoryID   string  `json:"category_id"   validate:"required"`
	Title        string  `json:"title"         validate:"required"`
	Description  string  `json:"description"`
	ProviderID   string  `json:"provider_id"   validate:"required"`
	ProviderName string  `json:"provider_name" validate:"required"`
	Price        float64 `json:"price"         validate:"required,gt=0"`
	PriceUnit    string  `json:"price_unit"    validate:"required"`
	Duration     string  `json:"duration"`
	Featured     bool    `json:"featured"`
	IsActive     bool    `json:"is_active"`
}

func toCategoryInput(r categoryRequest) ports.CategoryInput {
	return ports.CategoryInput{
		Name:        r.Name,
		Slug:        r.Slug,
		Description: r.Description,
		Icon:        r.Icon,
		Color:       r.Color,
		SortOrder:   r.SortOrder,
		IsActive:    r.IsActive,
	}
}

func toServiceInput(r serviceRequest) ports.ServiceInput {
	return ports.ServiceInput{
		CategoryID:   r.CategoryID,
		Title:        r.Title,
		Description:  r.Description,
		ProviderID:   r.ProviderID,
		ProviderName: r.ProviderName,
		Price:        r.Price,
		PriceUnit:    r.PriceUnit,
		Duration:     r.Duration,
		Featured:     r.Featured,
		IsActive:     r.IsActive,
	}
}

// ListCategories handles GET /v1/categories.
//
// @Summary      List service categories
// @Tags         catalog
// @Produce      json
// @Success      200  {array}  domain.Category
// @Router       /v1/categories [get]
func (h *CatalogHandler) ListCategories(c echo.Context) error {
	cats, err := h.service.ListCategories(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cats)
}

// CategoryCounts handles GET /v1/categories/counts.
//
// @Summary      Count active services per category
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  map[string]int64
// @Router       /v1/categories/counts [get]
func (h *CatalogHandler) CategoryCounts(c echo.Context) error {
	counts, err := h.service.ServiceCountByCategory(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, counts)
}

// ServicesByCategory handles GET /v1/categories/:id/services.
//
// @Summary      List a category's services
// @Tags         catalog
// @Produce      json
// @Param        id   path     string  true  "Category id"
// @Success      200  {array}  domain.Service
// @Failure      404  {object} errorResponse
// @Router       /v1/categories/{id}/services [get]
func (h *CatalogHandler) ServicesByCategory(c echo.Context) error {
	services, err := h.service.ServicesByCategory(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, services)
}

// ListServices handles GET /v1/services.
//
// @Summary      List active services, featured first
// @Tags         catalog
// @Produce      json
// @Success      200  {array}  domain.Service
// @Router       /v1/services [get]
func (h *CatalogHandler) ListServices(c echo.Context) error {
	services, err := h.service.ListServices(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, services)
}

// FeaturedServices handles GET /v1/services/featured.
//
// @Summary      List featured services
// @Tags         catalog
// @Produce      json
// @Success      200  {array}  domain.Service
// @Router       /v1/services/featured [get]
func (h *CatalogHandler) FeaturedServices(c echo.Context) error {
	services, err := h.service.FeaturedServices(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, services)
}

// GetService handles GET /v1/services/:id.
//
// @Summary      Get a service by id
// @Tags         catalog
// @Produce      json
// @Param        id   path      string  true  "Service id"
// @Success      200  {object}  domain.Service
// @Failure      404  {object}  errorResponse
// @Router       /v1/services/{id} [get]
func (h *CatalogHandler) GetService(c echo.Context) error {
	svc, err := h.service.GetService(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, svc)
}

// CreateCategory handles POST /v1/admin/categories.
//
// @Summary      Create a category
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      categoryRequest  true  "Category"
// @Success      201   {object}  domain.Category
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/admin/categories [post]
func (h *CatalogHandler) CreateCategory(c echo.Context) error {
	var req categoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	cat, err := h.service.CreateCategory(c.Request().Context(), toCategoryInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, cat)
}

// UpdateCategory handles PUT /v1/admin/categories/:id.
//
// @Summary      Update a category
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true  "Category id"
// @Param        body  body      categoryRequest  true  "Category"
// @Success      200   {object}  domain.Category
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/admin/categories/{id} [put]
func (h *CatalogHandler) UpdateCategory(c echo.Context) error {
	var req categoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	cat, err := h.service.UpdateCategory(c.Request().Context(), c.Param("id"), toCategoryInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cat)
}

// DeleteCategory handles DELETE /v1/admin/categories/:id.
//
// @Summary      Delete a category
// @Tags         admin
// @Security     BearerAuth
// @Param        id  path  string  true  "Category id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /v1/admin/categories/{id} [delete]
func (h *CatalogHandler) DeleteCategory(c echo.Context) error {
	if err := h.service.DeleteCategory(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// CreateService handles POST /v1/admin/services.
//
// @Summary      Create a service
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      serviceRequest  true  "Service"
// @Success      201   {object}  domain.Service
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/admin/services [post]
func (h *CatalogHandler) CreateService(c echo.Context) error {
	var req serviceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	svc, err := h.service.CreateService(c.Request().Context(), toServiceInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, svc)
}

// UpdateService handles PUT /v1/admin/services/:id.
//
// @Summary      Update a service
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Service id"
// @Param        body  body      serviceRequest  true  "Service"
// @Success      200   {object}  domain.Service
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/admin/services/{id} [put]
func (h *CatalogHandler) UpdateService(c echo.Context) error {
	var req serviceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	svc, err := h.service.UpdateService(c.Request().Context(), c.Param("id"), toServiceInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, svc)
}
