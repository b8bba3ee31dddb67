package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/servlyhq/booking-system/internal/api/handler"
	"github.com/servlyhq/booking-system/internal/api/middleware"
	"github.com/servlyhq/booking-system/internal/core/domain"
	"github.com/servlyhq/booking-system/internal/core/ports"
	"github.com/servlyhq/booking-system/internal/infrastructure/http/handlers"

	_ "github.com/servlyhq/booking-system/docs"
)

// RouterParams carries everything the router needs. Services are injected so
// the HTTP layer stays free of storage concerns.
type RouterParams struct {
	Log        zerolog.Logger
	JWTSecret  string
	DB         *mongo.Database
	Redis      *redis.Client
	Auth       ports.AuthService
	Admin      ports.AdminService
	Bookings   ports.BookingService
	Catalog    ports.CatalogService
	Locations  ports.LocationService
	Dispatcher handler.EventDispatcher
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(p RouterParams) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(p.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("booking"))

	authHandler := handler.NewAuthHandler(p.Auth)
	adminHandler := handler.NewAdminHandler(p.Admin)
	bookingHandler := handler.NewBookingHandler(p.Bookings)
	catalogHandler := handler.NewCatalogHandler(p.Catalog)
	locationHandler := handler.NewLocationHandler(p.Locations)
	eventHandler := handler.NewStatusEventHandler(p.Dispatcher)
	healthHandler := handlers.NewHealthHandler(p.DB, p.Redis)

	authn := middleware.Auth(p.JWTSecret)
	anyRole := middleware.RBAC(domain.RoleCustomer, domain.RoleProvider, domain.RoleAdmin)
	providerOrAdmin := middleware.RBAC(domain.RoleProvider, domain.RoleAdmin)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Auth ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Public catalog ---
	e.GET("/v1/categories", catalogHandler.ListCategories)
	e.GET("/v1/categories/counts", catalogHandler.CategoryCounts)
	e.GET("/v1/categories/:id/services", catalogHandler.ServicesByCategory)
	e.GET("/v1/services", catalogHandler.ListServices)
	e.GET("/v1/services/featured", catalogHandler.FeaturedServices)
	e.GET("/v1/services/:id", catalogHandler.GetService)

	// --- Bookings ---
	bookings := e.Group("/v1/bookings", authn, anyRole)
	bookings.POST("", bookingHandler.Create)
	bookings.GET("", bookingHandler.List)
	bookings.GET("/:id", bookingHandler.Get)
	bookings.GET("/:id/progress", bookingHandler.Progress)
	bookings.POST("/:id/status", bookingHandler.AdvanceStatus, providerOrAdmin)
	bookings.POST("/:id/cancel", bookingHandler.Cancel)

	e.GET("/v1/provider/earnings", bookingHandler.Earnings, authn, providerOrAdmin)

	// --- Status report ingestion ---
	events := e.Group("/v1/status-events", authn, providerOrAdmin)
	events.POST("", eventHandler.Receive)
	events.POST("/batch", eventHandler.ReceiveBatch)

	// --- Location channel ---
	// Reads are keyed by owner only; the channel carries no booking
	// relationship, so any authenticated role may fetch or watch a stream.
	locations := e.Group("/v1/locations", authn, anyRole)
	locations.PUT("/me", locationHandler.Share)
	locations.POST("/me/acquire", locationHandler.Acquire)
	locations.GET("/:owner_id", locationHandler.Get)
	locations.GET("/:owner_id/watch", locationHandler.Watch)

	// --- Admin ---
	admin := e.Group("/v1/admin", authn, adminOnly)
	admin.GET("/users", adminHandler.ListUsers)
	admin.PATCH("/users/:id/status", adminHandler.SetUserActive)
	admin.PATCH("/users/:id/role", adminHandler.SetUserRole)
	admin.POST("/categories", catalogHandler.CreateCategory)
	admin.PUT("/categories/:id", catalogHandler.UpdateCategory)
	admin.DELETE("/categories/:id", catalogHandler.DeleteCategory)
	admin.POST("/services", catalogHandler.CreateService)
	admin.PUT("/services/:id", catalogHandler.UpdateService)

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)

	return e
}
