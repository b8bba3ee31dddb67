package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/servlyhq/booking-system/internal/api"
	"github.com/servlyhq/booking-system/internal/core/ports"
	"github.com/servlyhq/booking-system/internal/core/service"
	"github.com/servlyhq/booking-system/internal/infrastructure/config"
	mongodb "github.com/servlyhq/booking-system/internal/infrastructure/db/mongo"
	redisdb "github.com/servlyhq/booking-system/internal/infrastructure/db/redis"
	"github.com/servlyhq/booking-system/internal/infrastructure/geocode/mapbox"
	"github.com/servlyhq/booking-system/internal/infrastructure/position/fake"
	"github.com/servlyhq/booking-system/internal/infrastructure/queue"
	"github.com/servlyhq/booking-system/pkg/logger"
)

// @title           Booking Marketplace API
// @version         1.0
// @description     Booking lifecycle and realtime location hand-off service.
// @BasePath        /
// @securityDefinitions.apikey  BearerAuth
// @in              header
// @name            Authorization
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Service: "booking-system",
		Pretty:  cfg.Env == "development",
	})
	log.Info().Str("env", cfg.Env).Msg("starting booking service")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Stores ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	// --- Repositories ---
	bookingRepo := mongodb.NewBookingRepository(db)
	eventRepo := mongodb.NewStatusEventRepository(db)
	locationRepo := mongodb.NewLocationRepository(db)
	categoryRepo := mongodb.NewCategoryRepository(db)
	serviceRepo := mongodb.NewServiceRepository(db)
	userRepo := mongodb.NewUserRepository(db)

	for _, idx := range []interface {
		EnsureIndexes(context.Context) error
	}{bookingRepo, eventRepo, categoryRepo, serviceRepo, userRepo} {
		if err := idx.EnsureIndexes(ctx); err != nil {
			log.Fatal().Err(err).Msg("index creation failed")
		}
	}

	// --- Services ---
	var geocoder ports.Geocoder
	if cfg.Mapbox.Token != "" {
		geocoder = mapbox.New(cfg.Mapbox.BaseURL, cfg.Mapbox.Token)
	}

	// Real deployments have no server-side positioning hardware; the fake
	// source keeps the acquire endpoint usable in development.
	var source ports.PositionSource
	if cfg.Env == "development" {
		source = fake.New(19.4326, -99.1332)
	}

	feed := redisdb.NewLocationFeed(rdb)
	dedup := redisdb.NewDedupChecker(rdb)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, 24*time.Hour)
	adminService := service.NewAdminService(userRepo, log)
	catalogService := service.NewCatalogService(categoryRepo, serviceRepo, log)
	bookingService := service.NewBookingService(bookingRepo, serviceRepo, log)
	locationService := service.NewLocationService(locationRepo, feed, source, geocoder, log)
	eventService := service.NewStatusEventService(bookingRepo, eventRepo, dedup, log)

	dispatcher := queue.NewDispatcher(cfg.Dispatcher.Workers, eventService, log)
	dispatcher.Start(ctx)

	// --- HTTP ---
	e := api.NewRouter(api.RouterParams{
		Log:        log,
		JWTSecret:  cfg.JWTSecret,
		DB:         db,
		Redis:      rdb,
		Auth:       authService,
		Admin:      adminService,
		Bookings:   bookingService,
		Catalog:    catalogService,
		Locations:  locationService,
		Dispatcher: dispatcher,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
		os.Exit(1)
	}

	log.Info().Msg("server exited")
}
