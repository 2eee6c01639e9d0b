package main

import (
	"context"
	"net/http"
	"os"

	"github.com/agenciasgt/distribuidores-backend/api/middleware"
	"github.com/agenciasgt/distribuidores-backend/api/routes"
	authsvc "github.com/agenciasgt/distribuidores-backend/internal/auth"
	"github.com/agenciasgt/distribuidores-backend/internal/catalog"
	"github.com/agenciasgt/distribuidores-backend/internal/fabrica"
	"github.com/agenciasgt/distribuidores-backend/internal/mail"
	"github.com/agenciasgt/distribuidores-backend/internal/orders"
	"github.com/agenciasgt/distribuidores-backend/internal/partners"
	"github.com/agenciasgt/distribuidores-backend/internal/reviews"
	"github.com/agenciasgt/distribuidores-backend/internal/users"
	"github.com/agenciasgt/distribuidores-backend/pkg/config"
	"github.com/agenciasgt/distribuidores-backend/pkg/db"
	"github.com/agenciasgt/distribuidores-backend/pkg/logger"
	"github.com/agenciasgt/distribuidores-backend/pkg/metrics"
	"github.com/agenciasgt/distribuidores-backend/pkg/migrate"
	"github.com/agenciasgt/distribuidores-backend/pkg/redis"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	var rateLimitStore middleware.RateLimiterStore
	if cfg.Redis.Enabled() {
		redisClient, err := redis.New(context.Background(), cfg.Redis)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
		rateLimitStore = redisClient
	} else {
		logg.Warn(context.Background(), "redis not configured, auth rate limiting disabled")
	}

	registry := prometheus.NewRegistry()
	apiMetrics := metrics.NewAPIMetrics(registry)

	catalogService, err := catalog.NewService(dbClient)
	requireService(logg, "catalog", err)
	ordersService, err := orders.NewService(dbClient, catalogService, apiMetrics)
	requireService(logg, "orders", err)
	usersService, err := users.NewService(dbClient)
	requireService(logg, "users", err)
	authService, err := authsvc.NewService(dbClient, cfg.JWT)
	requireService(logg, "auth", err)
	reviewsService, err := reviews.NewService(dbClient)
	requireService(logg, "reviews", err)
	partnersService, err := partners.NewService(dbClient)
	requireService(logg, "partners", err)
	mailSender, err := mail.NewSender(cfg.Mail, logg, apiMetrics)
	requireService(logg, "mail", err)
	fabricaClient, err := fabrica.NewClient(cfg.Fabrica, apiMetrics)
	requireService(logg, "fabrica client", err)
	reporting, err := fabrica.NewReporting(fabricaClient, catalogService)
	requireService(logg, "fabrica reporting", err)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:         cfg,
			Logger:         logg,
			DB:             dbClient,
			Registry:       registry,
			RateLimitStore: rateLimitStore,
			Auth:           authService,
			Catalog:        catalogService,
			Orders:         ordersService,
			Users:          usersService,
			Reviews:        reviewsService,
			Partners:       partnersService,
			Mail:           mailSender,
			FabricaClient:  fabricaClient,
			Reporting:      reporting,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func requireService(logg *logger.Logger, name string, err error) {
	if err == nil {
		return
	}
	logg.Error(context.Background(), "failed to create "+name+" service", err)
	os.Exit(1)
}
