package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/podolskiy06021990-bit/orderdesk-backend/api/routes"
	"github.com/podolskiy06021990-bit/orderdesk-backend/internal/customers"
	"github.com/podolskiy06021990-bit/orderdesk-backend/internal/orders"
	"github.com/podolskiy06021990-bit/orderdesk-backend/internal/people"
	"github.com/podolskiy06021990-bit/orderdesk-backend/internal/products"
	"github.com/podolskiy06021990-bit/orderdesk-backend/internal/stats"
	"github.com/podolskiy06021990-bit/orderdesk-backend/pkg/config"
	"github.com/podolskiy06021990-bit/orderdesk-backend/pkg/db"
	"github.com/podolskiy06021990-bit/orderdesk-backend/pkg/logger"
	"github.com/podolskiy06021990-bit/orderdesk-backend/pkg/metrics"
	"github.com/podolskiy06021990-bit/orderdesk-backend/pkg/migrate"
	pkgredis "github.com/podolskiy06021990-bit/orderdesk-backend/pkg/redis"
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

	var redisClient *pkgredis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = pkgredis.New(context.Background(), cfg.Redis, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
	} else {
		logg.Warn(context.Background(), "redis not configured, idempotency disabled")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	orderMetrics := metrics.NewOrderMetrics(registry)
	httpMetrics := metrics.NewHTTPMetrics(registry)

	conn := dbClient.DB()
	customersRepo := customers.NewRepository(conn)
	productsRepo := products.NewRepository(conn)
	ordersRepo := orders.NewRepository(conn)
	peopleRepo := people.NewRepository(conn)

	customersSvc, err := customers.NewService(customersRepo)
	exitOnError(logg, "failed to create customers service", err)

	productsSvc, err := products.NewService(productsRepo, cfg.Products.LowStockThreshold)
	exitOnError(logg, "failed to create products service", err)

	ordersSvc, err := orders.NewService(dbClient, ordersRepo, customersRepo, productsRepo, orderMetrics, logg)
	exitOnError(logg, "failed to create orders service", err)

	peopleSvc, err := people.NewService(peopleRepo)
	exitOnError(logg, "failed to create people service", err)

	statsSvc, err := stats.NewService(customersRepo, productsRepo, ordersRepo)
	exitOnError(logg, "failed to create stats service", err)

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

	deps := routes.Deps{
		Config:      cfg,
		Logger:      logg,
		DBPinger:    dbClient,
		Registry:    registry,
		HTTPMetrics: httpMetrics,
		Customers:   customersSvc,
		Products:    productsSvc,
		Orders:      ordersSvc,
		People:      peopleSvc,
		Stats:       statsSvc,
	}
	if redisClient != nil {
		deps.RedisPinger = redisClient
		deps.IdemStore = redisClient
	}

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(deps),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func exitOnError(logg *logger.Logger, msg string, err error) {
	if err == nil {
		return
	}
	logg.Error(context.Background(), msg, err)
	os.Exit(1)
}
