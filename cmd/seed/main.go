package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"github.com/podolskiy06021990-bit/orderdesk-backend/internal/customers"
	"github.com/podolskiy06021990-bit/orderdesk-backend/internal/people"
	"github.com/podolskiy06021990-bit/orderdesk-backend/internal/products"
	"github.com/podolskiy06021990-bit/orderdesk-backend/internal/seed"
	"github.com/podolskiy06021990-bit/orderdesk-backend/pkg/config"
	"github.com/podolskiy06021990-bit/orderdesk-backend/pkg/db"
	"github.com/podolskiy06021990-bit/orderdesk-backend/pkg/logger"
)

func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "seed"})

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "seed",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
	})

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer dbClient.Close()

	conn := dbClient.DB()
	customersSvc, err := customers.NewService(customers.NewRepository(conn))
	if err != nil {
		logg.Error(ctx, "failed to create customers service", err)
		os.Exit(1)
	}
	productsSvc, err := products.NewService(products.NewRepository(conn), cfg.Products.LowStockThreshold)
	if err != nil {
		logg.Error(ctx, "failed to create products service", err)
		os.Exit(1)
	}
	peopleSvc, err := people.NewService(people.NewRepository(conn))
	if err != nil {
		logg.Error(ctx, "failed to create people service", err)
		os.Exit(1)
	}

	seeder := seed.New(customersSvc, productsSvc, peopleSvc, logg)
	if err := seeder.Run(ctx); err != nil {
		logg.Error(ctx, "seed failed", err)
		os.Exit(1)
	}
}
