package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/LogoBenz/authenticfurniture-backend/api/routes"
	"github.com/LogoBenz/authenticfurniture-backend/internal/catalog"
	"github.com/LogoBenz/authenticfurniture-backend/internal/customers"
	"github.com/LogoBenz/authenticfurniture-backend/internal/datasource"
	"github.com/LogoBenz/authenticfurniture-backend/internal/fixtures"
	"github.com/LogoBenz/authenticfurniture-backend/internal/taxonomy"
	"github.com/LogoBenz/authenticfurniture-backend/internal/warehouses"
	"github.com/LogoBenz/authenticfurniture-backend/pkg/config"
	"github.com/LogoBenz/authenticfurniture-backend/pkg/db"
	"github.com/LogoBenz/authenticfurniture-backend/pkg/db/models"
	"github.com/LogoBenz/authenticfurniture-backend/pkg/logger"
	"github.com/LogoBenz/authenticfurniture-backend/pkg/metrics"
	"github.com/LogoBenz/authenticfurniture-backend/pkg/migrate"
	"github.com/LogoBenz/authenticfurniture-backend/pkg/redis"
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

	// The remote database is optional. Without it the service runs in
	// fallback mode: reads come from the embedded dataset, writes fail.
	var remoteDB *db.Client
	if cfg.DB.Configured() {
		remoteDB, err = db.New(context.Background(), cfg.DB, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap database", err)
			os.Exit(1)
		}
		defer func() {
			if err := remoteDB.Close(); err != nil {
				logg.Error(context.Background(), "error closing database", err)
			}
		}()

		if err := migrate.MaybeRunDev(context.Background(), cfg, logg, remoteDB); err != nil {
			logg.Error(context.Background(), "failed to run dev migrations", err)
			os.Exit(1)
		}
	} else {
		logg.Warn(context.Background(), "no database DSN configured, running in fallback mode")
	}

	embedded, err := db.NewEmbedded()
	if err != nil {
		logg.Error(context.Background(), "failed to open embedded database", err)
		os.Exit(1)
	}
	if err := fixtures.Seed(embedded); err != nil {
		logg.Error(context.Background(), "failed to seed embedded dataset", err)
		os.Exit(1)
	}

	var redisClient *redis.Client
	if cfg.Redis.Configured() {
		redisClient, err = redis.New(context.Background(), cfg.Redis, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
	}

	registry := prometheus.NewRegistry()
	dsMetrics := metrics.NewDataSourceMetrics(registry)
	adapterOpts := datasource.Options{
		Cache:    redisClient,
		CacheTTL: cfg.Redis.SnapshotTTL,
		Metrics:  dsMetrics,
	}

	var (
		productRemote   datasource.Store[models.Product]
		customerRemote  datasource.Store[models.Customer]
		spaceRemote     datasource.Store[models.Space]
		warehouseRemote datasource.Store[models.Warehouse]
		mover           taxonomy.Mover
		stockWriter     warehouses.StockWriter
	)
	if remoteDB != nil {
		catalogRepo := catalog.NewRepository(remoteDB.DB())
		customerRepo := customers.NewRepository(remoteDB.DB())
		taxonomyRepo := taxonomy.NewRepository(remoteDB.DB())
		warehouseRepo := warehouses.NewRepository(remoteDB.DB())

		productRemote = catalogRepo
		customerRemote = customerRepo
		spaceRemote = taxonomyRepo
		warehouseRemote = warehouseRepo
		mover = taxonomyRepo
		stockWriter = warehouseRepo
	}

	productAdapter, err := datasource.NewAdapter("products", productRemote, catalog.NewRepository(embedded.DB()), logg, adapterOpts)
	requireService(logg, "product adapter", err)
	customerAdapter, err := datasource.NewAdapter("customers", customerRemote, customers.NewRepository(embedded.DB()), logg, adapterOpts)
	requireService(logg, "customer adapter", err)
	spaceAdapter, err := datasource.NewAdapter("spaces", spaceRemote, taxonomy.NewRepository(embedded.DB()), logg, adapterOpts)
	requireService(logg, "space adapter", err)
	warehouseAdapter, err := datasource.NewAdapter("warehouses", warehouseRemote, warehouses.NewRepository(embedded.DB()), logg, adapterOpts)
	requireService(logg, "warehouse adapter", err)

	catalogService, err := catalog.NewService(productAdapter, cfg.Catalog.MaxImageCount, logg)
	requireService(logg, "catalog service", err)
	customerService, err := customers.NewService(customerAdapter, logg)
	requireService(logg, "customer service", err)
	taxonomyService, err := taxonomy.NewService(spaceAdapter, mover, logg)
	requireService(logg, "taxonomy service", err)
	warehouseService, err := warehouses.NewService(warehouseAdapter, stockWriter, logg)
	requireService(logg, "warehouse service", err)

	loadCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	for name, load := range map[string]func(context.Context) error{
		"products":   catalogService.Load,
		"customers":  customerService.Load,
		"spaces":     taxonomyService.Load,
		"warehouses": warehouseService.Load,
	} {
		if err := load(loadCtx); err != nil {
			logg.Error(logg.WithField(loadCtx, "entity", name), "initial load failed", err)
		}
	}

	var dbP db.Pinger
	if remoteDB != nil {
		dbP = remoteDB
	}
	var cachePinger redis.Pinger
	if redisClient != nil {
		cachePinger = redisClient
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"fallback": remoteDB == nil,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbP,
			cachePinger,
			registry,
			catalogService,
			customerService,
			taxonomyService,
			warehouseService,
		),
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
	logg.Error(logg.WithField(context.Background(), "component", name), "bootstrap failed", err)
	os.Exit(1)
}
