package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Pelito1/PrimeMarket-back/cache"
	"github.com/Pelito1/PrimeMarket-back/config"
	"github.com/Pelito1/PrimeMarket-back/controllers"
	"github.com/Pelito1/PrimeMarket-back/logger"
	"github.com/Pelito1/PrimeMarket-back/repository"
	"github.com/Pelito1/PrimeMarket-back/services"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "primemarket: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration from config/config.yml and PRIMEMARKET_* env vars
	cfg, err := config.LoadConfig("./config")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := repository.InitDB(cfg.Database, logger.NewGormLogger(log, cfg.Database.LogLevel))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Info("running database migrations")
	if err := repository.Migrate(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	if cfg.Database.Seed {
		if err := repository.Seed(ctx, db, log); err != nil {
			return fmt.Errorf("failed to seed database: %w", err)
		}
	}

	repos := repository.NewRepositories(db)
	uow := repository.NewUnitOfWork(db)

	productCache := cache.NewNoopProductCache()
	if cfg.Redis.Enabled {
		client, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		defer client.Close()
		productCache = cache.NewRedisProductCache(client, cfg.Redis.TTL, log)
		log.Info("product cache enabled", zap.String("addr", cfg.Redis.Addr))
	}

	var events services.IOrderEventPublisher = services.NoopOrderEventPublisher{}
	if cfg.Kafka.Enabled {
		kafkaSvc, err := services.NewKafkaService(cfg.Kafka.Brokers, log)
		if err != nil {
			return fmt.Errorf("failed to initialize kafka service: %w", err)
		}
		defer kafkaSvc.Close()
		events = services.NewKafkaOrderEventPublisher(kafkaSvc, cfg.Kafka.Topic)
		log.Info("order events enabled", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))
	}

	handlers := controllers.Handlers{
		Orders:     controllers.NewOrderController(services.NewOrderService(repos, uow, events, productCache, log)),
		Customers:  controllers.NewCustomerController(services.NewCustomerService(repos.Customers, uow, log)),
		Products:   controllers.NewProductController(services.NewProductService(repos.Products, uow, productCache, log)),
		Categories: controllers.NewCategoryController(services.NewCategoryService(repos, uow, log)),
		Seasons:    controllers.NewSeasonController(services.NewSeasonService(repos, uow, log)),
	}

	app := controllers.NewApp(cfg.Server, log, handlers, pingDB(db))

	errCh := make(chan error, 1)
	go func() {
		log.Info("server is starting", zap.String("port", cfg.Server.Port), zap.String("base_path", cfg.Server.BasePath))
		errCh <- app.Listen(":" + cfg.Server.Port)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server stopped: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	return nil
}

func pingDB(db *gorm.DB) controllers.HealthCheck {
	return func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
}
