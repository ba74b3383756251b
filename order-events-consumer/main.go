// Command order-events-consumer tails the order events topic and writes one
// audit log line per event.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/IBM/sarama"
	"go.uber.org/zap"

	"github.com/Pelito1/PrimeMarket-back/config"
	"github.com/Pelito1/PrimeMarket-back/logger"
	"github.com/Pelito1/PrimeMarket-back/services"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "order-events-consumer: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig("./config")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	group, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.Kafka.GroupID, services.NewConsumerConfig())
	if err != nil {
		return fmt.Errorf("create consumer group: %w", err)
	}
	defer group.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		for err := range group.Errors() {
			log.Warn("consumer group error", zap.Error(err))
		}
	}()

	handler := services.NewOrderEventConsumer(auditEvent(log), log)
	log.Info("consuming order events",
		zap.Strings("brokers", cfg.Kafka.Brokers),
		zap.String("topic", cfg.Kafka.Topic),
		zap.String("group", cfg.Kafka.GroupID))

	// Consume returns on every rebalance, so it runs in a loop until shutdown.
	for {
		if err := group.Consume(ctx, []string{cfg.Kafka.Topic}, handler); err != nil {
			if errors.Is(err, sarama.ErrClosedConsumerGroup) {
				return nil
			}
			return fmt.Errorf("consume: %w", err)
		}
		if ctx.Err() != nil {
			log.Info("signal received, shutting down")
			return nil
		}
	}
}

func auditEvent(log *zap.Logger) services.OrderEventHandler {
	audit := log.Named("audit")
	return func(_ context.Context, evt services.OrderEvent) error {
		audit.Info("order event",
			zap.String("event_id", evt.EventID),
			zap.String("type", evt.Type),
			zap.Uint("order_id", evt.OrderID),
			zap.Uint("customer_id", evt.CustomerID),
			zap.String("status", evt.Status),
			zap.String("total", evt.Total.String()),
			zap.Int("items", len(evt.Items)),
			zap.Time("occurred_at", evt.OccurredAt))
		return nil
	}
}
