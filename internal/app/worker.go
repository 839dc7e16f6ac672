package app

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"go-employee/internal/config"
	"go-employee/internal/messaging/kafka"
	"go-employee/internal/messaging/kafka/producer"
	"go-employee/internal/shared/connection"

	"go.uber.org/zap"
)

// RunWorker relays pending outbox rows to Kafka until SIGINT or SIGTERM.
func RunWorker(cfg config.Config, logger *zap.Logger) error {
	logger = logger.Named("app.worker")

	if cfg.KafkaBroker == "" {
		return errors.New("KAFKA_BROKER is required")
	}

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database, logger)
	if err != nil {
		return err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaWriter, err := connection.ConnectKafkaWithRetry(cfg.KafkaBroker, cfg.Database.MaxRetries, logger)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("outbox relay started",
		zap.String("broker", cfg.KafkaBroker),
		zap.Duration("poll_interval", cfg.OutboxPollInterval),
	)
	producer.ProcessOutboxEvents(
		ctx,
		kafka.NewOutboxRepository(gormDB),
		kafkaWriter,
		logger,
		cfg.OutboxPollInterval,
	)

	logger.Info("worker shutting down")
	return nil
}
