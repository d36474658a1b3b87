package app

import (
	"context"

	"team-pulse/internal/bootstrap"
	"team-pulse/internal/config"
	"team-pulse/internal/messaging/kafka"
	"team-pulse/internal/messaging/kafka/producer"
	"team-pulse/internal/shared/connection"

	"go.uber.org/zap"
)

// RunWorker relays pending outbox rows to Kafka until a shutdown signal.
func RunWorker(cfg *config.Config, logger *zap.Logger) error {
	log := logger.Named("app.worker")

	if err := cfg.Kafka.Require(); err != nil {
		return err
	}

	infra, err := ConnectInfra(cfg, false)
	if err != nil {
		return err
	}
	defer infra.Close()

	kafkaWriter, err := connection.ConnectKafkaWithRetry(cfg.Kafka.Broker, cfg.Database.MaxRetries)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	outboxRepo := kafka.NewOutboxRepository(infra.SQLDB)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		producer.ProcessOutboxEvents(ctx, outboxRepo, kafkaWriter, logger, cfg.Kafka.PollInterval)
	}()

	sig := bootstrap.WaitForSignal()
	log.Info("worker shutting down", zap.String("signal", sig.String()))
	cancel()
	<-done

	return nil
}
