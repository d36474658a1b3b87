package app

import (
	"context"

	"team-pulse/internal/bootstrap"
	"team-pulse/internal/config"
	"team-pulse/internal/events"
	"team-pulse/internal/messaging/kafka/consumer"
	"team-pulse/internal/notification"
	"team-pulse/internal/user"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer turns leave lifecycle events into notifications until a
// shutdown signal.
func RunConsumer(cfg *config.Config, logger *zap.Logger) error {
	log := logger.Named("app.consumer")

	if err := cfg.Kafka.Require(); err != nil {
		return err
	}

	infra, err := ConnectInfra(cfg, false)
	if err != nil {
		return err
	}
	defer infra.Close()

	userRepo := user.NewRepository(infra.GormDB)
	notificationRepo := notification.NewRepository(infra.GormDB)
	notificationService := notification.NewService(notificationRepo, userRepo, logger)

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{cfg.Kafka.Broker},
		Topic:          events.LeaveLifecycleTopic,
		GroupID:        cfg.Kafka.GroupID,
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		consumer.ConsumeLeaveLifecycle(ctx, reader, notificationService, logger)
	}()

	sig := bootstrap.WaitForSignal()
	log.Info("consumer shutting down", zap.String("signal", sig.String()))
	cancel()
	<-done

	return nil
}
