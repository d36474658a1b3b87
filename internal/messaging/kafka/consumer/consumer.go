package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"team-pulse/internal/events"
	"team-pulse/internal/notification"
	"team-pulse/internal/shared/contextutil"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the part of *kafkago.Reader the consumer uses.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// Store failures are retried on the same message with a doubling delay.
var (
	retryBaseDelay = 500 * time.Millisecond
	retryMaxDelay  = 30 * time.Second
)

// ConsumeLeaveLifecycle stores notifications for leave lifecycle events until
// ctx is cancelled. Undecodable and unknown events are committed and skipped.
// A message whose notifications cannot be stored is retried until it succeeds
// and is only committed afterwards, so later offsets never overtake it.
func ConsumeLeaveLifecycle(
	ctx context.Context,
	reader MessageReader,
	notificationService notification.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.leave_lifecycle")
	log.Info("leave lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("leave lifecycle consumer stopped")
				return
			}
			log.Error("fetch leave lifecycle message failed", zap.Error(err))
			continue
		}

		var event events.LeaveLifecycleEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode leave lifecycle event failed",
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		msgLog := log.With(
			zap.String("request_id", event.RequestID),
			zap.String("event_type", event.EventType),
			zap.String("leave_id", event.LeaveID),
		)
		msgCtx := contextutil.WithLogger(contextutil.WithRequestID(ctx, event.RequestID), msgLog)

		created, err := handleWithRetry(msgCtx, notificationService, event, msgLog)
		if err != nil {
			if errors.Is(err, notification.ErrUnknownEvent) {
				msgLog.Warn("unknown leave lifecycle event, skipping")
				_ = reader.CommitMessages(ctx, msg)
				continue
			}

			// Only a cancelled ctx ends the retry loop.
			msgLog.Info("leave lifecycle consumer stopped before event was stored",
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
			return
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			msgLog.Error("commit leave lifecycle message failed", zap.Error(err))
			continue
		}

		msgLog.Info("leave lifecycle event handled", zap.Int64("notifications", created))
	}
}

func handleWithRetry(
	ctx context.Context,
	notificationService notification.Service,
	event events.LeaveLifecycleEvent,
	log *zap.Logger,
) (int64, error) {
	delay := retryBaseDelay
	for attempt := 1; ; attempt++ {
		created, err := notificationService.HandleLeaveEvent(ctx, event)
		if err == nil || errors.Is(err, notification.ErrUnknownEvent) {
			return created, err
		}

		log.Error("store leave notifications failed",
			zap.Int("attempt", attempt),
			zap.Duration("retry_in", delay),
			zap.Error(err),
		)

		if ctx.Err() != nil {
			return 0, ctx.Err()
		}
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return 0, ctx.Err()
		case <-timer.C:
		}

		delay *= 2
		if delay > retryMaxDelay {
			delay = retryMaxDelay
		}
	}
}
