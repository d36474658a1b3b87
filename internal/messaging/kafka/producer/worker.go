package producer

import (
	"context"
	"time"

	"team-pulse/internal/messaging/kafka"

	"go.uber.org/zap"
)

const (
	batchSize           = 50
	defaultPollInterval = 3 * time.Second
	purgeInterval       = time.Hour
	// SentRetention is how long published rows are kept for inspection.
	SentRetention = 24 * time.Hour
)

// ProcessOutboxEvents relays due outbox rows every pollInterval and prunes
// old published rows every hour, until ctx is cancelled.
func ProcessOutboxEvents(
	ctx context.Context,
	repo kafka.OutboxRepository,
	writer MessageWriter,
	logger *zap.Logger,
	pollInterval time.Duration,
) {
	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
	}

	log := logger.Named("kafka.producer.worker")
	poll := time.NewTicker(pollInterval)
	defer poll.Stop()
	purge := time.NewTicker(purgeInterval)
	defer purge.Stop()

	log.Info("outbox worker started", zap.Duration("poll_interval", pollInterval))

	for {
		select {
		case <-ctx.Done():
			log.Info("outbox worker stopped")
			return
		case <-poll.C:
			// drain full batches without waiting for the next tick
			for {
				sent, err := ProcessPending(ctx, repo, writer, log)
				if err != nil {
					log.Error("process outbox events failed", zap.Error(err))
					break
				}
				if sent < batchSize || ctx.Err() != nil {
					break
				}
			}
		case now := <-purge.C:
			PurgeSent(ctx, repo, log, now)
		}
	}
}

// ProcessPending publishes one batch of due outbox events and returns how many
// were sent. A failed publish is handed back to the repository for backoff.
func ProcessPending(
	ctx context.Context,
	repo kafka.OutboxRepository,
	writer MessageWriter,
	logger *zap.Logger,
) (int, error) {
	batch, err := repo.ListPending(ctx, batchSize)
	if err != nil {
		return 0, err
	}
	if len(batch) == 0 {
		return 0, nil
	}

	logger.Debug("outbox batch loaded", zap.Int("count", len(batch)))

	sent := 0
	for _, event := range batch {
		l := logger.With(
			zap.String("outbox_id", event.ID),
			zap.String("event_type", event.EventType),
			zap.String("aggregate_id", event.AggregateID),
		)

		if err := publishEvent(ctx, writer, event); err != nil {
			level := l.Warn
			if event.RetryCount+1 >= kafka.MaxOutboxAttempts {
				level = l.Error
			}
			level("publish outbox event failed", zap.Int("attempt", event.RetryCount+1), zap.Error(err))
			if markErr := repo.MarkFailed(ctx, event.ID, err.Error()); markErr != nil {
				l.Error("record outbox failure failed", zap.Error(markErr))
			}
			continue
		}

		if err := repo.MarkSent(ctx, event.ID); err != nil {
			// the consumer tolerates the duplicate this causes on the next poll
			l.Error("mark outbox sent failed", zap.Error(err))
			continue
		}
		sent++
		l.Debug("outbox event sent", zap.String("request_id", event.RequestID))
	}

	if sent > 0 {
		logger.Info("outbox events published", zap.Int("sent", sent), zap.Int("batch", len(batch)))
	}
	return sent, nil
}

// PurgeSent removes rows published more than SentRetention before now.
func PurgeSent(ctx context.Context, repo kafka.OutboxRepository, logger *zap.Logger, now time.Time) {
	n, err := repo.PurgeSent(ctx, now.Add(-SentRetention))
	if err != nil {
		logger.Error("purge sent outbox events failed", zap.Error(err))
		return
	}
	if n > 0 {
		logger.Info("purged sent outbox events", zap.Int64("count", n))
	}
}
