package jobs

import (
	"context"
	"log/slog"

	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// dispatchBatchSize caps how many notifications one tick drains.
const dispatchBatchSize = 100

// CacheInvalidator drops cached read models for orders that transitioned.
// Implemented by the Redis adapter; invalidation is best-effort.
type CacheInvalidator interface {
	Invalidate(ctx context.Context, orderID kernel.UUID) error
}

// OutboxDispatchJob drains the notification outbox every second. Each pending
// notification is published to Kafka, marked published, and the order's
// cached read model is invalidated so the next lookup sees the new stage.
type OutboxDispatchJob struct {
	outbox      ports.OutboxReader
	publisher   ports.NotificationPublisher
	invalidator CacheInvalidator
	cron        *cron.Cron
	logger      *slog.Logger
}

// NewOutboxDispatchJob creates the dispatch job. invalidator may be nil when
// caching is disabled.
func NewOutboxDispatchJob(
	outbox ports.OutboxReader,
	publisher ports.NotificationPublisher,
	invalidator CacheInvalidator,
	logger *slog.Logger,
) *OutboxDispatchJob {
	return &OutboxDispatchJob{
		outbox:      outbox,
		publisher:   publisher,
		invalidator: invalidator,
		cron:        cron.New(cron.WithSeconds()),
		logger:      logger.With("component", "outbox_dispatch_job"),
	}
}

// Start begins the dispatch job to run every second.
func (j *OutboxDispatchJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", func() {
		ctx := context.Background()

		if err := j.DispatchPending(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Outbox dispatch failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Outbox dispatch job started (running every second)")
	return nil
}

// Stop stops the dispatch job.
func (j *OutboxDispatchJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Outbox dispatch job stopped")
}

// DispatchPending drains one batch of unpublished notifications. A failed
// publish leaves the notification in place for the next tick and does not
// block the rest of the batch.
func (j *OutboxDispatchJob) DispatchPending(ctx context.Context) error {
	pending, err := j.outbox.FetchUnpublished(ctx, dispatchBatchSize)
	if err != nil {
		return err
	}

	for _, notification := range pending {
		if err := j.publisher.Publish(ctx, notification); err != nil {
			j.logger.ErrorContext(ctx, "Notification publish failed",
				"notification_id", notification.ID.String(),
				"event_type", notification.EventType,
				"error", err)
			continue
		}

		if err := j.outbox.MarkPublished(ctx, notification.ID); err != nil {
			// The notification will be re-delivered; consumers must
			// treat events as at-least-once.
			j.logger.ErrorContext(ctx, "Notification mark failed",
				"notification_id", notification.ID.String(),
				"error", err)
			continue
		}

		if j.invalidator != nil {
			if err := j.invalidator.Invalidate(ctx, notification.OrderID); err != nil {
				j.logger.WarnContext(ctx, "Cache invalidation failed",
					"order_id", notification.OrderID.String(),
					"error", err)
			}
		}
	}

	return nil
}
