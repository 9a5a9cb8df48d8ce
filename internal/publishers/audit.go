package publishers

import (
	"context"
	"encoding/json"

	"github.com/Behyna/airtime-topup/internal/config"
	"github.com/Behyna/airtime-topup/internal/metrics"
	"github.com/Behyna/airtime-topup/internal/service"
	"github.com/Behyna/airtime-topup/pkg/mq"
	"go.uber.org/zap"
)

const auditMessageType = "airtime.topup.audit"

type AuditPublisher interface {
	Publish(ctx context.Context) error
}

type auditPublisher struct {
	service   service.AuditQueueService
	publisher mq.Publisher
	metrics   *metrics.Metrics
	logger    *zap.Logger
	queue     string
	batchSize int
}

func NewAuditPublisher(service service.AuditQueueService, publisher mq.Publisher, metrics *metrics.Metrics,
	cfg *config.Config, logger *zap.Logger) AuditPublisher {
	return &auditPublisher{
		service:   service,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
		queue:     cfg.AuditPublisher.Queue,
		batchSize: cfg.AuditPublisher.BatchSize,
	}
}

// Publish exports one batch of pending audit entries. Entries that fail to
// publish stay pending for the next run.
func (a *auditPublisher) Publish(ctx context.Context) error {
	events, err := a.service.FindAuditEventsToQueue(ctx, a.batchSize)
	if err != nil {
		return err
	}

	if len(events) == 0 {
		return nil
	}

	a.logger.Info("Publishing audit entries", zap.Int("count", len(events)))

	successCount := 0
	for _, event := range events {
		body, err := json.Marshal(event)
		if err != nil {
			a.logger.Error("Failed to encode audit entry", zap.Error(err), zap.String("auditID", event.ID))
			continue
		}

		msg := mq.Message{ID: event.ID, Type: auditMessageType, Body: body}
		if err := a.publisher.Publish(ctx, "", a.queue, msg); err != nil {
			a.metrics.RecordAuditPublishError()
			a.logger.Error("Failed to publish audit entry",
				zap.Error(err),
				zap.String("auditID", event.ID))
			continue
		}

		if err := a.service.MarkAuditEventAsQueued(ctx, event.ID); err != nil {
			continue
		}

		a.metrics.RecordAuditPublished()
		successCount++
	}

	if successCount > 0 {
		a.logger.Info("Successfully published audit entries",
			zap.Int("published", successCount),
			zap.Int("total", len(events)))
	}

	return nil
}
