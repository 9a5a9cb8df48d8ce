package service

import (
	"context"
	"time"

	"github.com/Behyna/airtime-topup/internal/repository"
	"go.uber.org/zap"
)

type AuditQueueService interface {
	FindAuditEventsToQueue(ctx context.Context, limit int) ([]AuditEvent, error)
	MarkAuditEventAsQueued(ctx context.Context, id string) error
}

type auditQueue struct {
	auditLogs repository.AuditLogRepository
	logger    *zap.Logger
}

func NewAuditQueueService(auditLogs repository.AuditLogRepository, logger *zap.Logger) AuditQueueService {
	return &auditQueue{auditLogs: auditLogs, logger: logger}
}

func (a *auditQueue) FindAuditEventsToQueue(ctx context.Context, limit int) ([]AuditEvent, error) {
	a.logger.Debug("Finding audit entries to publish", zap.Int("batchSize", limit))

	logs, err := a.auditLogs.FindUnpublished(ctx, limit)
	if err != nil {
		a.logger.Error("Failed to find unpublished audit entries", zap.Error(err))
		return nil, err
	}

	if len(logs) == 0 {
		a.logger.Debug("No audit entries found to publish")
		return nil, nil
	}

	events := make([]AuditEvent, 0, len(logs))
	for _, log := range logs {
		events = append(events, AuditEvent{
			ID:                   log.ID,
			TransactionID:        log.TransactionID,
			SessionID:            log.SessionID,
			RecipientPhoneNumber: log.RecipientPhoneNumber,
			Amount:               log.Amount,
			Outcome:              string(log.Outcome),
			ProviderStatus:       log.ProviderStatus,
			ProviderResponse:     log.ProviderResponse,
			LastError:            log.LastError,
			CreatedAt:            log.CreatedAt,
		})
	}

	return events, nil
}

func (a *auditQueue) MarkAuditEventAsQueued(ctx context.Context, id string) error {
	if err := a.auditLogs.MarkPublished(ctx, id, time.Now()); err != nil {
		a.logger.Error("Failed to mark audit entry as published",
			zap.Error(err), zap.String("auditID", id))
		return err
	}

	a.logger.Debug("Successfully marked audit entry as published", zap.String("auditID", id))

	return nil
}
