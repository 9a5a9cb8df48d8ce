package mocks

import (
	"context"
	"time"

	"github.com/Behyna/airtime-topup/internal/model"
	"github.com/stretchr/testify/mock"
)

type AuditLogRepository struct {
	mock.Mock
}

func (a *AuditLogRepository) Create(ctx context.Context, log *model.TopUpAuditLog) error {
	args := a.Called(ctx, log)
	return args.Error(0)
}

func (a *AuditLogRepository) FindUnpublished(ctx context.Context, limit int) ([]model.TopUpAuditLog, error) {
	args := a.Called(ctx, limit)
	return args.Get(0).([]model.TopUpAuditLog), args.Error(1)
}

func (a *AuditLogRepository) MarkPublished(ctx context.Context, id string, publishedAt time.Time) error {
	args := a.Called(ctx, id, publishedAt)
	return args.Error(0)
}
