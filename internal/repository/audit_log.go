package repository

import (
	"context"
	"time"

	"github.com/Behyna/airtime-topup/internal/model"
	"gorm.io/gorm"
)

type AuditLogRepository interface {
	Create(ctx context.Context, log *model.TopUpAuditLog) error
	FindUnpublished(ctx context.Context, limit int) ([]model.TopUpAuditLog, error)
	MarkPublished(ctx context.Context, id string, publishedAt time.Time) error
}

type AuditLog struct {
	db *gorm.DB
}

func NewAuditLogRepository(db *gorm.DB) AuditLogRepository {
	return &AuditLog{db: db}
}

func (a *AuditLog) Create(ctx context.Context, log *model.TopUpAuditLog) error {
	return GetTx(ctx, a.db).Create(log).Error
}

func (a *AuditLog) FindUnpublished(ctx context.Context, limit int) ([]model.TopUpAuditLog, error) {
	var logs []model.TopUpAuditLog

	err := GetTx(ctx, a.db).
		Where("published = ?", false).
		Order("created_at ASC").
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, err
	}

	return logs, nil
}

func (a *AuditLog) MarkPublished(ctx context.Context, id string, publishedAt time.Time) error {
	result := GetTx(ctx, a.db).Model(&model.TopUpAuditLog{}).
		Where("id = ? AND published = ?", id, false).
		Updates(map[string]interface{}{
			"published":    true,
			"published_at": publishedAt,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrNoRowsAffected
	}

	return nil
}
