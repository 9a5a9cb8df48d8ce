package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuditOutcome string

const (
	AuditOutcomeSucceeded           AuditOutcome = "SUCCEEDED"
	AuditOutcomeProviderRejected    AuditOutcome = "PROVIDER_REJECTED"
	AuditOutcomeProviderUnavailable AuditOutcome = "PROVIDER_UNAVAILABLE"
	AuditOutcomeRecordFailed        AuditOutcome = "RECORD_FAILED"
)

// TopUpAuditLog records every provider call, including the ones that never
// produce a Transaction. Rows are exported by the audit publisher.
type TopUpAuditLog struct {
	ID                   string       `gorm:"primaryKey;type:char(36);column:id;<-:create"`
	TransactionID        *string      `gorm:"column:transaction_id;type:char(36)"`
	SessionID            *string      `gorm:"column:session_id;type:char(36)"`
	RecipientPhoneNumber string       `gorm:"column:recipient_phone_number;type:varchar(15);not null"`
	Amount               int64        `gorm:"column:amount;not null"`
	Outcome              AuditOutcome `gorm:"column:outcome;type:enum('SUCCEEDED','PROVIDER_REJECTED','PROVIDER_UNAVAILABLE','RECORD_FAILED');not null"`
	ProviderStatus       *string      `gorm:"column:provider_status;type:varchar(32)"`
	ProviderResponse     *string      `gorm:"column:provider_response;type:text"`
	LastError            *string      `gorm:"column:last_error;type:text"`
	Published            bool         `gorm:"column:published;default:false;not null"`
	PublishedAt          *time.Time   `gorm:"column:published_at;type:timestamp;null"`
	CreatedAt            time.Time    `gorm:"column:created_at"`
	UpdatedAt            time.Time    `gorm:"column:updated_at"`
}

func (TopUpAuditLog) TableName() string {
	return "topup_audit_logs"
}

func (a *TopUpAuditLog) BeforeCreate(*gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
