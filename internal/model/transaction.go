package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TransactionStatus string

const (
	TransactionStatusPending         TransactionStatus = "PENDING"
	TransactionStatusAwaitingPayment TransactionStatus = "AWAITING_PAYMENT"
	TransactionStatusCompleted       TransactionStatus = "COMPLETED"
	TransactionStatusFailed          TransactionStatus = "FAILED"
	TransactionStatusCancelled       TransactionStatus = "CANCELLED"
)

type Transaction struct {
	ID                   string            `gorm:"primaryKey;type:char(36);column:id;<-:create"`
	RecipientPhoneNumber string            `gorm:"column:recipient_phone_number;type:varchar(15);not null" validate:"required,max=15"`
	SessionID            *string           `gorm:"column:session_id;type:char(36)"`
	Amount               int64             `gorm:"column:amount;not null" validate:"min=1"`
	Status               TransactionStatus `gorm:"column:status;type:varchar(20);not null" validate:"oneof=PENDING AWAITING_PAYMENT COMPLETED FAILED CANCELLED"`
	CreatedAt            time.Time         `gorm:"column:created_at"`
	UpdatedAt            time.Time         `gorm:"column:updated_at"`

	Session *CustomerSession `gorm:"foreignKey:SessionID" validate:"-"`
}

func (Transaction) TableName() string {
	return "transactions"
}

func (t *Transaction) BeforeCreate(*gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
