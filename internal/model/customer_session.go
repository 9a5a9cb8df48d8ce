package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CustomerSession struct {
	ID            string    `gorm:"primaryKey;type:char(36);column:id;<-:create"`
	SessionKey    string    `gorm:"column:session_key;type:varchar(64);uniqueIndex;not null" validate:"required,max=64"`
	IPAddressHash string    `gorm:"column:ip_address_hash;type:varchar(64);not null" validate:"required,sha256hex"`
	UserAgentHash string    `gorm:"column:user_agent_hash;type:varchar(64);not null" validate:"required,sha256hex"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (CustomerSession) TableName() string {
	return "customer_sessions"
}

func (s *CustomerSession) BeforeCreate(*gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
