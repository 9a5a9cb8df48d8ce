package repository

import (
	"context"
	"errors"

	"github.com/Behyna/airtime-topup/internal/model"
	"gorm.io/gorm"
)

type SessionRepository interface {
	Create(ctx context.Context, session *model.CustomerSession) error
	FindByKey(ctx context.Context, sessionKey string) (*model.CustomerSession, error)
}

type Session struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &Session{db: db}
}

func (s *Session) Create(ctx context.Context, session *model.CustomerSession) error {
	err := GetTx(ctx, s.db).Create(session).Error
	if err == nil {
		return nil
	}

	if mysqlErrorNumber(err) == mysqlDuplicateEntry {
		return ErrSessionKeyExists
	}

	return err
}

func (s *Session) FindByKey(ctx context.Context, sessionKey string) (*model.CustomerSession, error) {
	var session model.CustomerSession

	err := GetTx(ctx, s.db).Where("session_key = ?", sessionKey).First(&session).Error
	if err == nil {
		return &session, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSessionNotFound
	}

	return nil, err
}
