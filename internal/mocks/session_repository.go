package mocks

import (
	"context"

	"github.com/Behyna/airtime-topup/internal/model"
	"github.com/stretchr/testify/mock"
)

type SessionRepository struct {
	mock.Mock
}

func (s *SessionRepository) Create(ctx context.Context, session *model.CustomerSession) error {
	args := s.Called(ctx, session)
	return args.Error(0)
}

func (s *SessionRepository) FindByKey(ctx context.Context, sessionKey string) (*model.CustomerSession, error) {
	args := s.Called(ctx, sessionKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CustomerSession), args.Error(1)
}
