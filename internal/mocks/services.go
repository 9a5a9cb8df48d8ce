package mocks

import (
	"context"

	"github.com/Behyna/airtime-topup/internal/service"
	"github.com/stretchr/testify/mock"
)

type SessionService struct {
	mock.Mock
}

func (s *SessionService) CreateSession(ctx context.Context, cmd service.CreateSessionCommand) (service.SessionResponse, error) {
	args := s.Called(ctx, cmd)
	return args.Get(0).(service.SessionResponse), args.Error(1)
}

type TopUpService struct {
	mock.Mock
}

func (t *TopUpService) TopUp(ctx context.Context, cmd service.TopUpCommand) (service.TopUpResponse, error) {
	args := t.Called(ctx, cmd)
	return args.Get(0).(service.TopUpResponse), args.Error(1)
}

type AuditQueueService struct {
	mock.Mock
}

func (a *AuditQueueService) FindAuditEventsToQueue(ctx context.Context, limit int) ([]service.AuditEvent, error) {
	args := a.Called(ctx, limit)
	return args.Get(0).([]service.AuditEvent), args.Error(1)
}

func (a *AuditQueueService) MarkAuditEventAsQueued(ctx context.Context, id string) error {
	args := a.Called(ctx, id)
	return args.Error(0)
}
