package service_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/Behyna/airtime-topup/internal/constants"
	"github.com/Behyna/airtime-topup/internal/mocks"
	"github.com/Behyna/airtime-topup/internal/model"
	"github.com/Behyna/airtime-topup/internal/repository"
	"github.com/Behyna/airtime-topup/internal/service"
	xvalidator "github.com/Behyna/airtime-topup/internal/validator"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var sessionKeyPattern = regexp.MustCompile(`^[A-Za-z0-9]{32}$`)

func TestSession_CreateSession(t *testing.T) {
	ctx := context.Background()
	cmd := service.CreateSessionCommand{ClientIP: "10.0.0.7", UserAgent: "Mozilla/5.0"}

	t.Run("persists hashed client details", func(t *testing.T) {
		mockRepo := &mocks.SessionRepository{}
		svc := service.NewSessionService(mockRepo, xvalidator.NewXValidator(validator.New(), nil), nil, zap.NewNop())

		var saved *model.CustomerSession
		mockRepo.On("Create", ctx, mock.AnythingOfType("*model.CustomerSession")).
			Run(func(args mock.Arguments) {
				saved = args.Get(1).(*model.CustomerSession)
				saved.ID = "session-1"
			}).Return(nil)

		resp, err := svc.CreateSession(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, "session-1", resp.SessionID)
		assert.Regexp(t, sessionKeyPattern, resp.SessionKey)
		require.NotNil(t, saved)
		assert.Equal(t, resp.SessionKey, saved.SessionKey)
		assert.Equal(t, service.HashValue("10.0.0.7"), saved.IPAddressHash)
		assert.Equal(t, service.HashValue("Mozilla/5.0"), saved.UserAgentHash)
		mockRepo.AssertExpectations(t)
	})

	t.Run("missing user agent hashes the empty string", func(t *testing.T) {
		mockRepo := &mocks.SessionRepository{}
		svc := service.NewSessionService(mockRepo, xvalidator.NewXValidator(validator.New(), nil), nil, zap.NewNop())

		mockRepo.On("Create", ctx, mock.MatchedBy(func(s *model.CustomerSession) bool {
			return s.UserAgentHash == "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
		})).Return(nil)

		_, err := svc.CreateSession(ctx, service.CreateSessionCommand{ClientIP: "10.0.0.7"})

		require.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("duplicate key surfaces as session_key error", func(t *testing.T) {
		mockRepo := &mocks.SessionRepository{}
		svc := service.NewSessionService(mockRepo, xvalidator.NewXValidator(validator.New(), nil), nil, zap.NewNop())

		mockRepo.On("Create", ctx, mock.Anything).Return(repository.ErrSessionKeyExists)

		_, err := svc.CreateSession(ctx, cmd)

		assertServiceError(t, err, constants.ErrCodeSessionFailed)
		assert.Equal(t, xvalidator.FieldErrors{"session_key": {constants.MsgSessionKeyExists}}, service.FieldErrors(err))
		mockRepo.AssertExpectations(t)
	})

	t.Run("database failure", func(t *testing.T) {
		mockRepo := &mocks.SessionRepository{}
		svc := service.NewSessionService(mockRepo, xvalidator.NewXValidator(validator.New(), nil), nil, zap.NewNop())

		dbErr := errors.New("connection refused")
		mockRepo.On("Create", ctx, mock.Anything).Return(dbErr)

		_, err := svc.CreateSession(ctx, cmd)

		assertServiceError(t, err, constants.ErrCodeSessionFailed)
		assert.ErrorIs(t, err, dbErr)
		assert.Nil(t, service.FieldErrors(err))
		mockRepo.AssertExpectations(t)
	})
}

func TestGenerateSessionKey(t *testing.T) {
	seen := make(map[string]struct{})

	for i := 0; i < 100; i++ {
		key, err := service.GenerateSessionKey(service.SessionKeyLength)
		require.NoError(t, err)
		assert.Regexp(t, sessionKeyPattern, key)

		_, dup := seen[key]
		assert.False(t, dup)
		seen[key] = struct{}{}
	}
}

func TestHashValue(t *testing.T) {
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", service.HashValue(""))
	assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", service.HashValue("abc"))
}
