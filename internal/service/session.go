package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"math/big"

	"github.com/Behyna/airtime-topup/internal/constants"
	"github.com/Behyna/airtime-topup/internal/metrics"
	"github.com/Behyna/airtime-topup/internal/model"
	"github.com/Behyna/airtime-topup/internal/repository"
	"github.com/Behyna/airtime-topup/internal/validator"
	"go.uber.org/zap"
)

const (
	SessionKeyLength   = 32
	sessionKeyAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

type SessionService interface {
	CreateSession(ctx context.Context, cmd CreateSessionCommand) (SessionResponse, error)
}

type session struct {
	repo      repository.SessionRepository
	validator validator.IXValidator
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

func NewSessionService(repo repository.SessionRepository, validator validator.IXValidator,
	metrics *metrics.Metrics, logger *zap.Logger) SessionService {
	return &session{repo: repo, validator: validator, metrics: metrics, logger: logger}
}

func (s *session) CreateSession(ctx context.Context, cmd CreateSessionCommand) (SessionResponse, error) {
	key, err := GenerateSessionKey(SessionKeyLength)
	if err != nil {
		s.logger.Error("Failed to generate session key", zap.Error(err))
		s.metrics.RecordSessionIssueError("key_generation")
		return SessionResponse{}, NewServiceError(constants.ErrCodeInternalError, err)
	}

	customerSession := &model.CustomerSession{
		SessionKey:    key,
		IPAddressHash: HashValue(cmd.ClientIP),
		UserAgentHash: HashValue(cmd.UserAgent),
	}

	if errs := s.validator.Validate(customerSession); errs != nil {
		s.logger.Error("Session failed validation", zap.Any("errors", errs))
		s.metrics.RecordSessionIssueError("validation")
		return SessionResponse{}, NewServiceError(constants.ErrCodeSessionFailed, &validator.Error{Fields: errs})
	}

	if err := s.repo.Create(ctx, customerSession); err != nil {
		reason := "database"
		if errors.Is(err, repository.ErrSessionKeyExists) {
			reason = "duplicate_key"
		}

		s.logger.Error("Failed to persist session", zap.Error(err), zap.String("reason", reason))
		s.metrics.RecordSessionIssueError(reason)
		return SessionResponse{}, NewServiceError(constants.ErrCodeSessionFailed, err)
	}

	s.metrics.RecordSessionIssued()
	s.logger.Info("Session issued",
		zap.String("sessionID", customerSession.ID),
		zap.String("ipAddressHash", customerSession.IPAddressHash),
		zap.String("userAgentHash", customerSession.UserAgentHash),
	)

	return SessionResponse{SessionID: customerSession.ID, SessionKey: key}, nil
}

// GenerateSessionKey returns n characters drawn uniformly from [A-Za-z0-9]
// using crypto/rand.
func GenerateSessionKey(n int) (string, error) {
	alphabetSize := big.NewInt(int64(len(sessionKeyAlphabet)))
	key := make([]byte, n)

	for i := range key {
		idx, err := rand.Int(rand.Reader, alphabetSize)
		if err != nil {
			return "", err
		}
		key[i] = sessionKeyAlphabet[idx.Int64()]
	}

	return string(key), nil
}

// HashValue returns the lowercase hex SHA-256 digest of value.
func HashValue(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}
