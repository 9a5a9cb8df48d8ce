package service

import (
	"context"
	"errors"
	"time"

	"github.com/Behyna/airtime-topup/internal/constants"
	"github.com/Behyna/airtime-topup/internal/metrics"
	"github.com/Behyna/airtime-topup/internal/model"
	"github.com/Behyna/airtime-topup/internal/repository"
	"github.com/Behyna/airtime-topup/internal/validator"
	"github.com/Behyna/airtime-topup/pkg/mpesa"
	"go.uber.org/zap"
)

type TopUpService interface {
	TopUp(ctx context.Context, cmd TopUpCommand) (TopUpResponse, error)
}

type topUp struct {
	gateway      mpesa.Gateway
	sessions     repository.SessionRepository
	transactions repository.TransactionRepository
	auditLogs    repository.AuditLogRepository
	txManager    repository.TxManager
	validator    validator.IXValidator
	metrics      *metrics.Metrics
	logger       *zap.Logger
}

func NewTopUpService(gateway mpesa.Gateway, sessions repository.SessionRepository,
	transactions repository.TransactionRepository, auditLogs repository.AuditLogRepository,
	txManager repository.TxManager, validator validator.IXValidator, metrics *metrics.Metrics,
	logger *zap.Logger) TopUpService {
	return &topUp{
		gateway:      gateway,
		sessions:     sessions,
		transactions: transactions,
		auditLogs:    auditLogs,
		txManager:    txManager,
		validator:    validator,
		metrics:      metrics,
		logger:       logger,
	}
}

func (t *topUp) TopUp(ctx context.Context, cmd TopUpCommand) (TopUpResponse, error) {
	token, err := t.accessToken(ctx)
	if err != nil {
		t.metrics.RecordTopUp(string(model.AuditOutcomeProviderUnavailable), cmd.Amount)
		return TopUpResponse{}, err
	}

	sessionID, err := t.resolveSession(ctx, cmd.SessionKey)
	if err != nil {
		return TopUpResponse{}, err
	}

	start := time.Now()
	result, err := t.gateway.TopUp(ctx, token, mpesa.TopUpRequest{
		ReceiverMSISDN: cmd.RecipientPhoneNumber,
		Amount:         cmd.Amount,
	})
	if err != nil {
		t.metrics.RecordProviderCall("topup", "error", time.Since(start))
		t.logger.Error("Airtime top-up call failed",
			zap.Error(err),
			zap.String("recipient", cmd.RecipientPhoneNumber),
			zap.Int64("amount", cmd.Amount),
		)

		t.audit(ctx, newAuditEntry(cmd, sessionID, model.AuditOutcomeProviderUnavailable, nil, err))
		t.metrics.RecordTopUp(string(model.AuditOutcomeProviderUnavailable), cmd.Amount)

		if errors.Is(err, mpesa.ErrTimeout) {
			return TopUpResponse{}, NewServiceError(constants.ErrCodeProviderTimeout, err)
		}
		return TopUpResponse{}, NewServiceError(constants.ErrCodeProviderUnavailable, err)
	}

	switch r := result.(type) {
	case mpesa.Success:
		t.metrics.RecordProviderCall("topup", "success", time.Since(start))
		return t.recordSuccess(ctx, cmd, sessionID, r)

	case mpesa.Failure:
		t.metrics.RecordProviderCall("topup", "rejected", time.Since(start))
		t.logger.Warn("Airtime top-up rejected by provider",
			zap.String("responseStatus", r.Code),
			zap.String("recipient", cmd.RecipientPhoneNumber),
			zap.Int64("amount", cmd.Amount),
			zap.Stringer("response", r.Payload),
		)

		t.audit(ctx, newAuditEntry(cmd, sessionID, model.AuditOutcomeProviderRejected, r, nil))
		t.metrics.RecordTopUp(string(model.AuditOutcomeProviderRejected), cmd.Amount)

		return TopUpResponse{Result: r}, nil

	default:
		return TopUpResponse{}, NewServiceError(constants.ErrCodeInternalError, errors.New("unknown top-up result"))
	}
}

func (t *topUp) accessToken(ctx context.Context) (string, error) {
	start := time.Now()

	token, err := t.gateway.AccessToken(ctx)
	if err != nil {
		t.metrics.RecordProviderCall("token", "error", time.Since(start))
		t.logger.Error("Failed to obtain provider access token", zap.Error(err))

		if errors.Is(err, mpesa.ErrTimeout) {
			return "", NewServiceError(constants.ErrCodeProviderTimeout, err)
		}
		return "", NewServiceError(constants.ErrCodeTokenUnavailable, err)
	}

	t.metrics.RecordProviderCall("token", "success", time.Since(start))
	return token, nil
}

// resolveSession maps a client supplied session key to its id. Unknown keys
// are tolerated and yield no session.
func (t *topUp) resolveSession(ctx context.Context, sessionKey string) (*string, error) {
	if sessionKey == "" {
		return nil, nil
	}

	customerSession, err := t.sessions.FindByKey(ctx, sessionKey)
	if err == nil {
		return &customerSession.ID, nil
	}

	if errors.Is(err, repository.ErrSessionNotFound) {
		t.logger.Warn("Invalid session key provided, continuing without session",
			zap.String("sessionKey", sessionKey))
		return nil, nil
	}

	t.logger.Error("Failed to look up session", zap.Error(err))
	return nil, NewServiceError(constants.ErrCodeDatabase, err)
}

func (t *topUp) recordSuccess(ctx context.Context, cmd TopUpCommand, sessionID *string,
	result mpesa.Success) (TopUpResponse, error) {
	transaction := &model.Transaction{
		RecipientPhoneNumber: cmd.RecipientPhoneNumber,
		SessionID:            sessionID,
		Amount:               cmd.Amount,
		Status:               model.TransactionStatusCompleted,
	}

	err := t.persist(ctx, cmd, sessionID, transaction, result)
	if err != nil {
		// the provider has already moved the money; keep a trace of it
		t.logger.Error("Failed to record successful top-up",
			zap.Error(err),
			zap.String("recipient", cmd.RecipientPhoneNumber),
			zap.Int64("amount", cmd.Amount),
			zap.Stringer("response", result.Payload),
		)

		t.audit(ctx, newAuditEntry(cmd, sessionID, model.AuditOutcomeRecordFailed, result, err))
		t.metrics.RecordTopUp(string(model.AuditOutcomeRecordFailed), cmd.Amount)

		return TopUpResponse{}, NewServiceError(constants.ErrCodeRecordFailed, err)
	}

	t.metrics.RecordTopUp(string(model.AuditOutcomeSucceeded), cmd.Amount)
	t.logger.Info("Airtime top-up successful",
		zap.String("transactionID", transaction.ID),
		zap.String("recipient", cmd.RecipientPhoneNumber),
		zap.Int64("amount", cmd.Amount),
	)

	return TopUpResponse{TransactionID: transaction.ID, Result: result}, nil
}

func (t *topUp) persist(ctx context.Context, cmd TopUpCommand, sessionID *string,
	transaction *model.Transaction, result mpesa.Success) error {
	if errs := t.validator.Validate(transaction); errs != nil {
		return &validator.Error{Fields: errs}
	}

	return t.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := t.transactions.Create(ctx, transaction); err != nil {
			return err
		}

		entry := newAuditEntry(cmd, sessionID, model.AuditOutcomeSucceeded, result, nil)
		entry.TransactionID = &transaction.ID

		return t.auditLogs.Create(ctx, entry)
	})
}

// audit writes entry without failing the request. It detaches from ctx so a
// cancelled request still leaves its trace.
func (t *topUp) audit(ctx context.Context, entry *model.TopUpAuditLog) {
	if err := t.auditLogs.Create(context.WithoutCancel(ctx), entry); err != nil {
		t.logger.Error("Failed to write top-up audit entry",
			zap.Error(err),
			zap.String("outcome", string(entry.Outcome)),
			zap.String("recipient", entry.RecipientPhoneNumber),
			zap.Int64("amount", entry.Amount),
		)
	}
}

func newAuditEntry(cmd TopUpCommand, sessionID *string, outcome model.AuditOutcome,
	result mpesa.TopUpResult, cause error) *model.TopUpAuditLog {
	entry := &model.TopUpAuditLog{
		SessionID:            sessionID,
		RecipientPhoneNumber: cmd.RecipientPhoneNumber,
		Amount:               cmd.Amount,
		Outcome:              outcome,
	}

	if result != nil {
		body := result.Body()
		if status, ok := body.ResponseStatus(); ok {
			entry.ProviderStatus = &status
		}
		response := body.String()
		entry.ProviderResponse = &response
	}

	if cause != nil {
		lastError := cause.Error()
		entry.LastError = &lastError
	}

	return entry
}
