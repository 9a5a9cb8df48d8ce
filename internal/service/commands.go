package service

import (
	"time"

	"github.com/Behyna/airtime-topup/pkg/mpesa"
)

type CreateSessionCommand struct {
	ClientIP  string
	UserAgent string
}

type TopUpCommand struct {
	RecipientPhoneNumber string
	Amount               int64
	SessionKey           string
}

// AuditEvent is the broker representation of a top-up audit entry.
type AuditEvent struct {
	ID                   string    `json:"id"`
	TransactionID        *string   `json:"transaction_id"`
	SessionID            *string   `json:"session_id"`
	RecipientPhoneNumber string    `json:"recipient_phone_number"`
	Amount               int64     `json:"amount"`
	Outcome              string    `json:"outcome"`
	ProviderStatus       *string   `json:"provider_status"`
	ProviderResponse     *string   `json:"provider_response"`
	LastError            *string   `json:"last_error"`
	CreatedAt            time.Time `json:"created_at"`
}

type SessionResponse struct {
	SessionID  string
	SessionKey string
}

// TopUpResponse carries the provider verdict. TransactionID is set only when
// Result is mpesa.Success.
type TopUpResponse struct {
	TransactionID string
	Result        mpesa.TopUpResult
}
