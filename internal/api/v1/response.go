package v1

import "github.com/Behyna/airtime-topup/pkg/mpesa"

type SessionResponse struct {
	Message    string `json:"message"`
	SessionKey string `json:"session_key"`
}

// TopUpSuccessResponse carries the provider body rendered as a string.
type TopUpSuccessResponse struct {
	Message           string `json:"message"`
	SafaricomResponse string `json:"safaricom_response"`
}

type TopUpFailureResponse struct {
	Message           string        `json:"message"`
	SafaricomResponse mpesa.Payload `json:"safaricom_response"`
}

type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp int64                  `json:"timestamp"`
	Service   string                 `json:"service"`
	Database  map[string]interface{} `json:"database,omitempty"`
}
