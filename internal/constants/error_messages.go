package constants

const (
	ErrCodeValidationFailed    = "VALIDATION_FAILED"
	ErrCodeTokenUnavailable    = "TOKEN_UNAVAILABLE"
	ErrCodeProviderUnavailable = "PROVIDER_UNAVAILABLE"
	ErrCodeProviderTimeout     = "PROVIDER_TIMEOUT"
	ErrCodeDatabase            = "DATABASE_ERROR"
	ErrCodeSessionFailed       = "SESSION_FAILED"
	ErrCodeRecordFailed        = "RECORD_FAILED"
	ErrCodeNotFound            = "NOT_FOUND"
	ErrCodeInternalError       = "INTERNAL_ERROR"
)

const (
	ErrMsgValidationFailed    = "invalid request"
	ErrMsgTokenUnavailable    = "could not obtain an access token from the airtime provider"
	ErrMsgProviderUnavailable = "airtime provider is unavailable"
	ErrMsgProviderTimeout     = "airtime provider did not respond in time"
	ErrMsgDatabase            = "database error"
	ErrMsgSessionFailed       = "Failed to create session"
	ErrMsgRecordFailed        = "Failed to record transaction"
	ErrMsgNotFound            = "resource not found"
	ErrMsgInternalError       = "Internal server error"
)

const (
	MsgServiceRunning   = "Airtime Top-up Service is running"
	MsgTopUpSuccessful  = "Airtime top-up successful"
	MsgTopUpFailed      = "Airtime top-up failed"
	MsgSessionKeyExists = "customer session with this session key already exists."
	MsgRecordNotSaved   = "The record could not be saved."
)

var errorMessages = map[string]string{
	ErrCodeValidationFailed:    ErrMsgValidationFailed,
	ErrCodeTokenUnavailable:    ErrMsgTokenUnavailable,
	ErrCodeProviderUnavailable: ErrMsgProviderUnavailable,
	ErrCodeProviderTimeout:     ErrMsgProviderTimeout,
	ErrCodeDatabase:            ErrMsgDatabase,
	ErrCodeSessionFailed:       ErrMsgSessionFailed,
	ErrCodeRecordFailed:        ErrMsgRecordFailed,
	ErrCodeNotFound:            ErrMsgNotFound,
	ErrCodeInternalError:       ErrMsgInternalError,
}

func GetErrorMessage(code string) string {
	if msg, exists := errorMessages[code]; exists {
		return msg
	}
	return ErrMsgInternalError
}

func GetHTTPStatus(code string) int {
	switch code {
	case ErrCodeValidationFailed:
		return 400
	case ErrCodeNotFound:
		return 404
	case ErrCodeTokenUnavailable, ErrCodeProviderUnavailable:
		return 502
	case ErrCodeProviderTimeout:
		return 504
	default:
		return 500
	}
}
