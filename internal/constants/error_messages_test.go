package constants_test

import (
	"testing"

	"github.com/Behyna/airtime-topup/internal/constants"
	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{constants.ErrCodeValidationFailed, 400},
		{constants.ErrCodeNotFound, 404},
		{constants.ErrCodeTokenUnavailable, 502},
		{constants.ErrCodeProviderUnavailable, 502},
		{constants.ErrCodeProviderTimeout, 504},
		{constants.ErrCodeDatabase, 500},
		{constants.ErrCodeSessionFailed, 500},
		{constants.ErrCodeRecordFailed, 500},
		{"SOMETHING_ELSE", 500},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, constants.GetHTTPStatus(tt.code))
		})
	}
}

func TestGetErrorMessage(t *testing.T) {
	assert.Equal(t, "Failed to create session", constants.GetErrorMessage(constants.ErrCodeSessionFailed))
	assert.Equal(t, "Failed to record transaction", constants.GetErrorMessage(constants.ErrCodeRecordFailed))
	assert.Equal(t, constants.ErrMsgInternalError, constants.GetErrorMessage("UNKNOWN"))
}
