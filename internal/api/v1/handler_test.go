package v1_test

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Behyna/airtime-topup/internal/api"
	v1 "github.com/Behyna/airtime-topup/internal/api/v1"
	"github.com/Behyna/airtime-topup/internal/constants"
	apperrors "github.com/Behyna/airtime-topup/internal/errors"
	"github.com/Behyna/airtime-topup/internal/mocks"
	"github.com/Behyna/airtime-topup/internal/repository"
	"github.com/Behyna/airtime-topup/internal/service"
	xvalidator "github.com/Behyna/airtime-topup/internal/validator"
	"github.com/Behyna/airtime-topup/pkg/mpesa"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testServer struct {
	app      *fiber.App
	sessions *mocks.SessionService
	topUps   *mocks.TopUpService
	health   *mocks.HealthChecker
}

func newTestServer() *testServer {
	s := &testServer{
		sessions: &mocks.SessionService{},
		topUps:   &mocks.TopUpService{},
		health:   &mocks.HealthChecker{},
	}

	logger := zap.NewNop()
	handler := v1.NewHandler(logger, s.sessions, s.topUps, xvalidator.NewXValidator(validator.New(), nil), s.health)

	s.app = fiber.New(fiber.Config{ErrorHandler: apperrors.ErrorHandler(logger)})
	api.SetupRoutes(s.app, handler)

	return s
}

func (s *testServer) do(t *testing.T, req *http.Request) (int, []byte) {
	t.Helper()

	resp, err := s.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, body
}

func postTopUp(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/airtime/top-up/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestHandler_GetSession(t *testing.T) {
	t.Run("issues session", func(t *testing.T) {
		s := newTestServer()

		s.sessions.On("CreateSession", mock.Anything, mock.MatchedBy(func(cmd service.CreateSessionCommand) bool {
			return cmd.UserAgent == "test-agent/1.0" && cmd.ClientIP != ""
		})).Return(service.SessionResponse{SessionID: "sid", SessionKey: "AbCdEfGhIjKlMnOpQrStUvWxYz012345"}, nil)

		req := httptest.NewRequest(http.MethodGet, "/airtime/top-up/", nil)
		req.Header.Set("User-Agent", "test-agent/1.0")
		status, body := s.do(t, req)

		assert.Equal(t, http.StatusOK, status)
		assert.JSONEq(t, `{"message": "Airtime Top-up Service is running", "session_key": "AbCdEfGhIjKlMnOpQrStUvWxYz012345"}`, string(body))
		s.sessions.AssertExpectations(t)
	})

	t.Run("path without trailing slash", func(t *testing.T) {
		s := newTestServer()

		s.sessions.On("CreateSession", mock.Anything, mock.Anything).
			Return(service.SessionResponse{SessionKey: "k"}, nil)

		status, _ := s.do(t, httptest.NewRequest(http.MethodGet, "/airtime/top-up", nil))

		assert.Equal(t, http.StatusOK, status)
	})

	t.Run("persistence failure", func(t *testing.T) {
		s := newTestServer()

		s.sessions.On("CreateSession", mock.Anything, mock.Anything).
			Return(service.SessionResponse{}, service.NewServiceError(constants.ErrCodeSessionFailed, repository.ErrSessionKeyExists))

		status, body := s.do(t, httptest.NewRequest(http.MethodGet, "/airtime/top-up/", nil))

		assert.Equal(t, http.StatusInternalServerError, status)
		assert.JSONEq(t, `{
			"message": "Failed to create session",
			"errors": {"session_key": ["customer session with this session key already exists."]}
		}`, string(body))
	})
}

func TestHandler_TopUp(t *testing.T) {
	payload := mpesa.Payload{"responseStatus": "200", "responseDesc": "Success", "transId": "TX1"}

	t.Run("successful top-up", func(t *testing.T) {
		s := newTestServer()

		s.topUps.On("TopUp", mock.Anything, service.TopUpCommand{RecipientPhoneNumber: "712345678", Amount: 100}).
			Return(service.TopUpResponse{TransactionID: "tx-1", Result: mpesa.Success{Payload: payload}}, nil)

		status, body := s.do(t, postTopUp(`{"recipient_phone_number": "712345678", "amount": 100}`))

		assert.Equal(t, http.StatusOK, status)

		var resp v1.TopUpSuccessResponse
		require.NoError(t, json.Unmarshal(body, &resp))
		assert.Equal(t, "Airtime top-up successful", resp.Message)
		assert.JSONEq(t, `{"responseStatus": "200", "responseDesc": "Success", "transId": "TX1"}`, resp.SafaricomResponse)
		s.topUps.AssertExpectations(t)
	})

	t.Run("session key is forwarded", func(t *testing.T) {
		s := newTestServer()

		s.topUps.On("TopUp", mock.Anything, service.TopUpCommand{RecipientPhoneNumber: "712345678", Amount: 5, SessionKey: "key-1"}).
			Return(service.TopUpResponse{Result: mpesa.Success{Payload: payload}}, nil)

		status, _ := s.do(t, postTopUp(`{"recipient_phone_number": "712345678", "amount": 5, "session": "key-1"}`))

		assert.Equal(t, http.StatusOK, status)
		s.topUps.AssertExpectations(t)
	})

	t.Run("provider rejects", func(t *testing.T) {
		s := newTestServer()

		failure := mpesa.Failure{Code: "401.003.01", Payload: mpesa.Payload{"responseStatus": "401.003.01", "responseDesc": "Invalid PIN"}}
		s.topUps.On("TopUp", mock.Anything, mock.Anything).Return(service.TopUpResponse{Result: failure}, nil)

		status, body := s.do(t, postTopUp(`{"recipient_phone_number": "712345678", "amount": 100}`))

		assert.Equal(t, http.StatusBadRequest, status)
		assert.JSONEq(t, `{
			"message": "Airtime top-up failed",
			"safaricom_response": {"responseStatus": "401.003.01", "responseDesc": "Invalid PIN"}
		}`, string(body))
	})

	t.Run("zero amount is rejected before the provider", func(t *testing.T) {
		s := newTestServer()

		status, body := s.do(t, postTopUp(`{"recipient_phone_number": "712345678", "amount": 0}`))

		assert.Equal(t, http.StatusBadRequest, status)
		assert.JSONEq(t, `{"amount": ["Ensure this value is greater than or equal to 1."]}`, string(body))
		s.topUps.AssertNotCalled(t, "TopUp", mock.Anything, mock.Anything)
	})

	t.Run("missing recipient is rejected before the provider", func(t *testing.T) {
		s := newTestServer()

		status, body := s.do(t, postTopUp(`{"amount": 100}`))

		assert.Equal(t, http.StatusBadRequest, status)
		assert.JSONEq(t, `{"recipient_phone_number": ["This field is required."]}`, string(body))
		s.topUps.AssertNotCalled(t, "TopUp", mock.Anything, mock.Anything)
	})

	t.Run("blank recipient is rejected before the provider", func(t *testing.T) {
		s := newTestServer()

		status, body := s.do(t, postTopUp(`{"recipient_phone_number": "   ", "amount": 100}`))

		assert.Equal(t, http.StatusBadRequest, status)
		assert.JSONEq(t, `{"recipient_phone_number": ["This field is required."]}`, string(body))
		s.topUps.AssertNotCalled(t, "TopUp", mock.Anything, mock.Anything)
	})

	t.Run("padded values are trimmed", func(t *testing.T) {
		s := newTestServer()

		s.topUps.On("TopUp", mock.Anything, service.TopUpCommand{RecipientPhoneNumber: "712345678", Amount: 100, SessionKey: "key-1"}).
			Return(service.TopUpResponse{Result: mpesa.Success{Payload: payload}}, nil)

		status, _ := s.do(t, postTopUp(`{"recipient_phone_number": " 712345678 ", "amount": 100, "session": " key-1 "}`))

		assert.Equal(t, http.StatusOK, status)
		s.topUps.AssertExpectations(t)
	})

	t.Run("provider timeout", func(t *testing.T) {
		s := newTestServer()

		s.topUps.On("TopUp", mock.Anything, mock.Anything).
			Return(service.TopUpResponse{}, service.NewServiceError(constants.ErrCodeProviderTimeout, mpesa.ErrTimeout))

		status, body := s.do(t, postTopUp(`{"recipient_phone_number": "712345678", "amount": 100}`))

		assert.Equal(t, http.StatusGatewayTimeout, status)
		assert.JSONEq(t, `{"code": "PROVIDER_TIMEOUT", "message": "airtime provider did not respond in time"}`, string(body))
	})

	t.Run("token unavailable", func(t *testing.T) {
		s := newTestServer()

		s.topUps.On("TopUp", mock.Anything, mock.Anything).
			Return(service.TopUpResponse{}, service.NewServiceError(constants.ErrCodeTokenUnavailable, mpesa.ErrTokenUnavailable))

		status, _ := s.do(t, postTopUp(`{"recipient_phone_number": "712345678", "amount": 100}`))

		assert.Equal(t, http.StatusBadGateway, status)
	})

	t.Run("record failure", func(t *testing.T) {
		s := newTestServer()

		s.topUps.On("TopUp", mock.Anything, mock.Anything).
			Return(service.TopUpResponse{}, service.NewServiceError(constants.ErrCodeRecordFailed, errors.New("deadlock")))

		status, body := s.do(t, postTopUp(`{"recipient_phone_number": "712345678", "amount": 100}`))

		assert.Equal(t, http.StatusInternalServerError, status)
		assert.JSONEq(t, `{
			"message": "Failed to record transaction",
			"errors": {"non_field_errors": ["The record could not be saved."]}
		}`, string(body))
	})
}

func TestHandler_Health(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		s := newTestServer()
		s.health.On("HealthCheck", mock.Anything).Return(nil)
		s.health.On("DatabaseInfo").Return(map[string]interface{}{"driver": "mysql"})

		status, body := s.do(t, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, status)
		assert.Contains(t, string(body), `"status":"healthy"`)
		assert.Contains(t, string(body), `"driver":"mysql"`)
	})

	t.Run("database down", func(t *testing.T) {
		s := newTestServer()
		s.health.On("HealthCheck", mock.Anything).Return(errors.New("connection refused"))

		status, body := s.do(t, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusServiceUnavailable, status)
		assert.Contains(t, string(body), `"status":"unhealthy"`)
	})
}

func TestHandler_Pong(t *testing.T) {
	s := newTestServer()

	status, body := s.do(t, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "pong", string(body))
}
