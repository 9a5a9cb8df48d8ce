package v1

import (
	"context"
	"time"

	"github.com/Behyna/airtime-topup/internal/constants"
	"github.com/Behyna/airtime-topup/internal/service"
	"github.com/Behyna/airtime-topup/internal/validator"
	"github.com/Behyna/airtime-topup/pkg/mpesa"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const serviceName = "airtime-topup"

type HealthChecker interface {
	HealthCheck(ctx context.Context) error
	DatabaseInfo() map[string]interface{}
}

type Handler struct {
	logger         *zap.Logger
	sessionService service.SessionService
	topUpService   service.TopUpService
	XValidator     validator.IXValidator
	health         HealthChecker
}

func NewHandler(logger *zap.Logger, sessionService service.SessionService, topUpService service.TopUpService,
	XValidator validator.IXValidator, health HealthChecker) *Handler {
	return &Handler{
		logger:         logger,
		sessionService: sessionService,
		topUpService:   topUpService,
		XValidator:     XValidator,
		health:         health,
	}
}

func (h *Handler) Pong(c *fiber.Ctx) error {
	return c.SendString("pong")
}

func (h *Handler) Health(c *fiber.Ctx) error {
	if err := h.health.HealthCheck(c.UserContext()); err != nil {
		h.logger.Error("Health check failed", zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(
			HealthResponse{Status: "unhealthy", Timestamp: time.Now().Unix(), Service: serviceName})
	}

	return c.JSON(HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().Unix(),
		Service:   serviceName,
		Database:  h.health.DatabaseInfo(),
	})
}

// GetSession issues a new customer session bound to the caller's IP and user agent.
func (h *Handler) GetSession(c *fiber.Ctx) error {
	cmd := service.CreateSessionCommand{
		ClientIP:  c.IP(),
		UserAgent: c.Get(fiber.HeaderUserAgent),
	}

	resp, err := h.sessionService.CreateSession(c.UserContext(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(SessionResponse{Message: constants.MsgServiceRunning, SessionKey: resp.SessionKey})
}

func (h *Handler) TopUp(c *fiber.Ctx) error {
	var request TopUpRequest

	if errs := h.XValidator.Validator(&request, "topup", c); errs != nil {
		h.logger.Warn("Invalid top-up request", zap.Any("errors", errs))
		return c.Status(fiber.StatusBadRequest).JSON(errs)
	}

	cmd := service.TopUpCommand{
		RecipientPhoneNumber: request.RecipientPhoneNumber,
		Amount:               *request.Amount,
		SessionKey:           request.sessionKey(),
	}

	resp, err := h.topUpService.TopUp(c.UserContext(), cmd)
	if err != nil {
		return err
	}

	switch result := resp.Result.(type) {
	case mpesa.Success:
		return c.JSON(TopUpSuccessResponse{
			Message:           constants.MsgTopUpSuccessful,
			SafaricomResponse: result.Payload.String(),
		})
	case mpesa.Failure:
		return c.Status(fiber.StatusBadRequest).JSON(TopUpFailureResponse{
			Message:           constants.MsgTopUpFailed,
			SafaricomResponse: result.Payload,
		})
	default:
		h.logger.Error("Top-up finished without a provider result")
		return fiber.ErrInternalServerError
	}
}
