package errors

import (
	"errors"

	"github.com/Behyna/airtime-topup/internal/constants"
	"github.com/Behyna/airtime-topup/internal/service"
	"github.com/Behyna/airtime-topup/internal/validator"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func ErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var serviceErr service.Error
		if errors.As(err, &serviceErr) {
			return handleServiceError(c, serviceErr)
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			code := constants.ErrCodeInternalError
			if fiberErr.Code == fiber.StatusNotFound {
				code = constants.ErrCodeNotFound
			}
			return c.Status(fiberErr.Code).JSON(fiber.Map{
				"code":    code,
				"message": fiberErr.Message,
			})
		}

		logger.Error("Unhandled error",
			zap.Error(err),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
		)

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"code":    constants.ErrCodeInternalError,
			"message": constants.GetErrorMessage(constants.ErrCodeInternalError),
		})
	}
}

func handleServiceError(c *fiber.Ctx, err service.Error) error {
	status := constants.GetHTTPStatus(err.Code)

	switch err.Code {
	case constants.ErrCodeSessionFailed, constants.ErrCodeRecordFailed:
		fields := service.FieldErrors(err)
		if fields == nil {
			fields = validator.FieldErrors{validator.NonFieldErrors: {constants.MsgRecordNotSaved}}
		}

		return c.Status(status).JSON(fiber.Map{
			"message": constants.GetErrorMessage(err.Code),
			"errors":  fields,
		})
	}

	errorCode := err.Code
	if status == fiber.StatusInternalServerError {
		errorCode = constants.ErrCodeInternalError
	}

	return c.Status(status).JSON(fiber.Map{
		"code":    errorCode,
		"message": constants.GetErrorMessage(errorCode),
	})
}
