package service

import (
	"errors"

	"github.com/Behyna/airtime-topup/internal/constants"
	"github.com/Behyna/airtime-topup/internal/repository"
	"github.com/Behyna/airtime-topup/internal/validator"
)

type Error struct {
	Code  string
	Cause error
}

func NewServiceError(code string, cause error) error {
	return Error{Code: code, Cause: cause}
}

func (e Error) Error() string {
	return e.Code + ": " + e.Cause.Error()
}

func (e Error) Unwrap() error {
	return e.Cause
}

// FieldErrors returns the field level detail carried by err, or nil when the
// failure is not attributable to a field.
func FieldErrors(err error) validator.FieldErrors {
	var validationErr *validator.Error
	if errors.As(err, &validationErr) {
		return validationErr.Fields
	}

	if errors.Is(err, repository.ErrSessionKeyExists) {
		return validator.FieldErrors{"session_key": {constants.MsgSessionKeyExists}}
	}

	if errors.Is(err, repository.ErrSessionReference) {
		return validator.FieldErrors{"session": {"Invalid pk - object does not exist."}}
	}

	return nil
}
