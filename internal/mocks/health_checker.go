package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type HealthChecker struct {
	mock.Mock
}

func (h *HealthChecker) HealthCheck(ctx context.Context) error {
	args := h.Called(ctx)
	return args.Error(0)
}

func (h *HealthChecker) DatabaseInfo() map[string]interface{} {
	args := h.Called()
	info, _ := args.Get(0).(map[string]interface{})
	return info
}
