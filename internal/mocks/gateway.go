package mocks

import (
	"context"

	"github.com/Behyna/airtime-topup/pkg/mpesa"
	"github.com/stretchr/testify/mock"
)

type Gateway struct {
	mock.Mock
}

func (g *Gateway) AccessToken(ctx context.Context) (string, error) {
	args := g.Called(ctx)
	return args.String(0), args.Error(1)
}

func (g *Gateway) TopUp(ctx context.Context, token string, request mpesa.TopUpRequest) (mpesa.TopUpResult, error) {
	args := g.Called(ctx, token, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(mpesa.TopUpResult), args.Error(1)
}
