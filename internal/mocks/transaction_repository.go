package mocks

import (
	"context"

	"github.com/Behyna/airtime-topup/internal/model"
	"github.com/stretchr/testify/mock"
)

type TransactionRepository struct {
	mock.Mock
}

func (t *TransactionRepository) Create(ctx context.Context, transaction *model.Transaction) error {
	args := t.Called(ctx, transaction)
	return args.Error(0)
}
