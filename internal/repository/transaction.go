package repository

import (
	"context"

	"github.com/Behyna/airtime-topup/internal/model"
	"gorm.io/gorm"
)

type TransactionRepository interface {
	Create(ctx context.Context, transaction *model.Transaction) error
}

type Transaction struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &Transaction{db: db}
}

func (t *Transaction) Create(ctx context.Context, transaction *model.Transaction) error {
	err := GetTx(ctx, t.db).Omit("Session").Create(transaction).Error
	if err == nil {
		return nil
	}

	if mysqlErrorNumber(err) == mysqlForeignKeyFailed {
		return ErrSessionReference
	}

	return err
}
