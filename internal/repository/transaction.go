package repository

import (
	"context"

	"github.com/quantex-lab/relayer/internal/entity"
	"github.com/quantex-lab/relayer/pkg/xcontext"
)

type TransactionRepository interface {
	Create(ctx context.Context, e *entity.Transaction) error
	UpdateStatusByTxHash(ctx context.Context, txHash, chain string, status entity.TransactionStatusType) error
	GetByTxHash(ctx context.Context, txHash, chain string) (*entity.Transaction, error)
	GetLastByAddress(ctx context.Context, address string) (*entity.Transaction, error)
}

type transactionRepository struct{}

func NewTransactionRepository() *transactionRepository {
	return &transactionRepository{}
}

func (r *transactionRepository) Create(ctx context.Context, e *entity.Transaction) error {
	return xcontext.DB(ctx).Create(e).Error
}

func (r *transactionRepository) UpdateStatusByTxHash(
	ctx context.Context, txHash, chain string, status entity.TransactionStatusType,
) error {
	return xcontext.DB(ctx).Model(&entity.Transaction{}).
		Where("tx_hash = ? AND chain = ?", txHash, chain).
		Update("status", status).Error
}

func (r *transactionRepository) GetByTxHash(ctx context.Context, txHash, chain string) (*entity.Transaction, error) {
	var result entity.Transaction
	if err := xcontext.DB(ctx).Take(&result, "tx_hash = ? AND chain = ?", txHash, chain).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *transactionRepository) GetLastByAddress(ctx context.Context, address string) (*entity.Transaction, error) {
	var result entity.Transaction
	err := xcontext.DB(ctx).Order("created_at DESC").Take(&result, "address = ?", address).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}
