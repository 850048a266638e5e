package repository

import (
	"testing"

	"github.com/quantex-lab/relayer/internal/entity"
	"github.com/quantex-lab/relayer/pkg/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func Test_transactionRepository_UpdateStatusByTxHash(t *testing.T) {
	ctx := testutil.MockContext()
	repo := NewTransactionRepository()

	err := repo.Create(ctx, &entity.Transaction{
		Base:       entity.Base{ID: uuid.NewString()},
		Chain:      "testchain",
		TxHash:     "0xaaa",
		Nonce:      5,
		Address:    "0x1111111111111111111111111111111111111111",
		ActionID:   "action-1",
		Type:       "native_transfer",
		Diagnostic: entity.Map{"proof": "abc"},
		Status:     entity.TransactionStatusTypeInProgress,
	})
	require.NoError(t, err)

	err = repo.UpdateStatusByTxHash(ctx, "0xaaa", "testchain", entity.TransactionStatusTypeSuccess)
	require.NoError(t, err)

	tx, err := repo.GetByTxHash(ctx, "0xaaa", "testchain")
	require.NoError(t, err)
	require.Equal(t, entity.TransactionStatusTypeSuccess, tx.Status)
	require.Equal(t, uint64(5), tx.Nonce)
	require.Equal(t, "action-1", tx.ActionID)
	require.Equal(t, entity.Map{"proof": "abc"}, tx.Diagnostic)
}

func Test_transactionRepository_GetByTxHash_wrongChain(t *testing.T) {
	ctx := testutil.MockContext()
	repo := NewTransactionRepository()

	err := repo.Create(ctx, &entity.Transaction{
		Base:   entity.Base{ID: uuid.NewString()},
		Chain:  "testchain",
		TxHash: "0xbbb",
		Status: entity.TransactionStatusTypeInProgress,
	})
	require.NoError(t, err)

	_, err = repo.GetByTxHash(ctx, "0xbbb", "otherchain")
	require.Error(t, err)
}

func Test_transactionRepository_GetLastByAddress(t *testing.T) {
	ctx := testutil.MockContext()
	repo := NewTransactionRepository()

	address := "0x1111111111111111111111111111111111111111"
	for i, hash := range []string{"0x01", "0x02", "0x03"} {
		err := repo.Create(ctx, &entity.Transaction{
			Base:    entity.Base{ID: uuid.NewString()},
			Chain:   "testchain",
			TxHash:  hash,
			Nonce:   uint64(i),
			Address: address,
			Status:  entity.TransactionStatusTypeSuccess,
		})
		require.NoError(t, err)
	}

	last, err := repo.GetLastByAddress(ctx, address)
	require.NoError(t, err)
	require.Equal(t, "0x03", last.TxHash)
	require.Equal(t, uint64(2), last.Nonce)
}
