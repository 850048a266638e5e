package txqueue

import (
	"context"
	"testing"
	"time"

	"github.com/quantex-lab/relayer/pkg/testutil"

	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/require"
)

func TestRelayServiceTransfer(t *testing.T) {
	f := newQueueFixture(t, 0)

	var sent *ethtypes.Transaction
	f.client.SendTransactionFunc = func(ctx context.Context, tx *ethtypes.Transaction) error {
		sent = tx
		return nil
	}

	ctx, cancel := context.WithCancel(testutil.MockContextWithoutDB())
	defer cancel()
	f.queue.Start(ctx)

	service := NewRelayService(f.queue)

	waitCtx, waitCancel := context.WithTimeout(ctx, 5*time.Second)
	defer waitCancel()

	hash, err := service.Transfer(waitCtx, "action-1",
		"0x2222222222222222222222222222222222222222", "1000")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	require.Equal(t, sent.Hash().Hex(), hash)
	require.Equal(t, "1000", sent.Value().String())
}

func TestRelayServiceTransferRejectsBadAmount(t *testing.T) {
	f := newQueueFixture(t, 0)
	service := NewRelayService(f.queue)

	ctx := testutil.MockContextWithoutDB()
	_, err := service.Transfer(ctx, "action-1",
		"0x2222222222222222222222222222222222222222", "one hundred")
	require.Error(t, err)
}

func TestRelayServiceTransferToken(t *testing.T) {
	f := newQueueFixture(t, 0)

	var sent *ethtypes.Transaction
	f.client.SendTransactionFunc = func(ctx context.Context, tx *ethtypes.Transaction) error {
		sent = tx
		return nil
	}

	ctx, cancel := context.WithCancel(testutil.MockContextWithoutDB())
	defer cancel()
	f.queue.Start(ctx)

	service := NewRelayService(f.queue)

	waitCtx, waitCancel := context.WithTimeout(ctx, 5*time.Second)
	defer waitCancel()

	hash, err := service.TransferToken(waitCtx, "action-2",
		"0x3333333333333333333333333333333333333333",
		"0x2222222222222222222222222222222222222222", "500")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	// Token transfers go to the token contract with encoded calldata.
	require.Equal(t, "0x3333333333333333333333333333333333333333",
		sent.To().Hex())
	require.NotEmpty(t, sent.Data())
	require.Equal(t, "0", sent.Value().String())
}
