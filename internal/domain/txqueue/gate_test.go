package txqueue

import (
	"math/big"
	"testing"
	"time"

	"github.com/quantex-lab/relayer/pkg/errorx"
	"github.com/quantex-lab/relayer/pkg/testutil"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

func TestAutoGate(t *testing.T) {
	ctx := testutil.MockContextWithoutDB()

	t.Run("no ceiling approves everything", func(t *testing.T) {
		gate := NewAutoGate(nil)
		require.NoError(t, gate.Approve(ctx, nativeTransfer("", 1_000_000)))
	})

	t.Run("within ceiling", func(t *testing.T) {
		gate := NewAutoGate(big.NewInt(100))
		require.NoError(t, gate.Approve(ctx, nativeTransfer("", 100)))
	})

	t.Run("above ceiling", func(t *testing.T) {
		gate := NewAutoGate(big.NewInt(100))
		err := gate.Approve(ctx, nativeTransfer("", 101))
		require.ErrorIs(t, err, errorx.ErrConfirmationDenied)
	})
}

func TestRedisGateApprove(t *testing.T) {
	ctx := testutil.MockContextWithoutDB()
	account := common.HexToAddress("0x1111111111111111111111111111111111111111")

	redisClient := testutil.NewInMemoryRedisClient()
	notifier := &testutil.MockNotifier{}
	gate := NewRedisGate(account, redisClient, notifier, time.Millisecond)

	req := nativeTransfer("action-1", 10)
	require.NoError(t, redisClient.Set(ctx, "relayer:approval:action-1", "approve"))

	require.NoError(t, gate.Approve(ctx, req))
	require.Equal(t, int64(1), notifier.ApprovalRequests)

	// The decision key is consumed.
	exists, err := redisClient.Exist(ctx, "relayer:approval:action-1")
	require.NoError(t, err)
	require.False(t, exists)
}

func TestRedisGateDeny(t *testing.T) {
	ctx := testutil.MockContextWithoutDB()
	account := common.HexToAddress("0x1111111111111111111111111111111111111111")

	redisClient := testutil.NewInMemoryRedisClient()
	gate := NewRedisGate(account, redisClient, &testutil.MockNotifier{}, time.Millisecond)

	req := nativeTransfer("action-2", 10)
	require.NoError(t, redisClient.Set(ctx, "relayer:approval:action-2", "deny"))

	err := gate.Approve(ctx, req)
	require.ErrorIs(t, err, errorx.ErrConfirmationDenied)
}

func TestRedisGateWaitsForDecision(t *testing.T) {
	ctx := testutil.MockContextWithoutDB()
	account := common.HexToAddress("0x1111111111111111111111111111111111111111")

	redisClient := testutil.NewInMemoryRedisClient()
	gate := NewRedisGate(account, redisClient, &testutil.MockNotifier{}, time.Millisecond)

	req := nativeTransfer("action-3", 10)

	go func() {
		time.Sleep(20 * time.Millisecond)
		_ = redisClient.Set(ctx, "relayer:approval:action-3", "approve")
	}()

	require.NoError(t, gate.Approve(ctx, req))
}
