package txqueue

import (
	"context"
	"testing"
	"time"

	"github.com/quantex-lab/relayer/pkg/testutil"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

func TestNonceStateRefreshSkippedAfterRecentSubmission(t *testing.T) {
	ctx := testutil.MockContextWithoutDB()
	account := common.HexToAddress("0x1111111111111111111111111111111111111111")

	fetchCalls := 0
	client := &testutil.MockEthClient{
		PendingNonceAtFunc: func(ctx context.Context, account common.Address) (uint64, error) {
			fetchCalls++
			return 99, nil
		},
	}

	n := newNonceState(3)
	n.advance() // records a submission just now

	require.NoError(t, n.refreshIfStale(ctx, client, account, time.Hour))
	require.Equal(t, 0, fetchCalls)
	require.Equal(t, uint64(4), n.current())
}

func TestNonceStateRefreshNeverMovesBackward(t *testing.T) {
	ctx := testutil.MockContextWithoutDB()
	account := common.HexToAddress("0x1111111111111111111111111111111111111111")

	client := &testutil.MockEthClient{
		PendingNonceAtFunc: func(ctx context.Context, account common.Address) (uint64, error) {
			return 2, nil
		},
	}

	n := newNonceState(10)
	require.NoError(t, n.refreshIfStale(ctx, client, account, 0))
	require.Equal(t, uint64(10), n.current())
}

func TestNonceStateRefreshAdoptsHigherNetworkValue(t *testing.T) {
	ctx := testutil.MockContextWithoutDB()
	account := common.HexToAddress("0x1111111111111111111111111111111111111111")

	client := &testutil.MockEthClient{
		PendingNonceAtFunc: func(ctx context.Context, account common.Address) (uint64, error) {
			return 42, nil
		},
	}

	n := newNonceState(10)
	require.NoError(t, n.refreshIfStale(ctx, client, account, 0))
	require.Equal(t, uint64(42), n.current())
}
