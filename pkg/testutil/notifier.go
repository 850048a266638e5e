package testutil

import (
	"context"
	"math/big"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/common"
)

// MockNotifier counts alerts instead of sending them anywhere.
type MockNotifier struct {
	LowBalanceAlerts   int64
	ApprovalRequests   int64
	LowBalanceFunc     func(ctx context.Context, account common.Address, balance, floor *big.Int) error
	ApprovalRequestFun func(ctx context.Context, account common.Address, actionID, summary string) error
}

func (m *MockNotifier) LowBalanceAlert(
	ctx context.Context, account common.Address, balance, floor *big.Int,
) error {
	atomic.AddInt64(&m.LowBalanceAlerts, 1)
	if m.LowBalanceFunc != nil {
		return m.LowBalanceFunc(ctx, account, balance, floor)
	}

	return nil
}

func (m *MockNotifier) ApprovalRequest(
	ctx context.Context, account common.Address, actionID, summary string,
) error {
	atomic.AddInt64(&m.ApprovalRequests, 1)
	if m.ApprovalRequestFun != nil {
		return m.ApprovalRequestFun(ctx, account, actionID, summary)
	}

	return nil
}

func (m *MockNotifier) CountLowBalanceAlerts() int64 {
	return atomic.LoadInt64(&m.LowBalanceAlerts)
}
