package txqueue

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/quantex-lab/relayer/internal/domain/notification"
	"github.com/quantex-lab/relayer/pkg/errorx"
	"github.com/quantex-lab/relayer/pkg/xcontext"
	"github.com/quantex-lab/relayer/pkg/xredis"

	"github.com/ethereum/go-ethereum/common"
)

// ConfirmationGate decides whether a request may be broadcast. Approve may
// suspend for as long as it takes an operator to answer.
type ConfirmationGate interface {
	Approve(ctx context.Context, req *Request) error
}

// autoGate approves without asking anyone, up to an optional value ceiling.
type autoGate struct {
	ceiling *big.Int
}

func NewAutoGate(ceiling *big.Int) *autoGate {
	return &autoGate{ceiling: ceiling}
}

func (g *autoGate) Approve(ctx context.Context, req *Request) error {
	if g.ceiling == nil || req.Amount == nil {
		return nil
	}

	if req.Type == TxTypeNativeTransfer && req.Amount.Cmp(g.ceiling) > 0 {
		return errorx.Wrap(errorx.ErrConfirmationDenied,
			"transfer of %s wei exceeds the auto approve ceiling", req.Amount.String())
	}

	return nil
}

const (
	approvalKeyPrefix = "relayer:approval:"
	decisionApprove   = "approve"
	decisionDeny      = "deny"
)

// redisGate announces the request to the operator channel and then waits for
// a decision key to show up in redis. The wait is unbounded.
type redisGate struct {
	account       common.Address
	redisClient   xredis.Client
	notifier      notification.Notifier
	pollFrequency time.Duration
}

func NewRedisGate(
	account common.Address,
	redisClient xredis.Client,
	notifier notification.Notifier,
	pollFrequency time.Duration,
) *redisGate {
	return &redisGate{
		account:       account,
		redisClient:   redisClient,
		notifier:      notifier,
		pollFrequency: pollFrequency,
	}
}

func (g *redisGate) Approve(ctx context.Context, req *Request) error {
	summary := fmt.Sprintf("type = %s, to = %s, amount = %s",
		req.Type, req.To.Hex(), req.Amount)
	if err := g.notifier.ApprovalRequest(ctx, g.account, req.ActionID, summary); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot announce approval request %s: %v", req.ActionID, err)
	}

	key := approvalKeyPrefix + req.ActionID
	ticker := time.NewTicker(g.pollFrequency)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		decision, err := g.redisClient.Get(ctx, key)
		if err != nil {
			if !xredis.IsNil(err) {
				xcontext.Logger(ctx).Warnf("Cannot read approval decision of %s: %v", req.ActionID, err)
			}
			continue
		}

		if err := g.redisClient.Del(ctx, key); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot clean up approval key of %s: %v", req.ActionID, err)
		}

		switch decision {
		case decisionApprove:
			return nil
		case decisionDeny:
			return errorx.ErrConfirmationDenied
		default:
			xcontext.Logger(ctx).Warnf("Unknown decision %s for request %s", decision, req.ActionID)
			return errorx.ErrConfirmationDenied
		}
	}
}
