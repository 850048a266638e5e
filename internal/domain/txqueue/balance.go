package txqueue

import (
	"context"
	"math/big"

	"github.com/quantex-lab/relayer/internal/domain/notification"
	"github.com/quantex-lab/relayer/pkg/blockchain/eth"
	"github.com/quantex-lab/relayer/pkg/errorx"
	"github.com/quantex-lab/relayer/pkg/xcontext"

	"github.com/ethereum/go-ethereum/common"
)

// balanceGuard refuses submission when the relayer account drops below the
// configured floor. Every refusal also fires a process-wide alert; the alert
// is not deduplicated on purpose so a drained account keeps paging.
type balanceGuard struct {
	client   eth.EthClient
	account  common.Address
	floor    *big.Int
	notifier notification.Notifier
}

func newBalanceGuard(
	client eth.EthClient, account common.Address, floor *big.Int, notifier notification.Notifier,
) *balanceGuard {
	return &balanceGuard{
		client:   client,
		account:  account,
		floor:    floor,
		notifier: notifier,
	}
}

func (g *balanceGuard) check(ctx context.Context) error {
	if g.floor == nil {
		return nil
	}

	balance, err := g.client.BalanceAt(ctx, g.account, nil)
	if err != nil {
		return err
	}

	if balance == nil {
		return errorx.Wrap(errorx.ErrGeneric, "cannot get balance of %s", g.account.Hex())
	}

	if balance.Cmp(g.floor) < 0 {
		if err := g.notifier.LowBalanceAlert(ctx, g.account, balance, g.floor); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot send low balance alert: %v", err)
		}

		return errorx.ErrInsufficientBalance
	}

	return nil
}
