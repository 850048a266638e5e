package txqueue

import (
	"context"
	"time"

	"github.com/quantex-lab/relayer/pkg/blockchain/eth"
	"github.com/quantex-lab/relayer/pkg/xcontext"

	"github.com/ethereum/go-ethereum/common"
)

// nonceState tracks the next sequence number of the relayer account. It is
// owned by the queue worker; nothing else reads or writes it, so no lock is
// needed.
type nonceState struct {
	next           uint64
	lastSubmission time.Time
}

func newNonceState(startingNonce uint64) *nonceState {
	return &nonceState{next: startingNonce}
}

func (n *nonceState) current() uint64 {
	return n.next
}

// advance is called after a successful submission only.
func (n *nonceState) advance() {
	n.next++
	n.lastSubmission = time.Now()
}

// refreshIfStale asks the network for the authoritative pending nonce when
// the local value has not been confirmed by a submission recently. This
// recovers from nonces advanced by other sessions using the same account.
// The local value never moves backward.
func (n *nonceState) refreshIfStale(
	ctx context.Context, client eth.EthClient, account common.Address, threshold time.Duration,
) error {
	if !n.lastSubmission.IsZero() && time.Since(n.lastSubmission) < threshold {
		return nil
	}

	fetched, err := client.PendingNonceAt(ctx, account)
	if err != nil {
		return err
	}

	if fetched > n.next {
		xcontext.Logger(ctx).Infof("Nonce of %s moved from %d to %d by another session",
			account.Hex(), n.next, fetched)
		n.next = fetched
	}

	return nil
}
