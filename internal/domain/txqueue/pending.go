package txqueue

import (
	"context"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
)

// future holds a value that is settled exactly once by the queue worker.
type future[T any] struct {
	once  sync.Once
	done  chan struct{}
	value T
	err   error
}

func newFuture[T any]() *future[T] {
	return &future[T]{done: make(chan struct{})}
}

func (f *future[T]) settle(value T, err error) {
	f.once.Do(func() {
		f.value = value
		f.err = err
		close(f.done)
	})
}

func (f *future[T]) wait(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// PendingTx is returned to the caller at enqueue time. The two phases settle
// independently: Submitted when the network accepts the transaction into its
// pending pool, Confirmed when it lands in a block. A request that fails
// before submission settles both with the same error.
type PendingTx struct {
	submitted *future[common.Hash]
	confirmed *future[*ethtypes.Receipt]
}

func newPendingTx() *PendingTx {
	return &PendingTx{
		submitted: newFuture[common.Hash](),
		confirmed: newFuture[*ethtypes.Receipt](),
	}
}

// Submitted blocks until the transaction was broadcast, or the submission
// failed, or ctx is done.
func (p *PendingTx) Submitted(ctx context.Context) (common.Hash, error) {
	return p.submitted.wait(ctx)
}

// Confirmed blocks until the transaction has a receipt. There is no queue
// side timeout on this phase; cancel ctx to stop waiting.
func (p *PendingTx) Confirmed(ctx context.Context) (*ethtypes.Receipt, error) {
	return p.confirmed.wait(ctx)
}

func (p *PendingTx) resolveSubmitted(hash common.Hash) {
	p.submitted.settle(hash, nil)
}

func (p *PendingTx) resolveConfirmed(receipt *ethtypes.Receipt) {
	p.confirmed.settle(receipt, nil)
}

func (p *PendingTx) rejectSubmission(err error) {
	p.submitted.settle(common.Hash{}, err)
	p.confirmed.settle(nil, err)
}

func (p *PendingTx) rejectConfirmation(err error) {
	p.confirmed.settle(nil, err)
}
