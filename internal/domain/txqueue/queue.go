package txqueue

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/quantex-lab/relayer/config"
	"github.com/quantex-lab/relayer/internal/domain/notification"
	"github.com/quantex-lab/relayer/internal/entity"
	"github.com/quantex-lab/relayer/internal/repository"
	"github.com/quantex-lab/relayer/pkg/blockchain/eth"
	"github.com/quantex-lab/relayer/pkg/errorx"
	"github.com/quantex-lab/relayer/pkg/ethutil"
	"github.com/quantex-lab/relayer/pkg/pubsub"
	"github.com/quantex-lab/relayer/pkg/xcontext"
	"github.com/quantex-lab/relayer/pkg/xredis"

	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync"
)

const tokenTransferGasLimit = uint64(65000)

// TxQueue serializes every submission from the relayer account. Exactly one
// worker drains the queue, which is what guarantees gap-free, strictly
// increasing nonces without a lock around the nonce itself. Receipt waiting
// runs concurrently with the next request; only submission is serialized.
type TxQueue struct {
	chain  string
	cfg    config.RelayerConfigs
	client eth.EthClient
	signer *eth.TxSigner
	gate   ConfirmationGate

	guard    *balanceGuard
	recorder *recorder
	txRepo   repository.TransactionRepository
	nonce    *nonceState

	mutex   sync.Mutex
	backlog []*item
	wakeCh  chan struct{}

	// inFlight tracks submitted transactions still waiting for a receipt,
	// keyed by tx hash.
	inFlight *xsync.MapOf[string, *item]
}

type item struct {
	req        *Request
	pending    *PendingTx
	startedAt  time.Time
	txHash     common.Hash
	submitTime time.Duration
}

func NewTxQueue(
	chainCfg config.ChainConfigs,
	relayerCfg config.RelayerConfigs,
	startingNonce uint64,
	client eth.EthClient,
	signer *eth.TxSigner,
	gate ConfirmationGate,
	notifier notification.Notifier,
	txRepo repository.TransactionRepository,
	publisher pubsub.Publisher,
	redisClient xredis.Client,
	telemetryTopic string,
) *TxQueue {
	floor, ok := ethutil.ParseWei(relayerCfg.MinBalance)
	if !ok {
		floor = nil
	}

	account := signer.Address()
	return &TxQueue{
		chain:    chainCfg.Chain,
		cfg:      relayerCfg,
		client:   client,
		signer:   signer,
		gate:     gate,
		guard:    newBalanceGuard(client, account, floor, notifier),
		recorder: newRecorder(chainCfg.Chain, account, telemetryTopic, publisher, redisClient),
		txRepo:   txRepo,
		nonce:    newNonceState(startingNonce),
		wakeCh:   make(chan struct{}, 1),
		inFlight: xsync.NewMapOf[*item](),
	}
}

// Enqueue accepts a request and returns immediately with both futures
// unsettled. Order of processing is strict FIFO; an enqueued request cannot
// be withdrawn.
func (q *TxQueue) Enqueue(ctx context.Context, req *Request) *PendingTx {
	if req.ActionID == "" {
		req.ActionID = uuid.NewString()
	}

	it := &item{
		req:       req,
		pending:   newPendingTx(),
		startedAt: time.Now(),
	}

	q.mutex.Lock()
	q.backlog = append(q.backlog, it)
	q.mutex.Unlock()

	select {
	case q.wakeCh <- struct{}{}:
	default:
	}

	return it.pending
}

func (q *TxQueue) Start(ctx context.Context) {
	xcontext.Logger(ctx).Infof("Starting transaction queue for %s on chain %s",
		q.signer.Address().Hex(), q.chain)
	go q.run(ctx)
}

func (q *TxQueue) run(ctx context.Context) {
	for {
		it := q.pop()
		if it == nil {
			select {
			case <-ctx.Done():
				return
			case <-q.wakeCh:
				continue
			}
		}

		q.process(ctx, it)
	}
}

func (q *TxQueue) pop() *item {
	q.mutex.Lock()
	defer q.mutex.Unlock()

	if len(q.backlog) == 0 {
		return nil
	}

	it := q.backlog[0]
	q.backlog = q.backlog[1:]
	return it
}

// process runs one request up to submission. Any failure settles the futures
// and the worker moves on; nothing here may stop the loop.
func (q *TxQueue) process(ctx context.Context, it *item) {
	req := it.req

	if err := q.guard.check(ctx); err != nil {
		q.failSubmission(ctx, it, err)
		return
	}

	err := q.nonce.refreshIfStale(ctx, q.client, q.signer.Address(), q.cfg.NonceStaleThreshold)
	if err != nil {
		q.failSubmission(ctx, it, errorx.Wrap(errorx.ErrGeneric, "cannot refresh nonce: %v", err))
		return
	}

	if err := q.gate.Approve(ctx, req); err != nil {
		q.failSubmission(ctx, it, err)
		return
	}

	params, err := q.callParams(req)
	if err != nil {
		q.failSubmission(ctx, it, err)
		return
	}

	tx, err := q.signer.SignedTx(ctx, q.client, params)
	if err != nil {
		q.failSubmission(ctx, it, errorx.Wrap(errorx.ErrSubmitTransaction, "cannot sign transaction: %v", err))
		return
	}

	if err := q.submit(ctx, tx); err != nil {
		q.failSubmission(ctx, it, err)
		return
	}

	it.txHash = tx.Hash()
	it.submitTime = time.Since(it.startedAt)
	q.nonce.advance()

	xcontext.Logger(ctx).Infof("Submitted tx %s with nonce %d for action %s",
		it.txHash.Hex(), tx.Nonce(), req.ActionID)

	it.pending.resolveSubmitted(it.txHash)
	q.saveHistory(ctx, it, tx.Nonce())

	q.inFlight.Store(it.txHash.Hex(), it)
	go q.waitReceipt(ctx, it)
}

// callParams translates the typed request into the network's low-level call
// encoding. The nonce is read here, after refresh, and consumed only if the
// submission succeeds.
func (q *TxQueue) callParams(req *Request) (eth.TxParams, error) {
	params := eth.TxParams{
		Nonce:     q.nonce.current(),
		GasPrice:  req.Overrides.GasPrice,
		GasTipCap: req.Overrides.GasTipCap,
		GasLimit:  req.Overrides.GasLimit,
	}

	switch req.Type {
	case TxTypeNativeTransfer:
		params.To = req.To
		params.Value = req.Amount

	case TxTypeTokenTransfer:
		data, err := eth.PackERC20Transfer(req.To, req.Amount)
		if err != nil {
			return eth.TxParams{}, errorx.Wrap(errorx.ErrBadRequest, "cannot encode token transfer: %v", err)
		}

		params.To = req.TokenAddress
		params.Data = data
		if params.GasLimit == 0 {
			params.GasLimit = tokenTransferGasLimit
		}

	case TxTypeContractCall:
		params.To = req.To
		params.Value = req.Amount
		params.Data = req.Data

	default:
		return eth.TxParams{}, errorx.Wrap(errorx.ErrBadRequest, "unknown transaction type %s", req.Type)
	}

	return params, nil
}

// submit broadcasts with a bounded wait. On timeout nothing was accepted as
// far as we know, so the nonce is left untouched and retry with the same
// nonce is safe. Duplicate submissions reported by other nodes count as
// success.
func (q *TxQueue) submit(ctx context.Context, tx *ethtypes.Transaction) error {
	submitCtx, cancel := context.WithTimeout(ctx, q.cfg.SubmitTimeout)
	defer cancel()

	err := q.client.SendTransaction(submitCtx, tx)
	if err == nil {
		return nil
	}

	if strings.Contains(err.Error(), "already known") {
		// Another node has seen this transaction already. Ethereum does not
		// return error codes in its JSON RPC, so we have to rely on string
		// matching.
		return nil
	}

	if submitCtx.Err() == context.DeadlineExceeded {
		return errorx.ErrSubmissionTimeout
	}

	return errorx.Wrap(errorx.ErrSubmitTransaction, "cannot submit transaction: %v", err)
}

// waitReceipt polls for the receipt with no upper bound. Once broadcast, the
// fate of the transaction is the network's responsibility.
func (q *TxQueue) waitReceipt(ctx context.Context, it *item) {
	defer q.inFlight.Delete(it.txHash.Hex())

	ticker := time.NewTicker(q.cfg.ReceiptPollFrequency)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			it.pending.rejectConfirmation(ctx.Err())
			return
		case <-ticker.C:
		}

		receipt, err := q.client.TransactionReceipt(ctx, it.txHash)
		if err != nil || receipt == nil {
			continue
		}

		rec := &Record{
			Type:           string(it.req.Type),
			ActionID:       it.req.ActionID,
			StartedAt:      it.startedAt.UnixMilli(),
			TxHash:         it.txHash.Hex(),
			TimeToSubmitMs: it.submitTime.Milliseconds(),
			Endpoint:       q.client.Endpoint(),
			Diagnostic:     it.req.Diagnostic,
		}

		if receipt.Status == ethtypes.ReceiptStatusFailed {
			xcontext.Logger(ctx).Warnf("Tx %s of action %s reverted", it.txHash.Hex(), it.req.ActionID)
			it.pending.rejectConfirmation(errorx.ErrTransactionReverted)
			rec.Error = errorx.ErrTransactionReverted.Message
			rec.TimeToErrorMs = elapsedMs(it.startedAt)
			q.updateHistory(ctx, it, entity.TransactionStatusTypeFailure)
		} else {
			it.pending.resolveConfirmed(receipt)
			rec.TimeToConfirmMs = elapsedMs(it.startedAt)
			q.updateHistory(ctx, it, entity.TransactionStatusTypeSuccess)
		}

		q.recorder.record(ctx, rec)
		return
	}
}

// failSubmission settles both futures with err and emits the telemetry
// record for this request before the worker moves on.
func (q *TxQueue) failSubmission(ctx context.Context, it *item, err error) {
	xcontext.Logger(ctx).Warnf("Request %s failed before submission: %v", it.req.ActionID, err)
	it.pending.rejectSubmission(err)

	q.recorder.record(ctx, &Record{
		Type:          string(it.req.Type),
		ActionID:      it.req.ActionID,
		StartedAt:     it.startedAt.UnixMilli(),
		Error:         err.Error(),
		TimeToErrorMs: elapsedMs(it.startedAt),
		Endpoint:      q.client.Endpoint(),
		Diagnostic:    it.req.Diagnostic,
	})
}

func (q *TxQueue) saveHistory(ctx context.Context, it *item, nonce uint64) {
	if q.txRepo == nil {
		return
	}

	err := q.txRepo.Create(ctx, &entity.Transaction{
		Base:       entity.Base{ID: uuid.NewString()},
		Chain:      q.chain,
		TxHash:     it.txHash.Hex(),
		Nonce:      nonce,
		Address:    q.signer.Address().Hex(),
		ActionID:   it.req.ActionID,
		Type:       string(it.req.Type),
		Diagnostic: it.req.Diagnostic,
		Status:     entity.TransactionStatusTypeInProgress,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot save history of tx %s: %v", it.txHash.Hex(), err)
	}
}

func (q *TxQueue) updateHistory(ctx context.Context, it *item, status entity.TransactionStatusType) {
	if q.txRepo == nil {
		return
	}

	if err := q.txRepo.UpdateStatusByTxHash(ctx, it.txHash.Hex(), q.chain, status); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update history of tx %s: %v", it.txHash.Hex(), err)
	}
}

// InFlight reports how many submitted transactions still wait for a receipt.
func (q *TxQueue) InFlight() int {
	return q.inFlight.Size()
}
