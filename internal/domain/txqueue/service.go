package txqueue

import (
	"context"
	"math/big"

	"github.com/quantex-lab/relayer/pkg/errorx"

	"github.com/ethereum/go-ethereum/common"
)

// RelayService is the RPC surface other services call to submit transactions
// through the queue. Every method blocks until the submission phase settles;
// confirmation is reported separately through telemetry and history.
type RelayService struct {
	queue *TxQueue
}

func NewRelayService(queue *TxQueue) *RelayService {
	return &RelayService{queue: queue}
}

func (s *RelayService) Transfer(ctx context.Context, actionID, to, amountWei string) (string, error) {
	amount, ok := new(big.Int).SetString(amountWei, 10)
	if !ok {
		return "", errorx.Wrap(errorx.ErrBadRequest, "invalid amount %s", amountWei)
	}

	pending := s.queue.Enqueue(ctx, &Request{
		ActionID: actionID,
		Type:     TxTypeNativeTransfer,
		To:       common.HexToAddress(to),
		Amount:   amount,
	})

	hash, err := pending.Submitted(ctx)
	if err != nil {
		return "", err
	}

	return hash.Hex(), nil
}

func (s *RelayService) TransferToken(
	ctx context.Context, actionID, token, to, amount string,
) (string, error) {
	value, ok := new(big.Int).SetString(amount, 10)
	if !ok {
		return "", errorx.Wrap(errorx.ErrBadRequest, "invalid amount %s", amount)
	}

	pending := s.queue.Enqueue(ctx, &Request{
		ActionID:     actionID,
		Type:         TxTypeTokenTransfer,
		TokenAddress: common.HexToAddress(token),
		To:           common.HexToAddress(to),
		Amount:       value,
	})

	hash, err := pending.Submitted(ctx)
	if err != nil {
		return "", err
	}

	return hash.Hex(), nil
}

func (s *RelayService) InFlight(ctx context.Context) int {
	return s.queue.InFlight()
}
