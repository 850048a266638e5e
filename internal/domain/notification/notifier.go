package notification

import (
	"context"
	"fmt"
	"math/big"

	"github.com/quantex-lab/relayer/pkg/api/telegram"

	"github.com/ethereum/go-ethereum/common"
)

// Notifier pushes operator-facing alerts out of band. It is process-wide and
// not tied to any single request.
type Notifier interface {
	LowBalanceAlert(ctx context.Context, account common.Address, balance, floor *big.Int) error
	ApprovalRequest(ctx context.Context, account common.Address, actionID, summary string) error
}

type telegramNotifier struct {
	endpoint telegram.IEndpoint
	chatID   string
}

func NewTelegramNotifier(endpoint telegram.IEndpoint, chatID string) *telegramNotifier {
	return &telegramNotifier{endpoint: endpoint, chatID: chatID}
}

func (n *telegramNotifier) LowBalanceAlert(
	ctx context.Context, account common.Address, balance, floor *big.Int,
) error {
	text := fmt.Sprintf("Relayer account %s is below the balance floor: balance = %s wei, floor = %s wei",
		account.Hex(), balance.String(), floor.String())
	return n.endpoint.SendMessage(ctx, n.chatID, text)
}

func (n *telegramNotifier) ApprovalRequest(
	ctx context.Context, account common.Address, actionID, summary string,
) error {
	text := fmt.Sprintf("Approval needed for %s from account %s: %s", actionID, account.Hex(), summary)
	return n.endpoint.SendMessage(ctx, n.chatID, text)
}
