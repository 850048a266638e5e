package entity

import (
	"github.com/quantex-lab/relayer/pkg/enum"
)

type TransactionStatusType string

var (
	TransactionStatusTypeInProgress = enum.New(TransactionStatusType("inprogress"))
	TransactionStatusTypeSuccess    = enum.New(TransactionStatusType("success"))
	TransactionStatusTypeFailure    = enum.New(TransactionStatusType("failure"))
)

// Transaction is the history row for every submission that reached the
// network. It is written best-effort; the queue does not depend on it.
type Transaction struct {
	Base

	Chain    string `gorm:"index:idx_transaction_chain_txhash,unique"`
	TxHash   string `gorm:"index:idx_transaction_chain_txhash,unique"`
	Nonce    uint64
	Address  string
	ActionID string
	Type     string

	// Diagnostic is the caller-supplied payload copied from the request.
	Diagnostic Map `gorm:"type:text"`

	Status TransactionStatusType
}
