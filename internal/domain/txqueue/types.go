package txqueue

import (
	"math/big"

	"github.com/quantex-lab/relayer/pkg/enum"

	"github.com/ethereum/go-ethereum/common"
)

type TxType string

var (
	TxTypeNativeTransfer = enum.New(TxType("native_transfer"))
	TxTypeTokenTransfer  = enum.New(TxType("token_transfer"))
	TxTypeContractCall   = enum.New(TxType("contract_call"))
)

// Overrides carries caller-supplied gas parameters. Zero values mean the
// signer asks the network instead.
type Overrides struct {
	GasPrice  *big.Int
	GasTipCap *big.Int
	GasLimit  uint64
}

// Request describes one state-changing operation the caller wants submitted
// from the relayer account. The queue never interprets Diagnostic; it is
// copied into the telemetry record as-is.
type Request struct {
	// ActionID correlates the request with the caller's own records. The
	// queue assigns a random one when empty.
	ActionID string

	Type TxType

	// To is the recipient for transfers and the contract for calls.
	To common.Address

	// TokenAddress is the ERC20 contract, token transfers only.
	TokenAddress common.Address

	// Amount is the native value in wei, or the token amount for token
	// transfers.
	Amount *big.Int

	// Data is the calldata, contract calls only.
	Data []byte

	Overrides Overrides

	Diagnostic map[string]any
}
