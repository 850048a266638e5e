package eth

import (
	"math/big"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

const erc20TransferABI = `[{
	"constant": false,
	"inputs": [
		{"name": "_to", "type": "address"},
		{"name": "_value", "type": "uint256"}
	],
	"name": "transfer",
	"outputs": [{"name": "", "type": "bool"}],
	"type": "function"
}]`

var (
	erc20ABI     abi.ABI
	erc20ABIOnce sync.Once
)

// PackERC20Transfer encodes the calldata of an ERC20 transfer.
func PackERC20Transfer(recipient common.Address, amount *big.Int) ([]byte, error) {
	var err error
	erc20ABIOnce.Do(func() {
		erc20ABI, err = abi.JSON(strings.NewReader(erc20TransferABI))
	})
	if err != nil {
		return nil, err
	}

	return erc20ABI.Pack("transfer", recipient, amount)
}
