package eth

import (
	"context"
	"crypto/ecdsa"
	"math/big"

	"github.com/quantex-lab/relayer/config"
	"github.com/quantex-lab/relayer/pkg/ethutil"

	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
)

const transferGasLimit = uint64(21000)

// TxParams is the low-level call encoding handed to the signer. Nonce is
// always assigned by the queue worker, never here.
type TxParams struct {
	Nonce uint64
	To    common.Address
	Value *big.Int
	Data  []byte

	// Overrides; zero values mean "ask the network" or use the default.
	GasPrice  *big.Int
	GasTipCap *big.Int
	GasLimit  uint64
}

// TxSigner builds and signs transactions for the relayer account.
type TxSigner struct {
	privateKey *ecdsa.PrivateKey
	chainID    *big.Int
	useEip1559 bool
}

func NewTxSigner(chainCfg config.ChainConfigs, relayerCfg config.RelayerConfigs) (*TxSigner, error) {
	privateKey, err := ethutil.ParsePrivateKey(relayerCfg.PrivateKey)
	if err != nil {
		return nil, err
	}

	return &TxSigner{
		privateKey: privateKey,
		chainID:    big.NewInt(chainCfg.ChainID),
		useEip1559: chainCfg.UseEip1559,
	}, nil
}

func (s *TxSigner) Address() common.Address {
	return ethutil.AddressOf(s.privateKey)
}

// SignedTx fills in gas defaults from the network and returns a signed
// transaction ready for SendTransaction.
func (s *TxSigner) SignedTx(ctx context.Context, client EthClient, params TxParams) (*ethtypes.Transaction, error) {
	gasPrice := params.GasPrice
	if gasPrice == nil {
		var err error
		gasPrice, err = client.SuggestGasPrice(ctx)
		if err != nil {
			return nil, err
		}
	}

	gasLimit := params.GasLimit
	if gasLimit == 0 {
		gasLimit = transferGasLimit
	}

	value := params.Value
	if value == nil {
		value = common.Big0
	}

	var tx *ethtypes.Transaction
	if s.useEip1559 {
		tipCap := params.GasTipCap
		if tipCap == nil {
			tipCap = gasPrice
		}

		tx = ethtypes.NewTx(&ethtypes.DynamicFeeTx{
			ChainID:   s.chainID,
			Nonce:     params.Nonce,
			GasTipCap: tipCap,
			GasFeeCap: gasPrice,
			Gas:       gasLimit,
			To:        &params.To,
			Value:     value,
			Data:      params.Data,
		})
	} else {
		tx = ethtypes.NewTransaction(params.Nonce, params.To, value, gasLimit, gasPrice, params.Data)
	}

	return ethtypes.SignTx(tx, s.signer(), s.privateKey)
}

func (s *TxSigner) signer() ethtypes.Signer {
	if s.useEip1559 {
		return ethtypes.NewLondonSigner(s.chainID)
	}

	return ethtypes.NewEIP155Signer(s.chainID)
}
