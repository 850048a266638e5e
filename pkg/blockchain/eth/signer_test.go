package eth

import (
	"context"
	"math/big"
	"testing"

	"github.com/quantex-lab/relayer/config"
	"github.com/quantex-lab/relayer/pkg/testutil"

	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/require"
)

const testPrivateKey = "7886876e514713dcdc516d1d5a4bde14db8027ae67707303a14d09ba7c409ad4"

func TestTxSignerLegacy(t *testing.T) {
	signer, err := NewTxSigner(
		config.ChainConfigs{Chain: "testchain", ChainID: 1337},
		config.RelayerConfigs{PrivateKey: testPrivateKey},
	)
	require.NoError(t, err)

	tx, err := signer.SignedTx(context.Background(), &testutil.MockEthClient{}, TxParams{
		Nonce: 7,
		To:    common.HexToAddress("0x2222222222222222222222222222222222222222"),
		Value: big.NewInt(100),
	})
	require.NoError(t, err)

	require.Equal(t, uint64(7), tx.Nonce())
	require.Equal(t, ethtypes.LegacyTxType, int(tx.Type()))
	require.Equal(t, uint64(21000), tx.Gas())
	require.Equal(t, "1000000000", tx.GasPrice().String())

	sender, err := ethtypes.Sender(ethtypes.NewEIP155Signer(big.NewInt(1337)), tx)
	require.NoError(t, err)
	require.Equal(t, signer.Address(), sender)
}

func TestTxSignerDynamicFee(t *testing.T) {
	signer, err := NewTxSigner(
		config.ChainConfigs{Chain: "testchain", ChainID: 1337, UseEip1559: true},
		config.RelayerConfigs{PrivateKey: testPrivateKey},
	)
	require.NoError(t, err)

	tx, err := signer.SignedTx(context.Background(), &testutil.MockEthClient{}, TxParams{
		Nonce:     3,
		To:        common.HexToAddress("0x2222222222222222222222222222222222222222"),
		Value:     big.NewInt(100),
		GasTipCap: big.NewInt(2),
	})
	require.NoError(t, err)

	require.Equal(t, ethtypes.DynamicFeeTxType, int(tx.Type()))
	require.Equal(t, "2", tx.GasTipCap().String())

	sender, err := ethtypes.Sender(ethtypes.NewLondonSigner(big.NewInt(1337)), tx)
	require.NoError(t, err)
	require.Equal(t, signer.Address(), sender)
}

func TestTxSignerOverrides(t *testing.T) {
	signer, err := NewTxSigner(
		config.ChainConfigs{Chain: "testchain", ChainID: 1337},
		config.RelayerConfigs{PrivateKey: testPrivateKey},
	)
	require.NoError(t, err)

	tx, err := signer.SignedTx(context.Background(), &testutil.MockEthClient{}, TxParams{
		Nonce:    0,
		To:       common.HexToAddress("0x2222222222222222222222222222222222222222"),
		GasPrice: big.NewInt(77),
		GasLimit: 90000,
	})
	require.NoError(t, err)

	require.Equal(t, "77", tx.GasPrice().String())
	require.Equal(t, uint64(90000), tx.Gas())
}

func TestPackERC20Transfer(t *testing.T) {
	data, err := PackERC20Transfer(
		common.HexToAddress("0x2222222222222222222222222222222222222222"), big.NewInt(500))
	require.NoError(t, err)

	// 4-byte selector of transfer(address,uint256) plus two 32-byte words.
	require.Len(t, data, 68)
	require.Equal(t, []byte{0xa9, 0x05, 0x9c, 0xbb}, data[:4])
}
