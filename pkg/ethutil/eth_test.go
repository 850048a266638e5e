package ethutil

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParsePrivateKey(t *testing.T) {
	key1, err := ParsePrivateKey("7886876e514713dcdc516d1d5a4bde14db8027ae67707303a14d09ba7c409ad4")
	require.NoError(t, err)

	key2, err := ParsePrivateKey("0x7886876e514713dcdc516d1d5a4bde14db8027ae67707303a14d09ba7c409ad4")
	require.NoError(t, err)

	require.Equal(t, AddressOf(key1), AddressOf(key2))

	_, err = ParsePrivateKey("not a key")
	require.Error(t, err)
}

func TestGeneratePrivateKeyIsDeterministic(t *testing.T) {
	key1, err := GeneratePrivateKey([]byte("secret"), []byte("wallet-1"))
	require.NoError(t, err)

	key2, err := GeneratePrivateKey([]byte("secret"), []byte("wallet-1"))
	require.NoError(t, err)

	key3, err := GeneratePrivateKey([]byte("secret"), []byte("wallet-2"))
	require.NoError(t, err)

	require.Equal(t, AddressOf(key1), AddressOf(key2))
	require.NotEqual(t, AddressOf(key1), AddressOf(key3))
}

func TestParseWei(t *testing.T) {
	v, ok := ParseWei("")
	require.True(t, ok)
	require.Nil(t, v)

	v, ok = ParseWei("1000000000000000000")
	require.True(t, ok)
	require.Equal(t, big.NewInt(1_000_000_000_000_000_000), v)

	_, ok = ParseWei("1.5")
	require.False(t, ok)
}
