package ethutil

import (
	"bytes"
	"crypto/ecdsa"
	"crypto/sha256"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

// ParsePrivateKey accepts a hex private key with or without the 0x prefix.
func ParsePrivateKey(hexkey string) (*ecdsa.PrivateKey, error) {
	return ethcrypto.HexToECDSA(strings.TrimPrefix(hexkey, "0x"))
}

// GeneratePrivateKey derives a deterministic key from a secret and a
// per-wallet nonce. Used when the relayer account is derived rather than
// configured directly.
func GeneratePrivateKey(secret, nonce []byte) (*ecdsa.PrivateKey, error) {
	seed := sha256.Sum256(append(secret, nonce...))
	randomSeed := bytes.Repeat(seed[:], 2)
	reader := bytes.NewReader(randomSeed)
	return ecdsa.GenerateKey(ethcrypto.S256(), reader)
}

func AddressOf(privateKey *ecdsa.PrivateKey) common.Address {
	return ethcrypto.PubkeyToAddress(privateKey.PublicKey)
}

func PublicKeyBytesToAddress(pubKey []byte) common.Address {
	return common.BytesToAddress(ethcrypto.Keccak256(pubKey[1:])[12:])
}

// ParseWei parses a decimal wei amount from config. Returns nil for an empty
// string.
func ParseWei(s string) (*big.Int, bool) {
	if s == "" {
		return nil, true
	}

	v, ok := new(big.Int).SetString(s, 10)
	return v, ok
}
