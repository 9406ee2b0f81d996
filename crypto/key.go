package crypto

import (
	"crypto/ecdsa"
	"encoding/hex"
	"strings"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
)

// PrivateKey is a secp256k1 key that an owner signs digests with.
type PrivateKey struct {
	key *ecdsa.PrivateKey
}

// GenerateKey returns a new random key.
func GenerateKey() (*PrivateKey, error) {
	k, err := ethcrypto.GenerateKey()
	if err != nil {
		return nil, errors.Wrap(err, "generate key")
	}
	return &PrivateKey{key: k}, nil
}

// ParsePrivateKey decodes a hex encoded key. The 0x prefix is optional.
func ParsePrivateKey(s string) (*PrivateKey, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "0x")
	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, "private key is not hex encoded")
	}
	k, err := ethcrypto.ToECDSA(raw)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "invalid private key: %s", err)
	}
	return &PrivateKey{key: k}, nil
}

// Hex returns the hex encoded key, without the 0x prefix.
func (k *PrivateKey) Hex() string {
	return hex.EncodeToString(ethcrypto.FromECDSA(k.key))
}

// Address returns the address of the public part of this key.
func (k *PrivateKey) Address() vault.Address {
	return vault.Address(ethcrypto.PubkeyToAddress(k.key.PublicKey))
}

// Sign returns an R || S || V signature of the digest, with V being 27 or 28.
func (k *PrivateKey) Sign(digest []byte) ([]byte, error) {
	sig, err := ethcrypto.Sign(digest, k.key)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "cannot sign: %s", err)
	}
	sig[64] += 27
	return sig, nil
}
