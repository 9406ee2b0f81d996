package crypto

import (
	"math/big"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
)

const (
	// SignatureLength is the length of R || S || V signatures.
	SignatureLength = ethcrypto.SignatureLength
	// DigestLength is the length of a digest that can be signed.
	DigestLength = ethcrypto.DigestLength
)

// Recoverer extracts the address of the signer from a signature over given
// digest.
type Recoverer interface {
	Recover(digest, sig []byte) (vault.Address, error)
}

// Secp256k1Recoverer recovers signers of secp256k1 signatures. The zero value
// is ready to use.
type Secp256k1Recoverer struct{}

var _ Recoverer = Secp256k1Recoverer{}

// Recover returns the address of the key that produced the signature.
// Signatures with a high S value are rejected, so that every signature has a
// single valid encoding.
func (Secp256k1Recoverer) Recover(digest, sig []byte) (vault.Address, error) {
	if len(digest) != DigestLength {
		return vault.ZeroAddress, errors.Wrapf(errors.ErrInput, "digest must be %d bytes, got %d", DigestLength, len(digest))
	}
	norm, err := NormalizeSignature(sig)
	if err != nil {
		return vault.ZeroAddress, err
	}
	r := new(big.Int).SetBytes(norm[:32])
	s := new(big.Int).SetBytes(norm[32:64])
	if !ethcrypto.ValidateSignatureValues(norm[64], r, s, true) {
		return vault.ZeroAddress, errors.Wrap(errors.ErrInput, "invalid signature values")
	}
	pub, err := ethcrypto.SigToPub(digest, norm)
	if err != nil {
		return vault.ZeroAddress, errors.Wrapf(errors.ErrInput, "cannot recover public key: %s", err)
	}
	return vault.Address(ethcrypto.PubkeyToAddress(*pub)), nil
}

// NormalizeSignature returns a copy of the signature with V converted to the
// raw recovery id.
func NormalizeSignature(sig []byte) ([]byte, error) {
	if len(sig) != SignatureLength {
		return nil, errors.Wrapf(errors.ErrInput, "signature must be %d bytes, got %d", SignatureLength, len(sig))
	}
	norm := make([]byte, SignatureLength)
	copy(norm, sig)
	switch v := sig[64]; {
	case v == 0 || v == 1:
	case v == 27 || v == 28:
		norm[64] = v - 27
	case v >= 35:
		// EIP-155: v = chainID * 2 + 35 + recovery id
		norm[64] = (v - 35) % 2
	default:
		return nil, errors.Wrapf(errors.ErrInput, "invalid recovery value %d", v)
	}
	return norm, nil
}
