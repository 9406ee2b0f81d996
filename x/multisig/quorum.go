package multisig

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/crypto"
	"github.com/iov-one/vault/errors"
)

// QuorumVerifier checks that a list of signatures was produced by enough
// distinct owners.
type QuorumVerifier struct {
	registry  *OwnerRegistry
	threshold int
	recoverer crypto.Recoverer
}

// NewQuorumVerifier returns a verifier requiring threshold signers out of the
// registry. A zero threshold requires all owners to sign.
func NewQuorumVerifier(registry *OwnerRegistry, threshold int, rec crypto.Recoverer) (*QuorumVerifier, error) {
	if threshold == 0 {
		threshold = registry.Size()
	}
	if threshold < 0 || threshold > registry.Size() {
		return nil, errors.Wrapf(errors.ErrInput, "threshold %d out of range [1, %d]", threshold, registry.Size())
	}
	if rec == nil {
		rec = crypto.Secp256k1Recoverer{}
	}
	return &QuorumVerifier{registry: registry, threshold: threshold, recoverer: rec}, nil
}

// Threshold returns the number of signers required.
func (v *QuorumVerifier) Threshold() int {
	return v.threshold
}

// Verify returns the signers of the digest, in the order of the signatures.
//
// Signers must be given in strictly ascending order of their addresses. A
// repeated signer and an out of order signer are the same failure. Checks
// stop at the first failing signature.
func (v *QuorumVerifier) Verify(digest []byte, sigs [][]byte) ([]vault.Address, error) {
	signers := make([]vault.Address, 0, len(sigs))
	prev := vault.ZeroAddress
	for i, sig := range sigs {
		addr, err := v.recoverer.Recover(digest, sig)
		if err != nil {
			return nil, errors.Wrapf(ErrMalformedSignature, "signature %d: %s", i, err)
		}
		if !prev.Less(addr) {
			return nil, errors.Wrapf(ErrUnorderedSigner, "signature %d: %s after %s", i, addr, prev)
		}
		if !v.registry.Has(addr) {
			return nil, errors.Wrapf(ErrUnrecognizedSigner, "signature %d: %s", i, addr)
		}
		signers = append(signers, addr)
		prev = addr
	}
	if len(signers) < v.threshold {
		return nil, errors.Wrapf(ErrInsufficientSigners, "want %d, got %d", v.threshold, len(signers))
	}
	return signers, nil
}
