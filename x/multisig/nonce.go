package multisig

import (
	"math"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/orm"
)

// NonceLedger keeps the last nonce consumed by a successful authorization.
type NonceLedger struct {
	seq orm.Sequence
}

// NewNonceLedger returns a ledger keeping its state in the vault bucket.
func NewNonceLedger() NonceLedger {
	return NonceLedger{seq: orm.NewSequence(bucketName, "nonce")}
}

// Current returns the last consumed nonce, or zero if none was consumed.
func (n NonceLedger) Current(db vault.ReadOnlyKVStore) (uint64, error) {
	return n.seq.Latest(db)
}

// ExpectedNext returns the only nonce value that can be consumed next.
func (n NonceLedger) ExpectedNext(db vault.ReadOnlyKVStore) (uint64, error) {
	cur, err := n.Current(db)
	if err != nil {
		return 0, err
	}
	if cur == math.MaxUint64 {
		return 0, errors.Wrap(errors.ErrOverflow, "nonce exhausted")
	}
	return cur + 1, nil
}

// Consume advances the ledger to given nonce. It fails unless the nonce is
// the expected next value.
func (n NonceLedger) Consume(db vault.KVStore, nonce uint64) error {
	want, err := n.ExpectedNext(db)
	if err != nil {
		return err
	}
	if nonce != want {
		return errors.Wrapf(ErrStaleNonce, "want %d, got %d", want, nonce)
	}
	if _, err := n.seq.Next(db); err != nil {
		return errors.Wrap(err, "advance nonce")
	}
	return nil
}
