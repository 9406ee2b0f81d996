package orm

import (
	"encoding/binary"
	"math"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
)

// Sequence maintains a monotonically increasing counter. A sequence that was
// never incremented is at zero.
type Sequence struct {
	id []byte
}

// NewSequence returns a sequence counter. Sequence is using following pattern
// to construct a key:
//
//	_s.<bucket>:<name>
func NewSequence(bucket, name string) Sequence {
	return Sequence{id: []byte("_s." + bucket + ":" + name)}
}

// Latest returns the current value of the sequence without modifying it.
func (s Sequence) Latest(db vault.ReadOnlyKVStore) (uint64, error) {
	raw, err := db.Get(s.id)
	if err != nil {
		return 0, errors.Wrap(err, "cannot get sequence")
	}
	return decodeSequence(raw)
}

// Next increments the sequence and returns the new value.
func (s Sequence) Next(db vault.KVStore) (uint64, error) {
	val, err := s.Latest(db)
	if err != nil {
		return 0, err
	}
	if val == math.MaxUint64 {
		return 0, errors.Wrap(errors.ErrOverflow, "sequence exhausted")
	}
	val++
	if err := s.Set(db, val); err != nil {
		return 0, err
	}
	return val, nil
}

// Set forces the sequence to given value. It is meant for genesis loading.
func (s Sequence) Set(db vault.SetDeleter, val uint64) error {
	if err := db.Set(s.id, encodeSequence(val)); err != nil {
		return errors.Wrap(err, "cannot set sequence")
	}
	return nil
}

func decodeSequence(raw []byte) (uint64, error) {
	if raw == nil {
		return 0, nil
	}
	if len(raw) != 8 {
		return 0, errors.Wrapf(errors.ErrEncoding, "sequence must be 8 bytes, got %d", len(raw))
	}
	return binary.BigEndian.Uint64(raw), nil
}

func encodeSequence(val uint64) []byte {
	raw := make([]byte, 8)
	binary.BigEndian.PutUint64(raw, val)
	return raw
}
