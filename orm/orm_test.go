package orm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"testing"

	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/store"
	"github.com/iov-one/vault/vaulttest/assert"
)

func TestSequence(t *testing.T) {
	cases := map[string]struct {
		init       uint64
		increments uint64
	}{
		"from zero":  {init: 0, increments: 22},
		"from set":   {init: 22, increments: 18},
		"single inc": {init: 11, increments: 1},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			s := NewSequence("nonce", testName)
			assert.Nil(t, s.Set(db, tc.init))

			orig, err := db.Get(s.id)
			assert.Nil(t, err)

			var val uint64
			for i := uint64(0); i < tc.increments; i++ {
				val, err = s.Next(db)
				assert.Nil(t, err)
			}
			assert.Equal(t, tc.init+tc.increments, val)

			latest, err := s.Latest(db)
			assert.Nil(t, err)
			assert.Equal(t, val, latest)

			// Raw encoding must keep the ordering of values.
			last, err := db.Get(s.id)
			assert.Nil(t, err)
			assert.Equal(t, 1, bytes.Compare(last, orig))
		})
	}
}

func TestSequenceZeroAndOverflow(t *testing.T) {
	db := store.MemStore()
	s := NewSequence("nonce", "seq")

	val, err := s.Latest(db)
	assert.Nil(t, err)
	assert.Equal(t, uint64(0), val)

	assert.Nil(t, s.Set(db, math.MaxUint64))
	_, err = s.Next(db)
	assert.IsErr(t, errors.ErrOverflow, err)

	assert.Nil(t, db.Set(s.id, []byte{1, 2}))
	_, err = s.Latest(db)
	assert.IsErr(t, errors.ErrEncoding, err)
}

type note struct {
	Text string `json:"text"`
}

func (n *note) Marshal() ([]byte, error)   { return json.Marshal(n) }
func (n *note) Unmarshal(raw []byte) error { return json.Unmarshal(raw, n) }
func (n *note) Validate() error {
	if n.Text == "" {
		return errors.Wrap(errors.ErrEmpty, "text")
	}
	return nil
}

func TestBucket(t *testing.T) {
	db := store.MemStore()
	b := NewBucket("notes")

	var got note
	assert.IsErr(t, errors.ErrNotFound, b.One(db, []byte("a"), &got))

	assert.Nil(t, b.Put(db, []byte("a"), &note{Text: "hello"}))
	assert.Nil(t, b.One(db, []byte("a"), &got))
	assert.Equal(t, "hello", got.Text)

	ok, err := b.Has(db, []byte("a"))
	assert.Nil(t, err)
	assert.Equal(t, true, ok)

	assert.IsErr(t, errors.ErrEmpty, b.Put(db, []byte("b"), &note{}))
	ok, err = b.Has(db, []byte("b"))
	assert.Nil(t, err)
	assert.Equal(t, false, ok)

	assert.Nil(t, b.Delete(db, []byte("a")))
	assert.IsErr(t, errors.ErrNotFound, b.One(db, []byte("a"), &got))
}

func TestBucketKeysDoNotShareMemory(t *testing.T) {
	b := NewBucket("abcd")
	k1 := b.DBKey([]byte("ABC"))
	k2 := b.DBKey([]byte("LED"))
	assert.Equal(t, "abcd:ABC", string(k1))
	assert.Equal(t, "abcd:LED", string(k2))
}

func TestBucketName(t *testing.T) {
	for _, name := range []string{"ab", "UPPER", "with-dash", "waytoolongname"} {
		t.Run(fmt.Sprintf("%q", name), func(t *testing.T) {
			assert.Panics(t, func() { NewBucket(name) })
		})
	}
}
