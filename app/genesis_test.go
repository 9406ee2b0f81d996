package app

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/store"
	"github.com/iov-one/vault/vaulttest/assert"
)

type failingInit struct{}

func (failingInit) FromGenesis(opts vault.Options, db vault.KVStore) error {
	if err := db.Set([]byte("partial"), []byte("write")); err != nil {
		return err
	}
	return errors.Wrap(errors.ErrInput, "broken genesis")
}

type recordingInit struct{ calls int }

func (r *recordingInit) FromGenesis(vault.Options, vault.KVStore) error {
	r.calls++
	return nil
}

func TestInitStore(t *testing.T) {
	gen := &Genesis{
		ChainID:  "test-chain",
		AppState: vault.Options{"x": json.RawMessage(`{}`)},
	}

	db := store.MemStore()
	var rec recordingInit
	initialized, err := InitStore(db, gen, &rec)
	assert.Nil(t, err)
	assert.Equal(t, true, initialized)
	assert.Equal(t, 1, rec.calls)

	chainID, err := ChainID(db)
	assert.Nil(t, err)
	assert.Equal(t, "test-chain", chainID)

	// A second run is a noop.
	initialized, err = InitStore(db, gen, &rec)
	assert.Nil(t, err)
	assert.Equal(t, false, initialized)
	assert.Equal(t, 1, rec.calls)

	other := &Genesis{ChainID: "other-chain", AppState: gen.AppState}
	_, err = InitStore(db, other, &rec)
	assert.IsErr(t, errors.ErrState, err)
}

func TestInitStoreIsAtomic(t *testing.T) {
	gen := &Genesis{
		ChainID:  "test-chain",
		AppState: vault.Options{"x": json.RawMessage(`{}`)},
	}
	db := store.MemStore()
	_, err := InitStore(db, gen, failingInit{})
	assert.IsErr(t, errors.ErrInput, err)

	chainID, err := ChainID(db)
	assert.Nil(t, err)
	assert.Equal(t, "", chainID)
	ok, err := db.Has([]byte("partial"))
	assert.Nil(t, err)
	assert.Equal(t, false, ok)
}

func TestGenesisValidate(t *testing.T) {
	cases := map[string]struct {
		gen       Genesis
		wantField string
		wantErr   *errors.Error
	}{
		"valid": {
			gen: Genesis{ChainID: "vault-abc", AppState: vault.Options{"x": nil}},
		},
		"short chain ID": {
			gen:       Genesis{ChainID: "abc", AppState: vault.Options{"x": nil}},
			wantField: "ChainID",
			wantErr:   errors.ErrInput,
		},
		"chain ID with spaces": {
			gen:       Genesis{ChainID: "my vault", AppState: vault.Options{"x": nil}},
			wantField: "ChainID",
			wantErr:   errors.ErrInput,
		},
		"no state": {
			gen:       Genesis{ChainID: "vault-abc"},
			wantField: "AppState",
			wantErr:   errors.ErrEmpty,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.gen.Validate()
			if tc.wantErr == nil {
				assert.Nil(t, err)
				return
			}
			assert.FieldError(t, err, tc.wantField, tc.wantErr)
		})
	}
}

func TestGenesisSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "genesis.json")
	gen := &Genesis{
		ChainID:  "vault-abc",
		AppState: vault.Options{"vault": json.RawMessage(`{"nonce":3}`)},
	}
	assert.Nil(t, gen.Save(path))
	assert.IsErr(t, errors.ErrDuplicate, gen.Save(path))

	loaded, err := LoadGenesis(path)
	assert.Nil(t, err)
	assert.Equal(t, gen.ChainID, loaded.ChainID)
	assert.Equal(t, string(gen.AppState["vault"]), string(loaded.AppState["vault"]))

	_, err = LoadGenesis(filepath.Join(t.TempDir(), "missing.json"))
	assert.IsErr(t, errors.ErrNotFound, err)
}
