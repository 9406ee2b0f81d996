package app

import (
	"encoding/json"
	"os"
	"regexp"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
)

// Genesis is the content of the genesis file. It describes the initial state
// of the store.
type Genesis struct {
	ChainID  string        `json:"chain_id"`
	AppState vault.Options `json:"app_state"`
}

var isChainID = regexp.MustCompile(`^[a-zA-Z0-9_\-]{6,25}$`).MatchString

// Validate returns an error if the genesis cannot be used to initialize a
// store.
func (g *Genesis) Validate() error {
	var errs error
	if !isChainID(g.ChainID) {
		errs = errors.AppendField(errs, "ChainID", errors.Wrapf(errors.ErrInput, "invalid chain ID %q", g.ChainID))
	}
	if len(g.AppState) == 0 {
		errs = errors.AppendField(errs, "AppState", errors.ErrEmpty)
	}
	return errs
}

// LoadGenesis tries to load a given file into a Genesis struct.
func LoadGenesis(path string) (*Genesis, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "loading genesis file: %s", err)
	}
	var gen Genesis
	if err := json.Unmarshal(raw, &gen); err != nil {
		return nil, errors.Wrapf(errors.ErrEncoding, "unmarshaling genesis file: %s", err)
	}
	return &gen, nil
}

// Save writes the genesis file. An existing file is never overwritten.
func (g *Genesis) Save(path string) error {
	raw, err := json.MarshalIndent(g, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrEncoding, err.Error())
	}
	fd, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
	if err != nil {
		if os.IsExist(err) {
			return errors.Wrapf(errors.ErrDuplicate, "genesis file %q already exists", path)
		}
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	defer fd.Close()
	if _, err := fd.Write(raw); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return fd.Close()
}

const chainIDKey = "_internal:chain_id"

// ChainID returns the chain ID the store was initialized with, or an empty
// string if it was never initialized.
func ChainID(db vault.ReadOnlyKVStore) (string, error) {
	v, err := db.Get([]byte(chainIDKey))
	if err != nil {
		return "", errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return string(v), nil
}

// InitStore loads the genesis into the store, unless it was already done.
// The chain ID and the state of all extensions are written at once. It
// returns true if the store was initialized by this call.
//
// A store initialized with a different chain ID is rejected.
func InitStore(db vault.CacheableKVStore, gen *Genesis, init vault.Initializer) (bool, error) {
	if err := gen.Validate(); err != nil {
		return false, errors.Wrap(err, "genesis")
	}
	current, err := ChainID(db)
	if err != nil {
		return false, err
	}
	if current != "" {
		if current != gen.ChainID {
			return false, errors.Wrapf(errors.ErrState, "store belongs to chain %q, not %q", current, gen.ChainID)
		}
		return false, nil
	}

	cache := db.CacheWrap()
	if err := cache.Set([]byte(chainIDKey), []byte(gen.ChainID)); err != nil {
		cache.Discard()
		return false, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	if err := init.FromGenesis(gen.AppState, cache); err != nil {
		cache.Discard()
		return false, err
	}
	if err := cache.Write(); err != nil {
		return false, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return true, nil
}
