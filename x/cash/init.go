package cash

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/coin"
	"github.com/iov-one/vault/errors"
)

const optKey = "cash"

// GenesisAccount is used to parse the json from genesis file.
type GenesisAccount struct {
	Address vault.Address `json:"address"`
	Balance coin.Amount   `json:"balance"`
	Refuse  bool          `json:"refuse,omitempty"`
}

// Initializer fulfils the vault.Initializer interface to load data from the
// genesis file.
type Initializer struct{}

var _ vault.Initializer = Initializer{}

// FromGenesis will parse initial account info from genesis and save it to
// the database.
func (Initializer) FromGenesis(opts vault.Options, kv vault.KVStore) error {
	var accts []GenesisAccount
	if err := opts.ReadOptions(optKey, &accts); err != nil {
		return err
	}
	bank := NewBank()
	for i, acct := range accts {
		if err := acct.Address.Validate(); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
		if err := bank.Credit(kv, acct.Address, acct.Balance); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
		if acct.Refuse {
			if err := bank.Refuse(kv, acct.Address, true); err != nil {
				return errors.Wrapf(err, "account %d", i)
			}
		}
	}
	return nil
}
