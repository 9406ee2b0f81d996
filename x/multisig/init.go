package multisig

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/coin"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/gconf"
)

// Initializer loads the vault configuration and its initial state from the
// genesis file.
//
//	{
//	  "conf": {"vault": {"owners": [...], "threshold": 2, "scheme": "personal"}},
//	  "vault": {"balance": "1 ETH", "nonce": 0}
//	}
type Initializer struct{}

var _ vault.Initializer = Initializer{}

// FromGenesis implements vault.Initializer.
func (Initializer) FromGenesis(opts vault.Options, db vault.KVStore) error {
	if err := gconf.InitConfig(db, opts, configName, &Configuration{}); err != nil {
		return errors.Wrap(err, "vault configuration")
	}

	var state struct {
		Balance coin.Amount `json:"balance"`
		Nonce   uint64      `json:"nonce"`
	}
	if err := opts.ReadOptions("vault", &state); err != nil {
		return err
	}
	if !state.Balance.IsZero() {
		if _, err := NewLedger().Deposit(db, state.Balance); err != nil {
			return errors.Wrap(err, "initial balance")
		}
	}
	if state.Nonce != 0 {
		if err := NewNonceLedger().seq.Set(db, state.Nonce); err != nil {
			return errors.Wrap(err, "initial nonce")
		}
	}
	return nil
}
