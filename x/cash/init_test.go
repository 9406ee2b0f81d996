package cash

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/coin"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/store"
	"github.com/iov-one/vault/vaulttest/assert"
)

func TestGenesis(t *testing.T) {
	addr := vault.MustParseAddress("0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed")

	cases := map[string]struct {
		Genesis     string
		WantErr     *errors.Error
		WantBalance coin.Amount
		WantRefuse  bool
	}{
		"no cash section": {
			Genesis: `{"foo": "bar"}`,
		},
		"single account": {
			Genesis:     `{"cash": [{"address": "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed", "balance": "2 gwei"}]}`,
			WantBalance: coin.NewAmount(2000000000),
		},
		"refusing account": {
			Genesis:     `{"cash": [{"address": "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed", "balance": "5", "refuse": true}]}`,
			WantBalance: coin.NewAmount(5),
			WantRefuse:  true,
		},
		"missing address": {
			Genesis: `{"cash": [{"balance": "5"}]}`,
			WantErr: errors.ErrEmpty,
		},
		"malformed balance": {
			Genesis: `{"cash": [{"address": "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed", "balance": "five"}]}`,
			WantErr: errors.ErrEncoding,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var opts vault.Options
			assert.Nil(t, json.Unmarshal([]byte(tc.Genesis), &opts))

			db := store.MemStore()
			err := Initializer{}.FromGenesis(opts, db)
			assert.IsErr(t, tc.WantErr, err)
			if tc.WantErr != nil {
				return
			}

			bank := NewBank()
			bal, err := bank.Balance(db, addr)
			assert.Nil(t, err)
			assert.Equal(t, tc.WantBalance, bal)

			refuses, err := bank.Refuses(db, addr)
			assert.Nil(t, err)
			assert.Equal(t, tc.WantRefuse, refuses)
		})
	}
}
