package cash

import (
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/orm"
)

// Wallet is the persisted state of an external account.
type Wallet struct {
	Balance *big.Int
	Refuse  bool
}

var _ orm.Model = (*Wallet)(nil)

func (w *Wallet) Marshal() ([]byte, error) {
	raw, err := rlp.EncodeToBytes(w)
	if err != nil {
		return nil, errors.Wrap(errors.ErrEncoding, err.Error())
	}
	return raw, nil
}

func (w *Wallet) Unmarshal(raw []byte) error {
	if err := rlp.DecodeBytes(raw, w); err != nil {
		return errors.Wrap(errors.ErrEncoding, err.Error())
	}
	return nil
}

func (w *Wallet) Validate() error {
	if w.Balance == nil {
		return errors.Field("Balance", errors.ErrEmpty, "required")
	}
	if w.Balance.Sign() < 0 {
		return errors.Field("Balance", errors.ErrAmount, "negative")
	}
	return nil
}
