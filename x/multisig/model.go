package multisig

import (
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/orm"
)

const bucketName = "vault"

// balance is the persisted vault balance.
type balance struct {
	Value *big.Int
}

var _ orm.Model = (*balance)(nil)

func (b *balance) Marshal() ([]byte, error) {
	raw, err := rlp.EncodeToBytes(b)
	if err != nil {
		return nil, errors.Wrap(errors.ErrEncoding, err.Error())
	}
	return raw, nil
}

func (b *balance) Unmarshal(raw []byte) error {
	if err := rlp.DecodeBytes(raw, b); err != nil {
		return errors.Wrap(errors.ErrEncoding, err.Error())
	}
	return nil
}

func (b *balance) Validate() error {
	if b.Value == nil {
		return errors.Wrap(errors.ErrEmpty, "value")
	}
	if b.Value.Sign() < 0 {
		return errors.Wrap(errors.ErrAmount, "negative balance")
	}
	return nil
}
