package cash

import (
	"context"
	"math/big"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/coin"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/orm"
)

// Bank credits external accounts. It can receive value released by the
// vault.
type Bank struct {
	bucket orm.Bucket
}

// NewBank returns a bank keeping its wallets in the cash bucket.
func NewBank() Bank {
	return Bank{bucket: orm.NewBucket("cash")}
}

func (b Bank) wallet(db vault.ReadOnlyKVStore, addr vault.Address) (*Wallet, error) {
	var w Wallet
	switch err := b.bucket.One(db, addr[:], &w); {
	case errors.ErrNotFound.Is(err):
		return &Wallet{Balance: new(big.Int)}, nil
	case err != nil:
		return nil, err
	}
	return &w, nil
}

// Balance returns the value held by given account. Unknown accounts hold
// zero.
func (b Bank) Balance(db vault.ReadOnlyKVStore, addr vault.Address) (coin.Amount, error) {
	w, err := b.wallet(db, addr)
	if err != nil {
		return coin.Amount{}, err
	}
	return coin.FromBig(w.Balance)
}

// Credit adds amount to the account balance, even if it refuses value.
func (b Bank) Credit(db vault.KVStore, addr vault.Address, amount coin.Amount) error {
	if err := addr.Validate(); err != nil {
		return errors.Wrap(err, "recipient")
	}
	w, err := b.wallet(db, addr)
	if err != nil {
		return err
	}
	cur, err := coin.FromBig(w.Balance)
	if err != nil {
		return err
	}
	total, err := cur.Add(amount)
	if err != nil {
		return errors.Wrapf(err, "credit %s", addr)
	}
	w.Balance = total.Big()
	return b.bucket.Put(db, addr[:], w)
}

// Pay credits the account unless it refuses value.
func (b Bank) Pay(ctx context.Context, db vault.KVStore, to vault.Address, amount coin.Amount) error {
	w, err := b.wallet(db, to)
	if err != nil {
		return err
	}
	if w.Refuse {
		return errors.Wrapf(ErrRefused, "account %s", to)
	}
	if err := b.Credit(db, to, amount); err != nil {
		return err
	}
	vault.GetLogger(ctx).Debug("credited", "module", "cash", "account", to, "amount", amount)
	return nil
}

// Refuse marks the account as refusing any further payment, or accepting
// again if refuse is false.
func (b Bank) Refuse(db vault.KVStore, addr vault.Address, refuse bool) error {
	if err := addr.Validate(); err != nil {
		return errors.Wrap(err, "account")
	}
	w, err := b.wallet(db, addr)
	if err != nil {
		return err
	}
	w.Refuse = refuse
	return b.bucket.Put(db, addr[:], w)
}

// Refuses returns true if the account does not accept payments.
func (b Bank) Refuses(db vault.ReadOnlyKVStore, addr vault.Address) (bool, error) {
	w, err := b.wallet(db, addr)
	if err != nil {
		return false, err
	}
	return w.Refuse, nil
}
