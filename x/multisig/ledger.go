package multisig

import (
	"context"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/coin"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/orm"
)

// Payee receives value released by the vault. Pay must write only to the
// given store, so that the credit is committed or dropped together with the
// vault debit.
//
// Pay runs while the engine holds its settlement lock. A Payee that calls
// back into the engine must derive its context from ctx; such calls fail with
// ErrReentrancy. A call made with any other context is queued behind the
// running settlement, so a Payee waiting for it blocks forever.
type Payee interface {
	Pay(ctx context.Context, db vault.KVStore, to vault.Address, amount coin.Amount) error
}

// Ledger tracks the value held by the vault.
type Ledger struct {
	bucket orm.Bucket
}

// NewLedger returns a ledger keeping its state in the vault bucket.
func NewLedger() Ledger {
	return Ledger{bucket: orm.NewBucket(bucketName)}
}

var balanceKey = []byte("balance")

// Balance returns the value currently held. A vault that never received a
// deposit holds zero.
func (l Ledger) Balance(db vault.ReadOnlyKVStore) (coin.Amount, error) {
	var b balance
	switch err := l.bucket.One(db, balanceKey, &b); {
	case errors.ErrNotFound.Is(err):
		return coin.Amount{}, nil
	case err != nil:
		return coin.Amount{}, err
	}
	return coin.FromBig(b.Value)
}

func (l Ledger) save(db vault.KVStore, amount coin.Amount) error {
	return l.bucket.Put(db, balanceKey, &balance{Value: amount.Big()})
}

// Deposit increases the balance and returns the new value.
func (l Ledger) Deposit(db vault.KVStore, amount coin.Amount) (coin.Amount, error) {
	cur, err := l.Balance(db)
	if err != nil {
		return coin.Amount{}, err
	}
	total, err := cur.Add(amount)
	if err != nil {
		return coin.Amount{}, errors.Wrap(err, "deposit")
	}
	if err := l.save(db, total); err != nil {
		return coin.Amount{}, err
	}
	return total, nil
}

// Transfer moves amount out of the vault to the recipient and returns the
// remaining balance. It fails with ErrInsufficientFunds if the vault does not
// hold enough or the payee does not accept the value.
//
// Transfer writes to db before the payee is called. The caller must discard
// db if Transfer fails.
func (l Ledger) Transfer(ctx context.Context, db vault.KVStore, payee Payee, to vault.Address, amount coin.Amount) (coin.Amount, error) {
	cur, err := l.Balance(db)
	if err != nil {
		return coin.Amount{}, err
	}
	rest, err := cur.Subtract(amount)
	if err != nil {
		return coin.Amount{}, errors.Wrapf(ErrInsufficientFunds, "balance %s, requested %s", cur, amount)
	}
	if err := l.save(db, rest); err != nil {
		return coin.Amount{}, err
	}
	if err := payee.Pay(ctx, db, to, amount); err != nil {
		return coin.Amount{}, errors.Wrapf(ErrInsufficientFunds, "transfer to %s not fulfilled: %s", to, err)
	}
	return rest, nil
}
