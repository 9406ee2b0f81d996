package multisig

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/coin"
	"github.com/iov-one/vault/errors"
)

// Intent describes a single withdrawal from the vault.
type Intent struct {
	Amount    coin.Amount   `json:"amount"`
	Recipient vault.Address `json:"recipient"`
}

// Validate returns an error if the intent cannot be authorized, regardless of
// the signatures.
//
// A zero amount is valid. Authorizing it moves no value but consumes the
// nonce, which invalidates any other intent already signed for that nonce.
func (i Intent) Validate() error {
	if err := i.Recipient.Validate(); err != nil {
		return errors.Field("Recipient", err, "")
	}
	return nil
}
