/*
Package cash keeps the balances of external accounts, the recipients of value
released by the vault.

There is no logic in the accounts, except that a balance never overflows and
that an account can refuse to receive value. A refusing account models a
recipient that cannot accept a transfer.
*/
package cash
