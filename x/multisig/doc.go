/*
Package multisig implements a custodial vault that releases funds only when a
quorum of pre-registered owners authorized the withdrawal.

Each owner signs, off-chain, a digest of the withdrawal intent (amount and
recipient) together with a nonce. The Engine recomputes the digest, recovers
every signer and requires the signers to be distinct registry members given
in strictly ascending address order. When the quorum is met, the nonce
advance, the vault debit and the hand-off of value to the recipient are
written to the store as a single unit, or not at all.

An Engine is safe for concurrent use. Mutations are serialized, so two
authorizations using the same nonce have exactly one winner. The value
hand-off runs inside the critical section. A hand-off calling back into the
engine, with a context derived from the one it was given, fails with
ErrReentrancy.
*/
package multisig
