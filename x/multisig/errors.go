package multisig

import (
	"github.com/iov-one/vault/errors"
)

// multisig takes 1100-1109
var (
	ErrMalformedSignature  = errors.Register(1100, "malformed signature")
	ErrUnorderedSigner     = errors.Register(1101, "duplicate or unordered signer")
	ErrUnrecognizedSigner  = errors.Register(1102, "unrecognized signer")
	ErrInsufficientSigners = errors.Register(1103, "insufficient signers")
	ErrStaleNonce          = errors.Register(1104, "stale or replayed nonce")
	ErrInsufficientFunds   = errors.Register(1105, "insufficient funds")
	ErrReentrancy          = errors.Register(1106, "reentrancy detected")
)
