package cash

import "github.com/iov-one/vault/errors"

// cash takes 1110-1119
var (
	ErrRefused = errors.Register(1110, "recipient refuses value")
)
