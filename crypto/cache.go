package crypto

import (
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
)

type recoveryKey [DigestLength + SignatureLength]byte

// CachingRecoverer remembers the result of successful recoveries. Recovering
// a public key is the most expensive part of verifying a withdrawal, and the
// same signatures are checked again when a request is retried.
type CachingRecoverer struct {
	next  Recoverer
	cache *lru.Cache[recoveryKey, vault.Address]
}

var _ Recoverer = (*CachingRecoverer)(nil)

// NewCachingRecoverer wraps given recoverer with a cache of the given size.
func NewCachingRecoverer(next Recoverer, size int) (*CachingRecoverer, error) {
	c, err := lru.New[recoveryKey, vault.Address](size)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "cache: %s", err)
	}
	return &CachingRecoverer{next: next, cache: c}, nil
}

// Recover implements Recoverer. Failed recoveries are not cached.
func (c *CachingRecoverer) Recover(digest, sig []byte) (vault.Address, error) {
	if len(digest) != DigestLength || len(sig) != SignatureLength {
		return c.next.Recover(digest, sig)
	}
	var key recoveryKey
	copy(key[:], digest)
	copy(key[DigestLength:], sig)
	if addr, ok := c.cache.Get(key); ok {
		return addr, nil
	}
	addr, err := c.next.Recover(digest, sig)
	if err != nil {
		return addr, err
	}
	c.cache.Add(key, addr)
	return addr, nil
}

// Len returns the number of cached entries.
func (c *CachingRecoverer) Len() int {
	return c.cache.Len()
}
