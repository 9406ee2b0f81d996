package vaulttest

import (
	"testing"

	"github.com/iov-one/vault"
)

// ParseAddress returns the address encoded in hex, failing the test if it is
// malformed.
func ParseAddress(t testing.TB, encoded string) vault.Address {
	t.Helper()
	addr, err := vault.ParseAddress(encoded)
	if err != nil {
		t.Fatalf("cannot parse %q address: %s", encoded, err)
	}
	return addr
}

// SequenceAddr returns an address with n as its big endian value. Addresses
// created this way sort by n.
func SequenceAddr(n uint64) vault.Address {
	var a vault.Address
	for i := 0; i < 8; i++ {
		a[vault.AddressLength-1-i] = byte(n >> (8 * i))
	}
	return a
}
