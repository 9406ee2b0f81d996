package vaulttest

import (
	"encoding/hex"
	"fmt"
	"sort"
	"testing"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/crypto"
)

// Key returns a private key derived from the seed. The same seed always
// returns the same key.
func Key(t testing.TB, seed string) *crypto.PrivateKey {
	t.Helper()
	raw := ethcrypto.Keccak256([]byte("vaulttest:" + seed))
	key, err := crypto.ParsePrivateKey(hex.EncodeToString(raw))
	if err != nil {
		t.Fatalf("cannot derive key from %q: %s", seed, err)
	}
	return key
}

// Keys returns n distinct keys, sorted ascending by their addresses.
func Keys(t testing.TB, n int) []*crypto.PrivateKey {
	t.Helper()
	keys := make([]*crypto.PrivateKey, n)
	for i := range keys {
		keys[i] = Key(t, fmt.Sprintf("key-%d", i))
	}
	SortKeys(keys)
	return keys
}

// SortKeys orders keys ascending by their addresses.
func SortKeys(keys []*crypto.PrivateKey) {
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].Address().Less(keys[j].Address())
	})
}

// Addresses returns the addresses of given keys, in the same order.
func Addresses(keys ...*crypto.PrivateKey) []vault.Address {
	res := make([]vault.Address, len(keys))
	for i, k := range keys {
		res[i] = k.Address()
	}
	return res
}

// Sign returns signatures of the digest made by given keys, in the same
// order.
func Sign(t testing.TB, digest [32]byte, keys ...*crypto.PrivateKey) [][]byte {
	t.Helper()
	sigs := make([][]byte, len(keys))
	for i, k := range keys {
		sig, err := k.Sign(digest[:])
		if err != nil {
			t.Fatalf("cannot sign with key %d: %s", i, err)
		}
		sigs[i] = sig
	}
	return sigs
}
