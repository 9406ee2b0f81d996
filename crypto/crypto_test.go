package crypto

import (
	"math/big"
	"testing"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/vaulttest/assert"
)

const (
	testKeyHex  = "289c2857d4598e37fb9647507e47a309d6133539bf21a8b9cb6df88fd5232032"
	testAddrHex = "0x970E8128AB834E8EAC17Ab8E3812F010678CF791"
)

func testDigest() []byte {
	return ethcrypto.Keccak256([]byte("withdraw"))
}

func TestKeyAddress(t *testing.T) {
	key, err := ParsePrivateKey("0x" + testKeyHex)
	assert.Nil(t, err)
	assert.Equal(t, vault.MustParseAddress(testAddrHex), key.Address())
	assert.Equal(t, testKeyHex, key.Hex())

	_, err = ParsePrivateKey("not a key")
	assert.IsErr(t, errors.ErrInput, err)
	_, err = ParsePrivateKey("00")
	assert.IsErr(t, errors.ErrInput, err)
}

func TestSignRecover(t *testing.T) {
	key, err := ParsePrivateKey(testKeyHex)
	assert.Nil(t, err)

	sig, err := key.Sign(testDigest())
	assert.Nil(t, err)
	assert.Equal(t, SignatureLength, len(sig))
	if v := sig[64]; v != 27 && v != 28 {
		t.Fatalf("unexpected v value %d", v)
	}

	addr, err := Secp256k1Recoverer{}.Recover(testDigest(), sig)
	assert.Nil(t, err)
	assert.Equal(t, key.Address(), addr)

	// A different digest recovers a different signer.
	other, err := Secp256k1Recoverer{}.Recover(ethcrypto.Keccak256([]byte("other")), sig)
	if err == nil && other == key.Address() {
		t.Fatal("signature must not be valid for another digest")
	}
}

func TestRecoverVNormalization(t *testing.T) {
	key, err := ParsePrivateKey(testKeyHex)
	assert.Nil(t, err)
	sig, err := key.Sign(testDigest())
	assert.Nil(t, err)
	recid := sig[64] - 27

	cases := map[string]struct {
		V       byte
		WantErr *errors.Error
	}{
		"ethereum":   {V: recid + 27},
		"raw":        {V: recid},
		"eip155 one": {V: recid + 37},
		"eip155 big": {V: recid + 35 + 2*100},
		"invalid 2":  {V: 2, WantErr: errors.ErrInput},
		"invalid 29": {V: 29, WantErr: errors.ErrInput},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			s := append([]byte(nil), sig...)
			s[64] = tc.V
			addr, err := Secp256k1Recoverer{}.Recover(testDigest(), s)
			assert.IsErr(t, tc.WantErr, err)
			if tc.WantErr == nil {
				assert.Equal(t, key.Address(), addr)
			}
		})
	}
}

func TestRecoverRejectsMalformed(t *testing.T) {
	key, err := ParsePrivateKey(testKeyHex)
	assert.Nil(t, err)
	sig, err := key.Sign(testDigest())
	assert.Nil(t, err)

	// Flip S into the upper half of the curve order. The result is a valid
	// signature mathematically, but not canonical.
	n := ethcrypto.S256().Params().N
	s := new(big.Int).SetBytes(sig[32:64])
	highS := new(big.Int).Sub(n, s)
	malleable := append([]byte(nil), sig...)
	copy(malleable[32:64], make([]byte, 32))
	highS.FillBytes(malleable[32:64])
	malleable[64] = 27 + (1 - (sig[64] - 27))

	zeroR := append([]byte(nil), sig...)
	copy(zeroR[:32], make([]byte, 32))

	cases := map[string]struct {
		Digest []byte
		Sig    []byte
	}{
		"high s":       {Digest: testDigest(), Sig: malleable},
		"zero r":       {Digest: testDigest(), Sig: zeroR},
		"short":        {Digest: testDigest(), Sig: sig[:64]},
		"empty":        {Digest: testDigest(), Sig: nil},
		"short digest": {Digest: testDigest()[:31], Sig: sig},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			_, err := Secp256k1Recoverer{}.Recover(tc.Digest, tc.Sig)
			assert.IsErr(t, errors.ErrInput, err)
		})
	}
}

type countingRecoverer struct {
	calls int
	next  Recoverer
}

func (c *countingRecoverer) Recover(digest, sig []byte) (vault.Address, error) {
	c.calls++
	return c.next.Recover(digest, sig)
}

func TestCachingRecoverer(t *testing.T) {
	key, err := GenerateKey()
	assert.Nil(t, err)
	sig, err := key.Sign(testDigest())
	assert.Nil(t, err)

	counter := &countingRecoverer{next: Secp256k1Recoverer{}}
	rec, err := NewCachingRecoverer(counter, 8)
	assert.Nil(t, err)

	for i := 0; i < 3; i++ {
		addr, err := rec.Recover(testDigest(), sig)
		assert.Nil(t, err)
		assert.Equal(t, key.Address(), addr)
	}
	assert.Equal(t, 1, counter.calls)
	assert.Equal(t, 1, rec.Len())

	// Failures are never cached.
	bad := append([]byte(nil), sig...)
	bad[64] = 5
	for i := 0; i < 2; i++ {
		_, err := rec.Recover(testDigest(), bad)
		assert.IsErr(t, errors.ErrInput, err)
	}
	assert.Equal(t, 3, counter.calls)
	assert.Equal(t, 1, rec.Len())

	_, err = NewCachingRecoverer(counter, 0)
	assert.IsErr(t, errors.ErrInput, err)
}
