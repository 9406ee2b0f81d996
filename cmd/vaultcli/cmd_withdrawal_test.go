package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/iov-one/vault/api"
	"github.com/iov-one/vault/coin"
	"github.com/iov-one/vault/vaulttest"
	"github.com/iov-one/vault/vaulttest/assert"
	"github.com/iov-one/vault/x/multisig"
)

func writeKeyHex(t testing.TB, keyHex string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "priv.key")
	if err := os.WriteFile(path, []byte(keyHex), 0600); err != nil {
		t.Fatalf("cannot write key: %s", err)
	}
	return path
}

func TestWithdrawalPipeline(t *testing.T) {
	keys := vaulttest.Keys(t, 3)
	apiURL := startVault(t, coin.MustParseAmount("2 ETH"), keys...)
	recipient := vaulttest.Key(t, "recipient").Address()

	var doc bytes.Buffer
	assert.Nil(t, cmdWithdraw(nil, &doc, []string{
		"-api", apiURL,
		"-amount", "1.5 ETH",
		"-to", recipient.String(),
	}))

	var w api.AuthorizeRequest
	assert.Nil(t, json.Unmarshal(doc.Bytes(), &w))
	assert.Equal(t, uint64(1), w.Nonce)
	assert.Equal(t, coin.MustParseAmount("1.5 ETH"), w.Amount)
	assert.Equal(t, recipient, w.Recipient)

	// Sign out of order. The document must keep signatures sorted.
	raw := doc.Bytes()
	for _, k := range []int{2, 0, 1} {
		var signed bytes.Buffer
		assert.Nil(t, cmdSign(bytes.NewReader(raw), &signed, []string{"-api", apiURL, "-key", writeKey(t, keys[k])}))
		raw = signed.Bytes()
	}

	var digestOut bytes.Buffer
	assert.Nil(t, cmdDigest(bytes.NewReader(raw), &digestOut, []string{"-api", apiURL}))
	digest, err := hexutil.Decode(strings.TrimSpace(digestOut.String()))
	assert.Nil(t, err)

	var signed api.AuthorizeRequest
	assert.Nil(t, json.Unmarshal(raw, &signed))
	if len(signed.Signatures) != 3 {
		t.Fatalf("want 3 signatures, got %d", len(signed.Signatures))
	}
	for i, k := range keys {
		sig, err := k.Sign(digest)
		assert.Nil(t, err)
		assert.Equal(t, hexutil.Bytes(sig), signed.Signatures[i])
	}

	var receipt bytes.Buffer
	assert.Nil(t, cmdAuthorize(bytes.NewReader(raw), &receipt, []string{"-api", apiURL}))
	var rc multisig.Receipt
	assert.Nil(t, json.Unmarshal(receipt.Bytes(), &rc))
	assert.Equal(t, multisig.StateSettled, rc.State)
	assert.Equal(t, coin.MustParseAmount("0.5 ETH"), rc.Balance)

	var nonce bytes.Buffer
	assert.Nil(t, cmdNonce(nil, &nonce, []string{"-api", apiURL}))
	assert.Equal(t, "1\n", nonce.String())

	var bal bytes.Buffer
	assert.Nil(t, cmdBalance(nil, &bal, []string{"-api", apiURL, "-human"}))
	assert.Equal(t, "0.5 ETH\n", bal.String())

	var acc bytes.Buffer
	assert.Nil(t, cmdAccount(nil, &acc, []string{"-api", apiURL, "-address", recipient.String()}))
	var ar api.AccountResponse
	assert.Nil(t, json.Unmarshal(acc.Bytes(), &ar))
	assert.Equal(t, coin.MustParseAmount("1.5 ETH"), ar.Balance)
}

func TestSignTwiceFails(t *testing.T) {
	keys := vaulttest.Keys(t, 2)
	apiURL := startVault(t, coin.Amount{}, keys...)
	keyPath := writeKey(t, keys[0])

	doc := bytes.NewBufferString(`{"amount": "1", "recipient": "` + keys[1].Address().String() + `", "nonce": 1}`)
	var once bytes.Buffer
	assert.Nil(t, cmdSign(doc, &once, []string{"-api", apiURL, "-key", keyPath}))

	var twice bytes.Buffer
	if err := cmdSign(&once, &twice, []string{"-api", apiURL, "-key", keyPath}); err == nil {
		t.Fatal("the same key must not sign twice")
	}
}

func TestAuthorizeRejected(t *testing.T) {
	keys := vaulttest.Keys(t, 2)
	apiURL := startVault(t, coin.NewAmount(10), keys...)

	doc := bytes.NewBufferString(`{"amount": "1", "recipient": "` + keys[1].Address().String() + `", "nonce": 1}`)
	var signed bytes.Buffer
	assert.Nil(t, cmdSign(doc, &signed, []string{"-api", apiURL, "-key", writeKey(t, keys[0])}))

	var out bytes.Buffer
	err := cmdAuthorize(&signed, &out, []string{"-api", apiURL})
	if err == nil || !strings.Contains(err.Error(), "insufficient") {
		t.Fatalf("want insufficient signers, got %v", err)
	}
}

func TestDepositAndOwnersCmd(t *testing.T) {
	keys := vaulttest.Keys(t, 2)
	apiURL := startVault(t, coin.Amount{}, keys...)

	var out bytes.Buffer
	assert.Nil(t, cmdDeposit(nil, &out, []string{"-api", apiURL, "-amount", "3 gwei"}))
	assert.Equal(t, "3000000000\n", out.String())

	out.Reset()
	assert.Nil(t, cmdOwners(nil, &out, []string{"-api", apiURL}))
	var owners api.OwnersResponse
	assert.Nil(t, json.Unmarshal(out.Bytes(), &owners))
	assert.Equal(t, vaulttest.Addresses(keys...), owners.Owners)
	assert.Equal(t, 2, owners.Threshold)
}

func TestReadWithdrawalEmptyInput(t *testing.T) {
	_, err := readWithdrawal(strings.NewReader(""))
	if err == nil || err.Error() != "no input data" {
		t.Fatalf("unexpected error: %v", err)
	}
}
