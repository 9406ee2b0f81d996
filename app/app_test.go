package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iov-one/vault/coin"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/vaulttest"
	"github.com/iov-one/vault/x/multisig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
)

func TestGenInitOptions(t *testing.T) {
	keys := vaulttest.Keys(t, 3)
	args := []string{"-threshold", "2", "-balance", "1 ETH"}
	for _, a := range vaulttest.Addresses(keys...) {
		args = append(args, a.String())
	}
	gen, err := GenInitOptions(args)
	require.NoError(t, err)
	require.NoError(t, gen.Validate())
	assert.True(t, strings.HasPrefix(gen.ChainID, "vault-"), gen.ChainID)

	_, err = GenInitOptions(nil)
	assert.True(t, errors.ErrEmpty.Is(err), "got %+v", err)
	_, err = GenInitOptions([]string{"-threshold", "4", keys[0].Address().String()})
	assert.True(t, errors.ErrInput.Is(err), "got %+v", err)
	_, err = GenInitOptions([]string{"not-an-address"})
	assert.True(t, errors.ErrInput.Is(err), "got %+v", err)
}

func TestApplicationLifecycle(t *testing.T) {
	keys := vaulttest.Keys(t, 3)
	args := []string{"-threshold", "2", "-balance", "5", "-chain_id", "test-vault"}
	for _, a := range vaulttest.Addresses(keys...) {
		args = append(args, a.String())
	}
	gen, err := GenInitOptions(args)
	require.NoError(t, err)

	home := t.TempDir()
	genesisPath := filepath.Join(home, "genesis.json")
	require.NoError(t, gen.Save(genesisPath))

	conf := Config{
		DataDir:        filepath.Join(home, "data"),
		GenesisFile:    genesisPath,
		RecovererCache: 16,
		Metrics:        true,
	}
	a, err := New(conf, log.NewNopLogger())
	require.NoError(t, err)

	intent := multisig.Intent{Amount: coin.NewAmount(2), Recipient: keys[0].Address()}
	digest, err := a.Engine().Digest(intent, 1)
	require.NoError(t, err)
	_, err = a.Engine().Authorize(context.Background(), intent, 1, vaulttest.Sign(t, digest, keys[1], keys[2]))
	require.NoError(t, err)

	w := httptest.NewRecorder()
	a.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `vault_authorizations_total{result="settled"} 1`)
	require.NoError(t, a.Close())

	// Reopening the same store, without the genesis, restores the vault.
	conf.GenesisFile = ""
	a, err = New(conf, log.NewNopLogger())
	require.NoError(t, err)
	defer a.Close()
	n, err := a.Engine().Nonce()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), n)
	bal, err := a.Engine().Balance()
	require.NoError(t, err)
	assert.Equal(t, coin.NewAmount(3), bal)
	assert.Equal(t, 2, a.Engine().Threshold())
}

func TestApplicationRequiresGenesis(t *testing.T) {
	_, err := New(Config{}, log.NewNopLogger())
	assert.True(t, errors.ErrState.Is(err), "got %+v", err)
}
