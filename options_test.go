package vault

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/iov-one/vault/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
)

func TestReadOptions(t *testing.T) {
	opts := Options{
		"vault": json.RawMessage(`{"threshold": 2}`),
		"bad":   json.RawMessage(`{"threshold": "two"}`),
	}

	var conf struct {
		Threshold int `json:"threshold"`
	}
	require.NoError(t, opts.ReadOptions("vault", &conf))
	assert.Equal(t, 2, conf.Threshold)

	// missing key is a noop
	conf.Threshold = 7
	require.NoError(t, opts.ReadOptions("missing", &conf))
	assert.Equal(t, 7, conf.Threshold)

	err := opts.ReadOptions("bad", &conf)
	assert.True(t, errors.ErrEncoding.Is(err), "got %+v", err)
}

type countingInit struct {
	calls *int
	err   error
}

func (c countingInit) FromGenesis(Options, KVStore) error {
	*c.calls++
	return c.err
}

func TestChainInitializers(t *testing.T) {
	var calls int
	ok := countingInit{calls: &calls}
	fail := countingInit{calls: &calls, err: errors.ErrHuman}

	require.NoError(t, ChainInitializers(ok, ok).FromGenesis(nil, nil))
	assert.Equal(t, 2, calls)

	calls = 0
	err := ChainInitializers(ok, fail, ok).FromGenesis(nil, nil)
	assert.True(t, errors.ErrHuman.Is(err))
	assert.Equal(t, 2, calls, "must abort at the first error")
}

func TestContextLogger(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, DefaultLogger, GetLogger(ctx))

	logger := log.NewNopLogger().With("module", "test")
	ctx = WithLogger(ctx, logger)
	assert.Equal(t, logger, GetLogger(ctx))

	ctx = WithLogInfo(ctx, "request", 1)
	assert.NotNil(t, GetLogger(ctx))
}
