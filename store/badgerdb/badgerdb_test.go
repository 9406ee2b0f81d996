package badgerdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorePersists(t *testing.T) {
	dir := t.TempDir()

	db, err := Open(dir)
	require.NoError(t, err)

	require.NoError(t, db.Set([]byte("owner"), []byte("alice")))
	require.NoError(t, db.Set([]byte("gone"), []byte("soon")))
	require.NoError(t, db.Delete([]byte("gone")))
	require.NoError(t, db.Close())

	db, err = Open(dir)
	require.NoError(t, err)
	defer db.Close()

	v, err := db.Get([]byte("owner"))
	require.NoError(t, err)
	assert.Equal(t, []byte("alice"), v)

	ok, err := db.Has([]byte("gone"))
	require.NoError(t, err)
	assert.False(t, ok)

	v, err = db.Get([]byte("missing"))
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestCacheWrapWritesAtomically(t *testing.T) {
	db, err := OpenInMemory()
	require.NoError(t, err)
	defer db.Close()

	cache := db.CacheWrap()
	require.NoError(t, cache.Set([]byte("nonce"), []byte{1}))
	require.NoError(t, cache.Set([]byte("balance"), []byte{9}))

	ok, err := db.Has([]byte("nonce"))
	require.NoError(t, err)
	assert.False(t, ok, "cached writes must not be visible before Write")

	require.NoError(t, cache.Write())

	v, err := db.Get([]byte("nonce"))
	require.NoError(t, err)
	assert.Equal(t, []byte{1}, v)
	v, err = db.Get([]byte("balance"))
	require.NoError(t, err)
	assert.Equal(t, []byte{9}, v)

	discarded := db.CacheWrap()
	require.NoError(t, discarded.Set([]byte("nonce"), []byte{2}))
	discarded.Discard()
	v, err = db.Get([]byte("nonce"))
	require.NoError(t, err)
	assert.Equal(t, []byte{1}, v)
}
