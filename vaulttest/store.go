package vaulttest

import (
	"testing"

	"github.com/iov-one/vault/store/badgerdb"
)

// BadgerStore returns an in memory badger backed store, closed when the test
// finishes. Use it instead of store.MemStore when a test must run against the
// production storage engine.
func BadgerStore(t testing.TB) *badgerdb.Store {
	t.Helper()
	db, err := badgerdb.OpenInMemory()
	if err != nil {
		t.Fatalf("cannot open badger: %s", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("cannot close badger: %s", err)
		}
	})
	return db
}
