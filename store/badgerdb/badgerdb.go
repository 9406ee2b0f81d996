/*
Package badgerdb provides a persistent KVStore backed by a badger database.

All writes of a batch are applied within a single badger transaction, so
readers observe either none or all of them.
*/
package badgerdb

import (
	"github.com/dgraph-io/badger/v4"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/store"
)

// Store is a badger backed KVStore.
type Store struct {
	db *badger.DB
}

var _ store.CacheableKVStore = (*Store)(nil)

// Open opens (creating if needed) a database stored in the given directory.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	return open(opts)
}

// OpenInMemory returns a store that does not persist anything on disk.
func OpenInMemory() (*Store, error) {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	return open(opts)
}

func open(opts badger.Options) (*Store, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "open badger: %s", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return errors.Wrapf(errors.ErrDatabase, "close badger: %s", err)
	}
	return nil
}

func (s *Store) Get(key []byte) ([]byte, error) {
	var value []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "get: %s", err)
	}
	return value, nil
}

func (s *Store) Has(key []byte) (bool, error) {
	var found bool
	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		switch err {
		case nil:
			found = true
			return nil
		case badger.ErrKeyNotFound:
			return nil
		default:
			return err
		}
	})
	if err != nil {
		return false, errors.Wrapf(errors.ErrDatabase, "has: %s", err)
	}
	return found, nil
}

func (s *Store) Set(key, value []byte) error {
	b := s.NewBatch()
	if err := b.Set(key, value); err != nil {
		return err
	}
	return b.Write()
}

func (s *Store) Delete(key []byte) error {
	b := s.NewBatch()
	if err := b.Delete(key); err != nil {
		return err
	}
	return b.Write()
}

// NewBatch returns a batch written in a single transaction.
func (s *Store) NewBatch() store.Batch {
	return &batch{db: s.db}
}

// CacheWrap returns a cache that is flushed to the database within a single
// transaction.
func (s *Store) CacheWrap() store.KVCacheWrap {
	return store.NewBTreeCacheWrap(s, s.NewBatch(), nil)
}

type batch struct {
	db  *badger.DB
	ops []store.Op
}

func (b *batch) Set(key, value []byte) error {
	b.ops = append(b.ops, store.SetOp(key, value))
	return nil
}

func (b *batch) Delete(key []byte) error {
	b.ops = append(b.ops, store.DelOp(key))
	return nil
}

func (b *batch) Write() error {
	err := b.db.Update(func(txn *badger.Txn) error {
		for _, op := range b.ops {
			if err := op.Apply(txnWriter{txn}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return errors.Wrapf(errors.ErrDatabase, "write batch: %s", err)
	}
	b.ops = nil
	return nil
}

// txnWriter adapts a badger transaction to the SetDeleter interface.
type txnWriter struct {
	txn *badger.Txn
}

func (w txnWriter) Set(key, value []byte) error {
	return w.txn.Set(key, value)
}

func (w txnWriter) Delete(key []byte) error {
	return w.txn.Delete(key)
}
