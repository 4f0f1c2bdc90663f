package memkv

import (
	"context"
	"sync"

	"github.com/educonnect/educonnect/core"
)

// DB is a process-local substrate. Its contents die with the process.
type DB struct {
	sync.RWMutex
	table map[string]string
}

var _ core.KVStore = (*DB)(nil) // interface compliance check

func Open() *DB {
	return &DB{table: make(map[string]string)}
}

func (db *DB) Get(_ context.Context, key string) (string, error) {
	db.RLock()
	defer db.RUnlock()

	if val, ok := db.table[key]; ok {
		return val, nil
	}
	return "", core.ErrKeyNotFound
}

func (db *DB) Set(_ context.Context, key, value string) error {
	db.Lock()
	defer db.Unlock()
	db.table[key] = value
	return nil
}

func (db *DB) Remove(_ context.Context, keys ...string) error {
	db.Lock()
	defer db.Unlock()
	for _, key := range keys {
		delete(db.table, key)
	}
	return nil
}

// Len returns the number of stored keys.
func (db *DB) Len() int {
	db.RLock()
	defer db.RUnlock()
	return len(db.table)
}

func (db *DB) Close() error { return nil }
