package boltkv

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"go.etcd.io/bbolt"

	"github.com/educonnect/educonnect/core"
)

var bucket = []byte("educonnect")

// DB is a single-file substrate: one bucket, one entry per application key.
type DB struct {
	db *bbolt.DB
}

var _ core.KVStore = (*DB)(nil) // interface compliance check

// Open opens (or creates) the database file at path.
func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.Wrap(err, "creating database dir")
	}

	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "creating bucket")
	}
	return &DB{db: db}, nil
}

func (s *DB) Get(_ context.Context, key string) (string, error) {
	var val string
	err := s.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(bucket).Get([]byte(key))
		if v == nil {
			return core.ErrKeyNotFound
		}
		// v is only valid for the life of the transaction
		val = string(v)
		return nil
	})
	return val, err
}

func (s *DB) Set(_ context.Context, key, value string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucket).Put([]byte(key), []byte(value))
	})
}

func (s *DB) Remove(_ context.Context, keys ...string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucket)
		for _, key := range keys {
			if err := b.Delete([]byte(key)); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *DB) Close() error {
	return s.db.Close()
}
