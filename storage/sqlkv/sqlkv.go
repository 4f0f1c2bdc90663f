// Package sqlkv keeps the application keys in a PostgreSQL table.
package sqlkv

import (
	"context"
	"database/sql"
	"net/url"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/educonnect/educonnect/core"
)

const (
	createTableQuery = `CREATE TABLE IF NOT EXISTS kv_entries (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
)`
	getQuery    = `SELECT value FROM kv_entries WHERE key = $1`
	setQuery    = `INSERT INTO kv_entries (key, value) VALUES ($1, $2) ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`
	removeQuery = `DELETE FROM kv_entries WHERE key = ANY($1)`
)

type DB struct {
	db *sqlx.DB
}

var _ core.KVStore = (*DB)(nil) // interface compliance check

// checkURL validates a postgres connection URL.
func checkURL(dbURL string) error {
	if dbURL == "" {
		return errors.New("database URL is empty")
	}
	u, err := url.Parse(dbURL)
	if err != nil {
		return errors.Wrap(err, "invalid database URL")
	}
	if u.Scheme != "postgres" && u.Scheme != "postgresql" {
		return errors.Errorf("invalid database URL scheme %q", u.Scheme)
	}
	return nil
}

// Open connects to dbURL, waits for the server and creates the entries table.
func Open(ctx context.Context, dbURL string) (*DB, error) {
	if err := checkURL(dbURL); err != nil {
		return nil, err
	}
	db, err := sqlx.Open("postgres", dbURL)
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}
	if err := ping(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, createTableQuery); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "creating kv_entries")
	}
	return &DB{db: db}, nil
}

// ping waits for the database to be ready. Waits 100ms longer between each attempt.
func ping(ctx context.Context, db *sqlx.DB) error {
	var err error
	maxAttempts := 10
	for attempts := 1; attempts <= maxAttempts; attempts++ {
		if err = db.PingContext(ctx); err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return errors.Wrap(ctx.Err(), "DB ping")
		case <-time.After(time.Duration(attempts) * 100 * time.Millisecond):
		}
	}
	return errors.Wrap(err, "DB ping timeout")
}

func (s *DB) Get(ctx context.Context, key string) (string, error) {
	var val string
	if err := s.db.GetContext(ctx, &val, getQuery, key); err != nil {
		if err == sql.ErrNoRows {
			return "", core.ErrKeyNotFound
		}
		return "", errors.Wrapf(err, "getting %s", key)
	}
	return val, nil
}

func (s *DB) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, setQuery, key, value)
	return errors.Wrapf(err, "setting %s", key)
}

func (s *DB) Remove(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	_, err := s.db.ExecContext(ctx, removeQuery, pq.Array(keys))
	return errors.Wrap(err, "removing keys")
}

func (s *DB) Close() error {
	return s.db.Close()
}
