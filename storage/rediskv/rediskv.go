// Package rediskv keeps the application keys in Redis (or any RESP-compatible server).
package rediskv

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/educonnect/educonnect/core"
)

// DB wraps a Redis client. Every application key is stored under Prefix+key.
type DB struct {
	Client *redis.Client
	Prefix string
}

var _ core.KVStore = (*DB)(nil) // interface compliance check

// ParseURL validates a Redis connection URL.
func ParseURL(url string) (*redis.Options, error) {
	if url == "" {
		return nil, errors.New("redis URL is empty")
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.Wrap(err, "invalid redis URL")
	}
	return opts, nil
}

// Open connects to url and pings the server.
func Open(ctx context.Context, url, prefix string) (*DB, error) {
	opts, err := ParseURL(url)
	if err != nil {
		return nil, err
	}

	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Wrap(err, "pinging redis")
	}
	return &DB{Client: client, Prefix: prefix}, nil
}

func (db *DB) key(k string) string { return db.Prefix + k }

func (db *DB) Get(ctx context.Context, key string) (string, error) {
	val, err := db.Client.Get(ctx, db.key(key)).Result()
	if err == redis.Nil {
		return "", core.ErrKeyNotFound
	}
	return val, err
}

func (db *DB) Set(ctx context.Context, key, value string) error {
	// no expiry: entries live until removed
	return db.Client.Set(ctx, db.key(key), value, 0).Err()
}

func (db *DB) Remove(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	prefixed := make([]string, 0, len(keys))
	for _, k := range keys {
		prefixed = append(prefixed, db.key(k))
	}
	return db.Client.Del(ctx, prefixed...).Err()
}

func (db *DB) Close() error {
	return db.Client.Close()
}
