// Package storage opens the configured key/value substrate.
package storage

import (
	"context"

	"github.com/pkg/errors"

	"github.com/educonnect/educonnect/core"
	"github.com/educonnect/educonnect/storage/boltkv"
	"github.com/educonnect/educonnect/storage/memkv"
	"github.com/educonnect/educonnect/storage/rediskv"
	"github.com/educonnect/educonnect/storage/sqlkv"
)

func OpenKV(ctx context.Context, conf core.StorageConfig) (core.KVStore, error) {
	switch conf.Driver {
	case core.DriverMemory:
		return memkv.Open(), nil
	case core.DriverBolt:
		db, err := boltkv.Open(conf.Path)
		if err != nil {
			return nil, err
		}
		return db, nil
	case core.DriverRedis:
		db, err := rediskv.Open(ctx, conf.RedisURL, conf.Prefix)
		if err != nil {
			return nil, err
		}
		return db, nil
	case core.DriverPostgres:
		db, err := sqlkv.Open(ctx, conf.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return db, nil
	default:
		return nil, errors.Errorf("unknown storage driver %q", conf.Driver)
	}
}
