package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/educonnect/educonnect/core"
)

func TestOpenKV(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name    string
		conf    core.StorageConfig
		wantErr bool
	}{
		{name: "memory", conf: core.StorageConfig{Driver: core.DriverMemory}},
		{name: "bolt", conf: core.StorageConfig{Driver: core.DriverBolt, Path: filepath.Join(t.TempDir(), "kv.db")}},
		{name: "redis: empty url", conf: core.StorageConfig{Driver: core.DriverRedis}, wantErr: true},
		{name: "postgres: empty url", conf: core.StorageConfig{Driver: core.DriverPostgres}, wantErr: true},
		{name: "unknown", conf: core.StorageConfig{Driver: "localStorage"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv, err := OpenKV(ctx, tt.conf)
			if (err != nil) != tt.wantErr {
				t.Fatalf("OpenKV() error = %v, wantErr %v", err, tt.wantErr)
			}
			if kv != nil {
				_ = kv.Close()
			}
		})
	}
}
