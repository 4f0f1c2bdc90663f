package core

import (
	"context"

	"github.com/pkg/errors"
)

// Substrate keys
const (
	KeyCourses     = "courses"
	KeyAssignments = "assignments"
	KeySubmissions = "submissions"
	KeyUsers       = "users"
	KeySession     = "user"
	KeySeeded      = "hasSeededData"
)

// AllKeys lists every key owned by the application, in clearing order.
var AllKeys = []string{KeyUsers, KeyCourses, KeyAssignments, KeySubmissions, KeySession, KeySeeded}

var ErrKeyNotFound = errors.New("key not found")

// KVStore is the durable string-keyed substrate the application state is written to.
type KVStore interface {
	// Get returns ErrKeyNotFound when key is absent.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	// Remove deletes keys; absent keys are ignored.
	Remove(ctx context.Context, keys ...string) error
	Close() error
}

// KVHas reports whether key is present in kv.
func KVHas(ctx context.Context, kv KVStore, key string) (bool, error) {
	if _, err := kv.Get(ctx, key); err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
