// Package storage persists rendered analysis reports and diff artifacts.
package storage

import (
	"context"
)

type Storage interface {
	// Put stores a report under the given key and returns its location.
	Put(ctx context.Context, key string, data []byte) (string, error)
	// Get retrieves a report from a location previously returned by Put.
	Get(ctx context.Context, location string) ([]byte, error)
}
