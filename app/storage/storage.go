package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when the named backup object does not exist.
var ErrNotFound = errors.New("backup object not found")

type ObjectInfo struct {
	Name       string
	Size       int64
	ModifiedAt time.Time
}

// Store is the blob store holding backup objects. Objects whose name ends in
// ".zst" are zstd-compressed on upload and decompressed on download; callers
// always see the raw JSON payload.
type Store interface {
	Upload(ctx context.Context, name string, data []byte) error
	Download(ctx context.Context, name string) ([]byte, error)
	List(ctx context.Context) ([]ObjectInfo, error)
	Delete(ctx context.Context, name string) error
	SignedURL(ctx context.Context, name string, ttl time.Duration) (string, error)
}
