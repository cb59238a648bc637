package storage

import (
	"context"
	"io"
)

type StorageService interface {
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	PublicURL(key string) string
}
