package object

import (
	"context"
	"io"
)

// ObjectStore defines the contract for saving and retrieving uploaded binaries.
type ObjectStore interface {
	Save(ctx context.Context, ownerID int64, fileName string, r io.Reader) (storageKey string, sizeBytes int64, mimeType string, err error)
	Open(ctx context.Context, storageKey string) (io.ReadCloser, error)
}
