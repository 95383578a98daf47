package object

import (
	"context"
	"io"
)

// Object describes a stored upload.
type Object struct {
	Key         string
	SizeBytes   int64
	ContentType string
}

// ObjectStore saves original upload bytes and reads them back.
type ObjectStore interface {
	Save(ctx context.Context, userID string, fileName string, r io.Reader) (Object, error)
	Open(ctx context.Context, storageKey string) (io.ReadCloser, error)
}
