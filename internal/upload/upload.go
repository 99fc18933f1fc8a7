package upload

import (
	"context"
	"io"
)

const (
	BackendDrive = "drive"
	BackendS3    = "s3"
)

// Sink stores one archive in a cloud destination. Implementations make a
// single attempt; callers treat any error as fatal for the run.
type Sink interface {
	// Upload stores size bytes from r under name and returns the provider's
	// identifier for the created object.
	Upload(ctx context.Context, name string, r io.Reader, size int64) (string, error)
}
