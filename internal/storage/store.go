package storage

import (
	"context"
	"errors"
)

// ErrStorage wraps every upload failure: network, permissions, or a missing
// bucket. Callers classify with errors.Is.
var ErrStorage = errors.New("storage failure")

// ObjectStore is the contract the S3 store (and the in-memory store used for
// tests and dry runs) must satisfy. Put overwrites silently on duplicate keys.
type ObjectStore interface {
	Put(ctx context.Context, key string, body []byte, contentType string) error

	// EnsureBucket creates the backing bucket when it does not exist yet.
	// It is a startup step only; Put never creates buckets.
	EnsureBucket(ctx context.Context) error
}
