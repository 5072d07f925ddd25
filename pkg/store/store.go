// Package store persists the catalog's JSON documents. A Store holds one
// document per logical path and supports optimistic concurrency through
// an opaque revision tag: Read returns the tag alongside the bytes, and
// Write only succeeds when the supplied tag still matches the backend's.
package store

import (
	"context"
	"errors"
	"fmt"
)

// Logical paths for the two documents this service manages.
const (
	ProductsPath = "products.json"
	SalePath     = "sale.json"
)

var (
	// ErrConflict means the document changed since it was read; the
	// caller should re-read and reapply its mutation.
	ErrConflict = errors.New("store: revision conflict")

	// ErrUnavailable means the backend could not be reached or the
	// operation timed out. Safe to retry with a fresh read.
	ErrUnavailable = errors.New("store: unavailable")
)

// Document is the result of a Read. Found is false when the path does
// not exist yet; that is a normal first-use state, not an error. Tag is
// empty for backends without revisions and for absent documents.
type Document struct {
	Bytes []byte
	Tag   string
	Found bool
}

// Store is the capability the repository and sale engine need from a
// backend. Write returns the new revision tag.
type Store interface {
	Read(ctx context.Context, path string) (Document, error)
	Write(ctx context.Context, path string, data []byte, expectedTag string) (string, error)
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrUnavailable, op, err)
}
