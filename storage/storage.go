// Package storage defines the persistence abstraction used for produced
// artifacts: chain-of-custody records and exported transcripts.
package storage

import (
	"context"
	"io"
)

// Storage is a minimal blob store over a flat path namespace.
type Storage interface {
	// Upload writes data from reader to the given path, creating parent
	// directories as needed.
	Upload(ctx context.Context, path string, reader io.Reader) error
	// Download returns a reader for the blob at the given path.
	Download(ctx context.Context, path string) (io.ReadCloser, error)
	// Exists checks whether a blob exists.
	Exists(ctx context.Context, path string) (bool, error)
	// Delete removes a blob. Removing a missing blob is not an error.
	Delete(ctx context.Context, path string) error
	// URL returns an addressable URL for the blob.
	URL(ctx context.Context, path string) (string, error)
}
