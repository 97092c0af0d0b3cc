// Package storage persists the canonical comment table. The CSV backend
// is the primary output (readable by the analyze command and by the
// existing downstream analysis files); JSONL and MongoDB are optional
// archive sinks, and MultiStorage fans out to several at once.
package storage

import (
	"douyinsight/internal/types"
)

// Storage is the interface for all storage backends.
type Storage interface {
	// Store persists a batch of comments.
	Store(comments []*types.Comment) error

	// Close flushes pending writes and releases resources.
	Close() error

	// Name returns the storage backend identifier.
	Name() string
}
