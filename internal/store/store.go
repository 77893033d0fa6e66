// Package store persists project state blobs and archives the message
// traffic each project generates.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/blackrab369/Versaas-ai/internal/msglog"
)

// ErrNotFound reports that no saved state exists for a project.
var ErrNotFound = errors.New("store: project not found")

// ProjectRecord is one persisted project.
type ProjectRecord struct {
	Name      string
	State     []byte
	UpdatedAt time.Time
}

// Store saves and loads project runs.
type Store interface {
	// SaveState upserts the state blob for a project.
	SaveState(ctx context.Context, project string, state []byte) error
	// LoadState returns the latest blob for a project, or ErrNotFound.
	LoadState(ctx context.Context, project string) ([]byte, error)
	// Projects lists every saved project, most recently updated first.
	Projects(ctx context.Context) ([]ProjectRecord, error)
	// ArchiveMessages appends message entries to the durable archive.
	ArchiveMessages(ctx context.Context, project string, entries []msglog.Entry) error
	// MessagesSince returns archived messages with Seq greater than
	// afterSeq, oldest first, up to limit.
	MessagesSince(ctx context.Context, project string, afterSeq uint64, limit int) ([]msglog.Entry, error)
	Close() error
}
