package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/blackrab369/Versaas-ai/internal/msglog"
)

// MemoryStore is an in-process Store for tests and ephemeral runs.
type MemoryStore struct {
	mu       sync.Mutex
	projects map[string]ProjectRecord
	archive  map[string][]msglog.Entry
	seen     map[string]struct{}
}

// NewMemoryStore builds an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		projects: make(map[string]ProjectRecord),
		archive:  make(map[string][]msglog.Entry),
		seen:     make(map[string]struct{}),
	}
}

// SaveState implements Store.
func (m *MemoryStore) SaveState(_ context.Context, project string, state []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	blob := make([]byte, len(state))
	copy(blob, state)
	m.projects[project] = ProjectRecord{Name: project, State: blob, UpdatedAt: time.Now().UTC()}
	return nil
}

// LoadState implements Store.
func (m *MemoryStore) LoadState(_ context.Context, project string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.projects[project]
	if !ok {
		return nil, ErrNotFound
	}
	blob := make([]byte, len(rec.State))
	copy(blob, rec.State)
	return blob, nil
}

// Projects implements Store.
func (m *MemoryStore) Projects(_ context.Context) ([]ProjectRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]ProjectRecord, 0, len(m.projects))
	for _, rec := range m.projects {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

// ArchiveMessages implements Store.
func (m *MemoryStore) ArchiveMessages(_ context.Context, project string, entries []msglog.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range entries {
		if _, dup := m.seen[e.ID]; dup {
			continue
		}
		m.seen[e.ID] = struct{}{}
		m.archive[project] = append(m.archive[project], e)
	}
	return nil
}

// MessagesSince implements Store.
func (m *MemoryStore) MessagesSince(_ context.Context, project string, afterSeq uint64, limit int) ([]msglog.Entry, error) {
	if limit <= 0 {
		limit = 100
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []msglog.Entry
	for _, e := range m.archive[project] {
		if e.Seq > afterSeq {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	return nil
}
