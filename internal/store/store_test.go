package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/blackrab369/Versaas-ai/internal/msglog"
)

func openStores(t *testing.T) map[string]Store {
	t.Helper()
	sqlite, err := NewSQLiteStore(filepath.Join(t.TempDir(), "versaas.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { sqlite.Close() })
	return map[string]Store{
		"sqlite": sqlite,
		"memory": NewMemoryStore(),
	}
}

func TestSaveAndLoadState(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			if _, err := s.LoadState(ctx, "ghost"); !errors.Is(err, ErrNotFound) {
				t.Fatalf("missing project error = %v, want ErrNotFound", err)
			}

			if err := s.SaveState(ctx, "demo", []byte(`{"days_elapsed":4}`)); err != nil {
				t.Fatalf("SaveState: %v", err)
			}
			if err := s.SaveState(ctx, "demo", []byte(`{"days_elapsed":5}`)); err != nil {
				t.Fatalf("SaveState upsert: %v", err)
			}
			blob, err := s.LoadState(ctx, "demo")
			if err != nil {
				t.Fatalf("LoadState: %v", err)
			}
			if string(blob) != `{"days_elapsed":5}` {
				t.Fatalf("blob = %s, want latest save", blob)
			}
		})
	}
}

func TestProjectsListing(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			if err := s.SaveState(ctx, "alpha", []byte(`{}`)); err != nil {
				t.Fatalf("SaveState: %v", err)
			}
			time.Sleep(2 * time.Millisecond)
			if err := s.SaveState(ctx, "beta", []byte(`{}`)); err != nil {
				t.Fatalf("SaveState: %v", err)
			}
			recs, err := s.Projects(ctx)
			if err != nil {
				t.Fatalf("Projects: %v", err)
			}
			if len(recs) != 2 || recs[0].Name != "beta" {
				t.Fatalf("listing = %+v, want beta first", recs)
			}
		})
	}
}

func TestArchiveAndReplayMessages(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			batch := []msglog.Entry{
				{ID: "id-1", Seq: 1, From: "OWNER", To: "CEO-001", Body: "hello", Kind: msglog.KindRequest, Timestamp: time.Now()},
				{ID: "id-2", Seq: 2, From: "CEO-001", To: "#internal", Body: "all hands", Kind: msglog.KindChat, Timestamp: time.Now()},
				{ID: "id-3", Seq: 3, From: "CEO-001", To: "MGT-001", Body: "delegate", Kind: msglog.KindChat, Timestamp: time.Now()},
			}
			if err := s.ArchiveMessages(ctx, "demo", batch); err != nil {
				t.Fatalf("ArchiveMessages: %v", err)
			}
			// Overlapping flush must not duplicate.
			if err := s.ArchiveMessages(ctx, "demo", batch[1:]); err != nil {
				t.Fatalf("ArchiveMessages overlap: %v", err)
			}

			got, err := s.MessagesSince(ctx, "demo", 1, 10)
			if err != nil {
				t.Fatalf("MessagesSince: %v", err)
			}
			if len(got) != 2 || got[0].Seq != 2 || got[1].Seq != 3 {
				t.Fatalf("replay = %+v", got)
			}
			if got[0].Body != "all hands" || got[0].Kind != msglog.KindChat {
				t.Fatalf("entry fields lost: %+v", got[0])
			}
		})
	}
}

func TestMessagesSinceHonorsLimit(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			var batch []msglog.Entry
			for i := 1; i <= 20; i++ {
				batch = append(batch, msglog.Entry{
					ID: string(rune('a'+i)) + "-id", Seq: uint64(i),
					From: "A", To: "B", Body: "m", Kind: msglog.KindChat, Timestamp: time.Now(),
				})
			}
			if err := s.ArchiveMessages(ctx, "demo", batch); err != nil {
				t.Fatalf("ArchiveMessages: %v", err)
			}
			got, err := s.MessagesSince(ctx, "demo", 0, 5)
			if err != nil {
				t.Fatalf("MessagesSince: %v", err)
			}
			if len(got) != 5 || got[4].Seq != 5 {
				t.Fatalf("limit ignored: %+v", got)
			}
		})
	}
}
