package audit

import (
	"os"
	"strings"
	"testing"
	"time"
)

func newTestTrail(t *testing.T) *Trail {
	t.Helper()
	trail, err := New(t.TempDir(), "demo")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	trail.now = func() time.Time {
		return time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	}
	return trail
}

func TestRecordAndTail(t *testing.T) {
	trail := newTestTrail(t)
	trail.Record(KindRequest, "owner: build a todo app")
	trail.Record(KindDelegation, "CEO-001 -> MGT-001")

	lines := trail.Tail(10)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "REQUEST") || !strings.Contains(lines[0], "todo app") {
		t.Fatalf("unexpected first line: %s", lines[0])
	}

	lines = trail.Tail(1)
	if len(lines) != 1 || !strings.Contains(lines[0], "DELEGATE") {
		t.Fatalf("tail(1) should return newest line, got %v", lines)
	}
}

func TestVerifyDetectsTampering(t *testing.T) {
	trail := newTestTrail(t)
	trail.Record(KindPhase, "entered Phase 1 - Discovery")
	if err := trail.Verify(); err != nil {
		t.Fatalf("clean trail should verify: %v", err)
	}

	data, err := os.ReadFile(trail.Path())
	if err != nil {
		t.Fatalf("read trail: %v", err)
	}
	tampered := strings.Replace(string(data), "Phase 1", "Phase 9", 1)
	if err := os.WriteFile(trail.Path(), []byte(tampered), 0o644); err != nil {
		t.Fatalf("write tampered trail: %v", err)
	}
	if err := trail.Verify(); err == nil {
		t.Fatal("expected verify to fail after edit")
	}
}

func TestNilTrailIsSafe(t *testing.T) {
	var trail *Trail
	trail.Record(KindSave, "noop")
	if lines := trail.Tail(5); lines != nil {
		t.Fatalf("nil trail tail should be nil, got %v", lines)
	}
	if err := trail.Verify(); err != nil {
		t.Fatalf("nil trail verify: %v", err)
	}
}
