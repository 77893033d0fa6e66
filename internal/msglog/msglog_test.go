package msglog

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func fixedClock() func() time.Time {
	return func() time.Time {
		return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	}
}

func TestAppendAssignsSequence(t *testing.T) {
	log := New(WithClock(fixedClock()))
	first := log.Append("CEO-001", "MGT-001", "kick off discovery", KindChat)
	second := log.Append("CEO-001", Broadcast, "all hands", KindSystem)

	if first.Seq != 1 || second.Seq != 2 {
		t.Fatalf("sequence = %d, %d", first.Seq, second.Seq)
	}
	if first.ID == "" || first.ID == second.ID {
		t.Fatalf("ids not unique: %q %q", first.ID, second.ID)
	}
	if !second.IsBroadcast() {
		t.Fatal("#internal should be a broadcast")
	}
	if log.Len() != 2 || log.Pending() != 2 {
		t.Fatalf("len=%d pending=%d", log.Len(), log.Pending())
	}
}

func TestDrainOldestFirst(t *testing.T) {
	log := New()
	for i := 0; i < 15; i++ {
		log.Append("A", "B", fmt.Sprintf("m%d", i), KindChat)
	}
	got := log.Drain(10)
	if len(got) != 10 {
		t.Fatalf("drained %d, want 10", len(got))
	}
	if got[0].Body != "m0" || got[9].Body != "m9" {
		t.Fatalf("wrong drain order: %s .. %s", got[0].Body, got[9].Body)
	}
	if log.Pending() != 5 {
		t.Fatalf("pending = %d, want 5", log.Pending())
	}
	rest := log.Drain(10)
	if len(rest) != 5 || rest[0].Body != "m10" {
		t.Fatalf("second drain wrong: %v", rest)
	}
	if log.Drain(10) != nil {
		t.Fatal("empty queue should drain nil")
	}
}

func TestQueueDropsOldestWhenFull(t *testing.T) {
	log := New(WithQueueCapacity(3))
	for i := 0; i < 5; i++ {
		log.Append("A", "B", fmt.Sprintf("m%d", i), KindChat)
	}
	if log.Dropped() != 2 {
		t.Fatalf("dropped = %d, want 2", log.Dropped())
	}
	got := log.Drain(10)
	if len(got) != 3 || got[0].Body != "m2" || got[2].Body != "m4" {
		t.Fatalf("queue should keep newest: %v", got)
	}
	// The full history is untouched by queue eviction.
	if log.Len() != 5 {
		t.Fatalf("history length = %d, want 5", log.Len())
	}
}

func TestRecentReturnsCopies(t *testing.T) {
	log := New()
	for i := 0; i < 4; i++ {
		log.Append("A", "B", fmt.Sprintf("m%d", i), KindChat)
	}
	recent := log.Recent(2)
	if len(recent) != 2 || recent[0].Body != "m2" || recent[1].Body != "m3" {
		t.Fatalf("recent = %v", recent)
	}
	recent[0].Body = "mutated"
	again := log.Recent(2)
	if again[0].Body != "m2" {
		t.Fatal("Recent should return copies")
	}
	if got := log.Recent(100); len(got) != 4 {
		t.Fatalf("over-asking should clamp, got %d", len(got))
	}
}

func TestSince(t *testing.T) {
	log := New()
	for i := 0; i < 6; i++ {
		log.Append("A", "B", fmt.Sprintf("m%d", i), KindChat)
	}
	got := log.Since(4)
	if len(got) != 2 || got[0].Seq != 5 || got[1].Seq != 6 {
		t.Fatalf("Since(4) = %+v", got)
	}
	if got := log.Since(100); len(got) != 0 {
		t.Fatalf("Since past end should be empty, got %v", got)
	}
	if got := log.Since(0); len(got) != 6 {
		t.Fatalf("Since(0) should return all, got %d", len(got))
	}
}

func TestConcurrentAppendAndDrain(t *testing.T) {
	log := New(WithQueueCapacity(1024))
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				log.Append("A", "B", fmt.Sprintf("w%d-%d", w, i), KindChat)
			}
		}(w)
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 50; i++ {
			log.Drain(10)
		}
	}()
	wg.Wait()
	<-done

	if log.Len() != 800 {
		t.Fatalf("history length = %d, want 800", log.Len())
	}
	seen := make(map[uint64]bool, 800)
	for _, e := range log.Recent(800) {
		if seen[e.Seq] {
			t.Fatalf("duplicate seq %d", e.Seq)
		}
		seen[e.Seq] = true
	}
}
