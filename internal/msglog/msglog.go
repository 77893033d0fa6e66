// Package msglog records agent-to-agent traffic for one project: an
// append-only communication log plus a bounded queue of messages
// waiting for the next simulation tick.
package msglog

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Broadcast is the address that reaches every agent at once.
const Broadcast = "#internal"

// Kind labels the intent of a message.
type Kind string

const (
	KindChat    Kind = "chat"
	KindRequest Kind = "request"
	KindSystem  Kind = "system"
)

// Entry is one message in the communication log.
type Entry struct {
	ID        string    `json:"message_id"`
	Seq       uint64    `json:"seq"`
	From      string    `json:"from_agent"`
	To        string    `json:"to_agent"`
	Body      string    `json:"message"`
	Kind      Kind      `json:"message_type"`
	Timestamp time.Time `json:"timestamp"`
}

// IsBroadcast reports whether the entry addresses every agent.
func (e Entry) IsBroadcast() bool {
	return e.To == Broadcast
}

// Log is the per-project message history and pending queue. The
// history grows without bound in memory; callers that need durability
// archive entries elsewhere. The pending queue is bounded: once full,
// the oldest undelivered message is dropped to admit the new one.
type Log struct {
	mu       sync.Mutex
	seq      uint64
	entries  []Entry
	pending  []Entry
	capacity int
	dropped  uint64
	now      func() time.Time
	newID    func() string
}

// Option customizes Log construction.
type Option func(*Log)

// WithQueueCapacity overrides the pending queue bound.
func WithQueueCapacity(n int) Option {
	return func(l *Log) {
		if n > 0 {
			l.capacity = n
		}
	}
}

// WithClock injects the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(l *Log) {
		if now != nil {
			l.now = now
		}
	}
}

const defaultQueueCapacity = 256

// New constructs an empty log.
func New(opts ...Option) *Log {
	l := &Log{
		capacity: defaultQueueCapacity,
		now:      time.Now,
		newID:    func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		if opt != nil {
			opt(l)
		}
	}
	return l
}

// Append records a message and enqueues it for delivery. It returns
// the stored entry with its assigned ID and sequence number.
func (l *Log) Append(from, to, body string, kind Kind) Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.seq++
	entry := Entry{
		ID:        l.newID(),
		Seq:       l.seq,
		From:      strings.TrimSpace(from),
		To:        strings.TrimSpace(to),
		Body:      body,
		Kind:      kind,
		Timestamp: l.now().UTC(),
	}
	l.entries = append(l.entries, entry)
	if len(l.pending) >= l.capacity {
		l.pending = l.pending[1:]
		l.dropped++
	}
	l.pending = append(l.pending, entry)
	return entry
}

// Drain removes and returns up to max pending messages, oldest first.
func (l *Log) Drain(max int) []Entry {
	if max <= 0 {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	n := max
	if n > len(l.pending) {
		n = len(l.pending)
	}
	if n == 0 {
		return nil
	}
	out := make([]Entry, n)
	copy(out, l.pending[:n])
	l.pending = append(l.pending[:0], l.pending[n:]...)
	return out
}

// Recent returns copies of the newest n entries, oldest first.
func (l *Log) Recent(n int) []Entry {
	if n <= 0 {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if n > len(l.entries) {
		n = len(l.entries)
	}
	out := make([]Entry, n)
	copy(out, l.entries[len(l.entries)-n:])
	return out
}

// Since returns copies of every entry with a sequence number greater
// than afterSeq, oldest first.
func (l *Log) Since(afterSeq uint64) []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	i := len(l.entries)
	for i > 0 && l.entries[i-1].Seq > afterSeq {
		i--
	}
	out := make([]Entry, len(l.entries)-i)
	copy(out, l.entries[i:])
	return out
}

// Len reports how many entries the log holds.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Pending reports how many messages await delivery.
func (l *Log) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.pending)
}

// Dropped reports how many messages the bounded queue evicted.
func (l *Log) Dropped() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.dropped
}
