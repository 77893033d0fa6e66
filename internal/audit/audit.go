// Package audit persists an append-only record of the notable actions a
// project run takes: owner requests, delegations, phase changes, saves.
// Entries are best-effort; a failed write never interrupts the engine.
package audit

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Kind labels what an audit entry records.
type Kind string

const (
	KindRequest    Kind = "REQUEST"
	KindDelegation Kind = "DELEGATE"
	KindPhase      Kind = "PHASE"
	KindSave       Kind = "SAVE"
	KindLifecycle  Kind = "LIFECYCLE"
)

// Trail writes hashed audit lines for one project to a single file.
type Trail struct {
	path string
	mu   sync.Mutex
	now  func() time.Time
}

// New creates a trail backed by auditDir/<project>.audit.
func New(auditDir, project string) (*Trail, error) {
	if err := os.MkdirAll(auditDir, 0o755); err != nil {
		return nil, fmt.Errorf("audit: ensure dir: %w", err)
	}
	return &Trail{
		path: filepath.Join(auditDir, project+".audit"),
		now:  time.Now,
	}, nil
}

// Path returns the file backing this trail.
func (t *Trail) Path() string {
	if t == nil {
		return ""
	}
	return t.path
}

// Record appends a single entry. Each line carries a short hash of its
// own content so tampering is detectable after the fact.
func (t *Trail) Record(kind Kind, message string) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	body := fmt.Sprintf("%s %-8s %s",
		t.now().UTC().Format(time.RFC3339),
		string(kind),
		strings.TrimSpace(message),
	)
	sum := sha256.Sum256([]byte(body))
	line := fmt.Sprintf("%s %s\n", hex.EncodeToString(sum[:4]), body)
	file, err := os.OpenFile(t.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return
	}
	defer file.Close()
	_, _ = file.WriteString(line)
}

// Recordf is Record with fmt.Sprintf formatting.
func (t *Trail) Recordf(kind Kind, format string, args ...any) {
	t.Record(kind, fmt.Sprintf(format, args...))
}

// Tail returns up to maxLines of the most recent entries.
func (t *Trail) Tail(maxLines int) []string {
	if t == nil || maxLines <= 0 {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	file, err := os.Open(t.path)
	if err != nil {
		return nil
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if len(lines) > maxLines {
		lines = lines[len(lines)-maxLines:]
	}
	return lines
}

// Verify re-hashes every line and reports the first mismatch.
func (t *Trail) Verify() error {
	if t == nil {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	file, err := os.Open(t.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("audit: open trail: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	n := 0
	for scanner.Scan() {
		n++
		line := scanner.Text()
		prefix, body, ok := strings.Cut(line, " ")
		if !ok {
			return fmt.Errorf("audit: line %d malformed", n)
		}
		sum := sha256.Sum256([]byte(body))
		if hex.EncodeToString(sum[:4]) != prefix {
			return fmt.Errorf("audit: line %d hash mismatch", n)
		}
	}
	return scanner.Err()
}
