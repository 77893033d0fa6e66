// Package textgen produces agent-authored prose. The engine never
// depends on a live model: every caller works against Generator and
// the stub keeps runs deterministic when no API key is configured.
package textgen

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Generator writes a response to a prompt in a given voice.
type Generator interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Static is a deterministic Generator for offline runs and tests. It
// answers from a fixed template keyed only on the prompts it is given.
type Static struct{}

// Generate implements Generator.
func (Static) Generate(_ context.Context, systemPrompt, userPrompt string) (string, error) {
	voice := "the team"
	if i := strings.IndexByte(systemPrompt, '.'); i > 0 {
		voice = strings.TrimSpace(systemPrompt[:i])
	}
	return fmt.Sprintf("[%s] Acknowledged: %s", voice, strings.TrimSpace(userPrompt)), nil
}

// Timed wraps a Generator with a per-call deadline.
type Timed struct {
	Inner   Generator
	Timeout time.Duration
}

// Generate implements Generator.
func (t Timed) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if t.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.Timeout)
		defer cancel()
	}
	out, err := t.Inner.Generate(ctx, systemPrompt, userPrompt)
	if err != nil {
		return "", fmt.Errorf("textgen: generate: %w", err)
	}
	return out, nil
}
