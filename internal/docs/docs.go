// Package docs renders the markdown artifacts a project run produces:
// the intake idea brief and the business plan draft. Rendering is
// local and deterministic; a Generator, when available, only enriches
// the narrative sections.
package docs

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/blackrab369/Versaas-ai/internal/company"
	"github.com/blackrab369/Versaas-ai/internal/textgen"
)

// Writer renders documents into one project's output directory.
type Writer struct {
	dir string
	gen textgen.Generator
	now func() time.Time
	rng *rand.Rand
}

// NewWriter builds a document writer. gen may be nil; rendering then
// uses the built-in templates only.
func NewWriter(outputDir string, gen textgen.Generator) (*Writer, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("docs: ensure output dir: %w", err)
	}
	return &Writer{
		dir: outputDir,
		gen: gen,
		now: time.Now,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}, nil
}

func (w *Writer) docID() string {
	return ulid.MustNew(ulid.Timestamp(w.now()), w.rng).String()
}

// IdeaBrief writes the intake document for a new owner request and
// returns its path.
func (w *Writer) IdeaBrief(request string) (string, error) {
	id := w.docID()
	var b strings.Builder
	fmt.Fprintf(&b, "# Project Idea\n\n")
	fmt.Fprintf(&b, "**Document**: %s\n", id)
	fmt.Fprintf(&b, "**Received**: %s\n", w.now().UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "**From**: Company Owner\n\n")
	fmt.Fprintf(&b, "## Idea Description\n%s\n\n", strings.TrimSpace(request))
	b.WriteString("## Lifecycle\n")
	for _, phase := range company.Phases {
		if phase.BudgetDays > 0 {
			fmt.Fprintf(&b, "- [ ] %s (%.0f days)\n", phase.Label, phase.BudgetDays)
		} else {
			fmt.Fprintf(&b, "- [ ] %s (remaining days)\n", phase.Label)
		}
	}
	path := filepath.Join(w.dir, "project-idea.md")
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("docs: write idea brief: %w", err)
	}
	return path, nil
}

// BusinessPlan writes a plan draft from the current company position
// and returns its path. When a generator is configured it drafts the
// executive summary; otherwise a template fills in.
func (w *Writer) BusinessPlan(ctx context.Context, projectName string, state company.State) (string, error) {
	summary := fmt.Sprintf(
		"%s is in %s with %.1f simulated days elapsed. Current runway is %.0f days against cumulative burn of $%.0f.",
		projectName, state.Phase, state.DaysElapsed, state.RunwayDays, state.CashBurn,
	)
	if w.gen != nil {
		prompt := fmt.Sprintf(
			"Write a three-sentence executive summary for %s. Phase: %s. Revenue to date: $%.0f. Runway: %.0f days.",
			projectName, state.Phase, state.Revenue, state.RunwayDays,
		)
		drafted, err := w.gen.Generate(ctx, "ADMIN-002, CFO. Financial strategist who sees numbers as storytelling.", prompt)
		if err == nil && strings.TrimSpace(drafted) != "" {
			summary = strings.TrimSpace(drafted)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Business Plan: %s\n\n", projectName)
	fmt.Fprintf(&b, "**Document**: %s\n", w.docID())
	fmt.Fprintf(&b, "**Prepared**: %s\n\n", w.now().UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "## Executive Summary\n%s\n\n", summary)
	b.WriteString("## Financial Position\n")
	fmt.Fprintf(&b, "| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Revenue | $%.2f |\n", state.Revenue)
	fmt.Fprintf(&b, "| Cumulative burn | $%.2f |\n", state.CashBurn)
	fmt.Fprintf(&b, "| Runway | %.1f days |\n", state.RunwayDays)
	fmt.Fprintf(&b, "| Days elapsed | %.2f |\n", state.DaysElapsed)
	fmt.Fprintf(&b, "| Product status | %s |\n\n", state.ProductStatus)
	b.WriteString("## Team Health\n")
	fmt.Fprintf(&b, "- Morale: %.0f/100\n", state.TeamMorale)
	fmt.Fprintf(&b, "- Code quality: %.0f/100\n", state.CodeQuality)
	fmt.Fprintf(&b, "- Customer satisfaction: %.0f/100\n", state.CustomerSatisfaction)

	path := filepath.Join(w.dir, "business-plan.md")
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("docs: write business plan: %w", err)
	}
	return path, nil
}

// ProgressReport writes a point-in-time status report and returns its
// path. Reports accumulate; each carries its own document id in the
// filename.
func (w *Writer) ProgressReport(projectName string, state company.State, recentLines []string) (string, error) {
	id := w.docID()
	var b strings.Builder
	fmt.Fprintf(&b, "# Progress Report: %s\n\n", projectName)
	fmt.Fprintf(&b, "**Document**: %s\n", id)
	fmt.Fprintf(&b, "**As of**: simulated day %.2f (%s)\n\n", state.DaysElapsed, state.Phase)
	phase := company.PhaseForDays(state.DaysElapsed)
	fmt.Fprintf(&b, "Lifecycle position: stage %d of %d.\n\n", phase.Index+1, len(company.Phases))
	if len(recentLines) > 0 {
		b.WriteString("## Recent Activity\n")
		for _, line := range recentLines {
			fmt.Fprintf(&b, "- %s\n", line)
		}
	}
	path := filepath.Join(w.dir, fmt.Sprintf("progress-%s.md", strings.ToLower(id)))
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("docs: write progress report: %w", err)
	}
	return path, nil
}
