package docs

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/blackrab369/Versaas-ai/internal/company"
	"github.com/blackrab369/Versaas-ai/internal/textgen"
)

func TestIdeaBrief(t *testing.T) {
	w, err := NewWriter(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	path, err := w.IdeaBrief("a product idea: habit tracker for remote teams")
	if err != nil {
		t.Fatalf("IdeaBrief: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read brief: %v", err)
	}
	text := string(data)
	if !strings.Contains(text, "habit tracker for remote teams") {
		t.Fatal("brief missing idea text")
	}
	for _, phase := range company.Phases {
		if !strings.Contains(text, phase.Label) {
			t.Errorf("brief missing lifecycle entry %q", phase.Label)
		}
	}
}

func TestBusinessPlanWithoutGenerator(t *testing.T) {
	w, err := NewWriter(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	state := company.NewState()
	state.AdvanceDays(10, company.DefaultFinance())

	path, err := w.BusinessPlan(context.Background(), "habit-tracker", state)
	if err != nil {
		t.Fatalf("BusinessPlan: %v", err)
	}
	data, _ := os.ReadFile(path)
	text := string(data)
	if !strings.Contains(text, "## Executive Summary") {
		t.Fatal("plan missing executive summary")
	}
	if !strings.Contains(text, "Phase 3 - MVP Sprint 1") {
		t.Fatalf("plan should report the current phase:\n%s", text)
	}
}

func TestBusinessPlanUsesGenerator(t *testing.T) {
	w, err := NewWriter(t.TempDir(), textgen.Static{})
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	path, err := w.BusinessPlan(context.Background(), "habit-tracker", company.NewState())
	if err != nil {
		t.Fatalf("BusinessPlan: %v", err)
	}
	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "[ADMIN-002, CFO]") {
		t.Fatalf("generated summary missing:\n%s", data)
	}
}

func TestProgressReportsAccumulate(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir, nil)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	state := company.NewState()
	if _, err := w.ProgressReport("habit-tracker", state, []string{"CEO-001 -> MGT-001: kick off"}); err != nil {
		t.Fatalf("ProgressReport: %v", err)
	}
	if _, err := w.ProgressReport("habit-tracker", state, nil); err != nil {
		t.Fatalf("ProgressReport: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	reports := 0
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "progress-") {
			reports++
		}
	}
	if reports != 2 {
		t.Fatalf("expected 2 reports, found %d", reports)
	}
}
