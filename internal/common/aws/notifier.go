package aws

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// RunSummary is what gets announced when a batch finishes.
type RunSummary struct {
	RunID      string
	Total      int
	Succeeded  int
	Failed     []string
	OutputDir  string
	ReportPath string
	Duration   time.Duration
}

type Notifier interface {
	NotifyRunComplete(ctx context.Context, summary RunSummary) error
}

// MultiNotifier fans a summary out to every channel and joins the failures.
type MultiNotifier []Notifier

func (m MultiNotifier) NotifyRunComplete(ctx context.Context, summary RunSummary) error {
	var errs []error
	for _, n := range m {
		if err := n.NotifyRunComplete(ctx, summary); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// FormatSummary renders the plain-text subject and body for a run.
func FormatSummary(s RunSummary) (string, string) {
	subject := fmt.Sprintf("Voice demo run %s: %d/%d succeeded", shortID(s.RunID), s.Succeeded, s.Total)

	var b strings.Builder
	fmt.Fprintf(&b, "Run ID: %s\n", s.RunID)
	fmt.Fprintf(&b, "Total industries: %d\n", s.Total)
	fmt.Fprintf(&b, "Successfully generated: %d\n", s.Succeeded)
	fmt.Fprintf(&b, "Failed: %d\n", len(s.Failed))
	for _, name := range s.Failed {
		fmt.Fprintf(&b, "  - %s\n", name)
	}
	fmt.Fprintf(&b, "Duration: %s\n", s.Duration.Round(time.Second))
	fmt.Fprintf(&b, "Output directory: %s\n", s.OutputDir)
	if s.ReportPath != "" {
		fmt.Fprintf(&b, "Report: %s\n", s.ReportPath)
	}
	return subject, b.String()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
