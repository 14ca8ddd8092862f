// cmd/demo-generator/summary.go
package main

import (
	"fmt"
	"io"
	"strings"

	br "voice-demo-generator/internal/workers/batch/batch-runner"
)

func printSummary(w io.Writer, out *br.Output, outputDir string) {
	rule := strings.Repeat("=", 60)
	report := out.Report

	fmt.Fprintln(w)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "GENERATION SUMMARY")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Run ID: %s\n", out.RunID)
	fmt.Fprintf(w, "Total industries: %d\n", report.Total)
	fmt.Fprintf(w, "Successfully generated: %d\n", len(report.Success))
	fmt.Fprintf(w, "Failed: %d\n", len(report.Failed))
	if out.Cancelled {
		fmt.Fprintf(w, "Skipped (cancelled): %d\n", report.Total-len(report.Success)-len(report.Failed))
	}

	if len(report.Failed) > 0 {
		fmt.Fprintln(w, "\nFailed industries:")
		for _, industry := range report.Failed {
			fmt.Fprintf(w, "  - %s\n", industry)
		}
	}

	fmt.Fprintf(w, "\nOutput directory: %s\n", outputDir)
	if out.ReportPath != "" {
		fmt.Fprintf(w, "Report: %s\n", out.ReportPath)
	}
	fmt.Fprintln(w, rule)
}
