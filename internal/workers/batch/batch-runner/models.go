// internal/workers/batch/batch-runner/models.go
package batchrunner

import (
	"time"

	"voice-demo-generator/internal/models"
)

type Input struct {
	Industries []string `json:"industries"`
	// Limit keeps only the first Limit industries; zero or negative means all.
	Limit int `json:"limit,omitempty"`
}

type Output struct {
	RunID      string              `json:"runId"`
	Report     *models.RunReport   `json:"report"`
	ReportPath string              `json:"reportPath"`
	Results    []models.ItemResult `json:"-"`
	Cancelled  bool                `json:"cancelled"`
	Duration   time.Duration       `json:"duration"`
}

const (
	statusSuccess = "success"
	statusFailed  = "failed"
)
