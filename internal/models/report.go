// internal/models/report.go
package models

import "time"

// ItemSuccess records the artifacts written for one industry.
type ItemSuccess struct {
	Industry           string `json:"industry"`
	AudioArtifactPath  string `json:"audio_artifact_path"`
	ScriptArtifactPath string `json:"script_artifact_path"`
}

// ItemResult is the outcome for one industry. Err is nil on success.
type ItemResult struct {
	Industry     string
	Success      *ItemSuccess
	ScriptSource ScriptSource
	Err          error
	Duration     time.Duration
}

func (r ItemResult) Failed() bool {
	return r.Success == nil
}

// RunReport is written once at the end of a batch.
type RunReport struct {
	Success []ItemSuccess `json:"success"`
	Failed  []string      `json:"failed"`
	Total   int           `json:"total"`
}

func NewRunReport(total int) *RunReport {
	return &RunReport{
		Success: []ItemSuccess{},
		Failed:  []string{},
		Total:   total,
	}
}

func (r *RunReport) Add(res ItemResult) {
	if res.Failed() {
		r.Failed = append(r.Failed, res.Industry)
		return
	}
	r.Success = append(r.Success, *res.Success)
}
