// internal/workers/batch/batch-runner/config.go
package batchrunner

import (
	"time"

	"voice-demo-generator/internal/common/config"
)

type Config struct {
	OutputDir        string
	NamingConvention string
	ReportFile       string
	RateLimitDelay   time.Duration
}

func LoadConfig(cfg *config.Config) *Config {
	return &Config{
		OutputDir:        cfg.Output.Directory,
		NamingConvention: cfg.Output.NamingConvention,
		ReportFile:       cfg.Output.ReportFile,
		RateLimitDelay:   cfg.Processing.RateLimitDuration(),
	}
}
