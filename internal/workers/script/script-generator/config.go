// internal/workers/script/script-generator/config.go
package scriptgenerator

import (
	"time"

	"voice-demo-generator/internal/common/config"
)

type Config struct {
	Enabled       bool
	Model         string
	Temperature   float32
	MaxTokens     int
	SystemPrompt  string
	Timeout       time.Duration
	CustomerNames []string
	PhoneNumber   string
}

func LoadConfig(cfg *config.Config) *Config {
	return &Config{
		Enabled:       cfg.TextGeneration.Enabled,
		Model:         cfg.TextGeneration.Model,
		Temperature:   cfg.TextGeneration.Temperature,
		MaxTokens:     cfg.TextGeneration.MaxTokens,
		SystemPrompt:  cfg.TextGeneration.SystemPrompt,
		Timeout:       config.GetDuration(cfg.TextGeneration.Timeout),
		CustomerNames: cfg.Conversation.CustomerNames,
		PhoneNumber:   cfg.Conversation.PhoneNumber,
	}
}
