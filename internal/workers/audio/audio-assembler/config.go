// internal/workers/audio/audio-assembler/config.go
package audioassembler

import (
	"time"

	"voice-demo-generator/internal/common/config"
	"voice-demo-generator/internal/models"
)

type Config struct {
	CustomerSettings     models.VoiceSettings
	ReceptionistSettings models.VoiceSettings
	SegmentDelay         time.Duration
}

func LoadConfig(cfg *config.Config) *Config {
	return &Config{
		CustomerSettings:     cfg.Voices.CustomerSettings,
		ReceptionistSettings: cfg.Voices.ReceptionistSettings,
		SegmentDelay:         cfg.Processing.SegmentDuration(),
	}
}
