// internal/workers/audio/voice-selector/config.go
package voiceselector

import (
	"voice-demo-generator/internal/common/config"
	"voice-demo-generator/internal/models"
)

type Config struct {
	CustomerPool     []models.Voice
	ReceptionistPool []models.Voice
}

func LoadConfig(voices config.VoicesConfig) *Config {
	return &Config{
		CustomerPool:     voices.CustomerPool,
		ReceptionistPool: voices.ReceptionistPool,
	}
}
