// internal/workers/audio/voice-selector/models.go
package voiceselector

import "voice-demo-generator/internal/models"

type Input struct{}

type Output struct {
	Voices models.VoicePair `json:"voices"`
}
