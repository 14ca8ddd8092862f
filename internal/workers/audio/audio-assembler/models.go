// internal/workers/audio/audio-assembler/models.go
package audioassembler

import "voice-demo-generator/internal/models"

type Input struct {
	Script *models.GeneratedScript `json:"script"`
	Voices models.VoicePair        `json:"voices"`
}

type Output struct {
	Audio    []byte                `json:"-"`
	Segments []models.AudioSegment `json:"-"`
}
