// Package tts synthesizes single-voice audio for one dialogue line at a time.
package tts

import (
	"context"

	"voice-demo-generator/internal/models"
)

// Request is one line of text to speak with a given voice.
type Request struct {
	Text     string
	VoiceID  string
	Settings models.VoiceSettings
}

// Service returns encoded audio bytes for a request.
type Service interface {
	Synthesize(ctx context.Context, req Request) ([]byte, error)
}
