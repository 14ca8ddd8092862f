// internal/models/voice.go
package models

type VoiceSettings struct {
	Stability       float64 `json:"stability" mapstructure:"stability" validate:"gte=0,lte=1"`
	SimilarityBoost float64 `json:"similarity_boost" mapstructure:"similarity_boost" validate:"gte=0,lte=1"`
	Style           float64 `json:"style" mapstructure:"style" validate:"gte=0,lte=1"`
	UseSpeakerBoost bool    `json:"use_speaker_boost" mapstructure:"use_speaker_boost"`
}

type Voice struct {
	ID     string `json:"voice_id" mapstructure:"voice_id" validate:"required"`
	Name   string `json:"name" mapstructure:"name"`
	Accent string `json:"accent" mapstructure:"accent"`
}

// VoicePair is the pair drawn for one call.
type VoicePair struct {
	Customer     Voice `json:"customer"`
	Receptionist Voice `json:"receptionist"`
}

// AudioSegment holds the synthesized bytes for exactly one dialogue line.
type AudioSegment struct {
	LineIndex int
	VoiceID   string
	Data      []byte
}
