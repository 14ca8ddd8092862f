// internal/workers/audio/voice-selector/handler.go
package voiceselector

import (
	"context"
	"errors"

	"voice-demo-generator/internal/common/logger"
	"voice-demo-generator/internal/common/random"
	"voice-demo-generator/internal/models"
)

const (
	TaskType = "voice-selector"
)

var ErrEmptyVoicePool = errors.New("EMPTY_VOICE_POOL")

type Handler struct {
	config *Config
	rng    random.Source
	logger logger.Logger
}

func NewHandler(config *Config, rng random.Source, log logger.Logger) (*Handler, error) {
	if len(config.CustomerPool) == 0 || len(config.ReceptionistPool) == 0 {
		return nil, ErrEmptyVoicePool
	}
	return &Handler{
		config: config,
		rng:    rng,
		logger: log.With(map[string]interface{}{
			"taskType": TaskType,
		}),
	}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return &Output{Voices: h.Select()}, nil
}

// Select draws the customer voice, then the receptionist voice.
func (h *Handler) Select() models.VoicePair {
	pair := models.VoicePair{
		Customer:     random.Choice(h.rng, h.config.CustomerPool),
		Receptionist: random.Choice(h.rng, h.config.ReceptionistPool),
	}
	h.logger.Debug("selected voices", map[string]interface{}{
		"customer":           pair.Customer.Name,
		"customerAccent":     pair.Customer.Accent,
		"receptionist":       pair.Receptionist.Name,
		"receptionistAccent": pair.Receptionist.Accent,
	})
	return pair
}
