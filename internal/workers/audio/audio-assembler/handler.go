// internal/workers/audio/audio-assembler/handler.go
package audioassembler

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"golang.org/x/time/rate"

	apperrors "voice-demo-generator/internal/common/errors"
	"voice-demo-generator/internal/common/logger"
	"voice-demo-generator/internal/common/tts"
	"voice-demo-generator/internal/models"
)

const (
	TaskType = "audio-assembler"
)

var (
	ErrSynthesisFailed = errors.New("SYNTHESIS_FAILED")
	ErrNoDialogue      = errors.New("NO_DIALOGUE")
)

// SegmentRecorder counts synthesized segments.
type SegmentRecorder interface {
	RecordSegment()
}

type Handler struct {
	config   *Config
	speech   tts.Service
	recorder SegmentRecorder
	logger   logger.Logger
}

func NewHandler(config *Config, speech tts.Service, recorder SegmentRecorder, log logger.Logger) *Handler {
	return &Handler{
		config:   config,
		speech:   speech,
		recorder: recorder,
		logger: log.With(map[string]interface{}{
			"taskType": TaskType,
		}),
	}
}

// Execute synthesizes every tagged line in order. Any line failure aborts the whole script.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	lines := input.Script.Lines
	if len(lines) == 0 {
		lines = models.ParseScript(input.Script.Text)
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: %w", ErrNoDialogue, apperrors.NewNoDialogueError())
	}

	pacer := h.newPacer()
	segments := make([]models.AudioSegment, 0, len(lines))
	var audio bytes.Buffer

	for i, line := range lines {
		if err := pacer.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrSynthesisFailed, apperrors.NewSynthesisFailedError(i, err))
		}

		voice, settings := h.voiceFor(line.Role, input.Voices)
		data, err := h.speech.Synthesize(ctx, tts.Request{
			Text:     line.Text,
			VoiceID:  voice.ID,
			Settings: settings,
		})
		if err != nil {
			h.logger.Error("segment synthesis failed", map[string]interface{}{
				"line":    i,
				"role":    string(line.Role),
				"voiceId": voice.ID,
				"error":   err.Error(),
			})
			return nil, fmt.Errorf("%w: %w", ErrSynthesisFailed, apperrors.NewSynthesisFailedError(i, err))
		}

		segments = append(segments, models.AudioSegment{LineIndex: i, VoiceID: voice.ID, Data: data})
		audio.Write(data)
		if h.recorder != nil {
			h.recorder.RecordSegment()
		}
	}

	h.logger.Debug("assembled audio", map[string]interface{}{
		"segments": len(segments),
		"bytes":    audio.Len(),
	})

	return &Output{Audio: audio.Bytes(), Segments: segments}, nil
}

// Assemble returns the concatenated audio for a script.
func (h *Handler) Assemble(ctx context.Context, script *models.GeneratedScript, voices models.VoicePair) ([]byte, error) {
	out, err := h.Execute(ctx, &Input{Script: script, Voices: voices})
	if err != nil {
		return nil, err
	}
	return out.Audio, nil
}

// newPacer allows the first call immediately and spaces later calls by SegmentDelay.
func (h *Handler) newPacer() *rate.Limiter {
	if h.config.SegmentDelay <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(h.config.SegmentDelay), 1)
}

func (h *Handler) voiceFor(role models.SpeakerRole, voices models.VoicePair) (models.Voice, models.VoiceSettings) {
	if role == models.RoleReceptionist {
		return voices.Receptionist, h.config.ReceptionistSettings
	}
	return voices.Customer, h.config.CustomerSettings
}
