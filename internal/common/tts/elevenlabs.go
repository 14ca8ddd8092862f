package tts

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	apphttp "voice-demo-generator/internal/common/http"
)

var ErrEmptyAudio = errors.New("EMPTY_AUDIO")

type ElevenLabsConfig struct {
	APIKey       string
	BaseURL      string
	ModelID      string
	OutputFormat string
	Timeout      time.Duration
}

type ElevenLabs struct {
	client *apphttp.Client
	config ElevenLabsConfig
}

func NewElevenLabs(cfg ElevenLabsConfig) *ElevenLabs {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.elevenlabs.io"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}
	return &ElevenLabs{
		client: apphttp.NewClient(cfg.Timeout),
		config: cfg,
	}
}

func (e *ElevenLabs) Synthesize(ctx context.Context, req Request) ([]byte, error) {
	endpoint := strings.TrimRight(e.config.BaseURL, "/") + "/v1/text-to-speech/" + url.PathEscape(req.VoiceID)
	if e.config.OutputFormat != "" {
		endpoint += "?output_format=" + url.QueryEscape(e.config.OutputFormat)
	}

	requestBody := map[string]interface{}{
		"text":     req.Text,
		"model_id": e.config.ModelID,
		"voice_settings": map[string]interface{}{
			"stability":         req.Settings.Stability,
			"similarity_boost":  req.Settings.SimilarityBoost,
			"style":             req.Settings.Style,
			"use_speaker_boost": req.Settings.UseSpeakerBoost,
		},
	}
	headers := map[string]string{
		"Accept":     "audio/mpeg",
		"xi-api-key": e.config.APIKey,
	}

	audio, err := e.client.PostJSON(ctx, endpoint, headers, requestBody)
	if err != nil {
		return nil, fmt.Errorf("ElevenLabs API error: %w", err)
	}
	if len(audio) == 0 {
		return nil, ErrEmptyAudio
	}
	return audio, nil
}
