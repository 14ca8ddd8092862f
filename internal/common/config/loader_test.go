package config

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "voice-demo-generator/internal/common/errors"
)

const baseYAML = `
speech:
  api_key: "${TEST_ELEVENLABS_KEY}"
text_generation:
  enabled: %s
  model: gpt-4o
voices:
  customer_pool:
    - voice_id: cust-1
      name: Sam
      accent: american
  receptionist_pool:
    - voice_id: rec-1
      name: Ava
      accent: british
  customer_settings:
    stability: 0.3
conversation:
  customer_names: ["Jordan", "Priya"]
  phone_number: "(555) 123-4567"
  day_options: ["Tuesday", "Thursday"]
  time_options: ["10 AM", "2 PM"]
output:
  directory: %s
  naming_convention: "%s"
processing:
  rate_limit_delay: 1.5
`

func writeConfig(t *testing.T, enabled, dir, naming string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte(fmt.Sprintf(baseYAML, enabled, dir, naming))
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

func TestLoadFromFile_Defaults(t *testing.T) {
	t.Setenv("TEST_ELEVENLABS_KEY", "el-secret")
	path := writeConfig(t, "false", "demos", "{industry_slug}_demo.mp3")

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "el-secret", cfg.Speech.APIKey)
	assert.Equal(t, "https://api.elevenlabs.io", cfg.Speech.BaseURL)
	assert.False(t, cfg.TextGeneration.Enabled)
	assert.Equal(t, DefaultSystemPrompt, cfg.TextGeneration.SystemPrompt)

	// partial settings keep the remaining defaults
	assert.InDelta(t, 0.3, cfg.Voices.CustomerSettings.Stability, 1e-9)
	assert.InDelta(t, 0.75, cfg.Voices.CustomerSettings.SimilarityBoost, 1e-9)
	assert.True(t, cfg.Voices.CustomerSettings.UseSpeakerBoost)
	assert.InDelta(t, 0.5, cfg.Voices.ReceptionistSettings.Stability, 1e-9)
	assert.InDelta(t, 0.0, cfg.Voices.ReceptionistSettings.Style, 1e-9)

	assert.Equal(t, "cust-1", cfg.Voices.CustomerPool[0].ID)
	assert.Equal(t, 1500*time.Millisecond, cfg.Processing.RateLimitDuration())
	assert.Equal(t, 500*time.Millisecond, cfg.Processing.SegmentDuration())
	assert.Equal(t, 10, cfg.Processing.BatchSize)
	assert.Equal(t, "generation_report.json", cfg.Output.ReportFile)
}

func TestLoadFromFile_TextGenerationKeyFromEnv(t *testing.T) {
	t.Setenv("TEST_ELEVENLABS_KEY", "el-secret")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	path := writeConfig(t, "true", "demos", "{industry_slug}_demo.mp3")

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.True(t, cfg.TextGeneration.Enabled)
	assert.Equal(t, "sk-test", cfg.TextGeneration.APIKey)
	assert.Equal(t, "openai", cfg.TextGeneration.Provider)
}

func TestLoadFromFile_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(t *testing.T)
		enabled string
		naming  string
		errPart string
	}{
		{
			name:    "missing speech key",
			setup:   func(t *testing.T) { t.Setenv("TEST_ELEVENLABS_KEY", ""); t.Setenv("ELEVENLABS_API_KEY", "") },
			enabled: "false",
			naming:  "{industry_slug}_demo.mp3",
			errPart: "Speech.APIKey",
		},
		{
			name:    "naming convention without slug",
			setup:   func(t *testing.T) { t.Setenv("TEST_ELEVENLABS_KEY", "k") },
			enabled: "false",
			naming:  "demo.mp3",
			errPart: "NamingConvention",
		},
		{
			name:    "text generation enabled without key",
			setup:   func(t *testing.T) { t.Setenv("TEST_ELEVENLABS_KEY", "k"); t.Setenv("OPENAI_API_KEY", "") },
			enabled: "true",
			naming:  "{industry_slug}_demo.mp3",
			errPart: "text_generation.api_key",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup(t)
			path := writeConfig(t, tt.enabled, "demos", tt.naming)

			cfg, err := LoadFromFile(path)
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Equal(t, apperrors.ErrCodeConfigInvalid, apperrors.CodeOf(err))
			assert.Contains(t, err.Error(), tt.errPart)
		})
	}
}

func TestLoadFromFile_MissingFile(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeConfigInvalid, apperrors.CodeOf(err))
}

func TestLoadWithOverrides(t *testing.T) {
	t.Setenv("TEST_ELEVENLABS_KEY", "k")
	t.Setenv("OPENAI_API_KEY", "")
	path := writeConfig(t, "true", "demos", "{industry_slug}_demo.mp3")

	// template-only runs need no text-generation key
	cfg, err := LoadWithOverrides(path, map[string]interface{}{
		"text_generation.enabled": false,
		"processing.seed":         uint64(42),
		"logging.level":           "debug",
	})
	require.NoError(t, err)
	assert.False(t, cfg.TextGeneration.Enabled)
	assert.Equal(t, uint64(42), cfg.Processing.Seed)
	assert.Equal(t, "debug", cfg.Logging.Level)
}
