package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voice-demo-generator/internal/common/config"
	"voice-demo-generator/internal/common/logger"
	"voice-demo-generator/internal/models"
	"voice-demo-generator/pkg/catalog"
)

func TestRetryWithBackoff(t *testing.T) {
	log := logger.NewTestLogger(t)

	attempts := 0
	err := retryWithBackoff(func() error {
		attempts++
		if attempts < 3 {
			return errors.New("connection refused")
		}
		return nil
	}, 5, time.Millisecond, log, "Redis connection")
	require.NoError(t, err)
	assert.Equal(t, 3, attempts)

	attempts = 0
	err = retryWithBackoff(func() error {
		attempts++
		return errors.New("still down")
	}, 2, time.Millisecond, log, "Redis connection")
	assert.ErrorContains(t, err, "Redis connection failed after 2 attempts: still down")
	assert.Equal(t, 2, attempts)
}

func TestBuild_TemplateOnlyWithoutOptionalIntegrations(t *testing.T) {
	cfg := &config.Config{}
	cfg.Speech = config.SpeechConfig{APIKey: "k", BaseURL: "http://127.0.0.1:1", ModelID: "m"}
	cfg.Voices = config.VoicesConfig{
		CustomerPool:     []models.Voice{{ID: "c"}},
		ReceptionistPool: []models.Voice{{ID: "r"}},
	}
	cfg.Output = config.OutputConfig{Directory: t.TempDir(), NamingConvention: "{industry_slug}.mp3", ReportFile: "r.json"}
	cfg.Observability.ServiceName = "test"

	p, err := Build(context.Background(), cfg, &catalog.TemplateSet{}, logger.NewTestLogger(t))
	require.NoError(t, err)
	defer p.Close()

	assert.NotNil(t, p.Runner)
	assert.NotNil(t, p.Metrics)
	assert.Nil(t, p.server)
	assert.Nil(t, buildNotifier(context.Background(), cfg, logger.NewNoOpLogger()))

	// no metrics file configured
	p.WriteMetrics(logger.NewNoOpLogger())
}

func TestTracingEndpoint(t *testing.T) {
	cfg := &config.Config{}
	cfg.Observability.Tracing.JaegerEndpoint = "http://jaeger:14268/api/traces"
	assert.Empty(t, tracingEndpoint(cfg))

	cfg.Observability.Tracing.Enabled = true
	assert.Equal(t, "http://jaeger:14268/api/traces", tracingEndpoint(cfg))
}
