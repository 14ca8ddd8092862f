// test/e2e/e2e_test.go
package e2e

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voice-demo-generator/internal/app"
	"voice-demo-generator/internal/common/config"
	"voice-demo-generator/internal/common/logger"
	"voice-demo-generator/internal/models"
	br "voice-demo-generator/internal/workers/batch/batch-runner"
	"voice-demo-generator/pkg/catalog"
)

const dentistScript = `AI Receptionist: Hi, this is Bright Smile Dental. I am Ava, the AI receptionist. How can I help you today?
Customer: Hi, um... I'm Jordan. I was hoping to get a cleaning, is it painful?
AI Receptionist: Not at all... most patients say it's quick and comfortable.
Customer: Okay, great. Can I book something?
AI Receptionist: Thank you for the information. Your appointment is booked and I have also messaged and emailed you the details.`

const lawFirmScript = `AI Receptionist: Hello, Sterling Legal.
Customer: FAIL_ME I need a lawyer.`

// fakeChat answers scripts for Dentists and Law Firms and fails every other industry.
func fakeChat(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Messages, 2)
		prompt := req.Messages[1].Content

		var content string
		switch {
		case strings.Contains(prompt, "(Dentists)"):
			content = dentistScript
		case strings.Contains(prompt, "(Law Firms)"):
			content = lawFirmScript
		default:
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"error": {"message": "overloaded", "type": "server_error"}}`))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"id":     "chatcmpl-e2e",
			"object": "chat.completion",
			"model":  "gpt-4o",
			"choices": []map[string]interface{}{{
				"index":         0,
				"message":       map[string]string{"role": "assistant", "content": content},
				"finish_reason": "stop",
			}},
		})
	}))
	t.Cleanup(server.Close)
	return server
}

// fakeSpeech returns "<voice>|" per segment and fails any text containing FAIL_ME.
func fakeSpeech(t *testing.T, calls *int64) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(calls, 1)
		assert.Equal(t, "el-key", r.Header.Get("xi-api-key"))

		var body struct {
			Text string `json:"text"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if strings.Contains(body.Text, "FAIL_ME") {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"detail": "voice unavailable"}`))
			return
		}

		voice := strings.TrimPrefix(r.URL.Path, "/v1/text-to-speech/")
		w.Header().Set("Content-Type", "audio/mpeg")
		_, _ = fmt.Fprintf(w, "%s|", voice)
	}))
	t.Cleanup(server.Close)
	return server
}

func createTestConfig(t *testing.T, chatURL, speechURL, redisAddr string) *config.Config {
	t.Helper()
	cfg := &config.Config{}
	cfg.Speech = config.SpeechConfig{
		APIKey:       "el-key",
		BaseURL:      speechURL,
		ModelID:      "eleven_multilingual_v2",
		OutputFormat: "mp3_44100_128",
	}
	cfg.TextGeneration = config.TextGenerationConfig{
		Enabled:      true,
		Provider:     "openai",
		APIKey:       "sk-test",
		BaseURL:      chatURL + "/v1",
		Model:        "gpt-4o",
		Temperature:  0.9,
		MaxTokens:    1500,
		SystemPrompt: config.DefaultSystemPrompt,
	}
	defaults := models.VoiceSettings{Stability: 0.5, SimilarityBoost: 0.75, UseSpeakerBoost: true}
	cfg.Voices = config.VoicesConfig{
		CustomerPool:         []models.Voice{{ID: "cust-a", Name: "Sam"}, {ID: "cust-b", Name: "Maya"}},
		ReceptionistPool:     []models.Voice{{ID: "rec-a", Name: "Ava"}},
		CustomerSettings:     defaults,
		ReceptionistSettings: defaults,
	}
	cfg.Conversation = config.ConversationConfig{
		CustomerNames: []string{"Jordan", "Priya"},
		PhoneNumber:   "(555) 123-4567",
		DayOptions:    []string{"Tuesday", "Thursday"},
		TimeOptions:   []string{"10 AM", "2 PM"},
	}
	out := t.TempDir()
	cfg.Output = config.OutputConfig{
		Directory:        filepath.Join(out, "voice_demos"),
		NamingConvention: "{industry_slug}_demo.mp3",
		ReportFile:       "generation_report.json",
	}
	cfg.Processing = config.ProcessingConfig{Seed: 7, BatchSize: 10}
	cfg.Observability = config.ObservabilityConfig{
		ServiceName: "voice-demo-generator-e2e",
		MetricsFile: filepath.Join(out, "metrics.prom"),
	}
	if redisAddr != "" {
		cfg.Cache.Redis = config.RedisConfig{Enabled: true, Address: redisAddr, TTL: 3600}
	}
	return cfg
}

func loadTemplates(t *testing.T) *catalog.TemplateSet {
	t.Helper()
	set, err := catalog.LoadTemplates("../../configs/conversation_templates.json")
	require.NoError(t, err)
	return set
}

func runPipeline(t *testing.T, cfg *config.Config, industries []string) (*app.Pipeline, *br.Output) {
	t.Helper()
	log := logger.NewTestLogger(t)
	p, err := app.Build(context.Background(), cfg, loadTemplates(t), log)
	require.NoError(t, err)
	t.Cleanup(p.Close)

	out, err := p.Runner.Execute(context.Background(), &br.Input{Industries: industries})
	require.NoError(t, err)
	p.WriteMetrics(log)
	return p, out
}

func TestPipeline_TwoIndustries(t *testing.T) {
	var speechCalls int64
	chat := fakeChat(t)
	speech := fakeSpeech(t, &speechCalls)
	mr := miniredis.RunT(t)

	cfg := createTestConfig(t, chat.URL, speech.URL, mr.Addr())
	p, out := runPipeline(t, cfg, []string{"Dentists", "Plumbers"})

	data, err := os.ReadFile(filepath.Join(cfg.Output.Directory, "generation_report.json"))
	require.NoError(t, err)
	var report models.RunReport
	require.NoError(t, json.Unmarshal(data, &report))

	assert.Equal(t, 2, report.Total)
	assert.Empty(t, report.Failed)
	require.Len(t, report.Success, 2)
	assert.Equal(t, "Dentists", report.Success[0].Industry)
	assert.Equal(t, filepath.Join(cfg.Output.Directory, "plumbers_demo.mp3"), report.Success[1].AudioArtifactPath)

	// Dentists used the generated script verbatim
	script, err := os.ReadFile(report.Success[0].ScriptArtifactPath)
	require.NoError(t, err)
	assert.Equal(t, dentistScript, string(script))
	assert.Equal(t, models.ScriptGenerated, out.Results[0].ScriptSource)

	// Plumbers fell back to the 12-beat composed script
	script, err = os.ReadFile(report.Success[1].ScriptArtifactPath)
	require.NoError(t, err)
	lines := models.ParseScript(string(script))
	require.Len(t, lines, 12)
	assert.Equal(t, models.RoleCustomer, lines[0].Role)
	assert.Equal(t, models.ScriptComposed, out.Results[1].ScriptSource)

	audio, err := os.ReadFile(report.Success[0].AudioArtifactPath)
	require.NoError(t, err)
	assert.Equal(t, 5, strings.Count(string(audio), "|"))
	assert.True(t, strings.HasPrefix(string(audio), "rec-a|"))

	assert.EqualValues(t, 17, atomic.LoadInt64(&speechCalls))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.Metrics.ScriptsGenerated.WithLabelValues("generated")))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.Metrics.ScriptsGenerated.WithLabelValues("composed")))
	assert.Equal(t, 2.0, testutil.ToFloat64(p.Metrics.ItemsProcessed.WithLabelValues("success")))
	assert.Equal(t, 17.0, testutil.ToFloat64(p.Metrics.CacheLookups.WithLabelValues("miss")))

	metricsFile, err := os.ReadFile(cfg.Observability.MetricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(metricsFile), "demo_items_processed_total")
	assert.Contains(t, string(metricsFile), "demo_pipeline_items_total")
	assert.NotContains(t, string(metricsFile), `{"demo`)

	t.Run("rerun with same seed is served from the segment cache", func(t *testing.T) {
		rerun := createTestConfig(t, chat.URL, speech.URL, mr.Addr())
		p2, out2 := runPipeline(t, rerun, []string{"Dentists", "Plumbers"})

		assert.Len(t, out2.Report.Success, 2)
		assert.EqualValues(t, 17, atomic.LoadInt64(&speechCalls), "no new synthesis requests")
		assert.Equal(t, 17.0, testutil.ToFloat64(p2.Metrics.CacheLookups.WithLabelValues("hit")))
	})
}

func TestPipeline_SynthesisFailureIsIsolated(t *testing.T) {
	var speechCalls int64
	chat := fakeChat(t)
	speech := fakeSpeech(t, &speechCalls)

	cfg := createTestConfig(t, chat.URL, speech.URL, "")
	_, out := runPipeline(t, cfg, []string{"Law Firms", "Hair Salons"})

	assert.Equal(t, 2, out.Report.Total)
	assert.Equal(t, []string{"Law Firms"}, out.Report.Failed)
	require.Len(t, out.Report.Success, 1)
	assert.Equal(t, "Hair Salons", out.Report.Success[0].Industry)

	_, err := os.Stat(filepath.Join(cfg.Output.Directory, "law_firms_demo.mp3"))
	assert.True(t, os.IsNotExist(err), "no partial audio for a failed item")
}

func TestPipeline_TemplateOnlyNeverCallsTextGeneration(t *testing.T) {
	chat := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected text generation request to %s", r.URL.Path)
	}))
	defer chat.Close()
	var speechCalls int64
	speech := fakeSpeech(t, &speechCalls)

	cfg := createTestConfig(t, chat.URL, speech.URL, "")
	cfg.TextGeneration.Enabled = false
	_, out := runPipeline(t, cfg, []string{"Hair Salons"})

	require.Len(t, out.Report.Success, 1)
	assert.Equal(t, models.ScriptComposed, out.Results[0].ScriptSource)
	assert.EqualValues(t, 12, atomic.LoadInt64(&speechCalls))
}
