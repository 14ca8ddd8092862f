// internal/workers/batch/batch-runner/handler.go
package batchrunner

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	notifier "voice-demo-generator/internal/common/aws"
	apperrors "voice-demo-generator/internal/common/errors"
	"voice-demo-generator/internal/common/logger"
	"voice-demo-generator/internal/common/observability"
	"voice-demo-generator/internal/common/validation"
	"voice-demo-generator/internal/models"
	"voice-demo-generator/pkg/slug"
)

const (
	TaskType = "batch-runner"
)

var ErrOutputDirUnavailable = errors.New("OUTPUT_DIR_UNAVAILABLE")

type VoiceSelector interface {
	Select() models.VoicePair
}

type ScriptGenerator interface {
	Generate(ctx context.Context, industry, receptionistName string) *models.GeneratedScript
}

type AudioAssembler interface {
	Assemble(ctx context.Context, script *models.GeneratedScript, voices models.VoicePair) ([]byte, error)
}

// Recorder receives per-item Prometheus observations.
type Recorder interface {
	RecordItem(status string, d time.Duration)
	RecordScript(source string)
}

// Telemetry is the OTel side of observability.
type Telemetry interface {
	StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span)
	RecordItemProcessed(ctx context.Context, status string)
	RecordStageDuration(ctx context.Context, stage string, d time.Duration)
}

// Sleeper pauses for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// Dependencies are the pipeline stages plus optional observers. Nil observers are skipped.
type Dependencies struct {
	Voices    VoiceSelector
	Scripts   ScriptGenerator
	Audio     AudioAssembler
	Metrics   Recorder
	Telemetry Telemetry
	Notifier  notifier.Notifier
	Sleep     Sleeper
}

type Handler struct {
	config     *Config
	deps       Dependencies
	errHandler *apperrors.ErrorHandler
	logger     logger.Logger
}

func NewHandler(config *Config, deps Dependencies, log logger.Logger) *Handler {
	if deps.Sleep == nil {
		deps.Sleep = SleepContext
	}
	if deps.Telemetry == nil {
		deps.Telemetry = noopTelemetry{}
	}
	log = log.With(map[string]interface{}{
		"taskType": TaskType,
	})
	return &Handler{
		config:     config,
		deps:       deps,
		errHandler: apperrors.NewErrorHandler(log),
		logger:     log,
	}
}

// Execute processes industries strictly in order and writes one report at the end.
// Cancelling ctx stops the run before the next item; the report is still written.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	start := time.Now()
	runID := uuid.NewString()
	log := h.logger.With(map[string]interface{}{"runId": runID})

	items := Truncate(input.Industries, input.Limit)
	report := models.NewRunReport(len(items))
	out := &Output{RunID: runID, Report: report}

	if err := os.MkdirAll(h.config.OutputDir, 0o755); err != nil {
		return nil, apperrors.NewArtifactWriteFailedError(h.config.OutputDir, errors.Join(ErrOutputDirUnavailable, err))
	}

	log.Info("Starting batch", map[string]interface{}{
		"total":     len(items),
		"outputDir": h.config.OutputDir,
	})

	for i, industry := range items {
		if ctx.Err() != nil {
			out.Cancelled = true
			log.Warn("Run cancelled, skipping remaining items", map[string]interface{}{
				"processed": i,
				"remaining": len(items) - i,
			})
			break
		}

		res := h.processItem(ctx, log, industry)
		report.Add(res)
		out.Results = append(out.Results, res)

		log.Info("Item finished", map[string]interface{}{
			"industry": industry,
			"position": i + 1,
			"total":    len(items),
			"failed":   res.Failed(),
			"duration": res.Duration.String(),
		})

		_ = h.deps.Sleep(ctx, h.config.RateLimitDelay)
	}

	out.ReportPath = filepath.Join(h.config.OutputDir, h.config.ReportFile)
	out.Duration = time.Since(start)
	writeErr := WriteReport(out.ReportPath, report)
	if writeErr != nil {
		log.Error("Failed to write run report", map[string]interface{}{
			"path":  out.ReportPath,
			"error": writeErr.Error(),
		})
		out.ReportPath = ""
	}

	log.Info("Batch complete", map[string]interface{}{
		"succeeded": len(report.Success),
		"failed":    len(report.Failed),
		"total":     report.Total,
		"duration":  out.Duration.String(),
	})

	h.notify(context.WithoutCancel(ctx), log, out)

	if writeErr != nil {
		return out, writeErr
	}
	return out, nil
}

func (h *Handler) processItem(ctx context.Context, log logger.Logger, industry string) (res models.ItemResult) {
	start := time.Now()
	res.Industry = industry

	ctx, span := h.deps.Telemetry.StartSpan(ctx, "batch.item", attribute.String("industry", industry))
	defer func() {
		if r := recover(); r != nil {
			res.Success = nil
			res.Err = h.errHandler.RecoverItem(industry, r)
		} else if res.Err != nil {
			h.errHandler.HandleItemError(industry, res.Err)
		}
		res.Duration = time.Since(start)

		status := statusSuccess
		if res.Failed() {
			status = statusFailed
		}
		if h.deps.Metrics != nil {
			h.deps.Metrics.RecordItem(status, res.Duration)
		}
		h.deps.Telemetry.RecordItemProcessed(ctx, status)
		observability.EndSpan(span, res.Err)
	}()

	voices := h.deps.Voices.Select()

	stageStart := time.Now()
	script := h.deps.Scripts.Generate(ctx, industry, voices.Receptionist.Name)
	h.deps.Telemetry.RecordStageDuration(ctx, "script", time.Since(stageStart))
	res.ScriptSource = script.Source
	if h.deps.Metrics != nil {
		h.deps.Metrics.RecordScript(string(script.Source))
	}
	if script.IsComposed() {
		log.Debug("Using composed script", map[string]interface{}{
			"industry": industry,
			"reason":   script.FallbackReason,
		})
	}

	itemSlug := slug.Make(industry)
	scriptPath := filepath.Join(h.config.OutputDir, itemSlug+"_script.txt")
	if err := os.WriteFile(scriptPath, []byte(script.Text), 0o644); err != nil {
		res.Err = apperrors.NewArtifactWriteFailedError(scriptPath, err)
		return res
	}

	stageStart = time.Now()
	audio, err := h.deps.Audio.Assemble(ctx, script, voices)
	h.deps.Telemetry.RecordStageDuration(ctx, "audio", time.Since(stageStart))
	if err != nil {
		res.Err = err
		return res
	}

	audioPath := filepath.Join(h.config.OutputDir, AudioFileName(h.config.NamingConvention, itemSlug))
	if err := os.WriteFile(audioPath, audio, 0o644); err != nil {
		res.Err = apperrors.NewArtifactWriteFailedError(audioPath, err)
		return res
	}

	res.Success = &models.ItemSuccess{
		Industry:           industry,
		AudioArtifactPath:  audioPath,
		ScriptArtifactPath: scriptPath,
	}
	return res
}

func (h *Handler) notify(ctx context.Context, log logger.Logger, out *Output) {
	if h.deps.Notifier == nil {
		return
	}
	summary := notifier.RunSummary{
		RunID:      out.RunID,
		Total:      out.Report.Total,
		Succeeded:  len(out.Report.Success),
		Failed:     out.Report.Failed,
		OutputDir:  h.config.OutputDir,
		ReportPath: out.ReportPath,
		Duration:   out.Duration,
	}
	if err := h.deps.Notifier.NotifyRunComplete(ctx, summary); err != nil {
		log.Warn("Run notification failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

// Truncate keeps the first limit industries. A limit <= 0 keeps all.
func Truncate(industries []string, limit int) []string {
	if limit <= 0 || limit >= len(industries) {
		return industries
	}
	return industries[:limit]
}

// AudioFileName applies the naming convention to an industry slug.
func AudioFileName(convention, industrySlug string) string {
	return strings.ReplaceAll(convention, validation.IndustrySlugPlaceholder, industrySlug)
}

// WriteReport writes the run report as indented JSON.
func WriteReport(path string, report *models.RunReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return apperrors.NewReportWriteFailedError(path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return apperrors.NewReportWriteFailedError(path, err)
	}
	return nil
}

// SleepContext waits for d unless ctx is cancelled first.
func SleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

type noopTelemetry struct{}

func (noopTelemetry) StartSpan(ctx context.Context, _ string, _ ...attribute.KeyValue) (context.Context, trace.Span) {
	return ctx, tracenoop.Span{}
}

func (noopTelemetry) RecordItemProcessed(context.Context, string) {}

func (noopTelemetry) RecordStageDuration(context.Context, string, time.Duration) {}
