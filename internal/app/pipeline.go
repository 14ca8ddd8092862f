// Package app wires configuration into a runnable generation pipeline.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	notifier "voice-demo-generator/internal/common/aws"
	"voice-demo-generator/internal/common/cache"
	"voice-demo-generator/internal/common/config"
	"voice-demo-generator/internal/common/logger"
	"voice-demo-generator/internal/common/metrics"
	"voice-demo-generator/internal/common/observability"
	"voice-demo-generator/internal/common/random"
	"voice-demo-generator/internal/common/textgen"
	"voice-demo-generator/internal/common/tts"
	aa "voice-demo-generator/internal/workers/audio/audio-assembler"
	vs "voice-demo-generator/internal/workers/audio/voice-selector"
	br "voice-demo-generator/internal/workers/batch/batch-runner"
	cr "voice-demo-generator/internal/workers/script/context-resolver"
	sg "voice-demo-generator/internal/workers/script/script-generator"
	tc "voice-demo-generator/internal/workers/script/template-composer"
	"voice-demo-generator/pkg/catalog"
)

// Pipeline owns the batch runner and every resource it depends on.
type Pipeline struct {
	Runner      *br.Handler
	Metrics     *metrics.Metrics
	obs         *observability.Observability
	metricsFile string
	server      *http.Server
	closers     []func() error
}

// Build constructs the pipeline. Optional integrations that fail to start are logged and skipped.
func Build(ctx context.Context, cfg *config.Config, templates *catalog.TemplateSet, log logger.Logger) (*Pipeline, error) {
	p := &Pipeline{
		Metrics:     metrics.New(),
		metricsFile: cfg.Observability.MetricsFile,
	}

	obs, err := observability.New(observability.Options{
		ServiceName:    cfg.Observability.ServiceName,
		Registerer:     p.Metrics.Registry(),
		JaegerEndpoint: tracingEndpoint(cfg),
	})
	if err != nil {
		log.Warn("Observability degraded to no-op", map[string]interface{}{"error": err.Error()})
	}
	p.obs = obs

	rng := random.New(cfg.Processing.Seed)

	resolver := cr.NewHandler(cr.LoadConfig(), templates, rng, log)
	composer := tc.NewHandler(tc.LoadConfig(cfg.Conversation), templates, rng, log)

	var generator textgen.Service
	if cfg.TextGeneration.Enabled {
		svc, closeFn, err := textgen.New(ctx, cfg.TextGeneration)
		if err != nil {
			p.Close()
			return nil, fmt.Errorf("text generation client: %w", err)
		}
		generator = svc
		p.closers = append(p.closers, closeFn)
	}
	scripts := sg.NewHandler(sg.LoadConfig(cfg), resolver, composer, generator, rng, log)

	voices, err := vs.NewHandler(vs.LoadConfig(cfg.Voices), rng, log)
	if err != nil {
		p.Close()
		return nil, err
	}

	speech := tts.Service(tts.NewElevenLabs(tts.ElevenLabsConfig{
		APIKey:       cfg.Speech.APIKey,
		BaseURL:      cfg.Speech.BaseURL,
		ModelID:      cfg.Speech.ModelID,
		OutputFormat: cfg.Speech.OutputFormat,
		Timeout:      config.GetDuration(cfg.Speech.Timeout),
	}))
	if cfg.Cache.Redis.Enabled {
		rdb, err := connectRedis(ctx, cfg.Cache.Redis, log)
		if err != nil {
			log.Warn("Segment cache disabled", map[string]interface{}{"error": err.Error()})
		} else {
			p.closers = append(p.closers, rdb.Close)
			speech = cache.NewSegmentCache(speech, rdb, cfg.Speech.ModelID, cfg.Speech.OutputFormat, cfg.Cache.Redis.TTLDuration(), log, p.Metrics)
		}
	}
	audio := aa.NewHandler(aa.LoadConfig(cfg), speech, p.Metrics, log)

	deps := br.Dependencies{
		Voices:    voices,
		Scripts:   scripts,
		Audio:     audio,
		Metrics:   p.Metrics,
		Telemetry: obs,
	}
	if n := buildNotifier(ctx, cfg, log); n != nil {
		deps.Notifier = n
	}
	p.Runner = br.NewHandler(br.LoadConfig(cfg), deps, log)

	if addr := cfg.Observability.MetricsAddr; addr != "" {
		p.serveMetrics(addr, log)
	}
	return p, nil
}

func tracingEndpoint(cfg *config.Config) string {
	if !cfg.Observability.Tracing.Enabled {
		return ""
	}
	return cfg.Observability.Tracing.JaegerEndpoint
}

// connectRedis retries the initial ping a few times; the cache is optional so
// a final failure only disables it.
func connectRedis(ctx context.Context, cfg config.RedisConfig, log logger.Logger) (*redis.Client, error) {
	var rdb *redis.Client
	err := retryWithBackoff(func() error {
		var err error
		rdb, err = cache.NewRedis(ctx, cfg)
		return err
	}, 3, 500*time.Millisecond, log, "Redis connection")
	return rdb, err
}

func buildNotifier(ctx context.Context, cfg *config.Config, log logger.Logger) notifier.Notifier {
	var channels notifier.MultiNotifier
	region := cfg.Notifications.AWS.Region

	if cfg.Notifications.SNS.Enabled {
		client, err := notifier.NewSNSClient(ctx, region)
		if err != nil {
			log.Warn("SNS notifications disabled", map[string]interface{}{"error": err.Error()})
		} else {
			channels = append(channels, notifier.NewSNSNotifier(client, cfg.Notifications.SNS.TopicARN))
		}
	}
	if cfg.Notifications.SES.Enabled {
		client, err := notifier.NewSESClient(ctx, region)
		if err != nil {
			log.Warn("SES notifications disabled", map[string]interface{}{"error": err.Error()})
		} else {
			channels = append(channels, notifier.NewSESNotifier(client, cfg.Notifications.SES.FromEmail, cfg.Notifications.SES.ToEmails))
		}
	}

	if len(channels) == 0 {
		return nil
	}
	return channels
}

func (p *Pipeline) serveMetrics(addr string, log logger.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(p.Metrics.Registry(), promhttp.HandlerOpts{}))
	p.server = &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		log.Info("Metrics server listening", map[string]interface{}{"addr": addr})
		if err := p.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Metrics server failed", map[string]interface{}{"error": err.Error()})
		}
	}()
}

// WriteMetrics exports the Prometheus registry to the configured textfile, if any.
func (p *Pipeline) WriteMetrics(log logger.Logger) {
	if p.metricsFile == "" {
		return
	}
	if err := p.Metrics.WriteTextfile(p.metricsFile); err != nil {
		log.Warn("Failed to write metrics textfile", map[string]interface{}{
			"path":  p.metricsFile,
			"error": err.Error(),
		})
	}
}

// Close stops the metrics server and releases clients in reverse order.
func (p *Pipeline) Close() {
	if p.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_ = p.server.Shutdown(ctx)
		cancel()
	}
	for i := len(p.closers) - 1; i >= 0; i-- {
		_ = p.closers[i]()
	}
	if p.obs != nil {
		p.obs.Shutdown()
	}
}

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log logger.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName), map[string]interface{}{
				"error":       err.Error(),
				"attempt":     i + 1,
				"maxRetries":  maxRetries,
				"nextRetryIn": delay.String(),
			})
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}
