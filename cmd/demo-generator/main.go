// cmd/demo-generator/main.go
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"voice-demo-generator/internal/app"
	"voice-demo-generator/internal/common/config"
	"voice-demo-generator/internal/common/logger"
	br "voice-demo-generator/internal/workers/batch/batch-runner"
	"voice-demo-generator/pkg/catalog"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

type options struct {
	ConfigPath   string
	Industries   string
	Limit        int
	TestMode     bool
	All          bool
	Batch        *int
	BatchSize    int
	BatchSizeSet bool
	TemplateOnly bool
	Seed         uint64
	LogLevel     string
	MetricsAddr  string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	fs := pflag.NewFlagSet("demo-generator", pflag.ContinueOnError)
	fs.SetOutput(stderr)

	opts := &options{}
	var batch int
	fs.StringVarP(&opts.ConfigPath, "config", "c", "", "path to config.yaml (default: search ./configs)")
	fs.StringVar(&opts.Industries, "industries", "", "comma-separated industries to generate")
	fs.IntVar(&opts.Limit, "limit", 0, "process only the first N industries")
	fs.BoolVar(&opts.TestMode, "test-mode", false, "generate the 3-industry smoke set")
	fs.BoolVar(&opts.All, "all", false, "generate every industry in the catalog")
	fs.IntVar(&batch, "batch", 0, "1-based batch number of the industry list")
	fs.IntVar(&opts.BatchSize, "batch-size", 0, "industries per batch (default: processing.batch_size)")
	fs.BoolVar(&opts.TemplateOnly, "template-only", false, "skip text generation and compose scripts from templates")
	fs.Uint64Var(&opts.Seed, "seed", 0, "random seed for reproducible runs (0: time-based)")
	fs.StringVar(&opts.LogLevel, "log-level", "", "override logging.level")
	fs.StringVar(&opts.MetricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address during the run")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.Changed("batch") {
		opts.Batch = &batch
	}
	opts.BatchSizeSet = fs.Changed("batch-size")
	if opts.All {
		opts.Industries = ""
		opts.Batch = nil
	}
	return opts, nil
}

func (o *options) overrides() map[string]interface{} {
	out := map[string]interface{}{}
	if o.TemplateOnly {
		out["text_generation.enabled"] = false
	}
	if o.Seed != 0 {
		out["processing.seed"] = o.Seed
	}
	if o.BatchSize > 0 {
		out["processing.batch_size"] = o.BatchSize
	}
	if o.LogLevel != "" {
		out["logging.level"] = o.LogLevel
	}
	if o.MetricsAddr != "" {
		out["observability.metrics_addr"] = o.MetricsAddr
	}
	return out
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return exitUsage
	}

	if opts.BatchSizeSet && opts.BatchSize < 1 {
		fmt.Fprintf(stderr, "error: %v\n", fmt.Errorf("%w: %d", br.ErrInvalidBatchSize, opts.BatchSize))
		return exitError
	}

	cfg, err := config.LoadWithOverrides(opts.ConfigPath, opts.overrides())
	if err != nil {
		fmt.Fprintf(stderr, "configuration error: %v\n", err)
		return exitError
	}

	zapLog := logger.NewWithOptions(logger.Options{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		File:       cfg.Logging.File,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
	})
	defer func() { _ = zapLog.Sync() }()
	log := logger.NewZapAdapter(zapLog)

	templates, err := catalog.LoadTemplates(cfg.Data.TemplatesPath)
	if err != nil {
		log.Error("Failed to load conversation templates", map[string]interface{}{"error": err.Error()})
		return exitError
	}
	industries, err := catalog.LoadIndustries(cfg.Data.IndustriesPath)
	if err != nil {
		log.Error("Failed to load industries", map[string]interface{}{"error": err.Error()})
		return exitError
	}

	selected, limit, err := br.Select(industries, br.Selection{
		TestMode:   opts.TestMode,
		Industries: opts.Industries,
		Batch:      opts.Batch,
		BatchSize:  cfg.Processing.BatchSize,
		Limit:      opts.Limit,
	})
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitError
	}

	p, err := app.Build(ctx, cfg, templates, log)
	if err != nil {
		log.Error("Failed to initialize pipeline", map[string]interface{}{"error": err.Error()})
		return exitError
	}
	defer p.Close()

	out, err := p.Runner.Execute(ctx, &br.Input{Industries: selected, Limit: limit})
	if out == nil {
		log.Error("Batch run failed", map[string]interface{}{"error": err.Error()})
		return exitError
	}
	p.WriteMetrics(log)
	printSummary(stdout, out, cfg.Output.Directory)

	if err != nil {
		log.Error("Batch finished with errors", map[string]interface{}{"error": err.Error()})
		return exitError
	}
	return exitOK
}
