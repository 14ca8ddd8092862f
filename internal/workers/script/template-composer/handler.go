// internal/workers/script/template-composer/handler.go
package templatecomposer

import (
	"context"
	"fmt"
	"regexp"

	"voice-demo-generator/internal/common/logger"
	"voice-demo-generator/internal/common/random"
	"voice-demo-generator/internal/models"
	"voice-demo-generator/pkg/catalog"
)

const (
	TaskType = "template-composer"

	confirmationPrefix = "VIG"
)

var placeholderPattern = regexp.MustCompile(`\{([a-z_0-9]+)\}`)

// VariantSource returns the candidate templates for a beat.
type VariantSource interface {
	Variants(beat string) []string
}

type Handler struct {
	config    *Config
	templates VariantSource
	rng       random.Source
	logger    logger.Logger
}

func NewHandler(config *Config, templates VariantSource, rng random.Source, log logger.Logger) *Handler {
	return &Handler{
		config:    config,
		templates: templates,
		rng:       rng,
		logger: log.With(map[string]interface{}{
			"taskType": TaskType,
		}),
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	fields := h.mergeFields(input.Context)

	lines := make([]models.DialogueLine, 0, len(catalog.BeatSequence))
	for _, beat := range catalog.BeatSequence {
		variant := random.Choice(h.rng, h.templates.Variants(beat.Name))
		lines = append(lines, models.DialogueLine{
			Role: beat.Role,
			Text: Substitute(variant, fields),
		})
	}

	h.logger.Debug("composed script", map[string]interface{}{
		"businessName":     input.Context.BusinessName,
		"lines":            len(lines),
		"confirmationCode": fields["confirmation_code"],
	})

	return &Output{Lines: lines, Fields: fields}, nil
}

// Compose returns the 12 beat lines for a business context.
func (h *Handler) Compose(bctx models.BusinessContext) []models.DialogueLine {
	out, _ := h.Execute(context.Background(), &Input{Context: bctx})
	return out.Lines
}

func (h *Handler) mergeFields(bctx models.BusinessContext) map[string]string {
	fields := bctx.Fields()

	fields["customer_name"] = random.Choice(h.rng, h.config.CustomerNames)
	fields["phone_number"] = h.config.PhoneNumber
	for i, day := range h.config.DayOptions {
		fields[fmt.Sprintf("day%d", i+1)] = day
	}
	for i, t := range h.config.TimeOptions {
		fields[fmt.Sprintf("time%d", i+1)] = t
	}
	fields["confirmation_code"] = fmt.Sprintf("%s%d", confirmationPrefix, 1000+h.rng.Intn(9000))

	if len(h.config.DayOptions) > 0 {
		fields["selected_day"] = h.config.DayOptions[0]
	}
	if len(h.config.TimeOptions) > 0 {
		fields["selected_time"] = h.config.TimeOptions[0]
	}
	return fields
}

// Substitute replaces every {field} found in fields in a single pass.
// Unknown placeholders and replaced values are never re-scanned.
func Substitute(template string, fields map[string]string) string {
	return placeholderPattern.ReplaceAllStringFunc(template, func(m string) string {
		if v, ok := fields[m[1:len(m)-1]]; ok {
			return v
		}
		return m
	})
}
