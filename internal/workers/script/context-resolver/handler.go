// internal/workers/script/context-resolver/handler.go
package contextresolver

import (
	"context"
	"fmt"
	"strings"

	"voice-demo-generator/internal/common/logger"
	"voice-demo-generator/internal/common/random"
	"voice-demo-generator/internal/models"
)

const (
	TaskType = "context-resolver"
)

// ContextSource looks up curated business contexts by exact industry name.
type ContextSource interface {
	Context(industry string) (models.BusinessContext, bool)
}

type Handler struct {
	config   *Config
	contexts ContextSource
	rng      random.Source
	logger   logger.Logger
}

func NewHandler(config *Config, contexts ContextSource, rng random.Source, log logger.Logger) *Handler {
	return &Handler{
		config:   config,
		contexts: contexts,
		rng:      rng,
		logger: log.With(map[string]interface{}{
			"taskType": TaskType,
		}),
	}
}

// Execute never fails; the error return keeps the worker signature uniform.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if curated, ok := h.lookup(input.Industry); ok {
		return &Output{Context: curated, Curated: true}, nil
	}
	generic := h.generic(input.Industry)
	h.logger.Debug("synthesized generic context", map[string]interface{}{
		"industry":     input.Industry,
		"businessName": generic.BusinessName,
	})
	return &Output{Context: generic}, nil
}

// Resolve returns the curated context for industry or synthesizes one.
func (h *Handler) Resolve(industry string) models.BusinessContext {
	out, _ := h.Execute(context.Background(), &Input{Industry: industry})
	return out.Context
}

func (h *Handler) lookup(industry string) (models.BusinessContext, bool) {
	if h.contexts == nil {
		return models.BusinessContext{}, false
	}
	return h.contexts.Context(industry)
}

func (h *Handler) generic(industry string) models.BusinessContext {
	lower := strings.ToLower(industry)
	suffix := classify(lower)
	prefix := random.Choice(h.rng, h.config.Prefixes)

	name := fmt.Sprintf("%s %s", prefix, industry)
	// suffix check is case-sensitive against the display name
	if suffix != "" && !strings.Contains(industry, suffix) {
		name += " " + suffix
	}
	if strings.HasSuffix(name, "s Services") {
		name = strings.TrimSuffix(name, "s Services") + " Services"
	}

	serviceType := strings.TrimSuffix(lower, " services")
	serviceType = strings.TrimSuffix(serviceType, " companies")

	return models.BusinessContext{
		BusinessName:       name,
		ServiceType:        serviceType,
		SpecificNeed:       serviceType,
		ServiceCategory:    lower,
		ServiceList:        fmt.Sprintf("consultations, appointments, and specialized %s services", lower),
		RecommendedService: fmt.Sprintf("our most popular %s package", serviceType),
	}
}

func classify(lowerIndustry string) string {
	for _, rule := range suffixRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lowerIndustry, kw) {
				return rule.suffix
			}
		}
	}
	return defaultSuffix
}
