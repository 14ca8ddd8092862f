// internal/workers/script/script-generator/handler.go
package scriptgenerator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	apperrors "voice-demo-generator/internal/common/errors"
	"voice-demo-generator/internal/common/logger"
	"voice-demo-generator/internal/common/random"
	"voice-demo-generator/internal/common/textgen"
	"voice-demo-generator/internal/models"
)

const (
	TaskType = "script-generator"

	reasonDisabled = "text generation disabled"
)

var (
	ErrTextGenerationFailed = errors.New("TEXT_GENERATION_FAILED")
	ErrUnusableResponse     = errors.New("TEXT_GENERATION_UNUSABLE")
)

type ContextResolver interface {
	Resolve(industry string) models.BusinessContext
}

type Composer interface {
	Compose(bctx models.BusinessContext) []models.DialogueLine
}

type Handler struct {
	config    *Config
	resolver  ContextResolver
	composer  Composer
	generator textgen.Service
	rng       random.Source
	logger    logger.Logger
}

// NewHandler wires the generator. A nil generator runs in template-only mode.
func NewHandler(config *Config, resolver ContextResolver, composer Composer, generator textgen.Service, rng random.Source, log logger.Logger) *Handler {
	return &Handler{
		config:    config,
		resolver:  resolver,
		composer:  composer,
		generator: generator,
		rng:       rng,
		logger: log.With(map[string]interface{}{
			"taskType": TaskType,
		}),
	}
}

// Execute always yields a script; text-generation failures fall back to composition.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	bctx := h.resolver.Resolve(input.Industry)

	if !h.config.Enabled || h.generator == nil {
		return &Output{Script: h.compose(bctx, reasonDisabled), Context: bctx}, nil
	}

	prompt := h.buildPrompt(bctx, input)
	text, err := h.complete(ctx, prompt)
	if errors.Is(err, textgen.ErrEmptyResponse) {
		return h.fallback(bctx, input.Industry, apperrors.NewTextGenerationEmptyError(h.generator.Name(), err)), nil
	}
	if err != nil {
		return h.fallback(bctx, input.Industry, apperrors.NewTextGenerationFailedError(h.generator.Name(), err)), nil
	}

	lines := models.ParseScript(text)
	if len(lines) == 0 {
		unusable := fmt.Errorf("%w: no speaker-tagged lines", ErrUnusableResponse)
		stdErr := apperrors.NewTextGenerationEmptyError(h.generator.Name(), unusable).
			WithMetadata(map[string]interface{}{"length": len(text)})
		return h.fallback(bctx, input.Industry, stdErr), nil
	}

	h.logger.Debug("generated script", map[string]interface{}{
		"industry": input.Industry,
		"lines":    len(lines),
	})

	return &Output{
		Script: &models.GeneratedScript{
			Source: models.ScriptGenerated,
			Text:   text,
			Lines:  lines,
		},
		Context: bctx,
	}, nil
}

// Generate is Execute without the error return.
func (h *Handler) Generate(ctx context.Context, industry, receptionistName string) *models.GeneratedScript {
	out, _ := h.Execute(ctx, &Input{Industry: industry, ReceptionistName: receptionistName})
	return out.Script
}

func (h *Handler) complete(ctx context.Context, prompt string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: panic: %v", ErrTextGenerationFailed, r)
		}
	}()

	if h.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.config.Timeout)
		defer cancel()
	}

	text, err = h.generator.Complete(ctx, textgen.CompletionRequest{
		System:      h.config.SystemPrompt,
		Prompt:      prompt,
		Model:       h.config.Model,
		Temperature: h.config.Temperature,
		MaxTokens:   h.config.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrTextGenerationFailed, err)
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: %w", ErrTextGenerationFailed, textgen.ErrEmptyResponse)
	}
	return strings.TrimSpace(text), nil
}

// fallback logs why the generated script was rejected and composes one instead.
func (h *Handler) fallback(bctx models.BusinessContext, industry string, stdErr *apperrors.StandardError) *Output {
	h.logger.Warn("text generation unusable, composing from templates", map[string]interface{}{
		"industry":  industry,
		"errorCode": string(stdErr.Code),
		"details":   stdErr.Details,
		"metadata":  stdErr.Metadata,
	})
	return &Output{Script: h.compose(bctx, stdErr.Error()), Context: bctx}
}

func (h *Handler) compose(bctx models.BusinessContext, reason string) *models.GeneratedScript {
	lines := h.composer.Compose(bctx)
	return &models.GeneratedScript{
		Source:         models.ScriptComposed,
		Text:           models.RenderLines(lines),
		Lines:          lines,
		FallbackReason: reason,
	}
}

func (h *Handler) buildPrompt(bctx models.BusinessContext, input *Input) string {
	customerName := random.Choice(h.rng, h.config.CustomerNames)
	receptionist := input.ReceptionistName
	if receptionist == "" {
		receptionist = "the AI receptionist"
	}

	parts := []string{
		fmt.Sprintf("Generate a realistic INBOUND phone conversation where a customer calls %s (%s) and the AI receptionist answers.",
			bctx.BusinessName, input.Industry),
		"",
		"Context:",
		fmt.Sprintf("- Business: %s", bctx.BusinessName),
		fmt.Sprintf("- Industry: %s", input.Industry),
		fmt.Sprintf("- Services: %s", bctx.ServiceList),
		fmt.Sprintf("- Customer name: %s", customerName),
	}
	if input.ReceptionistName != "" {
		parts = append(parts, fmt.Sprintf("- Receptionist name: %s", input.ReceptionistName))
	}
	parts = append(parts,
		fmt.Sprintf("- Phone: %s", h.config.PhoneNumber),
		"",
		"Structure:",
		fmt.Sprintf("1. Greeting: the receptionist answers with the full business name, introduces themselves as %s and asks how they can help.", receptionist),
		fmt.Sprintf("2. Caller scenario: %s briefly describes a need related to %s and asks one or two simple questions.", customerName, strings.ToLower(input.Industry)),
		"3. Receptionist response: a simple, helpful explanation of the service.",
		"4. Appointment: the receptionist offers to book and collects first name, phone number and email.",
		"5. Closing: the receptionist confirms the booking and says the details were sent by text and email. Do NOT invent a confirmation number.",
		"",
		"Requirements:",
		"- The AI receptionist speaks first. This is an inbound call.",
		"- The customer never asks \"How are you?\". Only the receptionist may ask it.",
		"- The receptionist does not say \"thanks for asking\" unless the customer asked.",
		"- Include natural filler words (\"um\", \"uh\", \"you know\", \"actually\").",
		"- Mark natural pauses with \"...\".",
		"- The customer sounds casual and friendly. The receptionist is warm and professional.",
		"- Total length: 90-120 seconds when spoken.",
		"",
		"Format each line as:",
		models.RoleReceptionist.Tag()+" [dialogue]",
		models.RoleCustomer.Tag()+" [dialogue]",
	)

	return strings.Join(parts, "\n")
}
