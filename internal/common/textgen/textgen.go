// Package textgen wraps the text-generation providers used to write call scripts.
package textgen

import (
	"context"
	"errors"
	"fmt"

	"voice-demo-generator/internal/common/config"
)

var (
	ErrEmptyResponse   = errors.New("TEXT_GENERATION_EMPTY")
	ErrUnknownProvider = errors.New("UNKNOWN_TEXT_GENERATION_PROVIDER")
)

// CompletionRequest carries one prompt and its generation parameters.
type CompletionRequest struct {
	System      string
	Prompt      string
	Model       string
	Temperature float32
	MaxTokens   int
}

// Service completes a prompt. Implementations return ErrEmptyResponse when the
// provider answered without any text.
type Service interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
	Name() string
}

// New builds the configured provider. The returned closer releases provider resources.
func New(ctx context.Context, cfg config.TextGenerationConfig) (Service, func() error, error) {
	switch cfg.Provider {
	case "", "openai":
		return NewOpenAI(cfg.APIKey, cfg.BaseURL), func() error { return nil }, nil
	case "gemini":
		svc, err := NewGemini(ctx, cfg.APIKey, cfg.BaseURL)
		if err != nil {
			return nil, nil, err
		}
		return svc, svc.Close, nil
	default:
		return nil, nil, fmt.Errorf("%w: %s", ErrUnknownProvider, cfg.Provider)
	}
}
