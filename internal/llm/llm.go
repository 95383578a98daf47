package llm

import (
	"context"
	"errors"
)

// Provider names, as persisted in enhancement_type and metric labels.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Rewriter rewrites resume text through a language-model provider.
type Rewriter interface {
	Rewrite(ctx context.Context, text string) (string, error)
}

// ErrEmptyResponse is returned when a provider answers without any text.
var ErrEmptyResponse = errors.New("llm response empty")
