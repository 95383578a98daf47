package enhance

import (
	"context"
	"errors"
	"strings"
	"time"

	"careerarchitect/internal/llm"
	"careerarchitect/internal/shared/metrics"
	"careerarchitect/internal/shared/telemetry"
)

// Mode selects which providers rewrite the text.
type Mode string

const (
	ModeOpenAI Mode = llm.ProviderOpenAI
	ModeGemini Mode = llm.ProviderGemini
	ModeBoth   Mode = "both"
)

// ParseMode maps a request value to a Mode. Empty and unknown values mean both.
func ParseMode(raw string) Mode {
	switch Mode(strings.ToLower(strings.TrimSpace(raw))) {
	case ModeOpenAI:
		return ModeOpenAI
	case ModeGemini:
		return ModeGemini
	default:
		return ModeBoth
	}
}

// ErrNotConfigured marks a provider with no credentials.
var ErrNotConfigured = errors.New("provider not configured")

// Attempt is the outcome of one provider call. Exactly one of Text and
// Failure is meaningful.
type Attempt struct {
	Provider string
	Text     string
	Failure  error
}

// OK reports whether the provider produced text.
func (a Attempt) OK() bool {
	return a.Failure == nil
}

// OrElse returns the provider text, or fallback when the call failed.
func (a Attempt) OrElse(fallback string) string {
	if a.Failure != nil {
		return fallback
	}
	return a.Text
}

// Result is the dispatcher output: the final text plus every attempt made.
type Result struct {
	Mode     Mode
	Text     string
	Attempts []Attempt
}

// Dispatcher routes rewrite requests to the configured providers. A nil
// provider is treated as missing credentials.
type Dispatcher struct {
	OpenAI llm.Rewriter
	Gemini llm.Rewriter
}

// Enhance rewrites text according to mode. It never fails: a failed call
// yields its own input, so the worst case is the original text.
func (d *Dispatcher) Enhance(ctx context.Context, text string, mode Mode) Result {
	start := time.Now()
	res := Result{Mode: mode}

	switch mode {
	case ModeOpenAI:
		a := d.call(ctx, llm.ProviderOpenAI, d.OpenAI, text)
		res.Attempts = []Attempt{a}
		res.Text = a.OrElse(text)
	case ModeGemini:
		a := d.call(ctx, llm.ProviderGemini, d.Gemini, text)
		res.Attempts = []Attempt{a}
		res.Text = a.OrElse(text)
	default:
		res.Mode = ModeBoth
		first := d.call(ctx, llm.ProviderOpenAI, d.OpenAI, text)
		intermediate := first.OrElse(text)
		second := d.call(ctx, llm.ProviderGemini, d.Gemini, intermediate)
		res.Attempts = []Attempt{first, second}
		res.Text = second.OrElse(intermediate)
	}

	metrics.ObserveEnhancementDurationMs(float64(time.Since(start).Milliseconds()))
	return res
}

func (d *Dispatcher) call(ctx context.Context, provider string, r llm.Rewriter, text string) Attempt {
	if r == nil {
		return d.fail(provider, ErrNotConfigured, 0)
	}
	start := time.Now()
	out, err := r.Rewrite(ctx, text)
	if err == nil && strings.TrimSpace(out) == "" {
		err = llm.ErrEmptyResponse
	}
	if err != nil {
		return d.fail(provider, err, time.Since(start))
	}
	return Attempt{Provider: provider, Text: out}
}

func (d *Dispatcher) fail(provider string, err error, elapsed time.Duration) Attempt {
	metrics.IncEnhancementFallback(provider)
	telemetry.Warn("enhance.provider_failed", map[string]any{
		"provider":    provider,
		"error":       err.Error(),
		"duration_ms": elapsed.Milliseconds(),
	})
	return Attempt{Provider: provider, Failure: err}
}
