package llm

import (
	"time"

	"github.com/okian/pitchgate/pkg/logger"
)

// Option configures a Generator.
type Option func(*Generator)

// WithProvider sets the provider and model names.
func WithProvider(provider, model string) Option {
	return func(g *Generator) {
		if provider != "" {
			g.provider = provider
		}
		g.modelName = model
	}
}

// WithSystemPrompt sends s as a system message before the prompt.
func WithSystemPrompt(s string) Option {
	return func(g *Generator) { g.system = s }
}

// WithMaxTokens caps the reply length.
func WithMaxTokens(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.maxTokens = n
		}
	}
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float64) Option {
	return func(g *Generator) {
		if t >= 0 {
			g.temperature = t
		}
	}
}

// WithTimeout bounds each Generate call. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(g *Generator) {
		if d >= 0 {
			g.timeout = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(g *Generator) { g.logger = l }
}
