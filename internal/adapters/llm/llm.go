// Package llm generates pitches through a langchaingo model.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/prompts"

	"github.com/okian/pitchgate/internal/config"
	"github.com/okian/pitchgate/internal/domain/generation"
	"github.com/okian/pitchgate/internal/domain/model"
	"github.com/okian/pitchgate/pkg/logger"
)

// Defaults applied when options leave them unset.
const (
	DefaultMaxTokens   = 4000
	DefaultTemperature = 0.7
	DefaultTimeout     = 60 * time.Second
)

var jsonObject = regexp.MustCompile(`(?s)\{.*\}`)

var _ generation.Generator = (*Generator)(nil)

// Generator implements generation.Generator over an llms.Model.
type Generator struct {
	model       llms.Model
	provider    string
	modelName   string
	system      string
	maxTokens   int
	temperature float64
	timeout     time.Duration
	tmpl        prompts.PromptTemplate
	logger      logger.Logger
}

// New wraps m. The provider name is reported by Provider and in logs.
func New(m llms.Model, opts ...Option) *Generator {
	g := &Generator{
		model:       m,
		provider:    "custom",
		maxTokens:   DefaultMaxTokens,
		temperature: DefaultTemperature,
		timeout:     DefaultTimeout,
		tmpl:        newPromptTemplate(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.logger == nil {
		g.logger = logger.Get().Named("llm")
	}
	return g
}

// NewFromConfig builds the provider selected by cfg.AIProvider.
func NewFromConfig(cfg *config.Config) (*Generator, error) {
	common := []Option{
		WithMaxTokens(cfg.MaxTokens),
		WithTimeout(cfg.GenerationTimeout),
	}
	switch cfg.AIProvider {
	case config.ProviderAnthropic:
		if cfg.AnthropicAPIKey == "" {
			return nil, fmt.Errorf("%w: %s", ErrMissingAPIKey, cfg.AIProvider)
		}
		m, err := anthropic.New(anthropic.WithToken(cfg.AnthropicAPIKey), anthropic.WithModel(cfg.AnthropicModel))
		if err != nil {
			return nil, fmt.Errorf("anthropic client: %w", err)
		}
		return New(m, append(common, WithProvider(cfg.AIProvider, cfg.AnthropicModel))...), nil
	case config.ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("%w: %s", ErrMissingAPIKey, cfg.AIProvider)
		}
		m, err := openai.New(openai.WithToken(cfg.OpenAIAPIKey), openai.WithModel(cfg.OpenAIModel))
		if err != nil {
			return nil, fmt.Errorf("openai client: %w", err)
		}
		return New(m, append(common,
			WithProvider(cfg.AIProvider, cfg.OpenAIModel),
			WithSystemPrompt(systemPrompt),
			WithTemperature(DefaultTemperature))...), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.AIProvider)
	}
}

// Provider returns the upstream provider name.
func (g *Generator) Provider() string { return g.provider }

// Model returns the upstream model name, if known.
func (g *Generator) Model() string { return g.modelName }

// Prompt renders the user prompt for req.
func (g *Generator) Prompt(req model.GenerationRequest) (string, error) {
	return g.tmpl.Format(promptValues(req))
}

// Generate asks the model for pitches and parses its reply. Errors wrap one
// of the generation error kinds.
func (g *Generator) Generate(ctx context.Context, req model.GenerationRequest) (model.Pitches, error) {
	prompt, err := g.Prompt(req)
	if err != nil {
		return model.Pitches{}, fmt.Errorf("render prompt: %w", err)
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	messages := make([]llms.MessageContent, 0, 2)
	if g.system != "" {
		messages = append(messages, llms.TextParts(llms.ChatMessageTypeSystem, g.system))
	}
	messages = append(messages, llms.TextParts(llms.ChatMessageTypeHuman, prompt))

	start := time.Now()
	resp, err := g.model.GenerateContent(ctx, messages,
		llms.WithMaxTokens(g.maxTokens),
		llms.WithTemperature(g.temperature))
	if err != nil {
		kind := classify(ctx, err)
		g.logger.Warn(ctx, "generation failed",
			logger.String("provider", g.provider),
			logger.String("outcome", generation.Outcome(kind)),
			logger.Duration("elapsed", time.Since(start)),
			logger.Error(err))
		return model.Pitches{}, kind
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Content == "" {
		return model.Pitches{}, fmt.Errorf("%w: empty reply from %s", generation.ErrUpstreamMalformed, g.provider)
	}

	pitches, err := ParsePitches(resp.Choices[0].Content)
	if err != nil {
		return model.Pitches{}, err
	}
	g.logger.Debug(ctx, "pitches generated",
		logger.String("provider", g.provider),
		logger.Duration("elapsed", time.Since(start)))
	return pitches, nil
}

// ParsePitches extracts the outermost JSON object from a model reply and
// decodes it. Prose or code fences around the object are ignored.
func ParsePitches(reply string) (model.Pitches, error) {
	raw := jsonObject.FindString(reply)
	if raw == "" {
		return model.Pitches{}, fmt.Errorf("%w: no JSON object in reply", generation.ErrUpstreamMalformed)
	}
	var p model.Pitches
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return model.Pitches{}, fmt.Errorf("%w: %w", generation.ErrUpstreamMalformed, err)
	}
	if !p.Complete() {
		return model.Pitches{}, fmt.Errorf("%w: missing sections", generation.ErrUpstreamMalformed)
	}
	return p, nil
}
