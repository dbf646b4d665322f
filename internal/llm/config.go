// Package llm provides the generative adapter used by the analysis engine:
// model configuration, the provider client, a response cache and the
// tolerant JSON document parser.
package llm

// ModelTier represents the complexity/capability level of a model
type ModelTier string

const (
	// TierLite is for short, cheap completions
	TierLite ModelTier = "lite"
	// TierStandard is the default tier for career analyses
	TierStandard ModelTier = "standard"
	// TierAdvanced is for the most demanding analyses
	TierAdvanced ModelTier = "advanced"
)

// Provider represents an LLM provider
type Provider string

// ProviderGemini is the Google Gemini provider
const ProviderGemini Provider = "gemini"

// Pricing is the USD price of one million tokens
type Pricing struct {
	InputPerMillion  float64
	OutputPerMillion float64
}

// Config holds the model configuration for the application
type Config struct {
	Provider Provider
	Models   map[ModelTier]string
	Pricing  map[string]Pricing
}

// DefaultConfig returns the default configuration (currently Gemini)
func DefaultConfig() *Config {
	return DefaultGeminiConfig()
}

// DefaultGeminiConfig returns the default Gemini configuration
func DefaultGeminiConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
		Pricing: map[string]Pricing{
			"gemini-2.5-flash-lite": {InputPerMillion: 0.10, OutputPerMillion: 0.40},
			"gemini-2.5-flash":      {InputPerMillion: 0.30, OutputPerMillion: 2.50},
			"gemini-2.5-pro":        {InputPerMillion: 1.25, OutputPerMillion: 10.00},
		},
	}
}

// GetModel returns the model name for a given tier
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	// Fallback chain: try standard, then lite
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return "" // No model configured
}

// WithModel returns a new Config with a specific model for a tier
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	newConfig := c.clone()
	newConfig.Models[tier] = model
	return newConfig
}

// WithPricing returns a new Config with pricing set for a model
func (c *Config) WithPricing(model string, p Pricing) *Config {
	newConfig := c.clone()
	newConfig.Pricing[model] = p
	return newConfig
}

// CostUSD prices a completion. Models without pricing cost nothing.
func (c *Config) CostUSD(model string, usage *Usage) float64 {
	if usage == nil {
		return 0
	}
	p, ok := c.Pricing[model]
	if !ok {
		return 0
	}
	return float64(usage.PromptTokens)/1e6*p.InputPerMillion +
		float64(usage.CompletionTokens)/1e6*p.OutputPerMillion
}

func (c *Config) clone() *Config {
	newConfig := &Config{
		Provider: c.Provider,
		Models:   make(map[ModelTier]string, len(c.Models)),
		Pricing:  make(map[string]Pricing, len(c.Pricing)),
	}
	for k, v := range c.Models {
		newConfig.Models[k] = v
	}
	for k, v := range c.Pricing {
		newConfig.Pricing[k] = v
	}
	return newConfig
}
