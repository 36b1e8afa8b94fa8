// Package llm wraps the generative model used by the AI customizer strategy.
package llm

import "time"

// ModelTier selects a model by capability.
type ModelTier string

const (
	// TierLite is for short, cheap generations
	TierLite ModelTier = "lite"
	// TierStandard is the default for résumé tailoring
	TierStandard ModelTier = "standard"
)

// Config holds the model configuration.
type Config struct {
	Models      map[ModelTier]string
	Temperature float32
	Timeout     time.Duration
}

// DefaultConfig returns the Gemini defaults.
func DefaultConfig() *Config {
	return &Config{
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
		},
		Temperature: 0.3,
		Timeout:     60 * time.Second,
	}
}

// GetModel returns the model name for a tier, falling back to the standard
// tier and then the lite tier.
func (c *Config) GetModel(tier ModelTier) string {
	for _, t := range []ModelTier{tier, TierStandard, TierLite} {
		if model, ok := c.Models[t]; ok && model != "" {
			return model
		}
	}
	return ""
}

// WithModel returns a copy of c that uses model for tier.
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	out := *c
	out.Models = make(map[ModelTier]string, len(c.Models)+1)
	for k, v := range c.Models {
		out.Models[k] = v
	}
	out.Models[tier] = model
	return &out
}
