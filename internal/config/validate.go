package config

import (
	"fmt"
	"slices"
	"strings"
)

// Providers lists the supported chat model vendors.
var Providers = []string{"groq", "openai", "anthropic", "gemini"}

// defaultBaseURLs are the OpenAI-compatible endpoints per vendor.
var defaultBaseURLs = map[string]string{
	"groq":   "https://api.groq.com/openai/v1",
	"openai": "https://api.openai.com/v1",
}

// Validate performs business-rule validation on the loaded configuration and
// fills derived defaults. Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.SessionSecret) < 32 {
		return fmt.Errorf("auth.session_secret must be at least 32 characters (got %d)", len(c.Auth.SessionSecret))
	}
	if c.Auth.SessionTTL <= 0 {
		return fmt.Errorf("auth.session_ttl must be > 0 (got %v)", c.Auth.SessionTTL)
	}
	if c.Auth.PasswordHashCost < 4 || c.Auth.PasswordHashCost > 31 {
		return fmt.Errorf("auth.password_hash_cost must be in [4, 31] (got %d)", c.Auth.PasswordHashCost)
	}

	if err := c.LLM.validate(); err != nil {
		return fmt.Errorf("llm: %w", err)
	}
	c.STT.inherit(c.LLM)

	if c.RateLimit.ChatPerMinute <= 0 || c.RateLimit.AuthPerMinute <= 0 {
		return fmt.Errorf("rate_limit values must be > 0")
	}
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("metrics.path must start with / (got %q)", c.Metrics.Path)
	}

	return nil
}

func (l *LLMConfig) validate() error {
	l.Provider = strings.ToLower(strings.TrimSpace(l.Provider))
	if !slices.Contains(Providers, l.Provider) {
		return fmt.Errorf("provider must be one of %v (got %q)", Providers, l.Provider)
	}
	if l.APIKey == "" {
		return fmt.Errorf("api_key is required")
	}
	if l.Temperature < 0 || l.Temperature > 2 || l.VoiceTemperature < 0 || l.VoiceTemperature > 2 {
		return fmt.Errorf("temperature must be in [0, 2]")
	}
	if l.MaxTokens <= 0 || l.VoiceMaxTokens <= 0 {
		return fmt.Errorf("max_tokens must be > 0")
	}
	if l.BaseURL == "" {
		l.BaseURL = defaultBaseURLs[l.Provider]
	}
	return nil
}

func (s *STTConfig) inherit(l LLMConfig) {
	if s.APIKey == "" {
		s.APIKey = l.APIKey
	}
	if s.BaseURL == "" {
		s.BaseURL = l.BaseURL
	}
	if s.BaseURL == "" {
		s.BaseURL = defaultBaseURLs["groq"]
	}
}
