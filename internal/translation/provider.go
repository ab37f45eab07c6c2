package translation

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Provider names accepted by NewTranslator
const (
	ProviderDeepL  = "deepl"
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Config selects and configures a translation provider
type Config struct {
	Provider      string
	URL           string
	Authorization string
	APIKey        string
	Model         string
	Timeout       time.Duration
	Breaker       bool
}

// NewTranslator builds the configured provider, wrapped in a circuit breaker
// when cfg.Breaker is set
func NewTranslator(ctx context.Context, cfg Config) (Translator, error) {
	var (
		t   Translator
		err error
	)

	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", ProviderDeepL:
		var opts []EndpointOption
		if cfg.Timeout > 0 {
			opts = append(opts, WithTimeout(cfg.Timeout))
		}
		t, err = NewEndpoint(cfg.URL, cfg.Authorization, opts...)
	case ProviderOpenAI:
		t = NewOpenAITranslator(cfg.APIKey, cfg.URL, cfg.Model)
	case ProviderGemini:
		t, err = NewGeminiTranslator(ctx, cfg.APIKey, cfg.Model)
	default:
		return nil, fmt.Errorf("unknown translation provider %q (valid: deepl, openai, gemini)", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}

	if cfg.Breaker {
		t = NewBreakerTranslator(t, DefaultBreakerSettings())
	}
	return t, nil
}
