package llm

import (
	"context"
	"fmt"
	"net/http"
)

type ProviderConfig struct {
	Name    string // together | gemini
	APIKey  string
	BaseURL string
	Model   string
}

// NewProvider builds the configured backend. A missing key is not an
// error: the provider is still returned and the Client reports itself
// unavailable.
func NewProvider(ctx context.Context, cfg ProviderConfig, httpClient *http.Client) (Provider, error) {
	switch cfg.Name {
	case "", "together":
		return NewTogetherProvider(cfg.APIKey, cfg.BaseURL, httpClient), nil
	case "gemini":
		if cfg.APIKey == "" {
			return nil, nil
		}
		return NewGeminiProvider(ctx, cfg.APIKey, cfg.Model)
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Name)
	}
}
