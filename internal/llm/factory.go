package llm

import (
	"fmt"
	"strings"

	"cleaning-intake/internal/config"
)

// Factory creates LLM clients with consistent logic
type Factory struct {
	OpenaiAPIKey       string
	OpenaiBaseURL      string
	OpenRouterReferrer string
	OpenRouterTitle    string
	YandexOAuthToken   string
	YandexFolderID     string
	Temperature        float32
}

func NewFactory(cfg *config.Config) *Factory {
	return &Factory{
		OpenaiAPIKey:       cfg.OpenAIAPIKey,
		OpenaiBaseURL:      cfg.OpenAIBaseURL,
		OpenRouterReferrer: cfg.OpenRouterReferrer,
		OpenRouterTitle:    cfg.OpenRouterTitle,
		YandexOAuthToken:   cfg.YandexOAuthToken,
		YandexFolderID:     cfg.YandexFolderID,
		Temperature:        cfg.Temperature,
	}
}

func (f *Factory) CreateClient(provider config.LLMProvider, model string) (Client, error) {
	switch config.LLMProvider(strings.ToLower(string(provider))) {
	case config.ProviderOpenAI:
		return NewOpenAI(OpenAIOptions{
			APIKey:      f.OpenaiAPIKey,
			BaseURL:     f.OpenaiBaseURL,
			Model:       model,
			Temperature: f.Temperature,
			Referrer:    f.OpenRouterReferrer,
			Title:       f.OpenRouterTitle,
		}), nil
	case config.ProviderYandex:
		return NewYandex(f.YandexOAuthToken, f.YandexFolderID)
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", provider)
	}
}
