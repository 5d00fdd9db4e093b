package api

import (
	"context"
	"fmt"

	"google.golang.org/api/option"

	"kgeyst.com/cicerone/pkg/cicerone/domain"
	"kgeyst.com/cicerone/pkg/cicerone/infrastructure/duckduckgo"
	"kgeyst.com/cicerone/pkg/cicerone/infrastructure/gemini"
	"kgeyst.com/cicerone/pkg/cicerone/infrastructure/googlesearch"
	"kgeyst.com/cicerone/pkg/cicerone/infrastructure/logging"
	"kgeyst.com/cicerone/pkg/cicerone/infrastructure/metrics"
	"kgeyst.com/cicerone/pkg/cicerone/infrastructure/openai"
	"kgeyst.com/cicerone/pkg/cicerone/infrastructure/research"
	"kgeyst.com/cicerone/pkg/cicerone/infrastructure/wiki"
	"kgeyst.com/cicerone/pkg/common"
)

const (
	// ConfigKeyVisionProvider which service identifies places in images: "openai" or "gemini"
	ConfigKeyVisionProvider = "visionProvider"
	// ConfigKeyTextProvider which service answers questions; the same as the vision provider by default
	ConfigKeyTextProvider = "textProvider"
	// ConfigKeyWebSearchProvider "duckduckgo", "google", "wikipedia", "all" or "none" (research disabled)
	ConfigKeyWebSearchProvider = "webSearchProvider"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"

	WebSearchProviderDuckDuckGo = "duckduckgo"
	WebSearchProviderGoogle     = "google"
	WebSearchProviderWikipedia  = "wikipedia"
	WebSearchProviderAll        = "all"
	WebSearchProviderNone       = "none"
)

// modelClient both OpenAI and Gemini clients serve images and text.
type modelClient interface {
	domain.VisionModel
	domain.LanguageModel
}

func newModelClient(config *common.Config, provider string) (modelClient, error) {
	switch provider {
	case ProviderOpenAI:
		return openai.NewClient(config), nil
	case ProviderGemini:
		return gemini.NewClient(config), nil
	}
	return nil, fmt.Errorf("unknown model provider %q", provider)
}

func newModels(config *common.Config, logger common.Logger) (domain.VisionModel, domain.LanguageModel, error) {
	visionProvider := config.GetStringOrDefault(ConfigKeyVisionProvider, ProviderOpenAI)
	textProvider := config.GetStringOrDefault(ConfigKeyTextProvider, visionProvider)
	visionClient, err := newModelClient(config, visionProvider)
	if err != nil {
		return nil, nil, err
	}
	textClient, err := newModelClient(config, textProvider)
	if err != nil {
		return nil, nil, err
	}
	visionModel := logging.NewVisionModelDecorator(metrics.NewVisionModelDecorator(visionClient), logger)
	languageModel := logging.NewLanguageModelDecorator(metrics.NewLanguageModelDecorator(textClient), logger)
	return visionModel, languageModel, nil
}

// newWebSearcher returns nil if research is disabled.
func newWebSearcher(config *common.Config, logger common.Logger) (domain.WebSearcher, error) {
	provider := config.GetStringOrDefault(ConfigKeyWebSearchProvider, WebSearchProviderDuckDuckGo)
	switch provider {
	case WebSearchProviderNone:
		return nil, nil
	case WebSearchProviderAll:
		searchers := []domain.WebSearcher{
			decorateWebSearcher(duckduckgo.NewSearcher(config), logger),
			decorateWebSearcher(wiki.NewArticleProvider(config), logger),
		}
		if config.GetString(googlesearch.ConfigKeyAPIKey) != "" {
			googleSearcher, err := newGoogleSearcher(config)
			if err != nil {
				return nil, err
			}
			searchers = append(searchers, decorateWebSearcher(googleSearcher, logger))
		}
		return research.NewAggregator(searchers, logger), nil
	case WebSearchProviderDuckDuckGo:
		return decorateWebSearcher(duckduckgo.NewSearcher(config), logger), nil
	case WebSearchProviderWikipedia:
		return decorateWebSearcher(wiki.NewArticleProvider(config), logger), nil
	case WebSearchProviderGoogle:
		googleSearcher, err := newGoogleSearcher(config)
		if err != nil {
			return nil, err
		}
		return decorateWebSearcher(googleSearcher, logger), nil
	}
	return nil, fmt.Errorf("unknown web search provider %q", provider)
}

func newGoogleSearcher(config *common.Config) (*googlesearch.Searcher, error) {
	apiKey := config.GetString(googlesearch.ConfigKeyAPIKey)
	if apiKey == "" {
		return nil, fmt.Errorf("%s is required for Google search", googlesearch.ConfigKeyAPIKey)
	}
	return googlesearch.NewSearcher(
		context.Background(),
		config.GetString(googlesearch.ConfigKeyEngineID),
		config.GetIntOrDefault(googlesearch.ConfigKeyMaxResults, 5),
		option.WithAPIKey(apiKey),
	)
}

func decorateWebSearcher(webSearcher domain.WebSearcher, logger common.Logger) domain.WebSearcher {
	return logging.NewWebSearcherDecorator(metrics.NewWebSearcherDecorator(webSearcher), logger)
}
