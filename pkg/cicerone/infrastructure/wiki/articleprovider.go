package wiki

import (
	"context"
	"fmt"
	"strings"

	gowiki "github.com/trietmn/go-wiki"

	"kgeyst.com/cicerone/pkg/cicerone/domain"
	"kgeyst.com/cicerone/pkg/common"
)

const (
	providerName = "Wikipedia"

	// ConfigKeyMaxArticleCount how many articles found by the search are summarized
	ConfigKeyMaxArticleCount = "wikiMaxArticleCount"
	// ConfigKeyMaxArticleSentenceCount how long each summary is
	ConfigKeyMaxArticleSentenceCount = "wikiMaxArticleSentenceCount"
)

// NoResultsMessage is returned instead of an empty string so that the language model knows research came up empty.
const NoResultsMessage = "No relevant Wikipedia article was found."

// The two functions of go-wiki we need; replaced in tests.
type searchFunc func(query string, maxResults int, suggestion bool) ([]string, string, error)
type summaryFunc func(title string, numSentences int, numChars int, suggest bool, redirect bool) (string, error)

// ArticleProvider researches a place by summarizing the Wikipedia articles which match its name.
type ArticleProvider struct {
	search                  searchFunc
	summary                 summaryFunc
	maxArticleCount         int
	maxArticleSentenceCount int
}

func NewArticleProvider(config *common.Config) *ArticleProvider {
	return &ArticleProvider{
		search:                  gowiki.Search,
		summary:                 gowiki.Summary,
		maxArticleCount:         config.GetIntOrDefault(ConfigKeyMaxArticleCount, 2),
		maxArticleSentenceCount: config.GetIntOrDefault(ConfigKeyMaxArticleSentenceCount, 5),
	}
}

func (a *ArticleProvider) Name() string {
	return providerName
}

// Search go-wiki doesn't support contexts, so cancellation is only checked between requests.
func (a *ArticleProvider) Search(ctx context.Context, query string) (string, error) {
	articleNames, _, err := a.search(query, a.maxArticleCount, true)
	if err != nil {
		return "", domain.NewProviderError(providerName, domain.FailureReasonTransport, err)
	}
	var summaries []string
	for _, articleName := range articleNames {
		if err := ctx.Err(); err != nil {
			return "", domain.NewProviderError(providerName, domain.FailureReasonTransport, err)
		}
		summary, err := a.summary(articleName, a.maxArticleSentenceCount, -1, false, true)
		if err != nil {
			return "", domain.NewProviderError(providerName, domain.FailureReasonTransport, err)
		}
		summary = strings.TrimSpace(summary)
		if summary == "" {
			continue
		}
		summaries = append(summaries, fmt.Sprintf("%s: %s (https://en.wikipedia.org/wiki/%s)", articleName, summary, strings.ReplaceAll(articleName, " ", "_")))
	}
	if len(summaries) == 0 {
		return NoResultsMessage, nil
	}
	return strings.Join(summaries, "\n"), nil
}
