package googlesearch

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"kgeyst.com/cicerone/pkg/cicerone/domain"
)

const (
	providerName = "Google Search"

	// ConfigKeyAPIKey the key of the Programmable Search (Custom Search JSON) API; unrelated to the user's model key
	ConfigKeyAPIKey = "googleSearchAPIKey"
	// ConfigKeyEngineID the "cx" of the search engine
	ConfigKeyEngineID = "googleSearchEngineID"
	// ConfigKeyMaxResults how many results are aggregated into the research text (10 at most)
	ConfigKeyMaxResults = "searchMaxResults"
)

var ErrMissingEngineID = errors.New("google search engine ID is not configured")

// NoResultsMessage is returned instead of an empty string so that the language model knows research came up empty.
const NoResultsMessage = "No good Google search result was found."

// Searcher uses the Custom Search JSON API.
type Searcher struct {
	service    *customsearch.Service
	engineID   string
	maxResults int64
}

// NewSearcher `opts` usually contain option.WithAPIKey(..).
func NewSearcher(ctx context.Context, engineID string, maxResults int, opts ...option.ClientOption) (*Searcher, error) {
	if engineID == "" {
		return nil, ErrMissingEngineID
	}
	service, err := customsearch.NewService(ctx, opts...)
	if err != nil {
		return nil, err
	}
	if maxResults <= 0 || maxResults > 10 { // the API's limit
		maxResults = 10
	}
	return &Searcher{
		service:    service,
		engineID:   engineID,
		maxResults: int64(maxResults),
	}, nil
}

func (s *Searcher) Name() string {
	return providerName
}

func (s *Searcher) Search(ctx context.Context, query string) (string, error) {
	search, err := s.service.Cse.List().Cx(s.engineID).Q(query).Num(s.maxResults).Context(ctx).Do()
	if err != nil {
		return "", toProviderError(err)
	}
	if len(search.Items) == 0 {
		return NoResultsMessage, nil
	}
	lines := make([]string, 0, len(search.Items))
	for _, item := range search.Items {
		snippet := strings.Join(strings.Fields(item.Snippet), " ")
		lines = append(lines, fmt.Sprintf("%s: %s (%s)", item.Title, snippet, item.Link))
	}
	return strings.Join(lines, "\n"), nil
}

func toProviderError(err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return domain.NewProviderStatusError(providerName, apiErr.Code, apiErr.Message)
	}
	return domain.NewProviderError(providerName, domain.FailureReasonTransport, err)
}
