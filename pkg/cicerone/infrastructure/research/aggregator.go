package research

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"kgeyst.com/cicerone/pkg/cicerone/domain"
	"kgeyst.com/cicerone/pkg/common"
)

const providerName = "Web Research"

type aggregator struct {
	searchers []domain.WebSearcher
	logger    common.Logger
}

// NewAggregator asks every searcher, one after another, and concatenates what they found under a header per source.
// A failing searcher is logged and skipped; the aggregator only fails if all of them fail.
func NewAggregator(searchers []domain.WebSearcher, logger common.Logger) domain.WebSearcher {
	return &aggregator{
		searchers: searchers,
		logger:    logger,
	}
}

func (a *aggregator) Name() string {
	return providerName
}

func (a *aggregator) Search(ctx context.Context, query string) (string, error) {
	var sections []string
	var errs []error
	for _, searcher := range a.searchers {
		result, err := searcher.Search(ctx, query)
		if err != nil {
			a.logger.Log(fmt.Sprintf("%s search failed, skipping: %s", searcher.Name(), err))
			errs = append(errs, err)
			continue
		}
		result = strings.TrimSpace(result)
		if result == "" {
			continue
		}
		sections = append(sections, fmt.Sprintf("[%s]\n%s", searcher.Name(), result))
	}
	if len(sections) == 0 && len(errs) > 0 {
		return "", domain.NewProviderError(providerName, domain.FailureReasonProvider, errors.Join(errs...))
	}
	return strings.Join(sections, "\n\n"), nil
}
