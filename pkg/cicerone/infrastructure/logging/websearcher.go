package logging

import (
	"context"
	"fmt"
	"time"

	"kgeyst.com/cicerone/pkg/cicerone/domain"
	"kgeyst.com/cicerone/pkg/common"
)

type webSearcherDecorator struct {
	wrappedWebSearcher domain.WebSearcher
	logger             common.Logger
}

func NewWebSearcherDecorator(wrappedWebSearcher domain.WebSearcher, logger common.Logger) domain.WebSearcher {
	return &webSearcherDecorator{
		wrappedWebSearcher: wrappedWebSearcher,
		logger:             logger,
	}
}

func (w *webSearcherDecorator) Name() string {
	return w.wrappedWebSearcher.Name()
}

func (w *webSearcherDecorator) Search(ctx context.Context, query string) (string, error) {
	w.logger.Log(fmt.Sprintf("searching '%s' using '%s'", query, w.Name()))
	t := time.Now()
	result, err := w.wrappedWebSearcher.Search(ctx, query)
	if err != nil {
		w.logger.Log(fmt.Sprintf("'%s' failed after %d ms: %s", w.Name(), time.Since(t).Milliseconds(), err))
		return "", err
	}
	w.logger.Log(fmt.Sprintf("\n================\n search results:\n%s\n (took %d ms)\n================\n", result, time.Since(t).Milliseconds()))
	return result, nil
}
