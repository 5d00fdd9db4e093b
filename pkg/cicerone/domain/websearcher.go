package domain

import "context"

// WebSearcher finds information about a place on the web. The result is a single aggregated text blob:
// it's only used as context for the language model, so individual results aren't structured.
type WebSearcher interface {
	Name() string
	Search(ctx context.Context, query string) (string, error)
}
