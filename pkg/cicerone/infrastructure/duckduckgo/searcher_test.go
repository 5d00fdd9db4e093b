package duckduckgo

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kgeyst.com/cicerone/pkg/cicerone/domain"
	"kgeyst.com/cicerone/pkg/common"
)

const resultsPage = `<html><body>
<div class="result results_links result--ad">
  <h2 class="result__title"><a class="result__a" href="https://ads.example.com">Buy tickets</a></h2>
  <a class="result__snippet">Ad</a>
</div>
<div class="result results_links web-result">
  <h2 class="result__title"><a rel="nofollow" class="result__a" href="//duckduckgo.com/l/?uddg=https%3A%2F%2Fen.wikipedia.org%2Fwiki%2FEiffel_Tower&amp;rut=abc">Eiffel <b>Tower</b> - Wikipedia</a></h2>
  <a class="result__snippet" href="#">The Eiffel Tower is a wrought-iron
     lattice tower in Paris.</a>
</div>
<div class="result results_links web-result">
  <h2 class="result__title"><a class="result__a" href="https://www.toureiffel.paris/en">Official website</a></h2>
  <a class="result__snippet">Tickets and opening hours.</a>
</div>
<div class="result results_links web-result">
  <h2 class="result__title"><a class="result__a" href="https://example.com/third">Third</a></h2>
  <a class="result__snippet">Should be cut off.</a>
</div>
</body></html>`

func newTestSearcher(url string) *Searcher {
	return NewSearcher(common.NewConfig(map[string]any{
		ConfigKeyEndpoint:   url,
		ConfigKeyMaxResults: 2,
	}))
}

func TestSearchAggregatesResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "Eiffel Tower", r.PostForm.Get("q"))
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(resultsPage))
	}))
	defer server.Close()

	text, err := newTestSearcher(server.URL).Search(context.Background(), "Eiffel Tower")

	require.NoError(t, err)
	assert.Equal(t,
		"Eiffel Tower - Wikipedia: The Eiffel Tower is a wrought-iron lattice tower in Paris. (https://en.wikipedia.org/wiki/Eiffel_Tower)\n"+
			"Official website: Tickets and opening hours. (https://www.toureiffel.paris/en)",
		text,
	)
}

func TestSearchWithoutResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body><div class="no-results">No results.</div></body></html>`))
	}))
	defer server.Close()

	text, err := newTestSearcher(server.URL).Search(context.Background(), "qwertyuiop")

	require.NoError(t, err)
	assert.Equal(t, NoResultsMessage, text)
}

func TestSearchStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := newTestSearcher(server.URL).Search(context.Background(), "Eiffel Tower")

	var providerErr *domain.ProviderError
	require.True(t, errors.As(err, &providerErr))
	assert.Equal(t, domain.FailureReasonQuota, providerErr.Reason)
}

func TestExtractActualURL(t *testing.T) {
	assert.Equal(t, "https://example.com/a b", extractActualURL("//duckduckgo.com/l/?uddg=https%3A%2F%2Fexample.com%2Fa%20b"))
	assert.Equal(t, "https://example.com", extractActualURL("https://example.com"))
	assert.Equal(t, "", extractActualURL("javascript:void(0)"))
}
