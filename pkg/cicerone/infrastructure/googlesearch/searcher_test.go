package googlesearch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"

	"kgeyst.com/cicerone/pkg/cicerone/domain"
)

func newTestSearcher(t *testing.T, server *httptest.Server) *Searcher {
	searcher, err := NewSearcher(
		context.Background(),
		"engine-1",
		3,
		option.WithEndpoint(server.URL+"/"),
		option.WithHTTPClient(server.Client()),
	)
	require.NoError(t, err)
	return searcher
}

func TestSearchAggregatesItems(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "engine-1", r.URL.Query().Get("cx"))
		assert.Equal(t, "Machu Picchu", r.URL.Query().Get("q"))
		assert.Equal(t, "3", r.URL.Query().Get("num"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[
			{"title":"Machu Picchu - Wikipedia","link":"https://en.wikipedia.org/wiki/Machu_Picchu","snippet":"15th-century Inca\ncitadel"},
			{"title":"UNESCO","link":"https://whc.unesco.org/en/list/274","snippet":"World Heritage site"}
		]}`))
	}))
	defer server.Close()

	text, err := newTestSearcher(t, server).Search(context.Background(), "Machu Picchu")

	require.NoError(t, err)
	assert.Equal(t,
		"Machu Picchu - Wikipedia: 15th-century Inca citadel (https://en.wikipedia.org/wiki/Machu_Picchu)\n"+
			"UNESCO: World Heritage site (https://whc.unesco.org/en/list/274)",
		text,
	)
}

func TestSearchWithoutItems(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	text, err := newTestSearcher(t, server).Search(context.Background(), "nothing")

	require.NoError(t, err)
	assert.Equal(t, NoResultsMessage, text)
}

func TestSearchAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"code":403,"message":"API key not valid"}}`))
	}))
	defer server.Close()

	_, err := newTestSearcher(t, server).Search(context.Background(), "Machu Picchu")

	var providerErr *domain.ProviderError
	require.True(t, errors.As(err, &providerErr))
	assert.Equal(t, domain.FailureReasonAuthentication, providerErr.Reason)
	assert.Equal(t, http.StatusForbidden, providerErr.StatusCode)
}

func TestNewSearcherRequiresEngineID(t *testing.T) {
	_, err := NewSearcher(context.Background(), "", 5, option.WithAPIKey("key"))
	assert.ErrorIs(t, err, ErrMissingEngineID)
}
