package duckduckgo

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"kgeyst.com/cicerone/pkg/cicerone/domain"
	"kgeyst.com/cicerone/pkg/common"
)

const (
	providerName = "DuckDuckGo"

	// ConfigKeyEndpoint the HTML (no JavaScript) search page
	ConfigKeyEndpoint = "duckDuckGoEndpoint"
	// ConfigKeyMaxResults how many results are aggregated into the research text
	ConfigKeyMaxResults = "searchMaxResults"
	// ConfigKeyTimeout when to give up on a request, in milliseconds (0 = no timeout)
	ConfigKeyTimeout = "providerTimeout"

	defaultEndpoint = "https://html.duckduckgo.com/html/"
	userAgent       = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	maxPageSize     = 5 * 1024 * 1024
)

// NoResultsMessage is returned instead of an empty string so that the language model knows research came up empty.
const NoResultsMessage = "No good DuckDuckGo search result was found."

// Searcher scrapes DuckDuckGo's HTML results page. Needs no API key.
type Searcher struct {
	endpoint   string
	maxResults int
	http       *http.Client
}

type result struct {
	title   string
	url     string
	snippet string
}

func NewSearcher(config *common.Config) *Searcher {
	return &Searcher{
		endpoint:   config.GetStringOrDefault(ConfigKeyEndpoint, defaultEndpoint),
		maxResults: config.GetIntOrDefault(ConfigKeyMaxResults, 5),
		http:       &http.Client{Timeout: config.GetDurationOrDefault(ConfigKeyTimeout, 0)},
	}
}

func (s *Searcher) Name() string {
	return providerName
}

func (s *Searcher) Search(ctx context.Context, query string) (string, error) {
	form := url.Values{"q": {query}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", domain.NewProviderError(providerName, domain.FailureReasonProvider, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	resp, err := s.http.Do(req)
	if err != nil {
		return "", domain.NewProviderError(providerName, domain.FailureReasonTransport, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", domain.NewProviderStatusError(providerName, resp.StatusCode, string(body))
	}
	document, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, maxPageSize))
	if err != nil {
		return "", domain.NewProviderError(providerName, domain.FailureReasonMalformedResponse, err)
	}
	results := s.parseResults(document)
	if len(results) == 0 {
		return NoResultsMessage, nil
	}
	lines := make([]string, 0, len(results))
	for _, r := range results {
		lines = append(lines, fmt.Sprintf("%s: %s (%s)", r.title, r.snippet, r.url))
	}
	return strings.Join(lines, "\n"), nil
}

func (s *Searcher) parseResults(document *goquery.Document) []result {
	var results []result
	document.Find(".result").EachWithBreak(func(_ int, selection *goquery.Selection) bool {
		if selection.HasClass("result--ad") {
			return true
		}
		link := selection.Find(".result__a").First()
		title := normalizeSpace(link.Text())
		href, _ := link.Attr("href")
		resultURL := extractActualURL(href)
		if title == "" || resultURL == "" {
			return true
		}
		results = append(results, result{
			title:   title,
			url:     resultURL,
			snippet: normalizeSpace(selection.Find(".result__snippet").First().Text()),
		})
		return len(results) < s.maxResults
	})
	return results
}

// DuckDuckGo wraps result links into redirects like "//duckduckgo.com/l/?uddg=https%3A%2F%2Fexample.com".
func extractActualURL(href string) string {
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}
	parsed, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if target := parsed.Query().Get("uddg"); target != "" {
		return target
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return ""
	}
	return href
}

func normalizeSpace(str string) string {
	return strings.Join(strings.Fields(str), " ")
}
