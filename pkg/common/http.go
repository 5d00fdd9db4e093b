package common

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
)

var ErrContentTooLarge = errors.New("content too large")

// ReadAllFromURL reads all content from the URL, but no more than `maxSize` bytes: a URL which streams
// endless output makes it fail with ErrContentTooLarge instead of exhausting memory.
func ReadAllFromURL(ctx context.Context, url string, maxSize int64) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = res.Body.Close()
	}()
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d for %s", res.StatusCode, url)
	}
	content, err := io.ReadAll(io.LimitReader(res.Body, maxSize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(content)) > maxSize {
		return nil, ErrContentTooLarge
	}
	return content, nil
}
