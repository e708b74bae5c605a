package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/starford/credenda/internal/apperr"
)

// maxDocumentBytes bounds a single document body.
const maxDocumentBytes = 4 << 20

// HTTP implements Provider against a static file host.
type HTTP struct {
	base   *url.URL
	client *http.Client
}

// NewHTTP creates a provider that resolves keys against baseURL.
// A zero timeout leaves requests unbounded.
func NewHTTP(baseURL string, timeout time.Duration) (*HTTP, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("storage: parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("storage: unsupported scheme %q", u.Scheme)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return &HTTP{base: u, client: &http.Client{Timeout: timeout}}, nil
}

// Read fetches <base>/<key>.json. Any non-2xx status is an error.
func (h *HTTP) Read(ctx context.Context, key string) ([]byte, error) {
	if key == "" || strings.HasPrefix(key, "/") || strings.Contains(key, "..") {
		return nil, fmt.Errorf("storage: bad key %q: %w", key, apperr.ErrInvalidKey)
	}
	ref, err := url.Parse(key + Ext)
	if err != nil {
		return nil, fmt.Errorf("storage: bad key %q: %w", key, apperr.ErrInvalidKey)
	}
	target := h.base.ResolveReference(ref)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("storage: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("storage: get %s: %w", key, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("storage: get %s: status %d", key, resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentBytes))
	if err != nil {
		return nil, fmt.Errorf("storage: read body %s: %w", key, err)
	}
	return data, nil
}
