// Package content fetches and decodes corpus documents. Every failure,
// whatever its cause, is reported as apperr.ErrNotFound.
package content

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/starford/credenda/internal/apperr"
	"github.com/starford/credenda/internal/metrics"
	"github.com/starford/credenda/internal/models"
	"github.com/starford/credenda/internal/parser"
	"github.com/starford/credenda/internal/storage"
)

// Content key layout.
const (
	IndexKey      = "articles/index"
	ArticlePrefix = "articles/"
	ServicePrefix = "daily-office/"
	ServiceDir    = "daily-office"
)

// Document kinds used for metrics and logs.
const (
	KindIndex   = "index"
	KindArticle = "article"
	KindService = "service"
)

// ArticleKey returns the content key for article n.
func ArticleKey(n int) string {
	return ArticlePrefix + strconv.Itoa(n)
}

// ServiceKey returns the content key for a daily office service.
func ServiceKey(id string) string {
	return ServicePrefix + id
}

// Fetcher reads documents from a storage.Provider. It holds no cache and
// never retries.
type Fetcher struct {
	store   storage.Provider
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewFetcher creates a Fetcher. m may be nil.
func NewFetcher(store storage.Provider, logger *slog.Logger, m *metrics.Metrics) *Fetcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{store: store, logger: logger, metrics: m}
}

// Index fetches the ordered article index.
func (f *Fetcher) Index(ctx context.Context) ([]models.ArticleIndexEntry, error) {
	data, err := f.read(ctx, KindIndex, IndexKey)
	if err != nil {
		return nil, err
	}
	entries, err := parser.ParseIndex(data)
	if err != nil {
		return nil, f.notFound(KindIndex, IndexKey, err)
	}
	f.metrics.ObserveFetch(KindIndex, metrics.OutcomeOK)
	return entries, nil
}

// Article fetches article n. Numbers below 1 are not found without any I/O.
func (f *Fetcher) Article(ctx context.Context, n int) (*models.Article, error) {
	key := ArticleKey(n)
	if n < 1 {
		return nil, f.notFound(KindArticle, key, fmt.Errorf("invalid article number %d", n))
	}
	data, err := f.read(ctx, KindArticle, key)
	if err != nil {
		return nil, err
	}
	a, err := parser.ParseArticle(data)
	if err != nil {
		return nil, f.notFound(KindArticle, key, err)
	}
	if a.Number != n {
		return nil, f.notFound(KindArticle, key, fmt.Errorf("document number %d does not match key", a.Number))
	}
	f.metrics.ObserveFetch(KindArticle, metrics.OutcomeOK)
	return a, nil
}

// Service fetches the daily office service with the given id.
func (f *Fetcher) Service(ctx context.Context, id string) (*models.DailyService, error) {
	key := ServiceKey(id)
	if id == "" || strings.ContainsAny(id, `/\`) || strings.HasPrefix(id, ".") {
		return nil, f.notFound(KindService, key, fmt.Errorf("invalid service id %q", id))
	}
	data, err := f.read(ctx, KindService, key)
	if err != nil {
		return nil, err
	}
	s, err := parser.ParseService(data)
	if err != nil {
		return nil, f.notFound(KindService, key, err)
	}
	f.metrics.ObserveFetch(KindService, metrics.OutcomeOK)
	return s, nil
}

// Services lists the available daily office service ids. Stores that
// cannot enumerate keys yield an empty list.
func (f *Fetcher) Services(ctx context.Context) []string {
	l, ok := f.store.(storage.Lister)
	if !ok {
		return nil
	}
	keys, err := l.List(ctx, ServiceDir)
	if err != nil {
		f.logger.Debug("content: list services failed", slog.String("error", err.Error()))
		return nil
	}
	ids := make([]string, 0, len(keys))
	for _, k := range keys {
		ids = append(ids, strings.TrimPrefix(k, ServicePrefix))
	}
	return ids
}

func (f *Fetcher) read(ctx context.Context, kind, key string) ([]byte, error) {
	data, err := f.store.Read(ctx, key)
	if err != nil {
		return nil, f.notFound(kind, key, err)
	}
	return data, nil
}

// notFound logs the underlying cause and collapses it into ErrNotFound.
func (f *Fetcher) notFound(kind, key string, cause error) error {
	f.logger.Debug("content: fetch failed",
		slog.String("kind", kind),
		slog.String("key", key),
		slog.String("error", cause.Error()))
	f.metrics.ObserveFetch(kind, metrics.OutcomeNotFound)
	return fmt.Errorf("%s: %w", key, apperr.ErrNotFound)
}

// ClassifyKey reports which document kind a content key holds.
// ok is false for keys outside the known layout.
func ClassifyKey(key string) (kind string, ok bool) {
	switch {
	case key == IndexKey:
		return KindIndex, true
	case strings.HasPrefix(key, ArticlePrefix):
		rest := strings.TrimPrefix(key, ArticlePrefix)
		if n, err := strconv.Atoi(rest); err == nil && n > 0 {
			return KindArticle, true
		}
	case strings.HasPrefix(key, ServicePrefix):
		rest := strings.TrimPrefix(key, ServicePrefix)
		if rest != "" && !strings.Contains(rest, "/") {
			return KindService, true
		}
	}
	return "", false
}
