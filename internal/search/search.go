// Package search implements the full-corpus substring search.
package search

import (
	"context"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/starford/credenda/internal/metrics"
	"github.com/starford/credenda/internal/models"
)

// ExcerptLen is the number of commentary characters kept in a summary.
const ExcerptLen = 300

// Ellipsis is appended to every excerpt.
const Ellipsis = "..."

// ArticleSource fetches one article by number. Any error means the
// article is treated as absent.
type ArticleSource interface {
	Article(ctx context.Context, n int) (*models.Article, error)
}

// Result is the outcome of a search. Active is false for an empty or
// whitespace-only query, in which case Hits is nil and the caller falls
// back to routed rendering.
type Result struct {
	Active bool                    `json:"active"`
	Query  string                  `json:"query,omitempty"`
	Hits   []models.ArticleSummary `json:"hits"`
}

// Engine searches articles 1..CorpusSize.
type Engine struct {
	source     ArticleSource
	corpusSize int
	metrics    *metrics.Metrics
}

// NewEngine creates an Engine over a fixed corpus size. m may be nil.
func NewEngine(source ArticleSource, corpusSize int, m *metrics.Metrics) *Engine {
	return &Engine{source: source, corpusSize: corpusSize, metrics: m}
}

// CorpusSize returns the fixed bound on article numbers.
func (e *Engine) CorpusSize() int {
	return e.corpusSize
}

// Search fetches every article concurrently, waits for all of them and
// keeps those whose searchable text contains the query, ignoring case.
// Hits are in ascending article number order.
func (e *Engine) Search(ctx context.Context, query string) Result {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return Result{}
	}
	start := time.Now()

	docs := make([]*models.Article, e.corpusSize)
	g, gctx := errgroup.WithContext(ctx)
	for i := range docs {
		n := i + 1
		g.Go(func() error {
			a, err := e.source.Article(gctx, n)
			if err == nil {
				docs[n-1] = a
			}
			return nil
		})
	}
	_ = g.Wait()

	hits := make([]models.ArticleSummary, 0)
	for _, a := range docs {
		if a == nil || !strings.Contains(Haystack(a), q) {
			continue
		}
		hits = append(hits, Summarize(a))
	}

	e.metrics.ObserveSearch(time.Since(start))
	return Result{Active: true, Query: strings.TrimSpace(query), Hits: hits}
}

// Haystack is the lower-cased searchable text of an article: title, text,
// commentary, notes and footnote texts joined by single spaces.
func Haystack(a *models.Article) string {
	parts := make([]string, 0, 4+len(a.Footnotes))
	parts = append(parts, a.Title, a.Text, a.Commentary, a.Notes)
	for _, fn := range a.Footnotes {
		parts = append(parts, fn.Text)
	}
	return strings.ToLower(strings.Join(parts, " "))
}

// Summarize returns the search summary of an article. The excerpt is the
// first ExcerptLen characters of the commentary followed by Ellipsis.
func Summarize(a *models.Article) models.ArticleSummary {
	excerpt := a.Commentary
	if r := []rune(excerpt); len(r) > ExcerptLen {
		excerpt = string(r[:ExcerptLen])
	}
	return models.ArticleSummary{
		Number:            a.Number,
		Title:             a.Title,
		CommentaryExcerpt: excerpt + Ellipsis,
	}
}
