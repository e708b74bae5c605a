// Package reader ties routing, fetching, view assembly and search together.
package reader

import (
	"context"
	"log/slog"

	"github.com/starford/credenda/internal/metrics"
	"github.com/starford/credenda/internal/models"
	"github.com/starford/credenda/internal/route"
	"github.com/starford/credenda/internal/search"
	"github.com/starford/credenda/internal/view"
)

// Fetcher is the content access the reader needs. Every error is treated
// as not found.
type Fetcher interface {
	Index(ctx context.Context) ([]models.ArticleIndexEntry, error)
	Article(ctx context.Context, n int) (*models.Article, error)
	Service(ctx context.Context, id string) (*models.DailyService, error)
	Services(ctx context.Context) []string
}

// Output is what the reader hands to the render boundary.
type Output struct {
	Location string       `json:"location"`
	Route    route.Route  `json:"route"`
	Toggles  view.Toggles `json:"toggles"`
	Query    string       `json:"query,omitempty"`
	View     view.View    `json:"view"`
}

// Service renders locations and searches. It holds no mutable state and
// is safe for concurrent use.
type Service struct {
	fetcher Fetcher
	engine  *search.Engine
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewService creates a reader service. m may be nil.
func NewService(fetcher Fetcher, engine *search.Engine, logger *slog.Logger, m *metrics.Metrics) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{fetcher: fetcher, engine: engine, logger: logger, metrics: m}
}

// Render resolves location and assembles its view with the given toggles.
// It never fails: anything that cannot be fetched renders as a not-found
// placeholder.
func (s *Service) Render(ctx context.Context, location string, t view.Toggles) Output {
	r := route.Parse(location)
	out := Output{Location: location, Route: r, Toggles: t}

	switch r.Kind {
	case route.KindIndex:
		entries, err := s.fetcher.Index(ctx)
		if err != nil {
			s.logger.Warn("reader: index unavailable", slog.String("error", err.Error()))
		}
		out.View = view.AssembleIndex(entries, s.fetcher.Services(ctx))

	case route.KindArticle:
		a, err := s.fetcher.Article(ctx, r.Number)
		if err != nil {
			out.View = view.NotFound("Article", r.ID)
			break
		}
		out.View = view.AssembleArticle(a, t)

	case route.KindDaily:
		svc, err := s.fetcher.Service(ctx, r.ServiceID)
		if err != nil {
			out.View = view.NotFound("Service", r.ID)
			break
		}
		out.View = view.AssembleDaily(svc)

	default:
		out.View = view.NotFound("", "")
	}

	s.metrics.ObserveRender(string(out.View.Kind))
	return out
}

// Search runs query over the corpus. An empty query is not a search: the
// routed view of location is rendered instead.
func (s *Service) Search(ctx context.Context, query, location string, t view.Toggles) Output {
	res := s.engine.Search(ctx, query)
	if !res.Active {
		return s.Render(ctx, location, t)
	}
	s.logger.Debug("reader: search",
		slog.String("query", res.Query),
		slog.Int("hits", len(res.Hits)))

	out := Output{
		Location: location,
		Route:    route.Parse(location),
		Toggles:  t,
		Query:    res.Query,
		View:     view.SearchResults(res.Hits),
	}
	s.metrics.ObserveRender(string(out.View.Kind))
	return out
}

// CorpusSize returns the fixed number of articles searched.
func (s *Service) CorpusSize() int {
	return s.engine.CorpusSize()
}
