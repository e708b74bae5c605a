package search

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starford/credenda/internal/apperr"
	"github.com/starford/credenda/internal/models"
)

type mapSource struct {
	mu       sync.Mutex
	docs     map[int]*models.Article
	requests []int
	inFlight atomic.Int32
	peak     atomic.Int32
	delay    time.Duration
}

func (m *mapSource) Article(_ context.Context, n int) (*models.Article, error) {
	cur := m.inFlight.Add(1)
	defer m.inFlight.Add(-1)
	for {
		p := m.peak.Load()
		if cur <= p || m.peak.CompareAndSwap(p, cur) {
			break
		}
	}
	time.Sleep(m.delay)

	m.mu.Lock()
	m.requests = append(m.requests, n)
	a, ok := m.docs[n]
	m.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("articles/%d: %w", n, apperr.ErrNotFound)
	}
	return a, nil
}

func corpus() *mapSource {
	docs := map[int]*models.Article{}
	for n := 1; n <= 39; n++ {
		docs[n] = &models.Article{Number: n, Title: fmt.Sprintf("Article %d", n), Text: "text"}
	}
	docs[2].Commentary = "Christ suffered to reconcile his Father to us, a sacrifice for all sin."
	docs[11].Notes = "The ATONEMENT is presupposed."
	docs[15].Footnotes = []models.Footnote{{Number: 1, Text: "On the atonement, see Hooker."}}
	docs[31].Title = "Of the one Oblation of Christ finished upon the Cross"
	docs[31].Commentary = strings.Repeat("atonement ", 60)
	delete(docs, 22)
	return &mapSource{docs: docs}
}

func TestSearch_EmptyQueryInactive(t *testing.T) {
	src := corpus()
	e := NewEngine(src, 39, nil)
	for _, q := range []string{"", "   ", "\t\n"} {
		res := e.Search(context.Background(), q)
		assert.False(t, res.Active, "query %q", q)
		assert.Nil(t, res.Hits)
	}
	assert.Empty(t, src.requests, "inactive search must not fetch")
}

func TestSearch_MatchesAcrossFieldsInOrder(t *testing.T) {
	src := corpus()
	res := NewEngine(src, 39, nil).Search(context.Background(), "  Atonement ")

	require.True(t, res.Active)
	assert.Equal(t, "Atonement", res.Query)
	var got []int
	for _, h := range res.Hits {
		got = append(got, h.Number)
		assert.LessOrEqual(t, len([]rune(h.CommentaryExcerpt)), ExcerptLen+len(Ellipsis))
		assert.True(t, strings.HasSuffix(h.CommentaryExcerpt, Ellipsis))
	}
	assert.Equal(t, []int{11, 15, 31}, got)
	assert.Len(t, src.requests, 39)
}

func TestSearch_NoMatchesIsActiveAndEmpty(t *testing.T) {
	res := NewEngine(corpus(), 39, nil).Search(context.Background(), "purgatory of rome xyz")
	assert.True(t, res.Active)
	assert.NotNil(t, res.Hits)
	assert.Empty(t, res.Hits)
}

func TestSearch_FanOutIsConcurrent(t *testing.T) {
	src := corpus()
	src.delay = 20 * time.Millisecond
	NewEngine(src, 39, nil).Search(context.Background(), "text")
	assert.Greater(t, src.peak.Load(), int32(1))
}

func TestSearch_NoCrossFieldMatch(t *testing.T) {
	src := &mapSource{docs: map[int]*models.Article{
		1: {Number: 1, Title: "grace", Text: "ful"},
	}}
	res := NewEngine(src, 1, nil).Search(context.Background(), "graceful")
	assert.Empty(t, res.Hits)
}

func TestSummarize(t *testing.T) {
	s := Summarize(&models.Article{Number: 3, Title: "Of the going down of Christ into Hell"})
	assert.Equal(t, models.ArticleSummary{Number: 3, Title: "Of the going down of Christ into Hell", CommentaryExcerpt: "..."}, s)

	long := Summarize(&models.Article{Number: 4, Commentary: strings.Repeat("é", 400)})
	assert.Equal(t, strings.Repeat("é", 300)+"...", long.CommentaryExcerpt)
}

func TestHaystack(t *testing.T) {
	a := &models.Article{
		Title: "T", Text: "X", Commentary: "C", Notes: "N",
		Footnotes: []models.Footnote{{Text: "F1"}, {Text: "F2"}},
	}
	assert.Equal(t, "t x c n f1 f2", Haystack(a))
}
