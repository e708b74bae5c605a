package reader

import (
	"context"
	"sync"

	"github.com/starford/credenda/internal/view"
)

// Sink receives every output a Session applies, in trigger order.
type Sink interface {
	Present(Output)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Output)

// Present calls f(out).
func (f SinkFunc) Present(out Output) { f(out) }

// State is the trigger state of a session.
type State struct {
	Location string       `json:"location"`
	Toggles  view.Toggles `json:"toggles"`
	Query    string       `json:"query,omitempty"`
}

// Session is a long-lived reading session for one client. Location,
// toggle and query changes each trigger a render. A render whose trigger
// has been superseded by a newer one is discarded instead of reaching the
// sink, so the sink always shows the outcome of the latest trigger.
type Session struct {
	svc  *Service
	sink Sink

	mu    sync.Mutex
	state State
	gen   uint64
	last  Output
}

// NewSession starts a session at the index with the given toggles.
// sink may be nil.
func NewSession(svc *Service, sink Sink, t view.Toggles) *Session {
	return &Session{svc: svc, sink: sink, state: State{Location: "/", Toggles: t}}
}

// Navigate moves to location and clears any active query.
func (s *Session) Navigate(ctx context.Context, location string) (Output, bool) {
	return s.trigger(ctx, func(st *State) {
		st.Location = location
		st.Query = ""
	})
}

// SetToggles replaces the section toggles and re-renders the current
// location. Any active query is cleared.
func (s *Session) SetToggles(ctx context.Context, t view.Toggles) (Output, bool) {
	return s.trigger(ctx, func(st *State) {
		st.Toggles = t
		st.Query = ""
	})
}

// SetQuery searches for query. An empty query restores the routed view.
func (s *Session) SetQuery(ctx context.Context, query string) (Output, bool) {
	return s.trigger(ctx, func(st *State) {
		st.Query = query
	})
}

// State returns the current trigger state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Current returns the last applied output.
func (s *Session) Current() Output {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// trigger applies change, renders the resulting state and applies the
// output unless a newer trigger arrived meanwhile. The bool reports
// whether the output was applied.
func (s *Session) trigger(ctx context.Context, change func(*State)) (Output, bool) {
	s.mu.Lock()
	change(&s.state)
	s.gen++
	gen, st := s.gen, s.state
	s.mu.Unlock()

	var out Output
	if st.Query != "" {
		out = s.svc.Search(ctx, st.Query, st.Location, st.Toggles)
	} else {
		out = s.svc.Render(ctx, st.Location, st.Toggles)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		s.svc.metrics.ObserveStale()
		return out, false
	}
	s.last = out
	if s.sink != nil {
		s.sink.Present(out)
	}
	return out, true
}
