package api

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/starford/credenda/internal/reader"
	"github.com/starford/credenda/internal/view"
)

// ViewResponse is the render output returned by every view endpoint
// (aliased from the reader layer).
type ViewResponse = reader.Output

// Query parameter names.
const (
	paramLocation   = "location"
	paramQuery      = "q"
	paramScripture  = "scripture"
	paramNotes      = "notes"
	paramCommentary = "commentary"
)

// parseToggles reads the section toggles from q. Absent parameters leave
// their section shown.
func parseToggles(q url.Values) (view.Toggles, error) {
	t := view.AllSections()
	for name, dst := range map[string]*bool{
		paramScripture:  &t.ShowScripture,
		paramNotes:      &t.ShowNotes,
		paramCommentary: &t.ShowCommentary,
	} {
		raw := q.Get(name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return view.Toggles{}, fmt.Errorf("query parameter '%s' must be a boolean", name)
		}
		*dst = v
	}
	return t, nil
}

// locationParam returns the requested location, defaulting to the index.
func locationParam(q url.Values) string {
	if loc := q.Get(paramLocation); loc != "" {
		return loc
	}
	return "/"
}
