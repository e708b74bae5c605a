// Package route parses location strings into routes. Parsing is total and
// performs no I/O.
package route

import (
	"strconv"
	"strings"
)

// Kind identifies the route variant.
type Kind string

const (
	KindIndex   Kind = "index"
	KindArticle Kind = "article"
	KindDaily   Kind = "daily"
	KindUnknown Kind = "unknown"
)

// Route is the parsed intent of a location.
//
// For KindArticle, Number is 0 when the id segment is not a positive
// integer; such routes must resolve to not-found. ID always carries the
// raw id segment so placeholders can name what was requested.
type Route struct {
	Kind      Kind   `json:"kind"`
	Number    int    `json:"number,omitempty"`
	ServiceID string `json:"service_id,omitempty"`
	ID        string `json:"id,omitempty"`
}

// Valid reports whether an article route carries a usable number.
func (r Route) Valid() bool {
	switch r.Kind {
	case KindArticle:
		return r.Number > 0
	case KindDaily:
		return r.ServiceID != ""
	default:
		return true
	}
}

// Location formats the route back into its canonical location string.
func (r Route) Location() string {
	switch r.Kind {
	case KindIndex:
		return "/"
	case KindArticle:
		return "/article/" + r.ID
	case KindDaily:
		return "/daily/" + r.ServiceID
	default:
		return ""
	}
}

// Article returns the route for article n.
func Article(n int) Route {
	return Route{Kind: KindArticle, Number: n, ID: strconv.Itoa(n)}
}

// Parse maps a location string to a Route. A leading "#" is ignored so
// hash-style locations are accepted as is.
func Parse(location string) Route {
	location = strings.TrimPrefix(location, "#")

	var parts []string
	for _, p := range strings.Split(location, "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}

	if len(parts) == 0 {
		return Route{Kind: KindIndex}
	}

	var id string
	if len(parts) > 1 {
		id = parts[1]
	}

	switch parts[0] {
	case "article":
		return Route{Kind: KindArticle, Number: parseNumber(id), ID: id}
	case "daily":
		return Route{Kind: KindDaily, ServiceID: id, ID: id}
	default:
		return Route{Kind: KindUnknown}
	}
}

// parseNumber accepts a leading run of decimal digits, so "7abc" is 7.
// Anything without a positive leading number yields 0.
func parseNumber(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil || n < 1 {
		return 0
	}
	return n
}
