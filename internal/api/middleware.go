// Package api implements the Credenda HTTP render boundary using chi.
package api

import "net/http"

// NoCache marks every response as uncacheable. Views are assembled from
// the live corpus on each request, so intermediaries must not reuse them.
func NoCache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-cache")
		next.ServeHTTP(w, r)
	})
}
