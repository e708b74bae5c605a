package api

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/starford/credenda/internal/reader"
	"github.com/starford/credenda/internal/view"
)

// Handler holds API route handlers.
type Handler struct {
	svc *reader.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *reader.Service) *Handler {
	return &Handler{svc: svc}
}

// View handles GET /api/view.
//
// A non-empty q runs a search; otherwise location is rendered. The response
// is always 200: unresolvable locations render as a not-found view.
//
//	@Summary		Render a location or search
//	@Tags			views
//	@Produce		json
//	@Param			location	query		string	false	"Location, e.g. /article/7"
//	@Param			q			query		string	false	"Search query"
//	@Param			scripture	query		bool	false	"Show scripture"
//	@Param			notes		query		bool	false	"Show historical notes"
//	@Param			commentary	query		bool	false	"Show commentary"
//	@Success		200			{object}	ViewResponse
//	@Failure		400			{object}	errResponse
//	@Router			/view [get]
func (h *Handler) View(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	t, ok := h.toggles(w, q)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.svc.Search(r.Context(), q.Get(paramQuery), locationParam(q), t))
}

// Index handles GET /api/index.
//
//	@Summary		Render the article index
//	@Tags			views
//	@Produce		json
//	@Success		200	{object}	ViewResponse
//	@Router			/index [get]
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Render(r.Context(), "/", view.AllSections()))
}

// Article handles GET /api/articles/{number}.
//
//	@Summary		Render one article
//	@Tags			views
//	@Produce		json
//	@Param			number		path		string	true	"Article number"
//	@Param			scripture	query		bool	false	"Show scripture"
//	@Param			notes		query		bool	false	"Show historical notes"
//	@Param			commentary	query		bool	false	"Show commentary"
//	@Success		200			{object}	ViewResponse
//	@Failure		400			{object}	errResponse
//	@Failure		404			{object}	errResponse
//	@Router			/articles/{number} [get]
func (h *Handler) Article(w http.ResponseWriter, r *http.Request) {
	t, ok := h.toggles(w, r.URL.Query())
	if !ok {
		return
	}
	h.renderOr404(w, r, "/article/"+chi.URLParam(r, "number"), t)
}

// Daily handles GET /api/daily/{service}.
//
//	@Summary		Render a daily office service
//	@Tags			views
//	@Produce		json
//	@Param			service	path		string	true	"Service id, e.g. morning-prayer"
//	@Success		200		{object}	ViewResponse
//	@Failure		404		{object}	errResponse
//	@Router			/daily/{service} [get]
func (h *Handler) Daily(w http.ResponseWriter, r *http.Request) {
	h.renderOr404(w, r, "/daily/"+chi.URLParam(r, "service"), view.AllSections())
}

// Search handles GET /api/search.
//
//	@Summary		Search the articles
//	@Tags			search
//	@Produce		json
//	@Param			q			query		string	true	"Search query"
//	@Param			location	query		string	false	"Location the search was started from"
//	@Success		200			{object}	ViewResponse
//	@Failure		400			{object}	errResponse
//	@Router			/search [get]
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := q.Get(paramQuery)
	if strings.TrimSpace(query) == "" {
		writeError(w, http.StatusBadRequest, "query parameter 'q' is required")
		return
	}
	t, ok := h.toggles(w, q)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.svc.Search(r.Context(), query, locationParam(q), t))
}

func (h *Handler) toggles(w http.ResponseWriter, q url.Values) (view.Toggles, bool) {
	t, err := parseToggles(q)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return view.Toggles{}, false
	}
	return t, true
}

func (h *Handler) renderOr404(w http.ResponseWriter, r *http.Request, location string, t view.Toggles) {
	out := h.svc.Render(r.Context(), location, t)
	if out.View.Kind == view.KindNotFound {
		writeError(w, http.StatusNotFound, notFoundMessage(out))
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func notFoundMessage(out reader.Output) string {
	if b, ok := out.View.Block(view.BlockMessage); ok && b.Text != "" {
		return b.Text
	}
	return "not found"
}
