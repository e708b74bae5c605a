package view

import (
	"fmt"

	"github.com/starford/credenda/internal/models"
)

// Document titles of the fixed pages.
const (
	IndexTitle    = "Thirty-Nine Articles — Index"
	NotFoundTitle = "Not found"
	SearchTitle   = "Search"
)

// AssembleIndex lists every article in index order, followed by the
// available daily office services when there are any.
func AssembleIndex(entries []models.ArticleIndexEntry, services []string) View {
	links := make([]Link, 0, len(entries))
	for _, e := range entries {
		links = append(links, Link{
			Label: fmt.Sprintf("%d. %s", e.Number, Escape(e.Title)),
			Href:  fmt.Sprintf("/article/%d", e.Number),
			Ref:   fmt.Sprintf("Article %d", e.Number),
		})
	}
	v := View{
		Kind:   KindIndex,
		Title:  IndexTitle,
		Blocks: []Block{{Kind: BlockContents, Heading: "Contents", Links: links}},
	}

	if len(services) > 0 {
		svc := make([]Link, 0, len(services))
		for _, id := range services {
			svc = append(svc, Link{Label: Escape(id), Href: "/daily/" + id})
		}
		v.Blocks = append(v.Blocks, Block{Kind: BlockServices, Heading: "Daily Office", Links: svc})
	}
	return v
}

// NotFound is the placeholder for a document that could not be fetched.
// noun names the document type ("Article", "Service"); id is the
// requested id and may be empty.
func NotFound(noun, id string) View {
	b := Block{Kind: BlockMessage, Heading: NotFoundTitle}
	if noun != "" {
		if id != "" {
			b.Text = fmt.Sprintf("%s %s not found.", Escape(noun), Escape(id))
		} else {
			b.Text = fmt.Sprintf("%s not found.", Escape(noun))
		}
	}
	return View{Kind: KindNotFound, Title: NotFoundTitle, Blocks: []Block{b}}
}

// SearchResults lists search hits in the order given. An empty hit list
// yields the no-results marker.
func SearchResults(hits []models.ArticleSummary) View {
	if len(hits) == 0 {
		return View{
			Kind:   KindNoResults,
			Title:  SearchTitle,
			Blocks: []Block{{Kind: BlockMessage, Text: "No results"}},
		}
	}
	links := make([]Link, 0, len(hits))
	for _, h := range hits {
		links = append(links, Link{
			Label:   fmt.Sprintf("%d. %s", h.Number, Escape(h.Title)),
			Href:    fmt.Sprintf("/article/%d", h.Number),
			Ref:     fmt.Sprintf("Article %d", h.Number),
			Excerpt: Escape(h.CommentaryExcerpt),
		})
	}
	return View{
		Kind:   KindSearch,
		Title:  SearchTitle,
		Blocks: []Block{{Kind: BlockResults, Links: links}},
	}
}
