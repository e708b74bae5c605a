// Package models defines the document types of the Credenda corpus.
package models

// ArticleIndexEntry is one row of articles/index. Slice order is display
// and search order.
type ArticleIndexEntry struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
}

// Article is a single numbered article. Every field except Number, Title
// and Text may be absent.
type Article struct {
	Number      int           `json:"number"`
	Title       string        `json:"title"`
	Text        string        `json:"text"`
	Scripture   []string      `json:"scripture,omitempty"`
	Commentary  string        `json:"commentary,omitempty"`
	Notes       string        `json:"notes,omitempty"`
	Footnotes   []Footnote    `json:"footnotes,omitempty"`
	Scholarship []Scholarship `json:"scholarship,omitempty"`
}

// Footnote is referenced from commentary by an inline [Number] marker.
// Numbers are matched by value, not by position.
type Footnote struct {
	Number int    `json:"number"`
	Text   string `json:"text"`
	URL    string `json:"url,omitempty"`
}

// Scholarship is a further-reading link.
type Scholarship struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// ArticleSummary is one search hit.
type ArticleSummary struct {
	Number            int    `json:"number"`
	Title             string `json:"title"`
	CommentaryExcerpt string `json:"commentary_excerpt"`
}
