// Package view assembles markup-independent view-models from fetched
// documents. Assembly is pure: no I/O and no ambient state.
//
// Every text field of a view-model is already escaped (see Escape) so a
// presentation layer may insert it into markup verbatim. Hrefs and URLs
// are carried as data and are not escaped.
package view

// Kind identifies the overall view.
type Kind string

const (
	KindIndex     Kind = "index"
	KindArticle   Kind = "article"
	KindDaily     Kind = "daily"
	KindNotFound  Kind = "not_found"
	KindSearch    Kind = "search"
	KindNoResults Kind = "no_results"
)

// BlockKind identifies one section of a view.
type BlockKind string

const (
	BlockHeader      BlockKind = "header"
	BlockText        BlockKind = "text"
	BlockScripture   BlockKind = "scripture"
	BlockCommentary  BlockKind = "commentary"
	BlockNotes       BlockKind = "notes"
	BlockFootnotes   BlockKind = "footnotes"
	BlockScholarship BlockKind = "scholarship"
	BlockBack        BlockKind = "back"

	BlockTitle      BlockKind = "title"
	BlockOpening    BlockKind = "opening"
	BlockInvitatory BlockKind = "invitatory"
	BlockPsalms     BlockKind = "psalms"
	BlockReadings   BlockKind = "readings"
	BlockCanticle   BlockKind = "canticle"
	BlockCreed      BlockKind = "creed"
	BlockPrayers    BlockKind = "prayers"

	BlockContents BlockKind = "contents"
	BlockServices BlockKind = "services"
	BlockResults  BlockKind = "results"
	BlockMessage  BlockKind = "message"
)

// View is the ordered view-model handed to the render boundary together
// with its document title.
type View struct {
	Kind   Kind    `json:"kind"`
	Title  string  `json:"title"`
	Blocks []Block `json:"blocks"`
}

// Block is one typed section. Only the fields relevant to Kind are set.
type Block struct {
	Kind       BlockKind  `json:"kind"`
	Heading    string     `json:"heading,omitempty"`
	Number     int        `json:"number,omitempty"`
	Text       string     `json:"text,omitempty"`
	Paragraphs []string   `json:"paragraphs,omitempty"`
	Segments   []Segment  `json:"segments,omitempty"`
	Lines      []Line     `json:"lines,omitempty"`
	List       []string   `json:"list,omitempty"`
	Footnotes  []Footnote `json:"footnotes,omitempty"`
	Links      []Link     `json:"links,omitempty"`
}

// SegmentKind distinguishes plain text from footnote markers.
type SegmentKind string

const (
	SegmentText        SegmentKind = "text"
	SegmentFootnoteRef SegmentKind = "footnote_ref"
)

// Segment is a run of commentary. A footnote_ref segment is addressable as
// ID and links forward to Href.
type Segment struct {
	Kind   SegmentKind `json:"kind"`
	Text   string      `json:"text"`
	Number int         `json:"number,omitempty"`
	ID     string      `json:"id,omitempty"`
	Href   string      `json:"href,omitempty"`
}

// Footnote is one entry of a footnotes list. BackRef is empty unless the
// entry has a URL and a rendered marker refers to it.
type Footnote struct {
	ID      string `json:"id"`
	Number  int    `json:"number"`
	Text    string `json:"text"`
	URL     string `json:"url,omitempty"`
	BackRef string `json:"back_ref,omitempty"`
}

// Line is a labelled line such as a reading or an invitatory versicle.
type Line struct {
	Label  string `json:"label"`
	Text   string `json:"text"`
	Detail string `json:"detail,omitempty"`
}

// Link points either at a location inside the reader or an external URL.
type Link struct {
	Label   string `json:"label"`
	Href    string `json:"href"`
	Ref     string `json:"ref,omitempty"`
	Excerpt string `json:"excerpt,omitempty"`
	Outward bool   `json:"outward,omitempty"`
}

// Toggles selects the optional article sections. The zero value hides all
// of them.
type Toggles struct {
	ShowScripture  bool `json:"show_scripture"`
	ShowNotes      bool `json:"show_notes"`
	ShowCommentary bool `json:"show_commentary"`
}

// AllSections returns toggles with every optional section enabled.
func AllSections() Toggles {
	return Toggles{ShowScripture: true, ShowNotes: true, ShowCommentary: true}
}

// Block returns the first block of the given kind.
func (v View) Block(kind BlockKind) (Block, bool) {
	for _, b := range v.Blocks {
		if b.Kind == kind {
			return b, true
		}
	}
	return Block{}, false
}
