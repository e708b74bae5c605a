package view

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/starford/credenda/internal/models"
)

var markerRe = regexp.MustCompile(`\[([0-9]+)\]`)

// BackLabel is the label of the back-to-contents affordance.
const BackLabel = "← Back to contents"

// FootnoteID is the anchor of footnote n of article a.
func FootnoteID(a, n int) string {
	return fmt.Sprintf("fn-%d-%d", a, n)
}

// RefID is the anchor of the inline marker for footnote n of article a.
func RefID(a, n int) string {
	return fmt.Sprintf("ref-%d-%d", a, n)
}

// AssembleArticle builds the article view for the given toggles.
func AssembleArticle(a *models.Article, t Toggles) View {
	v := View{
		Kind:  KindArticle,
		Title: fmt.Sprintf("Article %d — %s", a.Number, a.Title),
	}

	v.Blocks = append(v.Blocks, Block{
		Kind:    BlockHeader,
		Number:  a.Number,
		Heading: fmt.Sprintf("%d. %s", a.Number, Escape(a.Title)),
		Text:    fmt.Sprintf("Article %d", a.Number),
	})
	if a.Text != "" {
		v.Blocks = append(v.Blocks, Block{Kind: BlockText, Text: Escape(a.Text)})
	}

	if t.ShowScripture && len(a.Scripture) > 0 {
		v.Blocks = append(v.Blocks, Block{
			Kind:    BlockScripture,
			Heading: "Scripture",
			Text:    Escape(strings.Join(a.Scripture, "; ")),
		})
	}

	referenced := map[int]bool{}
	if t.ShowCommentary && a.Commentary != "" {
		segs := commentarySegments(a, referenced)
		v.Blocks = append(v.Blocks, Block{
			Kind:     BlockCommentary,
			Heading:  "Commentary",
			Segments: segs,
		})
	}

	if t.ShowNotes && a.Notes != "" {
		v.Blocks = append(v.Blocks, Block{
			Kind:    BlockNotes,
			Heading: "Historical note",
			Text:    Escape(a.Notes),
		})
	}

	if len(a.Footnotes) > 0 {
		fns := make([]Footnote, 0, len(a.Footnotes))
		for _, fn := range a.Footnotes {
			item := Footnote{
				ID:     FootnoteID(a.Number, fn.Number),
				Number: fn.Number,
				Text:   Escape(fn.Text),
			}
			if fn.URL != "" {
				item.URL = fn.URL
				if referenced[fn.Number] {
					item.BackRef = "#" + RefID(a.Number, fn.Number)
				}
			}
			fns = append(fns, item)
		}
		v.Blocks = append(v.Blocks, Block{Kind: BlockFootnotes, Heading: "Footnotes", Footnotes: fns})
	}

	if len(a.Scholarship) > 0 {
		links := make([]Link, 0, len(a.Scholarship))
		for _, s := range a.Scholarship {
			links = append(links, Link{Label: Escape(s.Label), Href: s.URL, Outward: true})
		}
		v.Blocks = append(v.Blocks, Block{Kind: BlockScholarship, Heading: "Further reading", Links: links})
	}

	v.Blocks = append(v.Blocks, backBlock())
	return v
}

// commentarySegments escapes the commentary and splits it at [n] markers.
// A marker becomes a footnote_ref only when the article has a footnote
// numbered n; other bracket text stays literal. Every converted marker is
// recorded in referenced.
func commentarySegments(a *models.Article, referenced map[int]bool) []Segment {
	known := make(map[string]int, len(a.Footnotes))
	for _, fn := range a.Footnotes {
		known[strconv.Itoa(fn.Number)] = fn.Number
	}

	text := Escape(a.Commentary)
	var segs []Segment
	pending := 0
	for _, m := range markerRe.FindAllStringSubmatchIndex(text, -1) {
		n, ok := known[text[m[2]:m[3]]]
		if !ok {
			continue
		}
		if m[0] > pending {
			segs = append(segs, Segment{Kind: SegmentText, Text: text[pending:m[0]]})
		}
		segs = append(segs, Segment{
			Kind:   SegmentFootnoteRef,
			Text:   text[m[0]:m[1]],
			Number: n,
			ID:     RefID(a.Number, n),
			Href:   "#" + FootnoteID(a.Number, n),
		})
		referenced[n] = true
		pending = m[1]
	}
	if pending < len(text) {
		segs = append(segs, Segment{Kind: SegmentText, Text: text[pending:]})
	}
	return segs
}

func backBlock() Block {
	return Block{Kind: BlockBack, Links: []Link{{Label: BackLabel, Href: "/"}}}
}
