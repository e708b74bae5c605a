package view

import (
	"strings"

	"github.com/starford/credenda/internal/models"
)

// MissingLectionaryKey stands in for a reading without a lectionary key.
const MissingLectionaryKey = "—"

// AssembleDaily builds the daily office view. Every present section is
// shown; toggles do not apply to services.
func AssembleDaily(s *models.DailyService) View {
	v := View{
		Kind:   KindDaily,
		Title:  s.Title + " — Daily Office",
		Blocks: []Block{{Kind: BlockTitle, Heading: Escape(s.Title)}},
	}

	if s.Opening != nil && len(s.Opening.Sentences) > 0 {
		v.Blocks = append(v.Blocks, Block{Kind: BlockOpening, Paragraphs: escapeAll(s.Opening.Sentences)})
	}

	if inv := s.Invitatory; inv != nil {
		b := Block{
			Kind:    BlockInvitatory,
			Heading: "Invitatory",
			Lines:   []Line{{Label: Escape(inv.Call), Text: Escape(inv.Response)}},
		}
		if len(inv.Canticles) > 0 {
			b.Lines = append(b.Lines, Line{Label: "Canticles", Text: Escape(strings.Join(inv.Canticles, ", "))})
		}
		v.Blocks = append(v.Blocks, b)
	}

	if s.Psalms != nil {
		v.Blocks = append(v.Blocks, Block{Kind: BlockPsalms, Heading: "Psalms", Text: Escape(s.Psalms.Description)})
	}

	if len(s.Readings) > 0 {
		lines := make([]Line, 0, len(s.Readings))
		for _, r := range s.Readings {
			key := r.LectionaryKey
			if key == "" {
				key = MissingLectionaryKey
			}
			lines = append(lines, Line{
				Label:  Escape(r.Label),
				Text:   Escape(r.Type),
				Detail: "lectionary key: " + Escape(key),
			})
		}
		v.Blocks = append(v.Blocks, Block{Kind: BlockReadings, Heading: "Readings", Lines: lines})
	}

	if s.Canticle != nil {
		v.Blocks = append(v.Blocks, Block{Kind: BlockCanticle, Heading: "Canticle", Text: Escape(s.Canticle.Default)})
	}

	if s.Creed != "" {
		v.Blocks = append(v.Blocks, Block{Kind: BlockCreed, Heading: "Creed", Text: Escape(s.Creed)})
	}

	if p := s.Prayers; p != nil {
		b := Block{Kind: BlockPrayers, Heading: "Prayers"}
		if p.LordPrayer {
			b.Paragraphs = []string{"The Lord's Prayer"}
		}
		if len(p.Collects) > 0 {
			b.List = escapeAll(p.Collects)
		}
		v.Blocks = append(v.Blocks, b)
	}

	return v
}

func escapeAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = Escape(s)
	}
	return out
}
