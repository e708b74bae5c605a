package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starford/credenda/internal/models"
)

func TestAssembleDaily_FullService(t *testing.T) {
	s := &models.DailyService{
		Title:   "Morning Prayer",
		Opening: &models.Opening{Sentences: []string{"The Lord is in his holy temple.", "Rend your heart."}},
		Invitatory: &models.Invitatory{
			Call:      "O Lord, open thou our lips.",
			Response:  "And our mouth shall shew forth thy praise.",
			Canticles: []string{"Venite", "Jubilate"},
		},
		Psalms: &models.Psalms{Description: "The psalms appointed for the day."},
		Readings: []models.Reading{
			{Label: "First Lesson", Type: "Old Testament", LectionaryKey: "mp-ot"},
			{Label: "Second Lesson"},
		},
		Canticle: &models.Canticle{Default: "Te Deum"},
		Creed:    "I believe in God the Father Almighty",
		Prayers:  &models.Prayers{LordPrayer: true, Collects: []string{"Collect of the Day", "Collect for Peace"}},
	}

	v := AssembleDaily(s)
	assert.Equal(t, KindDaily, v.Kind)
	assert.Equal(t, "Morning Prayer — Daily Office", v.Title)
	assert.Equal(t, []BlockKind{
		BlockTitle, BlockOpening, BlockInvitatory, BlockPsalms, BlockReadings,
		BlockCanticle, BlockCreed, BlockPrayers,
	}, kinds(v))

	opening, _ := v.Block(BlockOpening)
	assert.Len(t, opening.Paragraphs, 2)

	inv, _ := v.Block(BlockInvitatory)
	require.Len(t, inv.Lines, 2)
	assert.Equal(t, "Venite, Jubilate", inv.Lines[1].Text)

	readings, _ := v.Block(BlockReadings)
	require.Len(t, readings.Lines, 2)
	assert.Equal(t, Line{Label: "First Lesson", Text: "Old Testament", Detail: "lectionary key: mp-ot"}, readings.Lines[0])
	assert.Equal(t, Line{Label: "Second Lesson", Text: "", Detail: "lectionary key: —"}, readings.Lines[1])

	prayers, _ := v.Block(BlockPrayers)
	assert.Equal(t, []string{"The Lord's Prayer"}, prayers.Paragraphs)
	assert.Equal(t, []string{"Collect of the Day", "Collect for Peace"}, prayers.List)
}

func TestAssembleDaily_OnlyPresentSections(t *testing.T) {
	v := AssembleDaily(&models.DailyService{
		Title:   "Compline",
		Psalms:  &models.Psalms{},
		Prayers: &models.Prayers{},
	})
	assert.Equal(t, []BlockKind{BlockTitle, BlockPsalms, BlockPrayers}, kinds(v))

	prayers, _ := v.Block(BlockPrayers)
	assert.Empty(t, prayers.Paragraphs)
	assert.Empty(t, prayers.List)
}

func TestAssembleDaily_EscapesText(t *testing.T) {
	v := AssembleDaily(&models.DailyService{Title: "A & B", Creed: "line one\nline two"})
	assert.Equal(t, "A &amp; B", v.Blocks[0].Heading)
	creed, _ := v.Block(BlockCreed)
	assert.Equal(t, "line one<br>line two", creed.Text)
}
