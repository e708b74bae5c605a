package parser

import (
	"testing"
)

func TestParseIndex(t *testing.T) {
	entries, err := ParseIndex([]byte(`[{"number":1,"title":"Of Faith in the Holy Trinity"},{"number":2,"title":"Of the Word"}]`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 || entries[0].Number != 1 || entries[1].Title != "Of the Word" {
		t.Errorf("entries = %+v", entries)
	}
}

func TestParseIndex_Duplicate(t *testing.T) {
	_, err := ParseIndex([]byte(`[{"number":1,"title":"a"},{"number":1,"title":"b"}]`))
	if err == nil {
		t.Fatal("expected duplicate number error")
	}
}

func TestParseIndex_NonPositive(t *testing.T) {
	if _, err := ParseIndex([]byte(`[{"number":0,"title":"a"}]`)); err == nil {
		t.Fatal("expected error for number 0")
	}
}

func TestParseArticle_OptionalFieldsAbsent(t *testing.T) {
	a, err := ParseArticle([]byte(`{"number":6,"title":"Of the Sufficiency","text":"Holy Scripture containeth..."}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Scripture != nil || a.Footnotes != nil || a.Commentary != "" {
		t.Errorf("optional fields should be zero: %+v", a)
	}
}

func TestParseArticle_Footnotes(t *testing.T) {
	a, err := ParseArticle([]byte(`{"number":11,"title":"Of Justification","text":"t",
		"footnotes":[{"number":3,"text":"Homily","url":"https://example.org"},{"number":1,"text":"plain"}]}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(a.Footnotes) != 2 || a.Footnotes[0].Number != 3 || a.Footnotes[1].URL != "" {
		t.Errorf("footnotes = %+v", a.Footnotes)
	}
}

func TestParseArticle_Invalid(t *testing.T) {
	cases := map[string]string{
		"malformed":     `{"number":`,
		"missing title": `{"number":3}`,
		"zero number":   `{"number":0,"title":"x"}`,
		"wrong type":    `{"number":"three","title":"x"}`,
	}
	for name, body := range cases {
		if _, err := ParseArticle([]byte(body)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestParseService(t *testing.T) {
	s, err := ParseService([]byte(`{"title":"Morning Prayer","creed":"I believe","prayers":{"lordPrayer":true}}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Title != "Morning Prayer" || s.Prayers == nil || !s.Prayers.LordPrayer {
		t.Errorf("service = %+v", s)
	}
	if s.Opening != nil || s.Invitatory != nil {
		t.Error("absent sections should be nil")
	}
}

func TestParseService_MissingTitle(t *testing.T) {
	if _, err := ParseService([]byte(`{"creed":"x"}`)); err == nil {
		t.Fatal("expected error for missing title")
	}
}
