package models

// DailyService is a daily office liturgy. All sections are optional and a
// nil pointer means the section is absent.
type DailyService struct {
	Title      string      `json:"title"`
	Opening    *Opening    `json:"opening,omitempty"`
	Invitatory *Invitatory `json:"invitatory,omitempty"`
	Psalms     *Psalms     `json:"psalms,omitempty"`
	Readings   []Reading   `json:"readings,omitempty"`
	Canticle   *Canticle   `json:"canticle,omitempty"`
	Creed      string      `json:"creed,omitempty"`
	Prayers    *Prayers    `json:"prayers,omitempty"`
}

type Opening struct {
	Sentences []string `json:"sentences,omitempty"`
}

type Invitatory struct {
	Call      string   `json:"call"`
	Response  string   `json:"response"`
	Canticles []string `json:"canticles,omitempty"`
}

type Psalms struct {
	Description string `json:"description,omitempty"`
}

type Reading struct {
	Label         string `json:"label"`
	Type          string `json:"type,omitempty"`
	LectionaryKey string `json:"lectionaryKey,omitempty"`
}

type Canticle struct {
	Default string `json:"default,omitempty"`
}

type Prayers struct {
	LordPrayer bool     `json:"lordPrayer,omitempty"`
	Collects   []string `json:"collects,omitempty"`
}
