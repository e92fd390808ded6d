// Package worldatlas defines the core domain types and the pure
// merge/mapping functions of Global Village. It has no external
// dependencies.
package worldatlas

// RawCountry is the untrusted shape returned by the REST Countries API
// (v3.1). Any field may be absent; nothing here is safe to render
// directly.
type RawCountry struct {
	Name struct {
		Common   string `json:"common"`
		Official string `json:"official"`
	} `json:"name"`
	Region    string `json:"region"`
	Subregion string `json:"subregion"`
	Flags     struct {
		PNG string `json:"png"`
		SVG string `json:"svg"`
	} `json:"flags"`
	Capital     []string            `json:"capital"`
	Population  int64               `json:"population"`
	Area        float64             `json:"area"`
	Languages   map[string]string   `json:"languages"`
	Currencies  map[string]Currency `json:"currencies"`
	Timezones   []string            `json:"timezones"`
	Independent *bool               `json:"independent"`
}

type Currency struct {
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// Card is the canonical, default-filled representation of one country.
// Every field is always populated; Region is always one of the fixed
// continent labels, never the raw API value.
type Card struct {
	Name       string              `json:"name"`
	Region     string              `json:"region"`
	APIRegion  string              `json:"apiRegion"`
	Subregion  string              `json:"subregion"`
	Capital    string              `json:"capital"`
	Population int64               `json:"population"`
	Area       float64             `json:"area"`
	Languages  map[string]string   `json:"languages"`
	Currencies map[string]Currency `json:"currencies"`
	Timezones  []string            `json:"timezones"`
	Flag       string              `json:"flag"`

	Foods      []string `json:"foods"`
	Holidays   []string `json:"holidays"`
	Music      []string `json:"music"`
	Clothes    []string `json:"clothes"`
	Traditions []string `json:"traditions"`
}

// Enrichment is the optional cultural overlay for one country, keyed
// externally by the country's common name. Fields that are present win
// over the card's defaults; absent fields leave the card untouched.
type Enrichment struct {
	Foods      []string `json:"foods"`
	Holidays   []string `json:"holidays"`
	Music      []string `json:"music"`
	Clothes    []string `json:"clothes"`
	Traditions []string `json:"traditions"`
}

// Apply shallow-merges e onto c, enrichment fields winning.
func (e Enrichment) Apply(c Card) Card {
	if e.Foods != nil {
		c.Foods = e.Foods
	}
	if e.Holidays != nil {
		c.Holidays = e.Holidays
	}
	if e.Music != nil {
		c.Music = e.Music
	}
	if e.Clothes != nil {
		c.Clothes = e.Clothes
	}
	if e.Traditions != nil {
		c.Traditions = e.Traditions
	}
	return c
}

// CultureItem is one illustrated entry (a food or a garment) in the
// curated continent dataset.
type CultureItem struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

// CultureCard is the canonical shape of the curated continent dataset.
type CultureCard struct {
	Name      string        `json:"name"`
	Continent string        `json:"continent"`
	Code      string        `json:"code"`
	Flag      string        `json:"flag"`
	Holidays  []string      `json:"holidays"`
	Foods     []CultureItem `json:"foods"`
	Clothes   []CultureItem `json:"clothes"`
}
