package worldatlas

import "strings"

// PlaceholderFlag is rendered when the API record carries no flag URL.
const PlaceholderFlag = "https://placehold.co/640x360"

// placeholderText fills string fields that have no value; the card
// grids render it as-is.
const placeholderText = "—"

// CommonName extracts a clean country name, defaulting to Unknown.
func CommonName(raw RawCountry) string {
	name := strings.TrimSpace(raw.Name.Common)
	if name == "" {
		return Unknown
	}
	return name
}

// FlagURL prefers the raster flag, then the vector one, then the
// placeholder.
func FlagURL(raw RawCountry) string {
	if raw.Flags.PNG != "" {
		return raw.Flags.PNG
	}
	if raw.Flags.SVG != "" {
		return raw.Flags.SVG
	}
	return PlaceholderFlag
}

// Normalize converts one raw API record into a canonical Card. It is
// total: every field of the result is populated no matter what the
// input is missing, and it never fails.
func Normalize(raw RawCountry) Card {
	capital := placeholderText
	if len(raw.Capital) > 0 && raw.Capital[0] != "" {
		capital = raw.Capital[0]
	}

	population := raw.Population
	if population < 0 {
		population = 0
	}
	area := raw.Area
	if area < 0 {
		area = 0
	}

	languages := raw.Languages
	if languages == nil {
		languages = map[string]string{}
	}
	currencies := raw.Currencies
	if currencies == nil {
		currencies = map[string]Currency{}
	}
	timezones := raw.Timezones
	if timezones == nil {
		timezones = []string{}
	}

	return Card{
		Name:       CommonName(raw),
		Region:     MapRegion(raw.Region, raw.Subregion),
		APIRegion:  raw.Region,
		Subregion:  raw.Subregion,
		Capital:    capital,
		Population: population,
		Area:       area,
		Languages:  languages,
		Currencies: currencies,
		Timezones:  timezones,
		Flag:       FlagURL(raw),

		// Generic placeholders so cards are never empty; the
		// enrichment overlay replaces these per country.
		Foods:      []string{"Traditional cuisine"},
		Holidays:   []string{"National Day"},
		Music:      []string{"Folk music"},
		Clothes:    []string{"Traditional dress"},
		Traditions: []string{"Cultural festivals"},
	}
}
