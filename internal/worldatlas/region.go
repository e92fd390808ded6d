package worldatlas

import "strings"

// Fixed continent vocabulary. Every Card.Region holds one of these.
const (
	Asia         = "Asia"
	Europe       = "Europe"
	Africa       = "Africa"
	NorthAmerica = "North America"
	SouthAmerica = "South America"
	Oceania      = "Oceania"
	Unknown      = "Unknown"
)

// Continents returns the navigable continent labels, in display order.
// Unknown is a fallback bucket, not a destination.
func Continents() []string {
	return []string{Asia, Europe, Africa, NorthAmerica, SouthAmerica, Oceania}
}

// MapRegion folds the API's region/subregion taxonomy into the fixed
// continent vocabulary. "Americas" splits on subregion: anything South
// goes to South America, everything else (North, Central, Caribbean,
// unknown) to North America. Antarctic folds into Oceania so the bucket
// is never empty. Unrecognized regions pass through verbatim; an empty
// region becomes Unknown rather than an error.
func MapRegion(region, subregion string) string {
	if region == "Americas" {
		if strings.Contains(subregion, "South") {
			return SouthAmerica
		}
		return NorthAmerica
	}
	if region == "Antarctic" {
		return Oceania
	}
	if region == "" {
		return Unknown
	}
	return region
}
