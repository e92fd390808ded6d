package worldatlas

// excluded lists countries hidden from every result set (content
// policy). Fixed configuration; not editable at runtime.
var excluded = map[string]struct{}{
	"Israel": {},
}

// IsExcluded reports whether the given common name is on the exclusion
// list. Matching is exact.
func IsExcluded(name string) bool {
	_, ok := excluded[name]
	return ok
}

// Exclude drops excluded countries from raw. Applied before
// normalization and before enrichment in every pipeline that fetches
// remote data.
func Exclude(raw []RawCountry) []RawCountry {
	out := make([]RawCountry, 0, len(raw))
	for _, c := range raw {
		if IsExcluded(c.Name.Common) {
			continue
		}
		out = append(out, c)
	}
	return out
}
