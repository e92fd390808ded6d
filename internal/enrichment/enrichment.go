// Package enrichment loads the cultural overlay dataset: a JSON object
// keyed by country common name. Loading is best-effort at the call
// site: a missing or malformed file degrades to no enrichment, it
// never fails the page.
package enrichment

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/globalvillage/api/internal/worldatlas"
)

//go:embed cultural_data.json
var defaultData []byte

// Default returns the enrichment dataset shipped with the binary.
func Default() map[string]worldatlas.Enrichment {
	m, err := parse(defaultData)
	if err != nil {
		// The embedded file is validated by tests; an error here is a
		// build defect, not a runtime condition.
		panic(fmt.Sprintf("embedded cultural data: %v", err))
	}
	return m
}

// Load reads an enrichment file from path. Callers treat any error as
// EnrichmentUnavailable and continue with base records.
func Load(path string) (map[string]worldatlas.Enrichment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading enrichment file: %w", err)
	}
	m, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing enrichment file %s: %w", path, err)
	}
	return m, nil
}

func parse(data []byte) (map[string]worldatlas.Enrichment, error) {
	var m map[string]worldatlas.Enrichment
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	if m == nil {
		m = map[string]worldatlas.Enrichment{}
	}
	return m, nil
}
