package normalize

import (
	_ "embed"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed gazetteer.yaml
var gazetteerYAML []byte

// GazetteerEntry is one known municipality with its approximate center.
type GazetteerEntry struct {
	Name      string  `yaml:"name"`
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
}

type gazetteerFile struct {
	Municipalities []GazetteerEntry `yaml:"municipalities"`
}

// gazetteer holds the embedded table in declaration order. Inference
// depends on that order, so it stays a slice, not a map.
var gazetteer []GazetteerEntry

func init() {
	var file gazetteerFile
	if err := yaml.Unmarshal(gazetteerYAML, &file); err != nil {
		panic("normalize: bad embedded gazetteer: " + err.Error())
	}
	gazetteer = file.Municipalities
}

// Gazetteer returns the known municipalities in declaration order.
func Gazetteer() []GazetteerEntry {
	out := make([]GazetteerEntry, len(gazetteer))
	copy(out, gazetteer)
	return out
}

// LookupCenter returns the approximate center of a known municipality.
// The lookup is case-insensitive.
func LookupCenter(name string) (lat float64, lng float64, ok bool) {
	needle := strings.ToLower(strings.TrimSpace(name))
	for _, entry := range gazetteer {
		if strings.ToLower(entry.Name) == needle {
			return entry.Latitude, entry.Longitude, true
		}
	}
	return 0, 0, false
}

// UnspecifiedMunicipality labels records whose location cannot be
// resolved to a known municipality.
const UnspecifiedMunicipality = "Unspecified"

// InferMunicipality resolves a record's municipality. A direct value wins
// and is title-cased as-is. Otherwise the concatenated free-text location
// fields are scanned for the first gazetteer name they contain.
func InferMunicipality(direct string, locationText string) string {
	if strings.TrimSpace(direct) != "" {
		return TitleCase(direct)
	}
	haystack := strings.ToLower(locationText)
	if strings.TrimSpace(haystack) == "" {
		return UnspecifiedMunicipality
	}
	for _, entry := range gazetteer {
		if strings.Contains(haystack, strings.ToLower(entry.Name)) {
			return entry.Name
		}
	}
	return UnspecifiedMunicipality
}
