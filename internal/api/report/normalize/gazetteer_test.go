package normalize

import "testing"

func TestGazetteerLoaded(t *testing.T) {
	entries := Gazetteer()
	if len(entries) == 0 {
		t.Fatal("embedded gazetteer is empty")
	}
	if entries[0].Name != "Tuguegarao" {
		t.Errorf("first entry = %q, declaration order must be preserved", entries[0].Name)
	}
}

func TestLookupCenter(t *testing.T) {
	lat, lng, ok := LookupCenter("tuguegarao")
	if !ok {
		t.Fatal("LookupCenter(tuguegarao) not found")
	}
	if lat == 0 || lng == 0 {
		t.Errorf("LookupCenter returned zero center (%v, %v)", lat, lng)
	}
	if _, _, ok := LookupCenter("Atlantis"); ok {
		t.Error("LookupCenter(Atlantis) must not resolve")
	}
}

func TestInferMunicipality(t *testing.T) {
	if got := InferMunicipality("peñablanca", ""); got != "Peñablanca" {
		t.Errorf("direct value = %q, want title-cased Peñablanca", got)
	}
	if got := InferMunicipality("", "sitio kanluran, SOLANA, cagayan"); got != "Solana" {
		t.Errorf("inferred = %q, want Solana", got)
	}
	if got := InferMunicipality("", "no known town here"); got != UnspecifiedMunicipality {
		t.Errorf("inferred = %q, want %q", got, UnspecifiedMunicipality)
	}
	if got := InferMunicipality("", ""); got != UnspecifiedMunicipality {
		t.Errorf("empty input = %q, want %q", got, UnspecifiedMunicipality)
	}
}

func TestInferMunicipality_FirstGazetteerMatchWins(t *testing.T) {
	// Text containing two known names resolves to the earlier gazetteer
	// entry, not the earlier position in the text.
	got := InferMunicipality("", "between solana and tuguegarao")
	if got != "Tuguegarao" {
		t.Errorf("inferred = %q, want Tuguegarao (gazetteer order wins)", got)
	}
}
