package aggregate

import (
	"testing"
	"time"

	"treesure/internal/api/report/models"
)

func floatPtr(f float64) *float64 { return &f }

func sampleTrees() []models.TreeRecord {
	march1 := time.Date(2024, 3, 1, 10, 0, 0, 0, time.Local)
	march20 := time.Date(2024, 3, 20, 10, 0, 0, 0, time.Local)
	return []models.TreeRecord{
		{
			ID: "t1", Species: "Narra", ForesterName: "Cruz", OwnerName: "Reyes",
			Municipality: "Tuguegarao",
			Latitude:     floatPtr(17.6132), Longitude: floatPtr(121.7270),
			DateTagged: &march1,
		},
		{
			ID: "t2", Species: "Acacia", ForesterName: "Domingo", OwnerName: "Santos",
			Municipality: "Aparri",
			Latitude:     floatPtr(18.3567), Longitude: floatPtr(121.6369),
			DateTagged: &march20,
		},
		{
			ID: "t3", Species: "Narra", ForesterName: "Cruz", OwnerName: "Lim",
			Municipality: "Solana",
			DateTagged:   nil, // unmapped, undated
		},
	}
}

func idsOf(trees []models.TreeRecord) map[string]bool {
	ids := make(map[string]bool, len(trees))
	for _, tree := range trees {
		ids[tree.ID] = true
	}
	return ids
}

func TestFilterTrees_Unconstrained(t *testing.T) {
	trees := sampleTrees()
	for _, spec := range []FilterSpec{{}, {Forester: "all", Species: "ALL"}} {
		got := FilterTrees(trees, spec)
		if len(got) != len(trees) {
			t.Fatalf("unconstrained filter dropped records: %d of %d", len(got), len(trees))
		}
		ids := idsOf(got)
		for _, tree := range trees {
			if !ids[tree.ID] {
				t.Errorf("record %s missing from unconstrained result", tree.ID)
			}
		}
	}
}

func TestFilterTrees_Conjunctive(t *testing.T) {
	got := FilterTrees(sampleTrees(), FilterSpec{Forester: "Cruz", Species: "Narra"})
	if len(got) != 2 {
		t.Fatalf("got %d records, want 2", len(got))
	}
	got = FilterTrees(sampleTrees(), FilterSpec{Forester: "Cruz", Species: "Acacia"})
	if len(got) != 0 {
		t.Errorf("conflicting criteria must intersect to empty, got %d", len(got))
	}
}

func TestFilterTrees_Idempotent(t *testing.T) {
	spec := FilterSpec{Forester: "Cruz", Keyword: "narra"}
	once := FilterTrees(sampleTrees(), spec)
	twice := FilterTrees(once, spec)
	if len(once) != len(twice) {
		t.Fatalf("refiltering shrank the result: %d then %d", len(once), len(twice))
	}
	onceIDs, twiceIDs := idsOf(once), idsOf(twice)
	for id := range onceIDs {
		if !twiceIDs[id] {
			t.Errorf("record %s lost on second pass", id)
		}
	}
}

func TestFilterTrees_DateRangeEndOfDay(t *testing.T) {
	// End date is inclusive through 23:59:59 of that day.
	end := time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local)
	got := FilterTrees(sampleTrees(), FilterSpec{EndDate: &end})
	if len(got) != 1 || got[0].ID != "t1" {
		t.Fatalf("end-date filter = %v, want only t1 (tagged 10:00 on the end day)", idsOf(got))
	}

	start := time.Date(2024, 3, 10, 0, 0, 0, 0, time.Local)
	got = FilterTrees(sampleTrees(), FilterSpec{StartDate: &start})
	if len(got) != 1 || got[0].ID != "t2" {
		t.Fatalf("start-date filter = %v, want only t2 (undated t3 excluded)", idsOf(got))
	}
}

func TestFilterTrees_Keyword(t *testing.T) {
	got := FilterTrees(sampleTrees(), FilterSpec{Keyword: "TUGUEGARAO"})
	if len(got) != 1 || got[0].ID != "t1" {
		t.Errorf("keyword filter = %v, want only t1", idsOf(got))
	}
}

func TestFilterTrees_RadiusExcludesNilCoordinates(t *testing.T) {
	got := FilterTrees(sampleTrees(), FilterSpec{NearLocation: "Tuguegarao"})
	ids := idsOf(got)
	if ids["t3"] {
		t.Error("record without coordinates must be excluded under an active radius filter")
	}
	if !ids["t1"] {
		t.Error("record at the gazetteer center must be inside the radius")
	}
	if ids["t2"] {
		t.Error("Aparri is well outside 10 km of Tuguegarao")
	}
}

func TestFilterTrees_RadiusUnknownLocation(t *testing.T) {
	got := FilterTrees(sampleTrees(), FilterSpec{NearLocation: "Atlantis"})
	if len(got) != 0 {
		t.Errorf("unknown gazetteer location must match nothing, got %d", len(got))
	}
}

func TestFilterTrees_InputNotMutated(t *testing.T) {
	trees := sampleTrees()
	FilterTrees(trees, FilterSpec{Forester: "Cruz"})
	if len(trees) != 3 {
		t.Fatalf("input length changed to %d", len(trees))
	}
	if trees[1].ForesterName != "Domingo" {
		t.Error("input record mutated")
	}
}

func TestFilterApplications(t *testing.T) {
	records := []models.ApplicationRecord{
		{ID: "a1", ApplicantName: "Reyes", Type: "PLTP", Status: "Pending", CreatedAt: time.Date(2024, 3, 5, 0, 0, 0, 0, time.Local)},
		{ID: "a2", ApplicantName: "Santos", Type: "CTPO", Status: "Approved", CreatedAt: time.Date(2024, 2, 5, 0, 0, 0, 0, time.Local)},
	}
	got := FilterApplications(records, FilterSpec{Type: "PLTP"})
	if len(got) != 1 || got[0].ID != "a1" {
		t.Errorf("type filter returned %d records", len(got))
	}
	got = FilterApplications(records, FilterSpec{Keyword: "approved"})
	if len(got) != 1 || got[0].ID != "a2" {
		t.Errorf("keyword filter returned %d records", len(got))
	}
}

func TestFilterAppointments(t *testing.T) {
	scheduled := time.Date(2024, 3, 5, 9, 0, 0, 0, time.Local)
	records := []models.AppointmentRecord{
		{ID: "ap1", ForesterName: "Cruz", ApplicantName: "Reyes", Type: "Permit to Cut", ScheduledAt: &scheduled},
		{ID: "ap2", ForesterName: "Domingo", ApplicantName: "Santos", Type: "Chainsaw", ScheduledAt: nil},
	}
	got := FilterAppointments(records, FilterSpec{Forester: "Cruz"})
	if len(got) != 1 || got[0].ID != "ap1" {
		t.Errorf("forester filter returned %d records", len(got))
	}

	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local)
	got = FilterAppointments(records, FilterSpec{StartDate: &start})
	if len(got) != 1 || got[0].ID != "ap1" {
		t.Errorf("date filter must drop the unscheduled appointment, got %d", len(got))
	}
}
