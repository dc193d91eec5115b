package reportsvc

import (
	"context"
	"testing"
	"time"

	"treesure/internal/api/report/dto"
	"treesure/internal/api/report/models"

	"github.com/stretchr/testify/assert"
)

// dashboardFixture seeds the cache so the summary path never reaches
// the database.
func dashboardFixture(t *testing.T) *ReportService {
	t.Helper()
	svc := newCacheOnlyService(t)
	svc.recencySize = 5

	tag := func(day int) *time.Time {
		d := time.Date(2024, 3, day, 10, 0, 0, 0, time.Local)
		return &d
	}
	svc.storeCached("sess1", &models.Snapshot{
		Trees: []models.TreeRecord{
			{ID: "t1", Species: "Narra", Municipality: "Solana", ForesterName: "Cruz", DateTagged: tag(1)},
			{ID: "t2", Species: "Narra", Municipality: "Solana", ForesterName: "Cruz", DateTagged: tag(1)},
			{ID: "t3", Species: "Acacia", Municipality: "Piat", ForesterName: "Domingo", DateTagged: tag(2)},
			{ID: "t4", Species: "Unknown", Municipality: "Unspecified", ForesterName: "Unknown Forester"},
		},
		Applications: []models.ApplicationRecord{
			{ID: "a1", ApplicantName: "Reyes", Type: "PLTP", Status: "Pending", CreatedAt: time.Date(2024, 3, 5, 0, 0, 0, 0, time.Local)},
			{ID: "a2", ApplicantName: "Santos", Type: "CTPO", Status: "Approved", CreatedAt: time.Date(2024, 2, 10, 0, 0, 0, 0, time.Local)},
		},
		Appointments: []models.AppointmentRecord{
			{ID: "ap1", ForesterName: "Cruz", Status: "Scheduled"},
		},
		FetchedAt: time.Date(2024, 3, 10, 8, 0, 0, 0, time.Local),
	})
	return svc
}

func TestBuildSummary_FromCachedSnapshot(t *testing.T) {
	svc := dashboardFixture(t)
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.Local)

	summary := svc.buildSummary(context.Background(), "sess1", dto.FilterQueryParams{}, now)

	assert.Equal(t, 4, summary.TotalTrees)
	assert.Equal(t, 2, summary.TotalApplications)
	assert.Equal(t, 1, summary.TotalAppointments)

	// Bucket totals preserve the record count across every dimension
	var speciesTotal int64
	for _, entry := range summary.SpeciesCounts {
		speciesTotal += entry.Count
	}
	assert.Equal(t, int64(4), speciesTotal)

	assert.Len(t, summary.TopSpecies, 1)
	assert.Equal(t, "Narra", summary.TopSpecies[0].Key)

	assert.Equal(t, int64(1), summary.ApplicationsMoM.ThisMonth)
	assert.Equal(t, int64(1), summary.ApplicationsMoM.LastMonth)
	assert.Equal(t, "0.0", summary.ApplicationsMoM.Delta)

	// Undated t4 is out of the trend but in every count
	assert.Len(t, summary.TaggingTrend, 2)
	assert.Equal(t, "2024-03-01", summary.TaggingTrend[0].Date)
	assert.Equal(t, int64(2), summary.TaggingTrend[0].Count)
}

func TestBuildSummary_FilterNarrowsAllAggregates(t *testing.T) {
	svc := dashboardFixture(t)
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.Local)

	summary := svc.buildSummary(context.Background(), "sess1", dto.FilterQueryParams{Forester: "Cruz"}, now)

	assert.Equal(t, 2, summary.TotalTrees)
	assert.Len(t, summary.SpeciesCounts, 1)
	assert.Equal(t, "Narra", summary.SpeciesCounts[0].Key)
	assert.Equal(t, 1, summary.TotalAppointments)
}

func TestBuildSummary_TrendWindowCutsOldRecords(t *testing.T) {
	svc := dashboardFixture(t)
	svc.trendWindowDays = 7
	now := time.Date(2024, 3, 8, 9, 0, 0, 0, time.Local)

	summary := svc.buildSummary(context.Background(), "sess1", dto.FilterQueryParams{}, now)

	// A 7-day window reaches back to March 1 09:00, so both tagged days
	// survive.
	assert.Len(t, summary.TaggingTrend, 2)

	svc.trendWindowDays = 6
	summary = svc.buildSummary(context.Background(), "sess1", dto.FilterQueryParams{}, now)
	assert.Len(t, summary.TaggingTrend, 1)
	assert.Equal(t, "2024-03-02", summary.TaggingTrend[0].Date)
}

func TestGetTrees_UsesCachedSnapshotAndFilters(t *testing.T) {
	svc := dashboardFixture(t)

	resp := svc.GetTrees(context.Background(), "sess1", dto.FilterQueryParams{Species: "Acacia"})
	assert.Equal(t, 1, resp.Total)
	assert.Equal(t, "t3", resp.Records[0].ID)
	assert.False(t, resp.FetchedAt.IsZero())

	// Distributions reflect the filtered view, not the whole snapshot
	assert.Len(t, resp.Buckets["species"], 1)
	assert.Equal(t, "Acacia", resp.Buckets["species"][0].Key)
	assert.Equal(t, int64(1), resp.Buckets["municipality"][0].Count)
}
