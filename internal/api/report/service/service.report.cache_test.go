package reportsvc

import (
	"testing"
	"time"

	"treesure/internal/api/report/models"
	"treesure/internal/utility"

	"github.com/stretchr/testify/assert"
)

func newCacheOnlyService(t *testing.T) *ReportService {
	t.Helper()
	cache := utility.NewCache(time.Minute, time.Minute)
	t.Cleanup(cache.Stop)
	return &ReportService{cache: cache}
}

func sampleSnapshot() *models.Snapshot {
	tagged := time.Date(2024, 3, 1, 10, 30, 0, 0, time.Local)
	return &models.Snapshot{
		Trees: []models.TreeRecord{
			{ID: "t1", Species: "Narra", Municipality: "Solana", DateTagged: &tagged},
			{ID: "t2", Species: "Acacia", Municipality: "Unspecified"},
		},
		Applications: []models.ApplicationRecord{
			{ID: "a1", ApplicantName: "Reyes", Type: "PLTP", Status: "Pending",
				CreatedAt: time.Date(2024, 3, 5, 9, 0, 0, 0, time.Local)},
		},
		Appointments: []models.AppointmentRecord{
			{ID: "ap1", ForesterName: "Cruz", Status: "Scheduled"},
		},
		FetchedAt: time.Date(2024, 3, 10, 8, 0, 0, 0, time.Local),
		Degraded:  []string{"uploads"},
	}
}

func TestSnapshotCache_RoundTripRehydratesDates(t *testing.T) {
	svc := newCacheOnlyService(t)
	original := sampleSnapshot()

	svc.storeCached("sess1", original)
	loaded, ok := svc.loadCached("sess1")
	assert.True(t, ok, "stored snapshot must load back")

	assert.Len(t, loaded.Trees, 2)
	assert.NotNil(t, loaded.Trees[0].DateTagged)
	assert.True(t, loaded.Trees[0].DateTagged.Equal(*original.Trees[0].DateTagged),
		"serialized tag date must rehydrate to the same instant")
	assert.Nil(t, loaded.Trees[1].DateTagged)
	assert.True(t, loaded.Applications[0].CreatedAt.Equal(original.Applications[0].CreatedAt))
	assert.True(t, loaded.FetchedAt.Equal(original.FetchedAt))
	assert.Equal(t, []string{"uploads"}, loaded.Degraded)
}

func TestSnapshotCache_MissWhenAbsent(t *testing.T) {
	svc := newCacheOnlyService(t)
	_, ok := svc.loadCached("sess1")
	assert.False(t, ok)
}

func TestSnapshotCache_PartialEntryIsAMiss(t *testing.T) {
	svc := newCacheOnlyService(t)
	svc.storeCached("sess1", sampleSnapshot())
	svc.cache.Delete(cacheKey("sess1", datasetApplications))

	_, ok := svc.loadCached("sess1")
	assert.False(t, ok, "a partially evicted snapshot must count as a miss")
}

func TestSnapshotCache_CorruptBlobIsAMiss(t *testing.T) {
	svc := newCacheOnlyService(t)
	svc.storeCached("sess1", sampleSnapshot())
	svc.cache.Set(cacheKey("sess1", datasetTrees), []byte("{not json"))

	_, ok := svc.loadCached("sess1")
	assert.False(t, ok, "an unreadable blob must degrade to a refetch, not an error")
}

func TestSnapshotCache_InvalidateScopedToSession(t *testing.T) {
	svc := newCacheOnlyService(t)
	svc.storeCached("sess1", sampleSnapshot())
	svc.storeCached("sess2", sampleSnapshot())

	removed := svc.Invalidate("sess1")
	assert.Equal(t, 4, removed, "all four dataset keys of the session must go")

	_, ok := svc.loadCached("sess1")
	assert.False(t, ok)
	_, ok = svc.loadCached("sess2")
	assert.True(t, ok, "other sessions keep their snapshots")
}

func TestSnapshotCache_InvalidateDataset(t *testing.T) {
	svc := newCacheOnlyService(t)
	svc.storeCached("sess1", sampleSnapshot())

	removed := svc.InvalidateDataset("sess1", datasetTrees)
	assert.Equal(t, 2, removed, "the dataset and the meta key must go")

	_, ok := svc.cache.Get(cacheKey("sess1", datasetApplications))
	assert.True(t, ok, "other datasets stay cached")
	_, ok = svc.loadCached("sess1")
	assert.False(t, ok, "a snapshot missing one dataset counts as a miss")

	assert.Equal(t, 0, svc.InvalidateDataset("sess1", "bogus"),
		"unknown dataset names remove nothing")
}
