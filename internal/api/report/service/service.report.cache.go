package reportsvc

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"treesure/internal/api/report/models"
	"treesure/internal/logger"
)

// Dataset cache keys. Each dataset is stored under its own key so a
// consumer can rehydrate one without touching the others.
const (
	datasetTrees        = "trees"
	datasetApplications = "applications"
	datasetAppointments = "appointments"
	datasetMeta         = "meta"
)

// snapshotMeta is the cached bookkeeping of one snapshot.
type snapshotMeta struct {
	FetchedAt string   `json:"fetchedAt"`
	Degraded  []string `json:"degraded,omitempty"`
}

func cacheKey(sessionID, dataset string) string {
	return fmt.Sprintf("%s:%s", sessionID, dataset)
}

// GetSnapshot returns the session's snapshot, from cache when present.
// forceRefresh bypasses the cache and repopulates it. A cache entry that
// fails to deserialize counts as a miss, never as an error.
func (s *ReportService) GetSnapshot(ctx context.Context, sessionID string, forceRefresh bool) *models.Snapshot {
	if !forceRefresh {
		if snapshot, ok := s.loadCached(sessionID); ok {
			return snapshot
		}
	}

	snapshot := s.fetchSnapshot(ctx)
	s.storeCached(sessionID, snapshot)
	return snapshot
}

// Invalidate drops every cached dataset of one session.
func (s *ReportService) Invalidate(sessionID string) int {
	return s.cache.DeletePrefix(sessionID + ":")
}

// InvalidateDataset drops one cached dataset of a session. The meta key
// goes with it so the next load counts as a miss and refetches. An
// unknown dataset name removes nothing.
func (s *ReportService) InvalidateDataset(sessionID, dataset string) int {
	switch dataset {
	case datasetTrees, datasetApplications, datasetAppointments:
	default:
		return 0
	}
	removed := 0
	if s.cache.Delete(cacheKey(sessionID, dataset)) {
		removed++
	}
	if s.cache.Delete(cacheKey(sessionID, datasetMeta)) {
		removed++
	}
	return removed
}

// loadCached rehydrates a full snapshot from the per-dataset JSON blobs.
// All four keys must be present, a partial cache is treated as a miss.
func (s *ReportService) loadCached(sessionID string) (*models.Snapshot, bool) {
	snapshot := &models.Snapshot{}

	var meta snapshotMeta
	if !s.loadDataset(sessionID, datasetMeta, &meta) {
		return nil, false
	}
	if !s.loadDataset(sessionID, datasetTrees, &snapshot.Trees) {
		return nil, false
	}
	if !s.loadDataset(sessionID, datasetApplications, &snapshot.Applications) {
		return nil, false
	}
	if !s.loadDataset(sessionID, datasetAppointments, &snapshot.Appointments) {
		return nil, false
	}

	// Serialized dates come back as RFC 3339 strings and must round-trip
	// into real time values. encoding/json handles the time fields of the
	// record structs, the meta timestamp is parsed here.
	fetchedAt, err := time.Parse(time.RFC3339Nano, meta.FetchedAt)
	if err != nil {
		return nil, false
	}
	snapshot.FetchedAt = fetchedAt
	snapshot.Degraded = meta.Degraded
	return snapshot, true
}

func (s *ReportService) storeCached(sessionID string, snapshot *models.Snapshot) {
	s.storeDataset(sessionID, datasetTrees, snapshot.Trees)
	s.storeDataset(sessionID, datasetApplications, snapshot.Applications)
	s.storeDataset(sessionID, datasetAppointments, snapshot.Appointments)
	s.storeDataset(sessionID, datasetMeta, snapshotMeta{
		FetchedAt: snapshot.FetchedAt.Format(time.RFC3339Nano),
		Degraded:  snapshot.Degraded,
	})
}

// loadDataset unmarshals one cached blob into dest. Deserialization
// failures log and count as a miss so the caller refetches.
func (s *ReportService) loadDataset(sessionID, dataset string, dest interface{}) bool {
	raw, ok := s.cache.Get(cacheKey(sessionID, dataset))
	if !ok {
		return false
	}
	blob, ok := raw.([]byte)
	if !ok {
		return false
	}
	if err := json.Unmarshal(blob, dest); err != nil {
		logger.WithModuleAndDataset("report", dataset).
			WithError(err).Warn("Cached dataset failed to deserialize, refetching")
		return false
	}
	return true
}

func (s *ReportService) storeDataset(sessionID, dataset string, value interface{}) {
	blob, err := json.Marshal(value)
	if err != nil {
		logger.WithModuleAndDataset("report", dataset).
			WithError(err).Error("Dataset failed to serialize, not cached")
		return
	}
	s.cache.Set(cacheKey(sessionID, dataset), blob)
}
