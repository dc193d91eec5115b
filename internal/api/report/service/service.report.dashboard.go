package reportsvc

import (
	"context"
	"time"

	"treesure/internal/api/report/aggregate"
	"treesure/internal/api/report/dto"
	"treesure/internal/api/report/models"
	"treesure/internal/api/report/normalize"
)

// GetSummary computes the dashboard aggregates over the session's
// snapshot with the given filters applied. Aggregates are rebuilt from
// scratch on every call, nothing is patched in place.
func (s *ReportService) GetSummary(ctx context.Context, sessionID string, params dto.FilterQueryParams) *dto.DashboardSummary {
	return s.buildSummary(ctx, sessionID, params, time.Now())
}

// buildSummary is GetSummary with an injectable clock. Month-over-month
// windows are calendar months anchored on now.
func (s *ReportService) buildSummary(ctx context.Context, sessionID string, params dto.FilterQueryParams, now time.Time) *dto.DashboardSummary {
	snapshot := s.GetSnapshot(ctx, sessionID, params.Refresh)
	spec := params.ToFilterSpec()

	trees := aggregate.FilterTrees(snapshot.Trees, spec)
	applications := aggregate.FilterApplications(snapshot.Applications, spec)
	appointments := aggregate.FilterAppointments(snapshot.Appointments, spec)

	speciesCounts := aggregate.GroupCount(trees, func(r models.TreeRecord) string { return r.Species })
	statusCounts := aggregate.GroupCount(applications, func(r models.ApplicationRecord) string { return r.Status })
	typeCounts := aggregate.GroupCount(applications, func(r models.ApplicationRecord) string { return r.Type })
	municipalityCounts := aggregate.GroupCount(trees, func(r models.TreeRecord) string { return r.Municipality })
	foresterCounts := aggregate.GroupCount(trees, func(r models.TreeRecord) string { return r.ForesterName })

	mom := aggregate.MonthOverMonth(applications, func(r models.ApplicationRecord) *time.Time {
		created := r.CreatedAt
		return &created
	}, now)

	// Trend charts show a bounded window of day buckets
	trendRecords := trees
	if s.trendWindowDays > 0 {
		cutoff := now.AddDate(0, 0, -s.trendWindowDays)
		trendRecords = make([]models.TreeRecord, 0, len(trees))
		for _, tree := range trees {
			if tree.DateTagged != nil && !tree.DateTagged.Before(cutoff) {
				trendRecords = append(trendRecords, tree)
			}
		}
	}
	trend := aggregate.Trend(trendRecords, func(r models.TreeRecord) *time.Time { return r.DateTagged })

	return &dto.DashboardSummary{
		TotalTrees:         len(trees),
		TotalApplications:  len(applications),
		TotalAppointments:  len(appointments),
		ApplicationsMoM:    mom,
		TopSpecies:         aggregate.TopN(speciesCounts, 1),
		SpeciesCounts:      speciesCounts.Entries(),
		StatusCounts:       statusCounts.Entries(),
		TypeCounts:         typeCounts.Entries(),
		MunicipalityCounts: municipalityCounts.Entries(),
		ForesterCounts:     foresterCounts.Entries(),
		TaggingTrend:       trend,
		RecentActivity:     aggregate.RecencyFeed(applications, trees, s.recencySize, now),
		FetchedAt:          snapshot.FetchedAt,
		Degraded:           snapshot.Degraded,
	}
}

// GetTrees returns the filtered tree inventory for the session, with
// per-dimension distributions of the filtered view.
func (s *ReportService) GetTrees(ctx context.Context, sessionID string, params dto.FilterQueryParams) *dto.TreeListResponse {
	snapshot := s.GetSnapshot(ctx, sessionID, params.Refresh)
	records := aggregate.FilterTrees(snapshot.Trees, params.ToFilterSpec())
	return &dto.TreeListResponse{
		Records: records,
		Total:   len(records),
		Buckets: map[string][]aggregate.Entry{
			"species":      aggregate.GroupCount(records, func(r models.TreeRecord) string { return r.Species }).Entries(),
			"municipality": aggregate.GroupCount(records, func(r models.TreeRecord) string { return r.Municipality }).Entries(),
			"forester":     aggregate.GroupCount(records, func(r models.TreeRecord) string { return r.ForesterName }).Entries(),
		},
		FetchedAt: snapshot.FetchedAt,
		Degraded:  snapshot.Degraded,
	}
}

// GetApplications returns the filtered applications for the session.
func (s *ReportService) GetApplications(ctx context.Context, sessionID string, params dto.FilterQueryParams) *dto.ApplicationListResponse {
	snapshot := s.GetSnapshot(ctx, sessionID, params.Refresh)
	records := aggregate.FilterApplications(snapshot.Applications, params.ToFilterSpec())
	return &dto.ApplicationListResponse{
		Records: records,
		Total:   len(records),
		Buckets: map[string][]aggregate.Entry{
			"status": aggregate.GroupCount(records, func(r models.ApplicationRecord) string { return r.Status }).Entries(),
			"type":   aggregate.GroupCount(records, func(r models.ApplicationRecord) string { return r.Type }).Entries(),
		},
		FetchedAt: snapshot.FetchedAt,
		Degraded:  snapshot.Degraded,
	}
}

// GetAppointments returns the filtered appointments for the session.
func (s *ReportService) GetAppointments(ctx context.Context, sessionID string, params dto.FilterQueryParams) *dto.AppointmentListResponse {
	snapshot := s.GetSnapshot(ctx, sessionID, params.Refresh)
	records := aggregate.FilterAppointments(snapshot.Appointments, params.ToFilterSpec())
	return &dto.AppointmentListResponse{
		Records: records,
		Total:   len(records),
		Buckets: map[string][]aggregate.Entry{
			"forester": aggregate.GroupCount(records, func(r models.AppointmentRecord) string { return r.ForesterName }).Entries(),
			"status":   aggregate.GroupCount(records, func(r models.AppointmentRecord) string { return r.Status }).Entries(),
		},
		FetchedAt: snapshot.FetchedAt,
		Degraded:  snapshot.Degraded,
	}
}

// GetFilterOptions lists the distinct values of the filterable
// dimensions so the dashboard can build its dropdowns.
func (s *ReportService) GetFilterOptions(ctx context.Context, sessionID string) map[string][]string {
	snapshot := s.GetSnapshot(ctx, sessionID, false)

	foresters := aggregate.GroupCount(snapshot.Trees, func(r models.TreeRecord) string { return r.ForesterName })
	species := aggregate.GroupCount(snapshot.Trees, func(r models.TreeRecord) string { return r.Species })
	types := aggregate.GroupCount(snapshot.Applications, func(r models.ApplicationRecord) string { return r.Type })

	locations := make([]string, 0)
	for _, entry := range normalize.Gazetteer() {
		locations = append(locations, entry.Name)
	}

	return map[string][]string{
		"foresters": foresters.Keys(),
		"species":   species.Keys(),
		"types":     types.Keys(),
		"locations": locations,
	}
}
