package dto

import (
	"time"

	"treesure/internal/api/report/aggregate"
	"treesure/internal/api/report/models"
)

// FilterQueryParams are the report filter dimensions as they arrive on
// the query string. Dates use the YYYY-MM-DD form, empty or "all" values
// leave a dimension unconstrained.
type FilterQueryParams struct {
	Forester     string `query:"forester" json:"forester"`
	Applicant    string `query:"applicant" json:"applicant"`
	Species      string `query:"species" json:"species"`
	Type         string `query:"type" json:"type"`
	StartDate    string `query:"startDate" json:"startDate"`
	EndDate      string `query:"endDate" json:"endDate"`
	Keyword      string `query:"keyword" json:"keyword"`
	NearLocation string `query:"nearLocation" json:"nearLocation"`
	Refresh      bool   `query:"refresh" json:"refresh"`
}

const dateLayout = "2006-01-02"

// ToFilterSpec converts the query parameters into an evaluator spec.
// Unparseable dates are treated as absent rather than rejected, matching
// how every other malformed input degrades.
func (p FilterQueryParams) ToFilterSpec() aggregate.FilterSpec {
	spec := aggregate.FilterSpec{
		Forester:     p.Forester,
		Applicant:    p.Applicant,
		Species:      p.Species,
		Type:         p.Type,
		Keyword:      p.Keyword,
		NearLocation: p.NearLocation,
	}
	if parsed, err := time.ParseInLocation(dateLayout, p.StartDate, time.Local); err == nil {
		spec.StartDate = &parsed
	}
	if parsed, err := time.ParseInLocation(dateLayout, p.EndDate, time.Local); err == nil {
		spec.EndDate = &parsed
	}
	return spec
}

// ExportRequest is the body of an export call: the table exactly as the
// dashboard renders it, plus the target format.
type ExportRequest struct {
	Tab     string     `json:"tab" validate:"required,no_xss"`
	Format  string     `json:"format" validate:"required,export_format"`
	Headers []string   `json:"headers" validate:"required"`
	Rows    [][]string `json:"rows"`
}

// ExportResponse carries the rendered export payload back to the client.
type ExportResponse struct {
	FileName string     `json:"fileName"`
	Format   string     `json:"format"`
	Content  string     `json:"content,omitempty"`
	Matrix   [][]string `json:"matrix,omitempty"`
}

// DashboardSummary is the aggregate payload of the summary endpoint.
type DashboardSummary struct {
	TotalTrees         int                            `json:"totalTrees"`
	TotalApplications  int                            `json:"totalApplications"`
	TotalAppointments  int                            `json:"totalAppointments"`
	ApplicationsMoM    aggregate.MonthOverMonthResult `json:"applicationsMoM"`
	TopSpecies         []aggregate.Entry              `json:"topSpecies"`
	SpeciesCounts      []aggregate.Entry              `json:"speciesCounts"`
	StatusCounts       []aggregate.Entry              `json:"statusCounts"`
	TypeCounts         []aggregate.Entry              `json:"typeCounts"`
	MunicipalityCounts []aggregate.Entry              `json:"municipalityCounts"`
	ForesterCounts     []aggregate.Entry              `json:"foresterCounts"`
	TaggingTrend       []aggregate.TrendPoint         `json:"taggingTrend"`
	RecentActivity     []aggregate.ActivityEntry      `json:"recentActivity"`
	FetchedAt          time.Time                      `json:"fetchedAt"`
	Degraded           []string                       `json:"degraded,omitempty"`
}

// DatasetResponse is the payload of the per-dataset list endpoints.
// Buckets carries the per-dimension distributions of the filtered view.
type DatasetResponse[T any] struct {
	Records   []T                          `json:"records"`
	Total     int                          `json:"total"`
	Buckets   map[string][]aggregate.Entry `json:"buckets,omitempty"`
	FetchedAt time.Time                    `json:"fetchedAt"`
	Degraded  []string                     `json:"degraded,omitempty"`
}

// TreeListResponse, ApplicationListResponse and AppointmentListResponse
// are the concrete dataset payloads.
type (
	TreeListResponse        = DatasetResponse[models.TreeRecord]
	ApplicationListResponse = DatasetResponse[models.ApplicationRecord]
	AppointmentListResponse = DatasetResponse[models.AppointmentRecord]
)
