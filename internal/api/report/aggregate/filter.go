package aggregate

import (
	"math"
	"strconv"
	"strings"
	"time"

	"treesure/internal/api/report/models"
	"treesure/internal/api/report/normalize"
)

// RadiusKm is the fixed great-circle radius of the named-location filter.
const RadiusKm = 10.0

const earthRadiusKm = 6371.0

// FilterSpec is a conjunctive predicate over one dataset. Every field is
// optional; an empty value or the literal "all" leaves that dimension
// unconstrained. EndDate is extended to end-of-day inside the evaluator,
// callers pass the bare date.
type FilterSpec struct {
	Forester     string
	Applicant    string
	Species      string
	Type         string
	StartDate    *time.Time
	EndDate      *time.Time
	Keyword      string
	NearLocation string
}

func constrained(v string) bool {
	return v != "" && !strings.EqualFold(v, "all")
}

// Active reports whether any dimension constrains the result.
func (s FilterSpec) Active() bool {
	return constrained(s.Forester) || constrained(s.Applicant) ||
		constrained(s.Species) || constrained(s.Type) ||
		s.StartDate != nil || s.EndDate != nil ||
		strings.TrimSpace(s.Keyword) != "" || constrained(s.NearLocation)
}

// FilterTrees returns the trees matching every active criterion. The
// input is never mutated; filtering twice with the same spec returns the
// same set.
func FilterTrees(records []models.TreeRecord, spec FilterSpec) []models.TreeRecord {
	out := make([]models.TreeRecord, 0, len(records))
	for _, r := range records {
		if constrained(spec.Forester) && r.ForesterName != spec.Forester {
			continue
		}
		if constrained(spec.Applicant) && r.OwnerName != spec.Applicant && r.OwnerID != spec.Applicant {
			continue
		}
		if constrained(spec.Species) && r.Species != spec.Species {
			continue
		}
		if !inDateRange(r.DateTagged, spec.StartDate, spec.EndDate) {
			continue
		}
		if !matchesKeyword(spec.Keyword, treeSearchText(r)) {
			continue
		}
		if !withinRadius(r.Latitude, r.Longitude, spec.NearLocation) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// FilterApplications returns the applications matching every active
// criterion. The radius dimension does not apply, applications carry no
// coordinates.
func FilterApplications(records []models.ApplicationRecord, spec FilterSpec) []models.ApplicationRecord {
	out := make([]models.ApplicationRecord, 0, len(records))
	for _, r := range records {
		if constrained(spec.Applicant) && r.ApplicantName != spec.Applicant {
			continue
		}
		if constrained(spec.Type) && r.Type != spec.Type {
			continue
		}
		createdAt := r.CreatedAt
		if !inDateRange(&createdAt, spec.StartDate, spec.EndDate) {
			continue
		}
		if !matchesKeyword(spec.Keyword, applicationSearchText(r)) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// FilterAppointments returns the appointments matching every active
// criterion.
func FilterAppointments(records []models.AppointmentRecord, spec FilterSpec) []models.AppointmentRecord {
	out := make([]models.AppointmentRecord, 0, len(records))
	for _, r := range records {
		if constrained(spec.Forester) && r.ForesterName != spec.Forester {
			continue
		}
		if constrained(spec.Applicant) && r.ApplicantName != spec.Applicant {
			continue
		}
		if constrained(spec.Type) && r.Type != spec.Type {
			continue
		}
		if !inDateRange(r.ScheduledAt, spec.StartDate, spec.EndDate) {
			continue
		}
		if !matchesKeyword(spec.Keyword, appointmentSearchText(r)) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// inDateRange checks date against an inclusive [start, end-of-day(end)]
// window. A nil record date fails any active bound.
func inDateRange(date, start, end *time.Time) bool {
	if start == nil && end == nil {
		return true
	}
	if date == nil {
		return false
	}
	if start != nil && date.Before(*start) {
		return false
	}
	if end != nil {
		endOfDay := time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), end.Location())
		if date.After(endOfDay) {
			return false
		}
	}
	return true
}

func matchesKeyword(keyword, haystack string) bool {
	keyword = strings.TrimSpace(strings.ToLower(keyword))
	if keyword == "" {
		return true
	}
	return strings.Contains(strings.ToLower(haystack), keyword)
}

// withinRadius keeps coordinates inside RadiusKm of the named gazetteer
// location. Records without coordinates are excluded whenever the radius
// dimension is active.
func withinRadius(lat, lng *float64, nearLocation string) bool {
	if !constrained(nearLocation) {
		return true
	}
	centerLat, centerLng, ok := normalize.LookupCenter(nearLocation)
	if !ok {
		return false
	}
	if lat == nil || lng == nil {
		return false
	}
	return haversineKm(*lat, *lng, centerLat, centerLng) <= RadiusKm
}

// haversineKm is the great-circle distance between two points.
func haversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	toRad := func(deg float64) float64 { return deg * math.Pi / 180 }
	dLat := toRad(lat2 - lat1)
	dLng := toRad(lng2 - lng1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

func treeSearchText(r models.TreeRecord) string {
	parts := []string{
		r.ID, r.TreeNumber, r.Species, r.Municipality, r.Barangay,
		r.ForesterName, r.OwnerID, r.OwnerName, r.AppointmentID,
	}
	parts = append(parts, floatText(r.Latitude), floatText(r.Longitude),
		floatText(r.Diameter), floatText(r.Height), floatText(r.Volume))
	if r.DateTagged != nil {
		parts = append(parts, r.DateTagged.Format("2006-01-02"))
	}
	return strings.Join(parts, " ")
}

func applicationSearchText(r models.ApplicationRecord) string {
	parts := []string{
		r.ID, r.ApplicantName, r.Type, r.Status, r.Municipality,
		r.CreatedAt.Format("2006-01-02"),
	}
	for _, upload := range r.Uploads {
		parts = append(parts, upload.FileName, upload.Status)
	}
	return strings.Join(parts, " ")
}

func appointmentSearchText(r models.AppointmentRecord) string {
	parts := []string{
		r.ID, r.ApplicantName, r.ForesterName, r.Type, r.Status, r.Municipality,
	}
	if r.ScheduledAt != nil {
		parts = append(parts, r.ScheduledAt.Format("2006-01-02"))
	}
	return strings.Join(parts, " ")
}

func floatText(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}
