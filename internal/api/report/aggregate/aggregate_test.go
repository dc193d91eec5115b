package aggregate

import (
	"testing"
	"time"

	"treesure/internal/api/report/models"
)

func datePtr(t time.Time) *time.Time { return &t }

func TestGroupCount_TotalEqualsInput(t *testing.T) {
	records := []models.TreeRecord{
		{Species: "Narra"},
		{Species: "Narra"},
		{Species: "Acacia"},
		{Species: "Unknown"},
	}
	bucket := GroupCount(records, func(r models.TreeRecord) string { return r.Species })
	if bucket.Total() != int64(len(records)) {
		t.Errorf("Total() = %d, want %d", bucket.Total(), len(records))
	}
	if bucket.Get("Narra") != 2 {
		t.Errorf("Narra = %d, want 2", bucket.Get("Narra"))
	}
	if bucket.Len() != 3 {
		t.Errorf("Len() = %d, want 3", bucket.Len())
	}
}

func TestBucket_InsertionOrder(t *testing.T) {
	bucket := NewBucket()
	bucket.Add("b", 1)
	bucket.Add("a", 1)
	bucket.Add("b", 1)
	keys := bucket.Keys()
	if len(keys) != 2 || keys[0] != "b" || keys[1] != "a" {
		t.Errorf("Keys() = %v, want [b a]", keys)
	}
}

func TestTopN_FirstEncounteredWinsOnTie(t *testing.T) {
	bucket := NewBucket()
	bucket.Add("Molave", 3)
	bucket.Add("Narra", 3)
	bucket.Add("Acacia", 1)

	top := TopN(bucket, 1)
	if len(top) != 1 {
		t.Fatalf("TopN(1) returned %d entries", len(top))
	}
	if top[0].Key != "Molave" {
		t.Errorf("top key = %q, first-encountered Molave must win the tie", top[0].Key)
	}
}

func TestTopN_Ordering(t *testing.T) {
	bucket := NewBucket()
	bucket.Add("a", 1)
	bucket.Add("b", 5)
	bucket.Add("c", 3)
	top := TopN(bucket, 2)
	if len(top) != 2 || top[0].Key != "b" || top[1].Key != "c" {
		t.Errorf("TopN(2) = %v, want [b c]", top)
	}
}

func TestMonthOverMonth(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.Local)
	records := []models.ApplicationRecord{
		{CreatedAt: time.Date(2024, 3, 2, 0, 0, 0, 0, time.Local)},
		{CreatedAt: time.Date(2024, 3, 10, 0, 0, 0, 0, time.Local)},
		{CreatedAt: time.Date(2024, 3, 14, 0, 0, 0, 0, time.Local)},
		{CreatedAt: time.Date(2024, 2, 20, 0, 0, 0, 0, time.Local)},
		{CreatedAt: time.Date(2024, 2, 1, 0, 0, 0, 0, time.Local)},
		{CreatedAt: time.Date(2024, 1, 31, 0, 0, 0, 0, time.Local)}, // out of both windows
		{CreatedAt: time.Date(2024, 3, 20, 0, 0, 0, 0, time.Local)}, // after now
	}
	result := MonthOverMonth(records, func(r models.ApplicationRecord) *time.Time {
		created := r.CreatedAt
		return &created
	}, now)
	if result.ThisMonth != 3 || result.LastMonth != 2 {
		t.Fatalf("counts = %d/%d, want 3/2", result.ThisMonth, result.LastMonth)
	}
	if result.Delta != "50.0" {
		t.Errorf("delta = %q, want 50.0", result.Delta)
	}
}

func TestMonthOverMonth_ZeroLastMonth(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.Local)
	records := []models.ApplicationRecord{
		{CreatedAt: time.Date(2024, 3, 2, 0, 0, 0, 0, time.Local)},
	}
	result := MonthOverMonth(records, func(r models.ApplicationRecord) *time.Time {
		created := r.CreatedAt
		return &created
	}, now)
	if result.Delta != "0" {
		t.Errorf("delta = %q, want the literal 0 when last month is empty", result.Delta)
	}
}

func TestTrend_AscendingBuckets(t *testing.T) {
	day1 := time.Date(2024, 3, 1, 9, 0, 0, 0, time.Local)
	day1b := time.Date(2024, 3, 1, 15, 0, 0, 0, time.Local)
	day2 := time.Date(2024, 3, 2, 9, 0, 0, 0, time.Local)
	records := []models.TreeRecord{
		{DateTagged: datePtr(day2)},
		{DateTagged: datePtr(day1)},
		{DateTagged: datePtr(day1b)},
		{DateTagged: datePtr(day1)},
		{DateTagged: nil}, // excluded from the series
	}
	points := Trend(records, func(r models.TreeRecord) *time.Time { return r.DateTagged })
	if len(points) != 2 {
		t.Fatalf("trend points = %d, want 2", len(points))
	}
	if points[0].Date != "2024-03-01" || points[0].Count != 3 {
		t.Errorf("first point = %+v, want 2024-03-01 x3", points[0])
	}
	if points[1].Date != "2024-03-02" || points[1].Count != 1 {
		t.Errorf("second point = %+v, want 2024-03-02 x1", points[1])
	}
}

func TestRecencyFeed(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.Local)
	apps := []models.ApplicationRecord{
		{ID: "a1", Type: "PLTP", ApplicantName: "Reyes", CreatedAt: now.Add(-2 * time.Hour)},
		{ID: "a2", Type: "CTPO", ApplicantName: "Santos", CreatedAt: now.Add(-30 * time.Second)},
		{ID: "a3", Type: "CTT", ApplicantName: "Lim", CreatedAt: now.Add(-72 * time.Hour)},
	}
	trees := []models.TreeRecord{
		{ID: "t1", Species: "Narra", Municipality: "Solana", ForesterName: "Cruz", DateTagged: datePtr(now.Add(-10 * time.Minute))},
		{ID: "t2", Species: "Acacia", Municipality: "Piat", DateTagged: nil},
	}

	feed := RecencyFeed(apps, trees, 2, now)
	if len(feed) != 3 {
		t.Fatalf("feed = %d entries, want 2 apps + 1 dated tree", len(feed))
	}
	if feed[0].Kind != "application" || feed[0].TimeAgo != "just now" {
		t.Errorf("feed[0] = %+v, want the 30s-old application as just now", feed[0])
	}
	if feed[1].Kind != "tree" || feed[1].TimeAgo != "10 mins ago" {
		t.Errorf("feed[1] = %+v, want the tree tagged 10 mins ago", feed[1])
	}
	for i := 1; i < len(feed); i++ {
		if feed[i].Timestamp.After(feed[i-1].Timestamp) {
			t.Errorf("feed not reverse-chronological at %d", i)
		}
	}
}

func TestRelativeTime(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.Local)
	cases := map[string]struct {
		at   time.Time
		want string
	}{
		"seconds": {now.Add(-20 * time.Second), "just now"},
		"minutes": {now.Add(-45 * time.Minute), "45 mins ago"},
		"one min": {now.Add(-90 * time.Second), "1 min ago"},
		"hours":   {now.Add(-5 * time.Hour), "5 hours ago"},
		"days":    {now.Add(-3 * 24 * time.Hour), "3 days ago"},
		"weeks":   {now.Add(-10 * 24 * time.Hour), "1 week ago"},
		"old":     {time.Date(2023, 6, 1, 0, 0, 0, 0, time.Local), "Jun 1, 2023"},
	}
	for name, tc := range cases {
		if got := RelativeTime(tc.at, now); got != tc.want {
			t.Errorf("%s: RelativeTime = %q, want %q", name, got, tc.want)
		}
	}
}
