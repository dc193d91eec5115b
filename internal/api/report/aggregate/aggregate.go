package aggregate

import (
	"fmt"
	"sort"
	"time"
)

// Bucket is a grouping-key to count mapping that remembers insertion
// order. Tie-breaking in TopN depends on that order, so iteration must
// be deterministic.
type Bucket struct {
	keys   []string
	counts map[string]int64
}

// Entry is one key/count pair of a Bucket.
type Entry struct {
	Key   string `json:"key"`
	Count int64  `json:"count"`
}

// NewBucket returns an empty Bucket.
func NewBucket() *Bucket {
	return &Bucket{counts: make(map[string]int64)}
}

// Add increments key by n, registering the key on first sight.
func (b *Bucket) Add(key string, n int64) {
	if _, ok := b.counts[key]; !ok {
		b.keys = append(b.keys, key)
	}
	b.counts[key] += n
}

// Get returns the count for key, zero when absent.
func (b *Bucket) Get(key string) int64 {
	return b.counts[key]
}

// Keys returns the grouping keys in insertion order.
func (b *Bucket) Keys() []string {
	out := make([]string, len(b.keys))
	copy(out, b.keys)
	return out
}

// Entries returns the key/count pairs in insertion order.
func (b *Bucket) Entries() []Entry {
	out := make([]Entry, 0, len(b.keys))
	for _, key := range b.keys {
		out = append(out, Entry{Key: key, Count: b.counts[key]})
	}
	return out
}

// Total returns the sum of all counts. For a Bucket built by GroupCount
// this always equals the input record count.
func (b *Bucket) Total() int64 {
	var total int64
	for _, count := range b.counts {
		total += count
	}
	return total
}

// Len returns the number of distinct keys.
func (b *Bucket) Len() int {
	return len(b.keys)
}

// GroupCount folds records into a Bucket counting occurrences of
// keyFn(record). keyFn must return a fallback label rather than an empty
// string so no record is silently dropped; the normalizer guarantees
// that for every canonical field.
func GroupCount[T any](records []T, keyFn func(T) string) *Bucket {
	bucket := NewBucket()
	for _, record := range records {
		bucket.Add(keyFn(record), 1)
	}
	return bucket
}

// GroupSum folds records into a Bucket summing valueFn(record) per key.
// Records whose value is nil contribute nothing to the sum but still
// register the key.
func GroupSum[T any](records []T, keyFn func(T) string, valueFn func(T) *float64) *Bucket {
	bucket := NewBucket()
	for _, record := range records {
		key := keyFn(record)
		bucket.Add(key, 0)
		if v := valueFn(record); v != nil {
			bucket.counts[key] += int64(*v)
		}
	}
	return bucket
}

// TopN returns the n highest-count entries of the bucket. Ties keep the
// first-encountered key first: the comparison is strictly greater, so a
// later key never displaces an earlier one with the same count.
func TopN(bucket *Bucket, n int) []Entry {
	if n <= 0 {
		n = 1
	}
	entries := bucket.Entries()
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// MonthOverMonthResult carries calendar-month counts and the percentage
// delta between them.
type MonthOverMonthResult struct {
	ThisMonth int64  `json:"thisMonth"`
	LastMonth int64  `json:"lastMonth"`
	Delta     string `json:"delta"`
}

// MonthOverMonth partitions records into the current calendar month
// [first of month, now] and the previous calendar month, by each
// record's date accessor. Records with a nil date count in neither
// partition. The delta is (this-last)/last*100 rounded to one decimal,
// reported as "0" when the previous month is empty.
func MonthOverMonth[T any](records []T, dateFn func(T) *time.Time, now time.Time) MonthOverMonthResult {
	firstOfCurrent := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	firstOfPrevious := firstOfCurrent.AddDate(0, -1, 0)

	var result MonthOverMonthResult
	for _, record := range records {
		date := dateFn(record)
		if date == nil {
			continue
		}
		switch {
		case !date.Before(firstOfCurrent) && !date.After(now):
			result.ThisMonth++
		case !date.Before(firstOfPrevious) && date.Before(firstOfCurrent):
			result.LastMonth++
		}
	}

	if result.LastMonth == 0 {
		result.Delta = "0"
		return result
	}
	delta := float64(result.ThisMonth-result.LastMonth) / float64(result.LastMonth) * 100
	result.Delta = fmt.Sprintf("%.1f", delta)
	return result
}

// TrendPoint is one calendar-day bucket of a trend series.
type TrendPoint struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// Trend buckets records by local calendar day (YYYY-MM-DD) sorted
// ascending by date. Records with a nil date are excluded from the
// series but still count in every other aggregate.
func Trend[T any](records []T, dateFn func(T) *time.Time) []TrendPoint {
	bucket := NewBucket()
	for _, record := range records {
		date := dateFn(record)
		if date == nil {
			continue
		}
		bucket.Add(date.Local().Format("2006-01-02"), 1)
	}

	points := make([]TrendPoint, 0, bucket.Len())
	for _, key := range bucket.Keys() {
		points = append(points, TrendPoint{Date: key, Count: bucket.Get(key)})
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].Date < points[j].Date
	})
	return points
}
