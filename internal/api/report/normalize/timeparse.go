package normalize

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Layouts tried in order when a timestamp arrives as a string. Older app
// versions wrote dates in several of these shapes.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"01/02/2006",
	"January 2, 2006",
}

// ParseTimestamp converts any of the timestamp shapes found in the source
// documents into a time. It pattern matches on the value's shape and
// returns nil for anything unparseable, it never panics.
//
// Accepted shapes, in priority order:
//   - a native time value
//   - a BSON datetime or BSON timestamp
//   - a numeric epoch in milliseconds
//   - a parseable date string
//   - a nested document with seconds and nanoseconds fields
func ParseTimestamp(v interface{}) *time.Time {
	switch t := v.(type) {
	case nil:
		return nil
	case time.Time:
		if t.IsZero() {
			return nil
		}
		return &t
	case *time.Time:
		if t == nil || t.IsZero() {
			return nil
		}
		return t
	case primitive.DateTime:
		parsed := t.Time()
		return &parsed
	case primitive.Timestamp:
		parsed := time.Unix(int64(t.T), 0)
		return &parsed
	case float64:
		return fromEpochMillis(int64(t))
	case int64:
		return fromEpochMillis(t)
	case int32:
		return fromEpochMillis(int64(t))
	case int:
		return fromEpochMillis(int64(t))
	case string:
		return parseTimeString(t)
	case bson.M:
		return fromSecondsNanos(t)
	case map[string]interface{}:
		return fromSecondsNanos(t)
	case bson.D:
		return fromSecondsNanos(t.Map())
	default:
		return nil
	}
}

func fromEpochMillis(ms int64) *time.Time {
	if ms <= 0 {
		return nil
	}
	parsed := time.UnixMilli(ms)
	return &parsed
}

func parseTimeString(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range timeLayouts {
		if parsed, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return &parsed
		}
	}
	return nil
}

// fromSecondsNanos handles the serialized store-timestamp shape
// {seconds, nanoseconds}, converted as seconds*1000 + nanoseconds/1e6
// milliseconds.
func fromSecondsNanos(doc map[string]interface{}) *time.Time {
	secs, ok := doc["seconds"]
	if !ok {
		return nil
	}
	secF := toFloat(secs)
	if secF == nil {
		return nil
	}
	var nanosF float64
	if nanos, ok := doc["nanoseconds"]; ok {
		if f := toFloat(nanos); f != nil {
			nanosF = *f
		}
	}
	ms := int64(*secF*1000 + nanosF/1e6)
	return fromEpochMillis(ms)
}
