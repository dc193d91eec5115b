package normalize

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestParseTimestamp_NativeTime(t *testing.T) {
	want := time.Date(2024, 3, 1, 8, 30, 0, 0, time.Local)
	got := ParseTimestamp(want)
	if got == nil || !got.Equal(want) {
		t.Errorf("ParseTimestamp(time.Time) = %v, want %v", got, want)
	}
}

func TestParseTimestamp_BSONDateTime(t *testing.T) {
	want := time.Date(2024, 3, 1, 8, 30, 0, 0, time.UTC)
	got := ParseTimestamp(primitive.NewDateTimeFromTime(want))
	if got == nil || !got.Equal(want) {
		t.Errorf("ParseTimestamp(primitive.DateTime) = %v, want %v", got, want)
	}
}

func TestParseTimestamp_BSONTimestamp(t *testing.T) {
	want := time.Unix(1709280000, 0)
	got := ParseTimestamp(primitive.Timestamp{T: 1709280000, I: 1})
	if got == nil || !got.Equal(want) {
		t.Errorf("ParseTimestamp(primitive.Timestamp) = %v, want %v", got, want)
	}
}

func TestParseTimestamp_EpochMillis(t *testing.T) {
	ms := int64(1709280000000)
	want := time.UnixMilli(ms)
	for _, input := range []interface{}{ms, float64(ms)} {
		got := ParseTimestamp(input)
		if got == nil || !got.Equal(want) {
			t.Errorf("ParseTimestamp(%T) = %v, want %v", input, got, want)
		}
	}
}

func TestParseTimestamp_Strings(t *testing.T) {
	cases := map[string]time.Time{
		"2024-03-01T08:30:00Z": time.Date(2024, 3, 1, 8, 30, 0, 0, time.UTC),
		"2024-03-01":           time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local),
		"03/01/2024":           time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local),
	}
	for input, want := range cases {
		got := ParseTimestamp(input)
		if got == nil || !got.Equal(want) {
			t.Errorf("ParseTimestamp(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestParseTimestamp_SecondsNanos(t *testing.T) {
	got := ParseTimestamp(bson.M{"seconds": int64(1709280000), "nanoseconds": int64(500000000)})
	want := time.UnixMilli(1709280000*1000 + 500)
	if got == nil || !got.Equal(want) {
		t.Errorf("ParseTimestamp(seconds/nanos) = %v, want %v", got, want)
	}
}

func TestParseTimestamp_Unparseable(t *testing.T) {
	inputs := []interface{}{
		nil,
		"not a date",
		"",
		true,
		bson.M{"foo": 1},
		[]string{"2024-03-01"},
		time.Time{},
	}
	for _, input := range inputs {
		if got := ParseTimestamp(input); got != nil {
			t.Errorf("ParseTimestamp(%v) = %v, want nil", input, got)
		}
	}
}
