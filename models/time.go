package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"log"
	"time"
)

// ============================================================================
// FLEXIBLE TIMESTAMPS
// ============================================================================
// Documents written by older clients carry dates in several shapes: RFC3339
// strings, bare "YYYY-MM-DD" strings, unix numbers, or Firestore-style
// {seconds, nanoseconds} objects. Every ingestion boundary funnels through
// ParseTimestamp so the rest of the code only ever sees time.Time values.
// ============================================================================

// FlexTime is a time.Time that unmarshals from any of the legacy date shapes.
// Unparseable input coerces to "now" with a logged warning instead of failing
// the whole document decode.
type FlexTime struct {
	time.Time
}

func NewFlexTime(t time.Time) FlexTime {
	return FlexTime{Time: t}
}

func (t FlexTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Time.Format(time.RFC3339Nano))
}

func (t *FlexTime) UnmarshalJSON(data []byte) error {
	parsed, err := ParseTimestamp(data)
	if err != nil {
		log.Printf("⚠️ Unparseable timestamp %s, coercing to now: %v", string(data), err)
		parsed = time.Now()
	}
	t.Time = parsed
	return nil
}

// Value implements driver.Valuer so FlexTime can be stored in timestamp columns.
func (t FlexTime) Value() (driver.Value, error) {
	return t.Time, nil
}

// Scan implements sql.Scanner.
func (t *FlexTime) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		t.Time = v
		return nil
	case []byte:
		return t.UnmarshalJSON(v)
	case string:
		parsed, err := parseTimeString(v)
		if err != nil {
			return err
		}
		t.Time = parsed
		return nil
	case nil:
		t.Time = time.Time{}
		return nil
	default:
		return fmt.Errorf("cannot scan %T into FlexTime", src)
	}
}

// firestoreTimestamp is the {seconds, nanoseconds} document shape.
type firestoreTimestamp struct {
	Seconds     int64 `json:"seconds"`
	Nanoseconds int64 `json:"nanoseconds"`
}

// ParseTimestamp decodes a raw JSON value into a time.Time. It accepts
// RFC3339 strings, "YYYY-MM-DD" strings, unix seconds or milliseconds as
// numbers, and {seconds, nanoseconds} objects.
func ParseTimestamp(raw json.RawMessage) (time.Time, error) {
	if len(raw) == 0 {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}

	switch raw[0] {
	case 'n': // null
		return time.Time{}, fmt.Errorf("null timestamp")

	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return time.Time{}, err
		}
		return parseTimeString(s)

	case '{':
		var ts firestoreTimestamp
		if err := json.Unmarshal(raw, &ts); err != nil {
			return time.Time{}, err
		}
		if ts.Seconds == 0 && ts.Nanoseconds == 0 {
			return time.Time{}, fmt.Errorf("timestamp object missing seconds")
		}
		return time.Unix(ts.Seconds, ts.Nanoseconds), nil

	default:
		var n float64
		if err := json.Unmarshal(raw, &n); err != nil {
			return time.Time{}, err
		}
		// Values past the year 33658 in seconds are clearly milliseconds.
		if n > 1e12 {
			return time.UnixMilli(int64(n)), nil
		}
		return time.Unix(int64(n), 0), nil
	}
}

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseTimeString(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time format %q", s)
}
