// Package model holds the entities stored in the database and the
// request payloads bound from HTTP requests.
package model

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"time"
)

// EmptyRequest is bound by endpoints that take no input.
type EmptyRequest struct{}

func (EmptyRequest) Validate() error { return nil }

// maxExactCount is the largest integer a float64 holds exactly.
const maxExactCount = 1 << 53

// Count is a whole number bound from JSON. It accepts integral numbers written
// in any JSON form, so 5, 5.0 and 5e0 all decode to 5; 5.5 is rejected.
type Count int

// UnmarshalJSON implements json.Unmarshaler. null leaves the value untouched.
func (c *Count) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if string(data) == "null" {
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return &json.UnmarshalTypeError{Value: jsonKind(data), Type: reflect.TypeOf(0)}
	}
	if f != math.Trunc(f) || math.Abs(f) > maxExactCount {
		return &json.UnmarshalTypeError{Value: "number " + string(data), Type: reflect.TypeOf(0)}
	}

	*c = Count(f)
	return nil
}

// jsonKind names the JSON type of a raw value the way encoding/json does in its errors.
func jsonKind(data []byte) string {
	if len(data) == 0 {
		return "value"
	}
	switch data[0] {
	case '"':
		return "string"
	case 't', 'f':
		return "bool"
	case '{':
		return "object"
	case '[':
		return "array"
	default:
		return "number"
	}
}

// timestampLayouts are the textual forms SQLite may return for DATETIME columns.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05.999999999-07:00",
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
}

// Timestamp is a nullable point in time that scans from both PostgreSQL
// (time.Time) and SQLite (text) columns.
type Timestamp struct {
	Time  time.Time
	Valid bool
}

// Scan implements sql.Scanner.
func (t *Timestamp) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*t = Timestamp{}
		return nil
	case time.Time:
		*t = Timestamp{Time: v.UTC(), Valid: true}
		return nil
	case string:
		return t.parse(v)
	case []byte:
		return t.parse(string(v))
	default:
		return fmt.Errorf("cannot scan %T into Timestamp", src)
	}
}

func (t *Timestamp) parse(s string) error {
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			*t = Timestamp{Time: parsed.UTC(), Valid: true}
			return nil
		}
	}
	return fmt.Errorf("cannot parse %q as Timestamp", s)
}

// Value implements driver.Valuer.
func (t Timestamp) Value() (driver.Value, error) {
	if !t.Valid {
		return nil, nil
	}
	return t.Time, nil
}

// MarshalJSON renders RFC 3339 or null.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if !t.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(t.Time.Format(time.RFC3339Nano))
}
