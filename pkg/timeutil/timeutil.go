// Package timeutil provides the timestamp type used for persisted records.
//
// Timestamps are always UTC with microsecond precision, so a value written to
// any store and read back compares equal to the original. The canonical text
// form is ISO-8601 with six fractional digits and a Z suffix, and that single
// form is used for storage (text column, BSON string) and for JSON.
package timeutil

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// Layout is the canonical text form.
const Layout = "2006-01-02T15:04:05.000000Z07:00"

// Accepted on input besides Layout. The naive form is read as UTC.
var parseLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
}

// Time wraps time.Time with storage and wire encodings.
type Time struct {
	time.Time
}

// Now returns the current time normalized to UTC microseconds.
func Now() Time { return New(time.Now()) }

// New normalizes t.
func New(t time.Time) Time {
	return Time{Time: t.UTC().Truncate(time.Microsecond)}
}

// Parse reads any of the accepted textual forms.
func Parse(s string) (Time, error) {
	for _, layout := range parseLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return New(t), nil
		}
	}
	return Time{}, fmt.Errorf("timeutil: cannot parse %q as ISO-8601 timestamp", s)
}

// String renders the canonical form.
func (t Time) String() string { return t.UTC().Format(Layout) }

func (t Time) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *Time) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*t = Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timeutil: expected string: %w", err)
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// MarshalBSONValue stores the canonical string, not a BSON datetime.
func (t Time) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(t.String())
}

// UnmarshalBSONValue accepts the canonical string and, for documents written
// by older clients, a native BSON datetime.
func (t *Time) UnmarshalBSONValue(typ bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: typ, Value: data}
	switch typ {
	case bson.TypeString:
		s, ok := raw.StringValueOK()
		if !ok {
			return fmt.Errorf("timeutil: malformed bson string")
		}
		parsed, err := Parse(s)
		if err != nil {
			return err
		}
		*t = parsed
	case bson.TypeDateTime:
		ms, ok := raw.DateTimeOK()
		if !ok {
			return fmt.Errorf("timeutil: malformed bson datetime")
		}
		*t = New(time.UnixMilli(ms))
	case bson.TypeNull, bson.TypeUndefined:
		*t = Time{}
	default:
		return fmt.Errorf("timeutil: cannot decode bson %s", typ)
	}
	return nil
}

// Value implements driver.Valuer; SQL stores use a text column.
func (t Time) Value() (driver.Value, error) {
	return t.String(), nil
}

// Scan implements sql.Scanner.
func (t *Time) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*t = Time{}
		return nil
	case string:
		parsed, err := Parse(v)
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	case []byte:
		return t.Scan(string(v))
	case time.Time:
		*t = New(v)
		return nil
	default:
		return fmt.Errorf("timeutil: cannot scan %T", src)
	}
}
