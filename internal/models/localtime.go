package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// LocalTimeLayout is the zone-less timestamp format used on the wire
const LocalTimeLayout = "2006-01-02T15:04:05"

// LocalTime is a timestamp serialized without a zone as YYYY-MM-DDTHH:MM:SS
type LocalTime struct {
	time.Time
}

// NewLocalTime truncates t to whole seconds
func NewLocalTime(t time.Time) *LocalTime {
	return &LocalTime{Time: t.Truncate(time.Second)}
}

// String formats the time in the wire layout
func (t LocalTime) String() string {
	return t.Format(LocalTimeLayout)
}

// MarshalJSON implements json.Marshaler
func (t LocalTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON implements json.Unmarshaler
func (t *LocalTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("local time must be a string: %w", err)
	}
	parsed, err := ParseLocalTime(s)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

// ParseLocalTime accepts the wire layout, minute-precision variants typed by
// users and RFC 3339
func ParseLocalTime(s string) (time.Time, error) {
	for _, layout := range []string{LocalTimeLayout, "2006-01-02T15:04", "2006-01-02 15:04", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid local time %q (want %s)", s, LocalTimeLayout)
}
