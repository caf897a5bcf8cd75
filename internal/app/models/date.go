package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const (
	// DateLayout is the wire layout for calendar dates
	DateLayout = "2006-01-02"
	// DisplayLayout renders dates the way en-IN locales do, e.g. 5/1/2024
	DisplayLayout = "2/1/2006"
)

// Date is a calendar date in UTC. The zero value means "not set".
type Date struct {
	t time.Time
}

// NewDate builds a Date from calendar components
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its UTC calendar day
func DateOf(t time.Time) Date {
	if t.IsZero() {
		return Date{}
	}
	u := t.UTC()
	return NewDate(u.Year(), u.Month(), u.Day())
}

// ParseDate accepts YYYY-MM-DD or an RFC3339 timestamp. An empty string yields an unset Date.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, nil
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return Date{t: t}, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD or RFC3339", s)
	}
	return DateOf(t), nil
}

// IsSet reports whether the date carries a value
func (d Date) IsSet() bool { return !d.t.IsZero() }

// Time returns the date at midnight UTC
func (d Date) Time() time.Time { return d.t }

func (d Date) Year() int { return d.t.Year() }

func (d Date) Month() time.Month { return d.t.Month() }

// String returns the wire form, or "" when unset
func (d Date) String() string {
	if !d.IsSet() {
		return ""
	}
	return d.t.Format(DateLayout)
}

// Display formats the date as d/m/yyyy, or returns fallback when unset
func (d Date) Display(fallback string) string {
	if !d.IsSet() {
		return fallback
	}
	return d.t.Format(DisplayLayout)
}

// MarshalJSON writes null for an unset date
func (d Date) MarshalJSON() ([]byte, error) {
	if !d.IsSet() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts null, "", "YYYY-MM-DD" and RFC3339 strings
func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
