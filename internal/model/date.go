package model

import (
	"errors"
	"time"
)

// DateLayout is the calendar-date wire format.
const DateLayout = "2006-01-02"

var ErrInvalidDate = errors.New("invalid date")

// ParseDate accepts a calendar date or an RFC 3339 timestamp and returns the
// calendar day at UTC midnight.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		t = t.UTC()
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Time{}, ErrInvalidDate
}

// NormalizeDate renders s as YYYY-MM-DD. ok is false when s is not a date.
func NormalizeDate(s string) (string, bool) {
	t, err := ParseDate(s)
	if err != nil {
		return "", false
	}
	return t.Format(DateLayout), true
}
