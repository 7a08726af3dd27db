// Package dateutil provides calendar-date parsing and arithmetic.
//
// All arithmetic works on civil.Date values (year, month, day) and never on
// timestamps, so daylight-saving transitions cannot shift a result by a day.
package dateutil

import (
	"errors"
	"strings"
	"time"

	"cloud.google.com/go/civil"
)

// Layout is the wire format for dates.
const Layout = "2006-01-02"

// Validation errors.
var (
	ErrInvalidDateFormat  = errors.New("date must be in YYYY-MM-DD format")
	ErrEndDateBeforeStart = errors.New("end date must be on or after start date")
)

// DateRange represents a validated, inclusive date range.
type DateRange struct {
	Start civil.Date
	End   civil.Date
}

// Days returns the inclusive number of days in the range.
func (r DateRange) Days() int {
	return DaysInclusive(r.Start, r.End)
}

// NewDateRange creates a new DateRange with validation.
// startDate can be empty (defaults to today) or in YYYY-MM-DD format.
// endDate can be empty (defaults to startDate) or in YYYY-MM-DD format.
// Returns an error if endDate is before startDate.
func NewDateRange(startDate, endDate string) (*DateRange, error) {
	start, err := ParseDate(startDate)
	if err != nil {
		return nil, err
	}

	end := start
	if endDate != "" {
		end, err = ParseDate(endDate)
		if err != nil {
			return nil, err
		}
	}

	if end.Before(start) {
		return nil, ErrEndDateBeforeStart
	}

	return &DateRange{Start: start, End: end}, nil
}

// ParseDate parses a date string in YYYY-MM-DD format.
// If the string is empty, returns today's date.
func ParseDate(s string) (civil.Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Today(), nil
	}
	d, err := civil.ParseDate(s)
	if err != nil || !d.IsValid() {
		return civil.Date{}, ErrInvalidDateFormat
	}
	return d, nil
}

// MustParse parses a YYYY-MM-DD literal and panics on error.
// Intended for tests and package-level fixtures.
func MustParse(s string) civil.Date {
	d, err := civil.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Format renders d as YYYY-MM-DD, or an empty string for the zero date.
func Format(d civil.Date) string {
	if IsZero(d) {
		return ""
	}
	return d.String()
}

// IsZero reports whether d is unset.
func IsZero(d civil.Date) bool {
	return d == civil.Date{}
}

// Today returns the current local calendar date.
func Today() civil.Date {
	return civil.DateOf(time.Now())
}

// NextDay returns the calendar day after d.
func NextDay(d civil.Date) civil.Date {
	return AddDays(d, 1)
}

// PrevDay returns the calendar day before d.
func PrevDay(d civil.Date) civil.Date {
	return AddDays(d, -1)
}

// AddDays returns d shifted by n calendar days.
func AddDays(d civil.Date, n int) civil.Date {
	return d.AddDays(n)
}

// DaysInclusive returns the number of calendar days from start to end,
// counting both ends. It is zero or negative when end is before start.
func DaysInclusive(start, end civil.Date) int {
	return end.DaysSince(start) + 1
}

// EndFor returns the inclusive end date of a span of days starting at start.
func EndFor(start civil.Date, days int) civil.Date {
	return AddDays(start, days-1)
}
