// Package datemodel converts between the textual and structured forms of a
// calendar date and validates dates against a configured year range.
package datemodel

import (
	"fmt"
	"time"

	"cloudeng.io/datetime"
)

// CalendarDate is a Gregorian date. Month is zero based (0 = January) so it
// can be used directly as an index into month tables and dropdown options.
//
// CalendarDate is a value type: every method that changes a field returns a
// new value.
type CalendarDate struct {
	Year  int
	Month int
	Day   int
}

// New returns the date for (year, month, day), or a *RangeError when the
// month or day is not valid for that year.
func New(year, month, day int) (CalendarDate, error) {
	d := CalendarDate{Year: year, Month: month, Day: day}
	if err := d.check(); err != nil {
		return CalendarDate{}, err
	}
	return d, nil
}

// FromTime returns the calendar date of t in t's location.
func FromTime(t time.Time) CalendarDate {
	y, m, d := t.Date()
	return CalendarDate{Year: y, Month: int(m) - 1, Day: d}
}

// Today returns the calendar date of now.
func Today(now func() time.Time) CalendarDate {
	if now == nil {
		now = time.Now
	}
	return FromTime(now())
}

// Time returns midnight of the date in loc. A nil loc means time.Local.
func (d CalendarDate) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Date(d.Year, time.Month(d.Month+1), d.Day, 0, 0, 0, 0, loc)
}

// TimeMonth returns the month as a time.Month.
func (d CalendarDate) TimeMonth() time.Month {
	return time.Month(d.Month + 1)
}

// Weekday returns the day of the week the date falls on.
func (d CalendarDate) Weekday() time.Weekday {
	return d.Time(time.UTC).Weekday()
}

// WithDay returns a copy of d with its day replaced.
func (d CalendarDate) WithDay(day int) CalendarDate {
	d.Day = day
	return d
}

// IsZero reports whether d is the zero value.
func (d CalendarDate) IsZero() bool {
	return d == CalendarDate{}
}

// String returns the date as yyyy-mm-dd.
func (d CalendarDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month+1, d.Day)
}

func (d CalendarDate) check() error {
	if d.Month < 0 || d.Month > 11 {
		return &RangeError{Field: FieldMonth, Value: d.Month, Min: 0, Max: 11}
	}
	if n := DaysInMonth(d.Year, d.Month); d.Day < 1 || d.Day > n {
		return &RangeError{Field: FieldDay, Value: d.Day, Min: 1, Max: n}
	}
	return nil
}

// DaysInMonth returns the number of days in the zero based month of year.
// Months outside 0-11 are normalised into the neighbouring years.
func DaysInMonth(year, month int) int {
	year, month = normalizeMonth(year, month)
	return int(datetime.DaysInMonth(year, datetime.Month(month+1)))
}

// IsLeap reports whether year is a Gregorian leap year.
func IsLeap(year int) bool {
	return datetime.IsLeap(year)
}

func normalizeMonth(year, month int) (int, int) {
	year += month / 12
	month %= 12
	if month < 0 {
		month += 12
		year--
	}
	return year, month
}

// YearRange is an inclusive range of years.
type YearRange struct {
	Min int
	Max int
}

// Default year bounds, relative to the current year.
const (
	DefaultYearsBack    = 100
	DefaultYearsForward = 10
)

// ResolveYears fills a zero min or max with the default bound around
// thisYear.
func ResolveYears(min, max, thisYear int) YearRange {
	if min == 0 {
		min = thisYear - DefaultYearsBack
	}
	if max == 0 {
		max = thisYear + DefaultYearsForward
	}
	return YearRange{Min: min, Max: max}
}

// Contains reports whether year lies within the range.
func (r YearRange) Contains(year int) bool {
	return year >= r.Min && year <= r.Max
}

// Years returns every year in the range in ascending order.
func (r YearRange) Years() []int {
	if r.Max < r.Min {
		return nil
	}
	years := make([]int, 0, r.Max-r.Min+1)
	for y := r.Min; y <= r.Max; y++ {
		years = append(years, y)
	}
	return years
}

// Validate checks that the range is not inverted.
func (r YearRange) Validate() error {
	if r.Min > r.Max {
		return fmt.Errorf("min year %d is after max year %d", r.Min, r.Max)
	}
	return nil
}
