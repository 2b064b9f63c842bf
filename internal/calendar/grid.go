// Package calendar computes the day grid of a displayed month and the
// navigation rules between months.
package calendar

import (
	"iter"
	"time"

	"github.com/MikeBiancalana/datepick/internal/datemodel"
)

// DaysPerWeek is the number of columns in the grid.
const DaysPerWeek = 7

// DayCell is one grid position. A zero Day is a blank pad cell placed before
// the first of the month so that it lands in its weekday column.
type DayCell struct {
	Day int
}

// IsBlank reports whether the cell is padding.
func (c DayCell) IsBlank() bool {
	return c.Day == 0
}

// WeekdayHeader returns the single letter column headings, Sunday first.
func WeekdayHeader() []string {
	return []string{"S", "M", "T", "W", "T", "F", "S"}
}

// FirstWeekdayOfMonth returns the weekday of the first day of the displayed
// month.
func FirstWeekdayOfMonth(displayed datemodel.CalendarDate) time.Weekday {
	return displayed.WithDay(1).Weekday()
}

// daysInMonth uses day 0 of the following month, which normalises to the last
// day of the displayed one.
func daysInMonth(year, month int) int {
	return time.Date(year, time.Month(month+2), 0, 0, 0, 0, 0, time.UTC).Day()
}

// DaysWithOffset yields FirstWeekdayOfMonth blank cells followed by one cell
// per day of the displayed month. The sequence can be iterated repeatedly.
func DaysWithOffset(displayed datemodel.CalendarDate) iter.Seq[DayCell] {
	offset := int(FirstWeekdayOfMonth(displayed))
	n := daysInMonth(displayed.Year, displayed.Month)
	return func(yield func(DayCell) bool) {
		for i := 0; i < offset; i++ {
			if !yield(DayCell{}) {
				return
			}
		}
		for d := 1; d <= n; d++ {
			if !yield(DayCell{Day: d}) {
				return
			}
		}
	}
}

// Cells collects DaysWithOffset into a slice.
func Cells(displayed datemodel.CalendarDate) []DayCell {
	var cells []DayCell
	for c := range DaysWithOffset(displayed) {
		cells = append(cells, c)
	}
	return cells
}

// Weeks splits the cells of the displayed month into rows of DaysPerWeek.
// The final row is not padded.
func Weeks(displayed datemodel.CalendarDate) [][]DayCell {
	cells := Cells(displayed)
	var weeks [][]DayCell
	for len(cells) > DaysPerWeek {
		weeks = append(weeks, cells[:DaysPerWeek:DaysPerWeek])
		cells = cells[DaysPerWeek:]
	}
	if len(cells) > 0 {
		weeks = append(weeks, cells)
	}
	return weeks
}

// ChangeMonth moves displayed by offset months.
//
// The month is advanced with overflow normalisation first, so Jan 31 + 1
// becomes Mar 2 (or Mar 3). If the original day is past the end of the
// resulting month it is clamped; if the day still differs from the original
// the result rolls back to the last day of the previous month. Together the
// two adjustments land end-of-month dates on the last day of the target
// month.
func ChangeMonth(displayed datemodel.CalendarDate, offset int) datemodel.CalendarDate {
	moved := datemodel.FromTime(time.Date(displayed.Year, time.Month(displayed.Month+offset+1), displayed.Day, 0, 0, 0, 0, time.UTC))

	if last := daysInMonth(moved.Year, moved.Month); displayed.Day > last {
		moved = moved.WithDay(last)
	}
	if moved.Day != displayed.Day {
		moved = datemodel.FromTime(time.Date(moved.Year, time.Month(moved.Month+1), 0, 0, 0, 0, 0, time.UTC))
	}
	return moved
}

// WithYearMonth returns displayed moved to year and month, keeping the day
// when it exists there and clamping it to the month's last day otherwise.
func WithYearMonth(displayed datemodel.CalendarDate, year, month int) datemodel.CalendarDate {
	day := displayed.Day
	if last := daysInMonth(year, month); day > last {
		day = last
	}
	if day < 1 {
		day = 1
	}
	return datemodel.CalendarDate{Year: year, Month: month, Day: day}
}
