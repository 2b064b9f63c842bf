package components

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/MikeBiancalana/datepick/internal/calendar"
	"github.com/MikeBiancalana/datepick/internal/datemodel"
)

// ErrNotShortcut is returned by ExpandShortcut when the input is not
// relative date syntax and should be parsed as a formatted date instead.
var ErrNotShortcut = errors.New("not a date shortcut")

var weekdayShortcuts = map[string]time.Weekday{
	"sun": time.Sunday,
	"mon": time.Monday,
	"tue": time.Tuesday,
	"wed": time.Wednesday,
	"thu": time.Thursday,
	"fri": time.Friday,
	"sat": time.Saturday,
}

// ExpandShortcut resolves relative date input against today.
// Supports:
//   - "t" or "today", "tm" or "tomorrow", "yd" or "yesterday"
//   - "mon" through "sun": the next occurrence of that weekday
//   - "+3d", "-2w", "+1m": days, weeks or months from today
func ExpandShortcut(input string, today datemodel.CalendarDate) (datemodel.CalendarDate, error) {
	input = strings.TrimSpace(strings.ToLower(input))

	switch input {
	case "t", "today":
		return today, nil
	case "tm", "tomorrow":
		return addDays(today, 1), nil
	case "yd", "yesterday":
		return addDays(today, -1), nil
	}

	if wd, ok := weekdayShortcuts[input]; ok {
		return nextWeekday(today, wd), nil
	}

	if len(input) < 3 || (input[0] != '+' && input[0] != '-') {
		return datemodel.CalendarDate{}, ErrNotShortcut
	}

	unit := input[len(input)-1]
	if unit != 'd' && unit != 'w' && unit != 'm' {
		return datemodel.CalendarDate{}, ErrNotShortcut
	}
	n, err := strconv.Atoi(input[1 : len(input)-1])
	if err != nil {
		return datemodel.CalendarDate{}, fmt.Errorf("invalid offset %q: %w", input, err)
	}
	if input[0] == '-' {
		n = -n
	}

	switch unit {
	case 'd':
		return addDays(today, n), nil
	case 'w':
		return addDays(today, n*calendar.DaysPerWeek), nil
	default:
		return calendar.ChangeMonth(today, n), nil
	}
}

func addDays(d datemodel.CalendarDate, n int) datemodel.CalendarDate {
	return datemodel.FromTime(d.Time(time.UTC).AddDate(0, 0, n))
}

// nextWeekday never returns today; asking for today's weekday means a week out.
func nextWeekday(today datemodel.CalendarDate, target time.Weekday) datemodel.CalendarDate {
	daysUntil := int(target - today.Weekday())
	if daysUntil <= 0 {
		daysUntil += 7
	}
	return addDays(today, daysUntil)
}

// DescribeDate returns a short description of d relative to today, such as
// "today", "tomorrow", "Friday" or "in 3 weeks".
func DescribeDate(d, today datemodel.CalendarDate) string {
	diff := int(d.Time(time.UTC).Sub(today.Time(time.UTC)).Hours() / 24)

	switch {
	case diff == 0:
		return "today"
	case diff == 1:
		return "tomorrow"
	case diff == -1:
		return "yesterday"
	case diff > 1 && diff < 7:
		return d.Weekday().String()
	case diff >= 7 && diff < 28:
		if weeks := diff / 7; weeks > 1 {
			return fmt.Sprintf("in %d weeks", weeks)
		}
		return "in 1 week"
	case diff < 0 && diff > -7:
		return "last " + d.Weekday().String()
	}
	return d.Time(time.UTC).Format("Jan 2, 2006")
}
