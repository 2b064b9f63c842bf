package components_test

import (
	"fmt"
	"time"

	"github.com/MikeBiancalana/datepick/internal/datemodel"
	"github.com/MikeBiancalana/datepick/internal/tui/components"
)

// ExampleDatePicker validates typed text and opens the calendar on valid dates.
func ExampleDatePicker() {
	dp := components.NewDatePicker(components.Options{
		Now: func() time.Time { return time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC) },
	})
	dp.Init()

	dp.SetValue("39/09/2020")
	fmt.Println(dp.Error(), dp.CalendarOpen())

	dp.SetValue("27/01/2000")
	d, ok := dp.Date()
	fmt.Println(d, ok, dp.CalendarOpen())

	// Output:
	// Invalid date format false
	// 2000-01-27 true true
}

// ExampleCalendar shows the messages produced by picking a day.
func ExampleCalendar() {
	cal := components.NewCalendar(components.CalendarOptions{ID: "birthday"})
	cal.SelectYear(2000)
	cal.SelectMonth(0)

	for _, msg := range cal.SelectDay(27) {
		fmt.Printf("%T %v\n", msg, msg)
	}

	// Output:
	// components.SelectMsg {birthday 2000-01-27}
	// components.DisplayChangeMsg {birthday 2000-01-27}
	// components.ChangeMsg {birthday 27/01/2000}
}

// ExampleExpandShortcut resolves relative input.
func ExampleExpandShortcut() {
	today := datemodel.FromTime(time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC))
	for _, in := range []string{"t", "tm", "+2w", "mon"} {
		d, _ := components.ExpandShortcut(in, today)
		fmt.Println(in, d)
	}

	// Output:
	// t 2024-03-15
	// tm 2024-03-16
	// +2w 2024-03-29
	// mon 2024-03-18
}
