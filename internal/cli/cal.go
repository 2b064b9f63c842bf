package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/MikeBiancalana/datepick/internal/calendar"
	"github.com/MikeBiancalana/datepick/internal/datemodel"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// calWidth is the width of one week row.
const calWidth = len("11 12 13 14 15 16 17")

func (a *App) calCmd() *cobra.Command {
	var colorMode string

	cmd := &cobra.Command{
		Use:   "cal [month [year]]",
		Short: "Print a month calendar",
		Long: `Print the grid of a month as the picker shows it, with today highlighted.
The month is a number (1-12) or a name; it defaults to the current month.

Examples:
  datepick cal
  datepick cal feb 2024`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			today := datemodel.Today(a.pickerOptions(a.cfg).Resolved().Now)

			displayed, err := parseCalArgs(args, today)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			useColor, err := wantColor(colorMode, out)
			if err != nil {
				return err
			}
			printMonth(out, displayed, today, useColor)
			return nil
		},
	}

	cmd.Flags().StringVar(&colorMode, "color", "auto", "colour output (auto, always, never)")
	return cmd
}

// parseCalArgs returns the first of the requested month.
func parseCalArgs(args []string, today datemodel.CalendarDate) (datemodel.CalendarDate, error) {
	year, month := today.Year, today.Month

	if len(args) > 0 {
		m, err := parseMonth(args[0])
		if err != nil {
			return datemodel.CalendarDate{}, err
		}
		month = m
	}
	if len(args) > 1 {
		y, err := strconv.Atoi(args[1])
		if err != nil || y < 1 {
			return datemodel.CalendarDate{}, fmt.Errorf("invalid year %q", args[1])
		}
		year = y
	}
	return datemodel.CalendarDate{Year: year, Month: month, Day: 1}, nil
}

// parseMonth accepts 1-12 or an English month name of at least three
// letters and returns a zero based month.
func parseMonth(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		if n < 1 || n > 12 {
			return 0, fmt.Errorf("month %d out of range [1, 12]", n)
		}
		return n - 1, nil
	}
	if len(s) >= 3 {
		for m := time.January; m <= time.December; m++ {
			if strings.HasPrefix(strings.ToLower(m.String()), strings.ToLower(s)) {
				return int(m) - 1, nil
			}
		}
	}
	return 0, fmt.Errorf("unknown month %q", s)
}

// wantColor resolves the --color flag. auto enables colour only when out is
// a terminal.
func wantColor(mode string, out io.Writer) (bool, error) {
	switch mode {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto", "":
		f, ok := out.(*os.File)
		return ok && term.IsTerminal(int(f.Fd())), nil
	default:
		return false, fmt.Errorf("unsupported colour mode %q (supported: auto, always, never)", mode)
	}
}

func printMonth(w io.Writer, displayed, today datemodel.CalendarDate, useColor bool) {
	title := color.New(color.Bold)
	header := color.New(color.Faint)
	day := color.New()
	current := color.New(color.Bold, color.ReverseVideo)
	for _, c := range []*color.Color{title, header, day, current} {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	name := fmt.Sprintf("%s %d", displayed.TimeMonth(), displayed.Year)
	mid := (calWidth - len(name)) / 2
	if mid < 0 {
		mid = 0
	}
	fmt.Fprint(w, strings.Repeat(" ", mid))
	title.Fprintln(w, name)

	cols := calendar.WeekdayHeader()
	for i, h := range cols {
		header.Fprintf(w, "%2s", h)
		if i < len(cols)-1 {
			fmt.Fprint(w, " ")
		}
	}
	fmt.Fprintln(w)

	sameMonth := displayed.Year == today.Year && displayed.Month == today.Month
	for _, week := range calendar.Weeks(displayed) {
		for i, cell := range week {
			switch {
			case cell.IsBlank():
				fmt.Fprint(w, "  ")
			case sameMonth && cell.Day == today.Day:
				current.Fprintf(w, "%2d", cell.Day)
			default:
				day.Fprintf(w, "%2d", cell.Day)
			}
			if i < len(week)-1 {
				fmt.Fprint(w, " ")
			}
		}
		fmt.Fprintln(w)
	}
}
