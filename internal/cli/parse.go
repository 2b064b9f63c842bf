package cli

import (
	"errors"
	"strings"

	"github.com/MikeBiancalana/datepick/internal/datemodel"
	"github.com/MikeBiancalana/datepick/internal/tui/components"
	"github.com/spf13/cobra"
)

// ErrInvalidDate is returned by commands whose input failed validation. The
// user-facing message has already been printed.
var ErrInvalidDate = errors.New("invalid date")

// ParseResult is the outcome of running text through the picker's
// validation.
type ParseResult struct {
	Input     string `json:"input"`
	Valid     bool   `json:"valid"`
	Empty     bool   `json:"empty,omitempty"`
	Date      string `json:"date,omitempty"`
	Formatted string `json:"formatted,omitempty"`
	Error     string `json:"error,omitempty"`
}

func (a *App) parseCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "parse <text>",
		Short: "Validate a date the way the picker does",
		Long: `Run text through the same validation as the picker input and print the
date as yyyy-mm-dd, or the message the picker would show. Blank text prints
an empty line and succeeds unless --required is set.

Examples:
  datepick parse 15/03/2024
  datepick parse --format yyyy-MM-dd 2024-03-15
  datepick parse -o json tomorrow`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseOutputFormat(output)
			if err != nil {
				return err
			}

			res := a.parse(strings.Join(args, " "))
			if err := writeParseResults(cmd.OutOrStdout(), format, []ParseResult{res}); err != nil {
				return err
			}
			if !res.Valid && !res.Empty {
				return ErrInvalidDate
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "text", "output format (text, json, tsv, csv)")
	return cmd
}

// check validates text with the resolved picker options. Shortcuts, when
// enabled, are tried first as they are on Enter in the picker.
func (a *App) check(text string) (datemodel.CalendarDate, error) {
	opts := a.pickerOptions(a.cfg).Resolved()

	if opts.Shortcuts {
		today := datemodel.Today(opts.Now)
		if d, err := components.ExpandShortcut(text, today); err == nil {
			if err := datemodel.Validate(d, opts.YearRange()); err != nil {
				return datemodel.CalendarDate{}, err
			}
			return d, nil
		}
	}

	return datemodel.Check(text, opts.DateFormat, opts.YearRange())
}

func (a *App) parse(text string) ParseResult {
	opts := a.pickerOptions(a.cfg).Resolved()
	res := ParseResult{Input: text}

	d, err := a.check(text)
	// Blank text is the picker's silent empty state unless a date is
	// required.
	if errors.Is(err, datemodel.ErrEmpty) && !opts.Required {
		res.Empty = true
		return res
	}
	if err != nil {
		res.Error = datemodel.UserMessage(err, opts.ErrorMessage)
		return res
	}
	res.Valid = true
	res.Date = d.String()
	res.Formatted = datemodel.Format(d, opts.DateFormat)
	return res
}
