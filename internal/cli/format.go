package cli

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/MikeBiancalana/datepick/internal/datemodel"
	"github.com/MikeBiancalana/datepick/internal/tui/components"
	"github.com/spf13/cobra"
)

type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatTSV  OutputFormat = "tsv"
	FormatCSV  OutputFormat = "csv"
)

func parseOutputFormat(s string) (OutputFormat, error) {
	switch strings.ToLower(s) {
	case "", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "tsv":
		return FormatTSV, nil
	case "csv":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("unsupported format: %s (supported: text, json, tsv, csv)", s)
	}
}

func writeParseResults(w io.Writer, format OutputFormat, results []ParseResult) error {
	switch format {
	case FormatJSON:
		if len(results) == 1 {
			return json.NewEncoder(w).Encode(results[0])
		}
		return json.NewEncoder(w).Encode(results)
	case FormatTSV:
		return formatResultsTSV(w, results)
	case FormatCSV:
		return formatResultsCSV(w, results)
	default:
		for _, r := range results {
			if r.Valid {
				fmt.Fprintln(w, r.Date)
			} else {
				fmt.Fprintln(w, r.Error)
			}
		}
		return nil
	}
}

func formatResultsTSV(w io.Writer, results []ParseResult) error {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', tabwriter.TabIndent)
	fmt.Fprintln(tw, "INPUT\tVALID\tDATE\tERROR")
	for _, r := range results {
		date := "-"
		if r.Valid {
			date = r.Date
		}
		fmt.Fprintf(tw, "%s\t%t\t%s\t%s\n", r.Input, r.Valid, date, r.Error)
	}
	return tw.Flush()
}

func formatResultsCSV(w io.Writer, results []ParseResult) error {
	cw := csv.NewWriter(w)
	cw.Write([]string{"INPUT", "VALID", "DATE", "ERROR"})
	for _, r := range results {
		record := []string{r.Input, fmt.Sprint(r.Valid), r.Date, r.Error}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func (a *App) formatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "format <yyyy-mm-dd>...",
		Short: "Format ISO dates with the configured date format",
		Long: `Print each yyyy-mm-dd argument in the date format given by --format or
the config file. Shortcuts such as "today" or "+1w" are accepted too.

Example:
  datepick format --format dd.MM.yyyy 2024-03-15`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := a.pickerOptions(a.cfg).Resolved()
			today := datemodel.Today(opts.Now)

			for _, arg := range args {
				d, err := parseISO(arg, today, opts.Shortcuts)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), datemodel.Format(d, opts.DateFormat))
			}
			return nil
		},
	}
}

// parseISO reads a yyyy-mm-dd argument, or a shortcut when allowed.
func parseISO(arg string, today datemodel.CalendarDate, shortcuts bool) (datemodel.CalendarDate, error) {
	if d, ok := datemodel.ParseFormat(strings.TrimSpace(arg), "yyyy-MM-dd"); ok {
		return d, nil
	}
	if shortcuts {
		if d, err := components.ExpandShortcut(arg, today); err == nil {
			return d, nil
		}
	}
	return datemodel.CalendarDate{}, &datemodel.ParseError{Text: arg, Pattern: "yyyy-MM-dd"}
}
