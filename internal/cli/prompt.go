package cli

import (
	"errors"
	"fmt"

	"github.com/MikeBiancalana/datepick/internal/datemodel"
	"github.com/MikeBiancalana/datepick/internal/tui/components"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func (a *App) promptCmd() *cobra.Command {
	var accessible bool

	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Ask for a date with a single line prompt",
		Long: `A line oriented fallback for terminals where the full screen picker is not
usable. Input is validated exactly like the picker; the date is printed in
the configured format.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			text, err := a.runPromptForm(accessible)
			if err != nil {
				return err
			}
			d, err := a.check(text)
			if errors.Is(err, datemodel.ErrEmpty) {
				return nil
			}
			if err != nil {
				return err
			}
			opts := a.pickerOptions(a.cfg).Resolved()
			fmt.Fprintln(cmd.OutOrStdout(), datemodel.Format(d, opts.DateFormat))
			return nil
		},
	}

	cmd.Flags().BoolVar(&accessible, "accessible", false, "plain prompt for screen readers")
	return cmd
}

// runPromptForm runs a huh input that rejects text the picker would reject.
func (a *App) runPromptForm(accessible bool) (string, error) {
	opts := a.pickerOptions(a.cfg).Resolved()

	var text string
	if opts.ShowCurrentDateOnMount {
		text = datemodel.Format(datemodel.Today(opts.Now), opts.DateFormat)
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(opts.Label).
				Description(a.promptHint(opts)).
				Placeholder(opts.DateFormat).
				Value(&text).
				Validate(a.validatePrompt),
		),
	).WithAccessible(accessible)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", ErrCancelled
		}
		return "", fmt.Errorf("prompt failed: %w", err)
	}
	return text, nil
}

func (a *App) promptHint(opts components.Options) string {
	if opts.Shortcuts {
		return fmt.Sprintf("%s, or t, tm, fri, +2w", opts.DateFormat)
	}
	return opts.DateFormat
}

// validatePrompt returns the picker's user message as the error.
func (a *App) validatePrompt(text string) error {
	if _, err := a.check(text); err != nil {
		opts := a.pickerOptions(a.cfg).Resolved()
		if errors.Is(err, datemodel.ErrEmpty) && !opts.Required {
			return nil
		}
		return errors.New(datemodel.UserMessage(err, opts.ErrorMessage))
	}
	return nil
}
