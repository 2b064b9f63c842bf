package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/MikeBiancalana/datepick/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		// The message for these has already been shown.
		if !errors.Is(err, cli.ErrCancelled) && !errors.Is(err, cli.ErrInvalidDate) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}
