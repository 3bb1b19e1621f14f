package main

import (
	"errors"
	"fmt"
	"os"

	"covgate/cmd/covgate/app"
)

func main() {
	err := app.NewCovgateCommand().Execute()
	if err == nil {
		return
	}

	var exitErr *app.ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Msg != "" {
			fmt.Fprintf(os.Stderr, "error: %s\n", exitErr.Msg)
		}
		os.Exit(exitErr.Code)
	}

	// Anything else (bad flags, unknown subcommand) is an invocation
	// failure.
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(3)
}
