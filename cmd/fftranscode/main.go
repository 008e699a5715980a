package main

import (
	"errors"
	"fmt"
	"os"

	"fftranscode/internal/supervisor"
)

func main() {
	cmd := newRootCommand()
	err := cmd.Execute()
	if err == nil {
		return
	}

	var engineErr *engineExitError
	switch {
	case errors.As(err, &engineErr):
		// The engine's own exit code is the overall result; it was already
		// logged by the supervisor.
		os.Exit(engineErr.code)
	case errors.Is(err, supervisor.ErrCancelled):
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	default:
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
