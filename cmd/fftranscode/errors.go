package main

import (
	"errors"
	"fmt"
)

// errMissingInput reports the one configuration error that exits with
// status 1 before any child is spawned.
var errMissingInput = errors.New("input file must be set")

// engineExitError carries a non-zero engine exit code through the command
// layer so main can propagate it verbatim.
type engineExitError struct {
	code int
}

func (e *engineExitError) Error() string {
	return fmt.Sprintf("engine exited with code %d", e.code)
}
