package dataset

import (
	"errors"
	"fmt"
)

// Typed load failures. Every one of them is handled the same way by the
// Store: a user-visible error notice plus the demo-data fallback.
var (
	// ErrNotFound means no candidate path held a data file.
	ErrNotFound = errors.New("data file not found")
	// ErrEmpty means the file parsed to zero data rows.
	ErrEmpty = errors.New("data file is empty")
)

// MissingColumnError reports a required column absent from the file header.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("required column %q not found in data", e.Column)
}
