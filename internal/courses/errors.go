package courses

import (
	"errors"
	"fmt"
)

// ErrMalformed is matched by every MalformedError.
var ErrMalformed = errors.New("malformed course")

// MalformedError means a course card did not have the shape the decoder expects,
// the card is skipped.
type MalformedError struct {
	// Slot names the region or field that was missing.
	Slot string
	Err  error
}

func (e *MalformedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed course: %s: %s", e.Slot, e.Err.Error())
	}
	return fmt.Sprintf("malformed course: missing %s", e.Slot)
}

func (e *MalformedError) Unwrap() error {
	return e.Err
}

func (e *MalformedError) Is(target error) bool {
	return target == ErrMalformed
}

func missing(slot string) error {
	return &MalformedError{Slot: slot}
}
