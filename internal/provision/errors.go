package provision

import (
	"errors"
	"fmt"
)

// ErrInvalidNumber is returned when a numeric VM shape field cannot be parsed
// as a positive integer. It ends the wizard run.
var ErrInvalidNumber = errors.New("invalid number")

// SubmitError reports a create call the cluster did not accept.
type SubmitError struct {
	StatusCode int
	Body       string
}

func (e *SubmitError) Error() string {
	return fmt.Sprintf("VM creation failed with status %d: %s", e.StatusCode, e.Body)
}
