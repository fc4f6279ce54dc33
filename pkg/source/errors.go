package source

import (
	"errors"
	"fmt"
)

// ErrNotArray indicates a response body that decodes to something other
// than a JSON array
var ErrNotArray = errors.New("source: response is not a JSON array")

// StatusError reports a non-2xx upstream response
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	if e.Status == "" {
		return fmt.Sprintf("upstream returned status %d", e.Code)
	}
	return fmt.Sprintf("upstream returned %s", e.Status)
}
