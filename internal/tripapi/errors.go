package tripapi

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrUnavailable indicates the Trip Service could not be reached.
	ErrUnavailable = errors.New("trip service unavailable")

	// ErrTimeout indicates the request exceeded the configured timeout.
	ErrTimeout = errors.New("trip service request timed out")

	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("resource not found")
)

// APIError is a non-2xx response from the Trip Service. Detail preserves
// the service's structured validation payload verbatim so callers can
// surface it to the user.
type APIError struct {
	Op     string
	Status int
	Detail json.RawMessage
}

func (e *APIError) Error() string {
	if len(e.Detail) > 0 {
		return fmt.Sprintf("%s: trip service returned status %d: %s", e.Op, e.Status, e.Detail)
	}
	return fmt.Sprintf("%s: trip service returned status %d", e.Op, e.Status)
}

// Is lets errors.Is match 404 responses against ErrNotFound.
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.Status == 404
}
