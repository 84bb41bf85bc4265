package fetch

import (
	"errors"
	"fmt"
)

// Reason classifies why a fetch failed. Callers treat every reason the same
// way; the distinction exists for logs and metrics.
type Reason string

const (
	ReasonNetwork Reason = "network"
	ReasonStatus  Reason = "status"
	ReasonBody    Reason = "body"
)

// ErrMissingMarkdown is wrapped when the body decodes but has no markdown field.
var ErrMissingMarkdown = errors.New("response has no markdown field")

// Error is the single failure kind of a markdown fetch.
type Error struct {
	Reason Reason
	URL    string
	Status int
	Err    error
}

func (e *Error) Error() string {
	switch e.Reason {
	case ReasonStatus:
		return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.Status)
	default:
		return fmt.Sprintf("fetch %s: %s: %v", e.URL, e.Reason, e.Err)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// ReasonOf returns the reason of a fetch error, or "" when err is not one.
func ReasonOf(err error) Reason {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Reason
	}
	return ""
}
