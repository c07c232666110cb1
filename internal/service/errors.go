package service

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnavailable wraps failures of the backing store or the external
	// classifier; callers may retry the whole attempt.
	ErrUnavailable = errors.New("external service unavailable")
)

// IneligibleError means the classifier result did not map to a
// recyclable category, or the low-confidence downgrade applied. The
// user can retry with a different photo.
type IneligibleError struct {
	Reason   string
	Category string
	RawLabel string
}

func (e *IneligibleError) Error() string {
	return fmt.Sprintf("scan not eligible (%s): %s", e.Reason, e.RawLabel)
}
