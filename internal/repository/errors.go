package repository

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownUser means the referenced account row does not exist.
	ErrUnknownUser = errors.New("unknown user")
	// ErrDuplicateContent means the image hash was already accepted once.
	ErrDuplicateContent = errors.New("duplicate content")
	// ErrEmailTaken means an account with that email already exists.
	ErrEmailTaken = errors.New("email already registered")
)

// CooldownError rejects a claim made before the cooldown window since
// the user's last accepted scan has elapsed.
type CooldownError struct {
	RemainingSeconds int
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("cooldown active: %ds remaining", e.RemainingSeconds)
}
