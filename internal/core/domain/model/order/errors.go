package order

import (
	"errors"
	"fmt"

	"fooddelivery/internal/core/domain/model/kernel"
)

// Sentinel errors for classifying transition failures with errors.Is.
var (
	// ErrInvalidTransition marks a transition whose (from, to) pair is not
	// in the transition table. Surfaced to the actor together with the
	// currently valid actions; never retried automatically.
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrForbidden marks a transition requested by an actor not authorized
	// for that edge. Surfaced, never retried.
	ErrForbidden = errors.New("forbidden")

	// ErrAlreadyAssigned marks a lost driver self-assignment race: another
	// driver claimed the order first. Clients surface it as "order no
	// longer available" and refresh their list instead of retrying.
	ErrAlreadyAssigned = errors.New("order already assigned to another driver")
)

// InvalidTransitionError reports that the requested status is not reachable
// from the current one, naming both states.
type InvalidTransitionError struct {
	From Status
	To   Status
}

// NewInvalidTransitionError creates an InvalidTransitionError for the given
// state pair.
func NewInvalidTransitionError(from Status, to Status) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition: %s -> %s", e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// ForbiddenError reports that the acting role or identity is not authorized
// for the requested transition edge.
type ForbiddenError struct {
	Role kernel.Role
	From Status
	To   Status
}

// NewForbiddenError creates a ForbiddenError for the given actor role and
// state pair.
func NewForbiddenError(role kernel.Role, from Status, to Status) *ForbiddenError {
	return &ForbiddenError{Role: role, From: from, To: to}
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("forbidden: %s may not transition %s -> %s", e.Role, e.From, e.To)
}

func (e *ForbiddenError) Unwrap() error {
	return ErrForbidden
}
