package commands

import (
	"errors"

	"fooddelivery/internal/pkg/guard"
)

var ErrResolvePendingFeesCommandIsNotConstructed = errors.New(
	"ResolvePendingFeesCommand must be created via NewResolvePendingFeesCommand constructor",
)

// ResolvePendingFeesCommand represents a request to retry fee resolution
// for orders whose geocoding was degraded at checkout. Carries no data;
// the handler discovers the affected orders itself.
type ResolvePendingFeesCommand struct {
	guard guard.ConstructorGuard
}

// NewResolvePendingFeesCommand creates a command to resolve pending fees.
func NewResolvePendingFeesCommand() (ResolvePendingFeesCommand, error) {
	return ResolvePendingFeesCommand{
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ResolvePendingFeesCommand) Validate() error {
	return c.guard.Validate(ErrResolvePendingFeesCommandIsNotConstructed)
}
