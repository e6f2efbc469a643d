package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"
)

var (
	ErrClaimOrderCommandIsNotConstructed = errors.New(
		"ClaimOrderCommand must be created via NewClaimOrderCommand constructor",
	)
	ErrActorIsNotDriver = errors.New("only a driver can claim an order")
)

// ClaimOrderCommand represents a driver's request to self-assign an open
// order. The assignment is first come, first served: the store performs
// the atomic compare-and-set.
type ClaimOrderCommand struct { //nolint:recvcheck //using for validation
	orderID int64
	driver  kernel.Actor

	guard guard.ConstructorGuard
}

// NewClaimOrderCommand creates a command for a driver to claim an order.
// Validates the order id and that the actor is a driver.
func NewClaimOrderCommand(orderID int64, driver kernel.Actor) (ClaimOrderCommand, error) {
	cmd := ClaimOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setDriver(driver),
	); err != nil {
		return ClaimOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ClaimOrderCommand) Validate() error {
	return c.guard.Validate(ErrClaimOrderCommandIsNotConstructed)
}

// OrderID returns the id of the order to claim.
func (c ClaimOrderCommand) OrderID() int64 {
	return c.orderID
}

// Driver returns the claiming driver.
func (c ClaimOrderCommand) Driver() kernel.Actor {
	return c.driver
}

func (c *ClaimOrderCommand) setOrderID(orderID int64) error {
	if orderID <= 0 {
		return ErrOrderIDIsInvalid
	}

	c.orderID = orderID
	return nil
}

func (c *ClaimOrderCommand) setDriver(driver kernel.Actor) error {
	if err := driver.Validate(); err != nil {
		return err
	}
	if !driver.Is(kernel.RoleDriver) {
		return ErrActorIsNotDriver
	}

	c.driver = driver
	return nil
}
