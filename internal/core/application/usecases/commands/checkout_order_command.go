package commands

import (
	"errors"
	"math"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/guard"
)

var (
	ErrCheckoutOrderCommandIsNotConstructed = errors.New(
		"CheckoutOrderCommand must be created via NewCheckoutOrderCommand constructor",
	)
	ErrCustomerIDIsInvalid   = errors.New("customer id must be greater than 0")
	ErrRestaurantIDIsInvalid = errors.New("restaurant id must be greater than 0")
	ErrItemsAreRequired      = errors.New("at least one order line is required")
	ErrSubtotalMismatch      = errors.New("declared subtotal does not match the order lines")
)

// subtotalTolerance absorbs float rounding between the client's declared
// subtotal and the sum of the order lines.
const subtotalTolerance = 0.005

// CheckoutOrderCommand represents a customer's request to place an order
// with a restaurant. Carries the delivery and pickup addresses and the
// order lines; the declared subtotal cross-checks the lines.
type CheckoutOrderCommand struct { //nolint:recvcheck //using for validation
	customerID        int64
	restaurantID      int64
	deliveryAddress   kernel.Address
	restaurantAddress kernel.Address
	items             []order.Item
	customerNotes     string

	guard guard.ConstructorGuard
}

// NewCheckoutOrderCommand creates a command to place a new order.
// Validates actor ids, both addresses, the order lines, and that the
// declared subtotal matches the sum of the lines.
func NewCheckoutOrderCommand(
	customerID int64,
	restaurantID int64,
	deliveryAddress kernel.Address,
	restaurantAddress kernel.Address,
	items []order.Item,
	declaredSubtotal float64,
	customerNotes string,
) (CheckoutOrderCommand, error) {
	cmd := CheckoutOrderCommand{
		customerNotes: customerNotes,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomerID(customerID),
		cmd.setRestaurantID(restaurantID),
		cmd.setDeliveryAddress(deliveryAddress),
		cmd.setRestaurantAddress(restaurantAddress),
		cmd.setItems(items, declaredSubtotal),
	); err != nil {
		return CheckoutOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCheckoutOrderCommandIsNotConstructed if validation fails.
func (c CheckoutOrderCommand) Validate() error {
	return c.guard.Validate(ErrCheckoutOrderCommandIsNotConstructed)
}

// CustomerID returns the id of the ordering customer.
func (c CheckoutOrderCommand) CustomerID() int64 {
	return c.customerID
}

// RestaurantID returns the id of the restaurant receiving the order.
func (c CheckoutOrderCommand) RestaurantID() int64 {
	return c.restaurantID
}

// DeliveryAddress returns the address the order is delivered to.
func (c CheckoutOrderCommand) DeliveryAddress() kernel.Address {
	return c.deliveryAddress
}

// RestaurantAddress returns the pickup address.
func (c CheckoutOrderCommand) RestaurantAddress() kernel.Address {
	return c.restaurantAddress
}

// Items returns the order lines.
func (c CheckoutOrderCommand) Items() []order.Item {
	items := make([]order.Item, len(c.items))
	copy(items, c.items)
	return items
}

// CustomerNotes returns the optional note for the restaurant.
func (c CheckoutOrderCommand) CustomerNotes() string {
	return c.customerNotes
}

func (c *CheckoutOrderCommand) setCustomerID(customerID int64) error {
	if customerID <= 0 {
		return ErrCustomerIDIsInvalid
	}

	c.customerID = customerID
	return nil
}

func (c *CheckoutOrderCommand) setRestaurantID(restaurantID int64) error {
	if restaurantID <= 0 {
		return ErrRestaurantIDIsInvalid
	}

	c.restaurantID = restaurantID
	return nil
}

func (c *CheckoutOrderCommand) setDeliveryAddress(address kernel.Address) error {
	if err := address.Validate(); err != nil {
		return err
	}

	c.deliveryAddress = address
	return nil
}

func (c *CheckoutOrderCommand) setRestaurantAddress(address kernel.Address) error {
	if err := address.Validate(); err != nil {
		return err
	}

	c.restaurantAddress = address
	return nil
}

func (c *CheckoutOrderCommand) setItems(items []order.Item, declaredSubtotal float64) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}

	var sum float64
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
		sum += item.LineTotal()
	}

	if math.Abs(sum-declaredSubtotal) > subtotalTolerance {
		return ErrSubtotalMismatch
	}

	c.items = make([]order.Item, len(items))
	copy(c.items, items)
	return nil
}
