package order

import (
	"errors"
	"fmt"

	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

// ErrItemIsNotConstructed is returned when an Item was not created through
// NewItem.
var ErrItemIsNotConstructed = errs.NewValueIsRequiredError(
	"Item must be created via NewItem constructor")

// Item is one order line: a menu item reference, the ordered quantity and
// the unit price captured at checkout time. The price is frozen on the line
// because menu prices may change after the order is placed.
type Item struct { //nolint:recvcheck //using for validation
	menuItemID int64
	quantity   int
	unitPrice  float64
	guard      guard.ConstructorGuard
}

// NewItem creates an order line. The menu item id and quantity must be
// positive; the unit price must not be negative.
func NewItem(menuItemID int64, quantity int, unitPrice float64) (Item, error) {
	item := Item{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setMenuItemID(menuItemID),
		item.setQuantity(quantity),
		item.setUnitPrice(unitPrice),
	); err != nil {
		return Item{}, err
	}

	return item, nil
}

// Validate checks that the Item was created through NewItem.
func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

// MenuItemID returns the referenced menu item id.
func (i Item) MenuItemID() int64 {
	return i.menuItemID
}

// Quantity returns the ordered quantity.
func (i Item) Quantity() int {
	return i.quantity
}

// UnitPrice returns the per-unit price captured at checkout.
func (i Item) UnitPrice() float64 {
	return i.unitPrice
}

// LineTotal returns quantity times unit price.
func (i Item) LineTotal() float64 {
	return float64(i.quantity) * i.unitPrice
}

func (i *Item) setMenuItemID(menuItemID int64) error {
	if menuItemID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"menu item id",
			fmt.Errorf("%d is not a positive id", menuItemID),
		)
	}

	i.menuItemID = menuItemID
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity",
			fmt.Errorf("%d is not greater than 0", quantity),
		)
	}

	i.quantity = quantity
	return nil
}

func (i *Item) setUnitPrice(unitPrice float64) error {
	if unitPrice < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"unit price",
			fmt.Errorf("%v is negative", unitPrice),
		)
	}

	i.unitPrice = unitPrice
	return nil
}
