package order

import (
	"errors"
	"fmt"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

	// ErrIDAlreadyAssigned is returned when AssignID is called on an order
	// that already carries a persistent id.
	ErrIDAlreadyAssigned = errors.New("order id is already assigned")
)

// Order is the aggregate root coordinating one delivery across the three
// actor roles. It owns the canonical status and is the only mutation path
// for it: every status change goes through one of the role-gated transition
// methods below, and each method enforces both the transition table
// (shape) and the authorized actor (role + ownership).
//
// Invariants:
//   - total price == order price + delivery fee whenever the fee is known;
//     while geocoding is degraded the fee, and therefore the total, is
//     reported as unknown rather than defaulted
//   - order price == sum of quantity x unit price over the order lines
//   - pickup time is set if and only if the status has reached PickedUp
//   - delivery time is set if and only if the status is Delivered
//   - Delivered and Cancelled orders accept no further mutation
type Order struct {
	// id is the persistent identifier, assigned by the store on first save.
	// Zero until then, immutable after.
	id int64

	customerID   int64
	restaurantID int64

	// driverID is nil until a driver claims the order. The claim itself is
	// a compare-and-set at the store; Claim only validates and applies the
	// in-memory effect.
	driverID *int64

	status Status

	deliveryAddress   kernel.Address
	restaurantAddress kernel.Address

	// deliveryLocation and restaurantLocation are nil while geocoding is
	// unresolved. Distance and fee stay unknown until both are present.
	deliveryLocation   *kernel.Location
	restaurantLocation *kernel.Location

	orderPrice  float64
	deliveryFee *float64

	items []Item

	orderTime    time.Time
	pickupTime   *time.Time
	deliveryTime *time.Time

	customerNotes   string
	restaurantNotes string

	isConstructed bool
}

// NewOrder creates a Pending order at customer checkout. The order price is
// derived from the order lines; the caller's declared subtotal is checked
// against it at the application boundary, not here.
//
// Parameters:
//   - customerID, restaurantID: owning actor ids (must be positive)
//   - deliveryAddress: validated delivery address
//   - restaurantAddress: validated pickup address, kept so fee resolution
//     can be retried later if geocoding is degraded at checkout
//   - items: at least one order line
//   - customerNotes: optional free-form note for the restaurant
//   - orderTime: creation timestamp, immutable afterwards
func NewOrder(
	customerID int64,
	restaurantID int64,
	deliveryAddress kernel.Address,
	restaurantAddress kernel.Address,
	items []Item,
	customerNotes string,
	orderTime time.Time,
) (*Order, error) {
	o := &Order{
		status:        Pending,
		customerNotes: customerNotes,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setCustomerID(customerID),
		o.setRestaurantID(restaurantID),
		o.setDeliveryAddress(deliveryAddress),
		o.setRestaurantAddress(restaurantAddress),
		o.setItems(items),
		o.setOrderTime(orderTime),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an order from persistence. It revalidates every
// component and the consistency rules between status, driver assignment and
// the recorded timestamps, so corrupted rows cannot become live aggregates.
func RestoreOrder(
	id int64,
	customerID int64,
	restaurantID int64,
	driverID *int64,
	status Status,
	deliveryAddress kernel.Address,
	restaurantAddress kernel.Address,
	deliveryLocation *kernel.Location,
	restaurantLocation *kernel.Location,
	deliveryFee *float64,
	items []Item,
	orderTime time.Time,
	pickupTime *time.Time,
	deliveryTime *time.Time,
	customerNotes string,
	restaurantNotes string,
) (*Order, error) {
	if id <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("order id", fmt.Errorf("%d is not a positive id", id))
	}

	if err := status.Validate(); err != nil {
		return nil, err
	}

	if err := status.ValidateCanHaveDriver(driverID != nil); err != nil {
		return nil, err
	}

	if (pickupTime != nil) != statusReached(status, PickedUp) {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"pickup time",
			fmt.Errorf("inconsistent with status %s", status),
		)
	}

	if (deliveryTime != nil) != (status == Delivered) {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"delivery time",
			fmt.Errorf("inconsistent with status %s", status),
		)
	}

	o := &Order{
		status:          status,
		driverID:        driverID,
		pickupTime:      pickupTime,
		deliveryTime:    deliveryTime,
		customerNotes:   customerNotes,
		restaurantNotes: restaurantNotes,
		isConstructed:   true,
	}
	o.id = id

	if err := errors.Join(
		o.setCustomerID(customerID),
		o.setRestaurantID(restaurantID),
		o.setDeliveryAddress(deliveryAddress),
		o.setRestaurantAddress(restaurantAddress),
		o.setItems(items),
		o.setOrderTime(orderTime),
	); err != nil {
		return nil, err
	}

	if deliveryLocation != nil {
		if err := o.SetDeliveryLocation(*deliveryLocation); err != nil {
			return nil, err
		}
	}
	if restaurantLocation != nil {
		if err := o.SetRestaurantLocation(*restaurantLocation); err != nil {
			return nil, err
		}
	}
	if deliveryFee != nil {
		if err := o.setDeliveryFee(*deliveryFee); err != nil {
			return nil, err
		}
	}

	return o, nil
}

// Validate ensures the Order was constructed through NewOrder or
// RestoreOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their persistent identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id != 0 && o.id == other.id
}

// ID returns the persistent order id (0 until first save).
func (o *Order) ID() int64 { return o.id }

// CustomerID returns the owning customer's id.
func (o *Order) CustomerID() int64 { return o.customerID }

// RestaurantID returns the owning restaurant's id.
func (o *Order) RestaurantID() int64 { return o.restaurantID }

// Driver returns the assigned driver's id, or nil if unclaimed.
func (o *Order) Driver() *int64 { return o.driverID }

// Status returns the current lifecycle status.
func (o *Order) Status() Status { return o.status }

// DeliveryAddress returns the delivery address captured at checkout.
func (o *Order) DeliveryAddress() kernel.Address { return o.deliveryAddress }

// RestaurantAddress returns the pickup address supplied at checkout.
func (o *Order) RestaurantAddress() kernel.Address { return o.restaurantAddress }

// DeliveryLocation returns the resolved delivery location, or nil while
// geocoding is unresolved.
func (o *Order) DeliveryLocation() *kernel.Location { return o.deliveryLocation }

// RestaurantLocation returns the resolved restaurant location, or nil while
// geocoding is unresolved.
func (o *Order) RestaurantLocation() *kernel.Location { return o.restaurantLocation }

// OrderPrice returns the items subtotal.
func (o *Order) OrderPrice() float64 { return o.orderPrice }

// DeliveryFee returns the delivery fee and whether it is known yet.
func (o *Order) DeliveryFee() (float64, bool) {
	if o.deliveryFee == nil {
		return 0, false
	}
	return *o.deliveryFee, true
}

// TotalPrice returns order price + delivery fee, and whether the total is
// known. The total is unknown exactly while the fee is unresolved.
func (o *Order) TotalPrice() (float64, bool) {
	fee, ok := o.DeliveryFee()
	if !ok {
		return 0, false
	}
	return o.orderPrice + fee, true
}

// Items returns a copy of the order lines.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

// OrderTime returns the creation timestamp.
func (o *Order) OrderTime() time.Time { return o.orderTime }

// PickupTime returns when the driver collected the order, or nil.
func (o *Order) PickupTime() *time.Time { return o.pickupTime }

// DeliveryTime returns when the order was delivered, or nil.
func (o *Order) DeliveryTime() *time.Time { return o.deliveryTime }

// CustomerNotes returns the customer's checkout note.
func (o *Order) CustomerNotes() string { return o.customerNotes }

// RestaurantNotes returns the restaurant's note.
func (o *Order) RestaurantNotes() string { return o.restaurantNotes }

// AssignID records the store-assigned id after the first save. The id is
// immutable: a second call fails with ErrIDAlreadyAssigned.
func (o *Order) AssignID(id int64) error {
	if o.id != 0 {
		return ErrIDAlreadyAssigned
	}
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("order id", fmt.Errorf("%d is not a positive id", id))
	}

	o.id = id
	return nil
}

// SetDeliveryLocation records the geocoded delivery location. Resolution
// converges a degraded order; it is not permitted once the order is
// terminal.
func (o *Order) SetDeliveryLocation(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}
	if o.status.IsTerminal() {
		return NewInvalidTransitionError(o.status, o.status)
	}

	o.deliveryLocation = &location
	return nil
}

// SetRestaurantLocation records the geocoded restaurant location.
func (o *Order) SetRestaurantLocation(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}
	if o.status.IsTerminal() {
		return NewInvalidTransitionError(o.status, o.status)
	}

	o.restaurantLocation = &location
	return nil
}

// ResolveDeliveryFee sets the fee once geocoding succeeds. The fee can be
// resolved at most once and never on a terminal order; the total price
// becomes known at the same moment.
func (o *Order) ResolveDeliveryFee(fee float64) error {
	if o.deliveryFee != nil {
		return errs.NewValueIsInvalidError("delivery fee is already resolved")
	}
	if o.status.IsTerminal() {
		return NewInvalidTransitionError(o.status, o.status)
	}

	return o.setDeliveryFee(fee)
}

// Accept transitions Pending -> RestaurantAccepted. Only the restaurant
// that owns the order may accept it.
func (o *Order) Accept(actor kernel.Actor) error {
	return o.applyTransition(actor, RestaurantAccepted, func() error {
		if !actor.Is(kernel.RoleRestaurant) || actor.ID() != o.restaurantID {
			return NewForbiddenError(actor.Role(), o.status, RestaurantAccepted)
		}
		return nil
	}, nil)
}

// MarkReady transitions RestaurantAccepted -> ReadyForPickup. Only the
// owning restaurant may mark the food ready.
func (o *Order) MarkReady(actor kernel.Actor) error {
	return o.applyTransition(actor, ReadyForPickup, func() error {
		if !actor.Is(kernel.RoleRestaurant) || actor.ID() != o.restaurantID {
			return NewForbiddenError(actor.Role(), o.status, ReadyForPickup)
		}
		return nil
	}, nil)
}

// Cancel transitions a non-terminal order to Cancelled. From Pending the
// owning customer or the owning restaurant may cancel; from
// RestaurantAccepted only the owning restaurant may.
func (o *Order) Cancel(actor kernel.Actor) error {
	return o.applyTransition(actor, Cancelled, func() error {
		switch {
		case actor.Is(kernel.RoleCustomer) && actor.ID() == o.customerID && o.status == Pending:
			return nil
		case actor.Is(kernel.RoleRestaurant) && actor.ID() == o.restaurantID:
			return nil
		default:
			return NewForbiddenError(actor.Role(), o.status, Cancelled)
		}
	}, nil)
}

// Claim records a driver's self-assignment: driverID goes from nil to the
// caller's id. Claiming is allowed while the order is RestaurantAccepted or
// ReadyForPickup and no driver holds it yet. The authoritative
// compare-and-set happens at the store; this method validates and applies
// the in-memory effect, and a lost race surfaces as ErrAlreadyAssigned.
func (o *Order) Claim(actor kernel.Actor) error {
	if err := errors.Join(o.Validate(), actor.Validate()); err != nil {
		return err
	}

	if !actor.Is(kernel.RoleDriver) {
		return NewForbiddenError(actor.Role(), o.status, PickedUp)
	}

	if o.driverID != nil {
		return ErrAlreadyAssigned
	}

	if o.status != RestaurantAccepted && o.status != ReadyForPickup {
		// Claiming is the first half of the PickedUp edge.
		return NewInvalidTransitionError(o.status, PickedUp)
	}

	driverID := actor.ID()
	o.driverID = &driverID
	return nil
}

// Pickup transitions ReadyForPickup -> PickedUp and records the pickup
// time. Only the assigned driver may pick the order up.
func (o *Order) Pickup(actor kernel.Actor, now time.Time) error {
	return o.applyTransition(actor, PickedUp, func() error {
		if !o.isAssignedDriver(actor) {
			return NewForbiddenError(actor.Role(), o.status, PickedUp)
		}
		return nil
	}, func() {
		o.pickupTime = &now
	})
}

// Deliver transitions PickedUp -> Delivered and records the delivery time.
// Only the assigned driver may complete the delivery.
func (o *Order) Deliver(actor kernel.Actor, now time.Time) error {
	return o.applyTransition(actor, Delivered, func() error {
		if !o.isAssignedDriver(actor) {
			return NewForbiddenError(actor.Role(), o.status, Delivered)
		}
		return nil
	}, func() {
		o.deliveryTime = &now
	})
}

// TransitionTo dispatches a generic transition request to the role-gated
// method for the target status. It backs the HTTP transition endpoint,
// where the target arrives as data rather than as a method call.
func (o *Order) TransitionTo(actor kernel.Actor, target Status, now time.Time) error {
	switch target {
	case RestaurantAccepted:
		return o.Accept(actor)
	case ReadyForPickup:
		return o.MarkReady(actor)
	case Cancelled:
		return o.Cancel(actor)
	case PickedUp:
		return o.Pickup(actor, now)
	case Delivered:
		return o.Deliver(actor, now)
	case Pending, Unknown:
		return NewInvalidTransitionError(o.status, target)
	default:
		return NewInvalidTransitionError(o.status, target)
	}
}

// applyTransition runs the common transition sequence: validate the order
// and actor, check the transition table, check the edge's authorization,
// then apply the status change and side effect. Shape is checked before
// authorization so an impossible transition reports InvalidTransition for
// every actor, as the table defines.
func (o *Order) applyTransition(actor kernel.Actor, target Status, authorize func() error, sideEffect func()) error {
	if err := errors.Join(o.Validate(), actor.Validate()); err != nil {
		return err
	}

	newStatus, err := o.status.TransitionTo(target)
	if err != nil {
		return err
	}

	if err = authorize(); err != nil {
		return err
	}

	o.status = newStatus
	if sideEffect != nil {
		sideEffect()
	}
	return nil
}

func (o *Order) isAssignedDriver(actor kernel.Actor) bool {
	return actor.Is(kernel.RoleDriver) && o.driverID != nil && *o.driverID == actor.ID()
}

func (o *Order) setCustomerID(customerID int64) error {
	if customerID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"customer id",
			fmt.Errorf("%d is not a positive id", customerID),
		)
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setRestaurantID(restaurantID int64) error {
	if restaurantID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"restaurant id",
			fmt.Errorf("%d is not a positive id", restaurantID),
		)
	}
	o.restaurantID = restaurantID
	return nil
}

func (o *Order) setRestaurantAddress(address kernel.Address) error {
	if err := address.Validate(); err != nil {
		return err
	}

	o.restaurantAddress = address
	return nil
}

func (o *Order) setDeliveryAddress(address kernel.Address) error {
	if err := address.Validate(); err != nil {
		return err
	}
	o.deliveryAddress = address
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("order items")
	}

	total := 0.0
	copied := make([]Item, len(items))
	for i, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
		copied[i] = item
		total += item.LineTotal()
	}

	o.items = copied
	o.orderPrice = total
	return nil
}

func (o *Order) setOrderTime(orderTime time.Time) error {
	if orderTime.IsZero() {
		return errs.NewValueIsRequiredError("order time")
	}
	o.orderTime = orderTime
	return nil
}

func (o *Order) setDeliveryFee(fee float64) error {
	if fee < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"delivery fee",
			fmt.Errorf("%v is negative", fee),
		)
	}
	o.deliveryFee = &fee
	return nil
}

// statusReached reports whether s is at or past the milestone in the happy
// path ordering. Cancelled orders count as reached only for milestones they
// actually passed, which restore handles via the recorded timestamps.
func statusReached(s Status, milestone Status) bool {
	if s == Cancelled {
		return false
	}
	return s >= milestone
}
