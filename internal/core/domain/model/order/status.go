package order

import (
	"fmt"

	"fooddelivery/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions so orders follow
// the delivery workflow:
//
//	PENDING ──> RESTAURANT_ACCEPTED ──> READY_FOR_PICKUP ──> PICKED_UP ──> DELIVERED
//	   │                │
//	   └────────────────┴──> CANCELLED
//
// PENDING is the sole initial state; DELIVERED and CANCELLED are terminal.
// Status only answers whether a transition shape is legal; which actor may
// perform it is enforced by the Order aggregate.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status set at customer checkout.
	// The order waits for the restaurant to accept or cancel it.
	Pending

	// RestaurantAccepted indicates the restaurant confirmed the order and
	// is preparing it. Drivers may already claim the order in this status.
	RestaurantAccepted

	// ReadyForPickup indicates the food is ready and waiting for a driver.
	ReadyForPickup

	// PickedUp indicates the assigned driver collected the order.
	PickedUp

	// Delivered indicates the driver completed the delivery. Terminal.
	Delivered

	// Cancelled indicates the order was cancelled before preparation
	// finished. Terminal.
	Cancelled
)

// getStatusStrings returns the wire representation of every Status value.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:            "UNKNOWN",
		Pending:            "PENDING",
		RestaurantAccepted: "RESTAURANT_ACCEPTED",
		ReadyForPickup:     "READY_FOR_PICKUP",
		PickedUp:           "PICKED_UP",
		Delivered:          "DELIVERED",
		Cancelled:          "CANCELLED",
	}
}

// getValidStatusStrings returns only the statuses an order may legally hold.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:            "PENDING",
		RestaurantAccepted: "RESTAURANT_ACCEPTED",
		ReadyForPickup:     "READY_FOR_PICKUP",
		PickedUp:           "PICKED_UP",
		Delivered:          "DELIVERED",
		Cancelled:          "CANCELLED",
	}
}

// transitionTable maps each status to the statuses reachable from it.
// A (from, to) pair outside this table is an invalid transition no matter
// which actor requests it.
func transitionTable() map[Status][]Status {
	return map[Status][]Status{
		Pending:            {RestaurantAccepted, Cancelled},
		RestaurantAccepted: {ReadyForPickup, Cancelled},
		ReadyForPickup:     {PickedUp},
		PickedUp:           {Delivered},
		Delivered:          {},
		Cancelled:          {},
	}
}

// StatusFromString parses the wire representation of a status
// (e.g. "READY_FOR_PICKUP"). Unknown strings yield an error.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}

	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("%q is not a valid status", s),
	)
}

// Validate checks if the Status value is one an order may legally hold.
// Unknown (0) and any out-of-range value are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%d is not a valid status", s),
		)
	}
	return nil
}

// String returns the wire representation of the status ("PENDING",
// "RESTAURANT_ACCEPTED", ...). Implements fmt.Stringer and is safe on any
// value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether the status permits no further transitions.
// Delivered and Cancelled orders are immutable.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// CanTransitionTo reports whether the (s, target) pair appears in the
// transition table. It answers shape legality only; actor authorization is
// the Order aggregate's concern.
func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range transitionTable()[s] {
		if next == target {
			return true
		}
	}
	return false
}

// NextStatuses returns the statuses reachable from s. Used to surface the
// currently valid actions after a rejected transition.
func (s Status) NextStatuses() []Status {
	next := transitionTable()[s]
	out := make([]Status, len(next))
	copy(out, next)
	return out
}

// TransitionTo validates the (s, target) pair against the transition table
// and returns the new status.
//
// Returns:
//   - (target, nil) when the transition shape is legal
//   - (Unknown, *InvalidTransitionError) otherwise
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return Unknown, err
	}

	if !s.CanTransitionTo(target) {
		return Unknown, NewInvalidTransitionError(s, target)
	}

	return target, nil
}

// ValidateCanHaveDriver validates the consistency between order status and
// driver assignment when restoring an order from persistence.
//
// Rules:
//   - Pending orders must not have a driver assigned
//   - PickedUp and Delivered orders must have a driver assigned
//   - RestaurantAccepted and ReadyForPickup orders may have either
func (s Status) ValidateCanHaveDriver(hasDriver bool) error {
	if hasDriver && s == Pending {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s order cannot have a driver", s),
		)
	}

	if !hasDriver && (s == PickedUp || s == Delivered) {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s order must have a driver", s),
		)
	}

	return nil
}
