package kernel

import (
	"fmt"

	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

// Role identifies which kind of actor is interacting with an order.
// Every state-machine transition and every visibility decision takes the
// acting role explicitly; there is no ambient "current user".
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	RoleUnknown Role = iota

	// RoleCustomer places orders and may cancel them before acceptance.
	RoleCustomer

	// RoleRestaurant accepts, prepares and may cancel orders it owns.
	RoleRestaurant

	// RoleDriver claims, picks up and delivers orders.
	RoleDriver
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:    "UNKNOWN",
		RoleCustomer:   "CUSTOMER",
		RoleRestaurant: "RESTAURANT",
		RoleDriver:     "DRIVER",
	}
}

// RoleFromString parses the wire representation of a role
// ("CUSTOMER", "RESTAURANT", "DRIVER"). Unknown strings yield an error.
func RoleFromString(s string) (Role, error) {
	for role, str := range getRoleStrings() {
		if role != RoleUnknown && str == s {
			return role, nil
		}
	}

	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause(
		"role",
		fmt.Errorf("%q is not a valid role", s),
	)
}

// Validate checks that the Role is one of the three defined actor roles.
func (r Role) Validate() error {
	if r != RoleCustomer && r != RoleRestaurant && r != RoleDriver {
		return errs.NewValueIsInvalidErrorWithCause(
			"role",
			fmt.Errorf("%d is not a valid role", r),
		)
	}
	return nil
}

// String returns the wire representation of the role.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "UNKNOWN"
}

// ErrActorIsNotConstructed is returned when an Actor was not created
// through NewActor.
var ErrActorIsNotConstructed = errs.NewValueIsRequiredError(
	"Actor must be created via NewActor constructor")

// Actor is the explicit identity performing an operation: a role plus the
// id of the customer, restaurant or driver record behind it. Session
// authentication is an external collaborator; the HTTP layer constructs an
// Actor from the already-authenticated identity headers.
type Actor struct { //nolint:recvcheck //using for validation
	role  Role
	id    int64
	guard guard.ConstructorGuard
}

// NewActor creates an Actor with a validated role and positive id.
func NewActor(role Role, id int64) (Actor, error) {
	if err := role.Validate(); err != nil {
		return Actor{}, err
	}

	if id <= 0 {
		return Actor{}, errs.NewValueIsInvalidErrorWithCause(
			"actor id",
			fmt.Errorf("%d is not a positive id", id),
		)
	}

	return Actor{
		role:  role,
		id:    id,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate checks that the Actor was created through NewActor.
func (a Actor) Validate() error {
	return a.guard.Validate(ErrActorIsNotConstructed)
}

// Role returns the actor's role.
func (a Actor) Role() Role {
	return a.role
}

// ID returns the actor's identity within its role.
func (a Actor) ID() int64 {
	return a.id
}

// Is reports whether the actor has the given role.
func (a Actor) Is(role Role) bool {
	return a.role == role
}

// String implements fmt.Stringer.
func (a Actor) String() string {
	return fmt.Sprintf("%s(%d)", a.role, a.id)
}
