package kernel

import (
	"errors"
	"fmt"

	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

// ErrAddressIsNotConstructed is returned when an Address was not created
// through NewAddress.
var ErrAddressIsNotConstructed = errs.NewValueIsRequiredError(
	"Address must be created via NewAddress constructor")

// validStates holds the Australian state and territory codes accepted for
// delivery addresses.
func validStates() map[string]struct{} {
	return map[string]struct{}{
		"ACT": {}, "NSW": {}, "NT": {}, "QLD": {},
		"SA": {}, "TAS": {}, "VIC": {}, "WA": {},
	}
}

// Address is a structured postal address owned by a customer profile, a
// restaurant profile, or supplied ad-hoc at checkout. It must validate
// before use: the state must be a recognized Australian state code and the
// postcode a 4-digit national postal code.
//
// Example:
//
//	addr, err := kernel.NewAddress("1 George St", "Sydney", "NSW", "2000")
//	if err != nil {
//	    // handle validation error
//	}
//	fmt.Println(addr.FullString()) // "1 George St, Sydney, NSW, 2000"
type Address struct { //nolint:recvcheck //using for validation
	street   string
	suburb   string
	state    string
	postcode string
	guard    guard.ConstructorGuard
}

// NewAddress creates a validated Address. Street and suburb must be
// non-empty, state must be a valid Australian state code, and postcode must
// be exactly four digits.
func NewAddress(street string, suburb string, state string, postcode string) (Address, error) {
	address := Address{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		address.setStreet(street),
		address.setSuburb(suburb),
		address.setState(state),
		address.setPostcode(postcode),
	); err != nil {
		return Address{}, err
	}

	return address, nil
}

// Validate checks that the Address was created through NewAddress.
func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

// Street returns the street line of the address.
func (a Address) Street() string {
	return a.street
}

// Suburb returns the suburb of the address.
func (a Address) Suburb() string {
	return a.suburb
}

// State returns the Australian state code of the address.
func (a Address) State() string {
	return a.state
}

// Postcode returns the 4-digit postcode of the address.
func (a Address) Postcode() string {
	return a.postcode
}

// FullString renders the address as a single geocodable line in the
// "{street}, {suburb}, {state}, {postcode}" format the resolver sends to
// the provider.
func (a Address) FullString() string {
	return fmt.Sprintf("%s, %s, %s, %s", a.street, a.suburb, a.state, a.postcode)
}

// IsEqual reports whether two addresses share all four components.
func (a Address) IsEqual(other Address) (bool, error) {
	if err := errors.Join(a.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return a == other, nil
}

func (a *Address) setStreet(street string) error {
	if street == "" {
		return errs.NewValueIsRequiredError("street")
	}

	a.street = street
	return nil
}

func (a *Address) setSuburb(suburb string) error {
	if suburb == "" {
		return errs.NewValueIsRequiredError("suburb")
	}

	a.suburb = suburb
	return nil
}

func (a *Address) setState(state string) error {
	if _, ok := validStates()[state]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"state",
			fmt.Errorf("%q is not an Australian state code", state),
		)
	}

	a.state = state
	return nil
}

func (a *Address) setPostcode(postcode string) error {
	if len(postcode) != 4 {
		return errs.NewValueIsInvalidErrorWithCause(
			"postcode",
			fmt.Errorf("%q is not a 4-digit postcode", postcode),
		)
	}

	for _, r := range postcode {
		if r < '0' || r > '9' {
			return errs.NewValueIsInvalidErrorWithCause(
				"postcode",
				fmt.Errorf("%q is not a 4-digit postcode", postcode),
			)
		}
	}

	a.postcode = postcode
	return nil
}
