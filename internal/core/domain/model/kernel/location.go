package kernel

import (
	"fmt"

	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

// ErrLocationIsNotConstructed is returned when a Location was not created
// through NewLocation.
var ErrLocationIsNotConstructed = errs.NewValueIsRequiredError(
	"Location must be created via NewLocation constructor")

// Location is the result of resolving an address or coordinate pair through
// a geocoding provider: a validated GeoPoint plus advisory display fields.
// Suburb, state and postcode are carried for presentation only and take no
// part in equality: two locations are equal exactly when their coordinates
// are.
type Location struct { //nolint:recvcheck //using for validation
	point    GeoPoint
	suburb   string
	state    string
	postcode string
	guard    guard.ConstructorGuard
}

// NewLocation creates a Location from a resolved coordinate point and the
// advisory display fields returned by the provider. The display fields may
// be empty; the point must be a constructed GeoPoint.
func NewLocation(point GeoPoint, suburb string, state string, postcode string) (Location, error) {
	if err := point.Validate(); err != nil {
		return Location{}, err
	}

	return Location{
		point:    point,
		suburb:   suburb,
		state:    state,
		postcode: postcode,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate checks that the Location was created through NewLocation.
func (l Location) Validate() error {
	return l.guard.Validate(ErrLocationIsNotConstructed)
}

// Point returns the resolved coordinates.
func (l Location) Point() GeoPoint {
	return l.point
}

// Suburb returns the advisory suburb name. May be empty.
func (l Location) Suburb() string {
	return l.suburb
}

// State returns the advisory state code. May be empty.
func (l Location) State() string {
	return l.state
}

// Postcode returns the advisory postcode. May be empty.
func (l Location) Postcode() string {
	return l.postcode
}

// IsEqual reports whether two locations resolve to the same coordinates.
// The advisory display fields are ignored.
func (l Location) IsEqual(other Location) (bool, error) {
	if err := l.Validate(); err != nil {
		return false, err
	}
	if err := other.Validate(); err != nil {
		return false, err
	}

	return l.point.IsEqual(other.point)
}

// String implements fmt.Stringer.
func (l Location) String() string {
	return fmt.Sprintf("Location(%f,%f,%s)", l.point.Latitude(), l.point.Longitude(), l.suburb)
}
