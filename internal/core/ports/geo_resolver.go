package ports

import (
	"context"
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
)

// ErrResolutionFailed is returned when an address or coordinate cannot be
// resolved by the geocoding provider: no match, ambiguous match, or a
// provider failure.
var ErrResolutionFailed = errors.New("geo resolution failed")

// GeoResolver translates between street addresses and geographic
// locations through an external geocoding provider.
type GeoResolver interface {
	// ResolveAddress geocodes a street address into a location. Returns
	// an error wrapping ErrResolutionFailed when the provider cannot
	// produce a single confident match.
	ResolveAddress(ctx context.Context, address kernel.Address) (kernel.Location, error)

	// ResolveCoordinate reverse-geocodes a point into a location with
	// suburb, state and postcode filled in. Returns an error wrapping
	// ErrResolutionFailed when the point matches no known locality.
	ResolveCoordinate(ctx context.Context, point kernel.GeoPoint) (kernel.Location, error)
}
