package services

import (
	"fmt"
	"math"

	"fooddelivery/internal/pkg/errs"
)

// Delivery fee bands in dollars. Band boundaries are inclusive on the
// upper edge: a 5.0 km route is still the cheapest band.
const (
	feeBandNear    = 5.0
	feeBandMid     = 10.0
	feeBandFar     = 15.0
	feeNear        = 5.0
	feeMid         = 10.0
	feeFar         = 15.0
	feeBeyond      = 20.0
)

// CalculateDeliveryFee maps a route distance in kilometres to a flat
// delivery fee using the step function:
//
//	distance <= 5  -> $5
//	distance <= 10 -> $10
//	distance <= 15 -> $15
//	distance > 15  -> $20
//
// Parameters:
//   - distanceKm: route distance in kilometres, must be a finite
//     non-negative number.
//
// Returns the fee in dollars, or an error for a negative or non-finite
// distance.
func CalculateDeliveryFee(distanceKm float64) (float64, error) {
	if math.IsNaN(distanceKm) || math.IsInf(distanceKm, 0) {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"distance",
			fmt.Errorf("%v is not a finite number", distanceKm),
		)
	}
	if distanceKm < 0 {
		return 0, errs.NewValueIsOutOfRangeError("distance", distanceKm, 0, math.MaxFloat64)
	}

	switch {
	case distanceKm <= feeBandNear:
		return feeNear, nil
	case distanceKm <= feeBandMid:
		return feeMid, nil
	case distanceKm <= feeBandFar:
		return feeFar, nil
	default:
		return feeBeyond, nil
	}
}
