package kernel_test

import (
	"fmt"
	"math"
	"testing"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeoPoint(t *testing.T) {
	t.Run("should create point with valid coordinates", func(t *testing.T) {
		testCases := []struct {
			lat float64
			lng float64
		}{
			{0, 0},
			{-33.8688, 151.2093},
			{-90, -180},
			{90, 180},
		}

		for _, tc := range testCases {
			t.Run(fmt.Sprintf("(%v,%v)", tc.lat, tc.lng), func(t *testing.T) {
				point, err := kernel.NewGeoPoint(tc.lat, tc.lng)

				require.NoError(t, err)
				assert.InDelta(t, tc.lat, point.Latitude(), 0)
				assert.InDelta(t, tc.lng, point.Longitude(), 0)
				require.NoError(t, point.Validate())
			})
		}
	})

	t.Run("should reject out-of-range coordinates", func(t *testing.T) {
		testCases := []struct {
			name string
			lat  float64
			lng  float64
		}{
			{"latitude above max", 90.01, 0},
			{"latitude below min", -90.01, 0},
			{"longitude above max", 0, 180.01},
			{"longitude below min", 0, -180.01},
			{"NaN latitude", math.NaN(), 0},
			{"NaN longitude", 0, math.NaN()},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := kernel.NewGeoPoint(tc.lat, tc.lng)

				require.Error(t, err)
				assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
			})
		}
	})

	t.Run("zero value should fail validation", func(t *testing.T) {
		var point kernel.GeoPoint

		err := point.Validate()

		require.Error(t, err)
		assert.Equal(t, kernel.ErrGeoPointIsNotConstructed, err)
	})
}

func TestGeoPoint_DistanceKm(t *testing.T) {
	t.Run("distance from a point to itself is zero", func(t *testing.T) {
		point, err := kernel.NewGeoPoint(-33.8688, 151.2093)
		require.NoError(t, err)

		d, err := point.DistanceKm(point)

		require.NoError(t, err)
		assert.InDelta(t, 0, d, 1e-9)
	})

	t.Run("distance is symmetric within tolerance", func(t *testing.T) {
		sydney, err := kernel.NewGeoPoint(-33.8688, 151.2093)
		require.NoError(t, err)
		parramatta, err := kernel.NewGeoPoint(-33.8150, 151.0011)
		require.NoError(t, err)

		d1, err := sydney.DistanceKm(parramatta)
		require.NoError(t, err)
		d2, err := parramatta.DistanceKm(sydney)
		require.NoError(t, err)

		assert.InDelta(t, d1, d2, 1e-6)
	})

	t.Run("should match known great-circle distances", func(t *testing.T) {
		// Sydney Opera House to Melbourne CBD is roughly 714 km.
		sydney, err := kernel.NewGeoPoint(-33.8568, 151.2153)
		require.NoError(t, err)
		melbourne, err := kernel.NewGeoPoint(-37.8136, 144.9631)
		require.NoError(t, err)

		d, err := sydney.DistanceKm(melbourne)

		require.NoError(t, err)
		assert.InDelta(t, 714, d, 5)
	})

	t.Run("one degree of latitude is about 111 km", func(t *testing.T) {
		a, err := kernel.NewGeoPoint(0, 0)
		require.NoError(t, err)
		b, err := kernel.NewGeoPoint(1, 0)
		require.NoError(t, err)

		d, err := a.DistanceKm(b)

		require.NoError(t, err)
		assert.InDelta(t, 111.19, d, 0.1)
	})

	t.Run("should reject unconstructed points", func(t *testing.T) {
		point, err := kernel.NewGeoPoint(10, 20)
		require.NoError(t, err)
		var zero kernel.GeoPoint

		_, err = point.DistanceKm(zero)

		require.Error(t, err)
	})
}

func TestGeoPoint_IsEqual(t *testing.T) {
	t.Run("points with identical coordinates are equal", func(t *testing.T) {
		a, err := kernel.NewGeoPoint(-33.8688, 151.2093)
		require.NoError(t, err)
		b, err := kernel.NewGeoPoint(-33.8688, 151.2093)
		require.NoError(t, err)

		equal, err := a.IsEqual(b)

		require.NoError(t, err)
		assert.True(t, equal)
	})

	t.Run("points with different coordinates are not equal", func(t *testing.T) {
		a, err := kernel.NewGeoPoint(-33.8688, 151.2093)
		require.NoError(t, err)
		b, err := kernel.NewGeoPoint(-33.8688, 151.2094)
		require.NoError(t, err)

		equal, err := a.IsEqual(b)

		require.NoError(t, err)
		assert.False(t, equal)
	})
}
