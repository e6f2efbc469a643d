package kernel_test

import (
	"testing"

	"fooddelivery/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLocation(t *testing.T) {
	t.Run("should create location from resolved point", func(t *testing.T) {
		point, err := kernel.NewGeoPoint(-33.8688, 151.2093)
		require.NoError(t, err)

		location, err := kernel.NewLocation(point, "Sydney", "NSW", "2000")

		require.NoError(t, err)
		assert.Equal(t, point, location.Point())
		assert.Equal(t, "Sydney", location.Suburb())
		assert.Equal(t, "NSW", location.State())
		assert.Equal(t, "2000", location.Postcode())
		require.NoError(t, location.Validate())
	})

	t.Run("should allow empty advisory fields", func(t *testing.T) {
		point, err := kernel.NewGeoPoint(-33.8688, 151.2093)
		require.NoError(t, err)

		location, err := kernel.NewLocation(point, "", "", "")

		require.NoError(t, err)
		assert.Empty(t, location.Suburb())
	})

	t.Run("should reject unconstructed point", func(t *testing.T) {
		var point kernel.GeoPoint

		_, err := kernel.NewLocation(point, "Sydney", "NSW", "2000")

		require.Error(t, err)
		assert.Equal(t, kernel.ErrGeoPointIsNotConstructed, err)
	})

	t.Run("zero value should fail validation", func(t *testing.T) {
		var location kernel.Location

		err := location.Validate()

		require.Error(t, err)
		assert.Equal(t, kernel.ErrLocationIsNotConstructed, err)
	})
}

func TestLocation_IsEqual(t *testing.T) {
	t.Run("equality ignores advisory fields", func(t *testing.T) {
		point, err := kernel.NewGeoPoint(-33.8688, 151.2093)
		require.NoError(t, err)

		a, err := kernel.NewLocation(point, "Sydney", "NSW", "2000")
		require.NoError(t, err)
		b, err := kernel.NewLocation(point, "The Rocks", "NSW", "2001")
		require.NoError(t, err)

		equal, err := a.IsEqual(b)

		require.NoError(t, err)
		assert.True(t, equal)
	})

	t.Run("different coordinates are never equal", func(t *testing.T) {
		p1, err := kernel.NewGeoPoint(-33.8688, 151.2093)
		require.NoError(t, err)
		p2, err := kernel.NewGeoPoint(-33.8689, 151.2093)
		require.NoError(t, err)

		a, err := kernel.NewLocation(p1, "Sydney", "NSW", "2000")
		require.NoError(t, err)
		b, err := kernel.NewLocation(p2, "Sydney", "NSW", "2000")
		require.NoError(t, err)

		equal, err := a.IsEqual(b)

		require.NoError(t, err)
		assert.False(t, equal)
	})
}
