package services_test

import (
	"testing"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const driverID int64 = 33

func viewerActor(t *testing.T, role kernel.Role, id int64) kernel.Actor {
	t.Helper()
	a, err := kernel.NewActor(role, id)
	require.NoError(t, err)
	return a
}

func assigned() *int64 {
	id := driverID
	return &id
}

func TestDecideVisibility_Customer(t *testing.T) {
	customer := viewerActor(t, kernel.RoleCustomer, 11)

	t.Run("sees restaurant but no maps and no driver before assignment", func(t *testing.T) {
		hints := services.DecideVisibility(order.RestaurantAccepted, nil, customer)

		assert.False(t, hints.ShowOverviewMap)
		assert.False(t, hints.ShowRouteMap)
		assert.True(t, hints.ShowRestaurantDetails)
		assert.False(t, hints.ShowDriverDetails)
		assert.False(t, hints.ShowCustomerDetails)
	})

	t.Run("sees the driver once assigned", func(t *testing.T) {
		hints := services.DecideVisibility(order.PickedUp, assigned(), customer)

		assert.True(t, hints.ShowDriverDetails)
		assert.False(t, hints.ShowRouteMap)
	})
}

func TestDecideVisibility_Restaurant(t *testing.T) {
	restaurant := viewerActor(t, kernel.RoleRestaurant, 22)

	hints := services.DecideVisibility(order.ReadyForPickup, assigned(), restaurant)

	assert.True(t, hints.ShowCustomerDetails)
	assert.True(t, hints.ShowDriverDetails)
	assert.False(t, hints.ShowOverviewMap)
	assert.False(t, hints.ShowRouteMap)
	assert.False(t, hints.ShowRestaurantDetails)
}

func TestDecideVisibility_UnassignedDriver(t *testing.T) {
	driver := viewerActor(t, kernel.RoleDriver, driverID)

	t.Run("sees claimable orders on the overview map", func(t *testing.T) {
		for _, status := range []order.Status{order.RestaurantAccepted, order.ReadyForPickup} {
			hints := services.DecideVisibility(status, nil, driver)

			assert.True(t, hints.ShowOverviewMap, status.String())
			assert.False(t, hints.ShowRouteMap, status.String())
			assert.True(t, hints.ShowRestaurantDetails, status.String())
			assert.True(t, hints.ShowCustomerDetails,
				"delivery address is part of judging the trip (%s)", status)
		}
	})

	t.Run("sees nothing on pending or terminal orders", func(t *testing.T) {
		for _, status := range []order.Status{order.Pending, order.Cancelled} {
			hints := services.DecideVisibility(status, nil, driver)

			assert.Equal(t, services.RenderHints{}, hints, status.String())
		}
	})

	t.Run("sees nothing once another driver holds the order", func(t *testing.T) {
		other := viewerActor(t, kernel.RoleDriver, driverID+1)

		hints := services.DecideVisibility(order.ReadyForPickup, assigned(), other)

		assert.Equal(t, services.RenderHints{}, hints)
	})
}

func TestDecideVisibility_AssignedDriver(t *testing.T) {
	driver := viewerActor(t, kernel.RoleDriver, driverID)

	t.Run("routes to the restaurant before pickup", func(t *testing.T) {
		for _, status := range []order.Status{order.RestaurantAccepted, order.ReadyForPickup} {
			hints := services.DecideVisibility(status, assigned(), driver)

			assert.True(t, hints.ShowRouteMap, status.String())
			assert.Equal(t, services.RouteDriverToRestaurant, hints.RouteMode, status.String())
			assert.True(t, hints.ShowRestaurantDetails, status.String())
			assert.True(t, hints.ShowCustomerDetails,
				"the assigned driver sees the customer before pickup too (%s)", status)
			assert.False(t, hints.ShowOverviewMap, status.String())
		}
	})

	t.Run("routes to the customer after pickup", func(t *testing.T) {
		hints := services.DecideVisibility(order.PickedUp, assigned(), driver)

		assert.True(t, hints.ShowRouteMap)
		assert.Equal(t, services.RouteRestaurantToCustomer, hints.RouteMode)
		assert.True(t, hints.ShowCustomerDetails)
		assert.False(t, hints.ShowRestaurantDetails)
	})

	t.Run("sees details but no maps once delivered", func(t *testing.T) {
		hints := services.DecideVisibility(order.Delivered, assigned(), driver)

		assert.False(t, hints.ShowRouteMap)
		assert.False(t, hints.ShowOverviewMap)
		assert.True(t, hints.ShowCustomerDetails)
		assert.True(t, hints.ShowRestaurantDetails)
	})
}
