package order_test

import (
	"testing"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	customerID   int64 = 11
	restaurantID int64 = 22
	driverID     int64 = 33
)

func testAddress(t *testing.T) kernel.Address {
	t.Helper()
	address, err := kernel.NewAddress("1 George St", "Sydney", "NSW", "2000")
	require.NoError(t, err)
	return address
}

func testRestaurantAddress(t *testing.T) kernel.Address {
	t.Helper()
	address, err := kernel.NewAddress("5 Church St", "Parramatta", "NSW", "2150")
	require.NoError(t, err)
	return address
}

func testItems(t *testing.T) []order.Item {
	t.Helper()
	burger, err := order.NewItem(101, 2, 12.50)
	require.NoError(t, err)
	fries, err := order.NewItem(102, 1, 17.50)
	require.NoError(t, err)
	return []order.Item{burger, fries}
}

func testLocation(t *testing.T, lat, lng float64) kernel.Location {
	t.Helper()
	point, err := kernel.NewGeoPoint(lat, lng)
	require.NoError(t, err)
	location, err := kernel.NewLocation(point, "Sydney", "NSW", "2000")
	require.NoError(t, err)
	return location
}

func newPendingOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(customerID, restaurantID, testAddress(t), testRestaurantAddress(t), testItems(t), "ring the bell", time.Now())
	require.NoError(t, err)
	return o
}

func actor(t *testing.T, role kernel.Role, id int64) kernel.Actor {
	t.Helper()
	a, err := kernel.NewActor(role, id)
	require.NoError(t, err)
	return a
}

// advance moves a fresh pending order to the requested status using the
// authorized actors, claiming with the default driver where needed.
func advance(t *testing.T, o *order.Order, target order.Status) {
	t.Helper()
	restaurant := actor(t, kernel.RoleRestaurant, restaurantID)
	driver := actor(t, kernel.RoleDriver, driverID)

	steps := []func() error{
		func() error { return o.Accept(restaurant) },
		func() error { return o.MarkReady(restaurant) },
		func() error {
			if err := o.Claim(driver); err != nil {
				return err
			}
			return o.Pickup(driver, time.Now())
		},
		func() error { return o.Deliver(driver, time.Now()) },
	}
	targets := []order.Status{order.RestaurantAccepted, order.ReadyForPickup, order.PickedUp, order.Delivered}

	for i, step := range steps {
		if o.Status() == target {
			return
		}
		require.NoError(t, step())
		require.Equal(t, targets[i], o.Status())
	}
}

func TestNewOrder(t *testing.T) {
	t.Run("should create pending order with derived subtotal", func(t *testing.T) {
		o := newPendingOrder(t)

		assert.Equal(t, order.Pending, o.Status())
		assert.Nil(t, o.Driver())
		assert.InDelta(t, 42.50, o.OrderPrice(), 1e-9)
		assert.Equal(t, customerID, o.CustomerID())
		assert.Equal(t, restaurantID, o.RestaurantID())
		assert.Nil(t, o.PickupTime())
		assert.Nil(t, o.DeliveryTime())

		_, known := o.DeliveryFee()
		assert.False(t, known, "fee must be unknown before resolution")
		_, known = o.TotalPrice()
		assert.False(t, known, "total must be unknown while fee is pending")
	})

	t.Run("should reject empty item list", func(t *testing.T) {
		_, err := order.NewOrder(customerID, restaurantID, testAddress(t), testRestaurantAddress(t), nil, "", time.Now())
		require.Error(t, err)
	})

	t.Run("should reject non-positive owner ids", func(t *testing.T) {
		_, err := order.NewOrder(0, restaurantID, testAddress(t), testRestaurantAddress(t), testItems(t), "", time.Now())
		require.Error(t, err)

		_, err = order.NewOrder(customerID, -1, testAddress(t), testRestaurantAddress(t), testItems(t), "", time.Now())
		require.Error(t, err)
	})

	t.Run("should reject zero order time", func(t *testing.T) {
		_, err := order.NewOrder(customerID, restaurantID, testAddress(t), testRestaurantAddress(t), testItems(t), "", time.Time{})
		require.Error(t, err)
	})

	t.Run("not constructed order should fail validation", func(t *testing.T) {
		var o order.Order
		require.Error(t, o.Validate())
		assert.Equal(t, order.ErrOrderIsNotConstructed, o.Validate())
	})
}

func TestOrder_AssignID(t *testing.T) {
	o := newPendingOrder(t)

	require.NoError(t, o.AssignID(42))
	assert.Equal(t, int64(42), o.ID())

	err := o.AssignID(43)
	require.Error(t, err)
	assert.Equal(t, order.ErrIDAlreadyAssigned, err)
	assert.Equal(t, int64(42), o.ID())
}

func TestOrder_FeeResolution(t *testing.T) {
	t.Run("resolving the fee makes the total known", func(t *testing.T) {
		o := newPendingOrder(t)

		require.NoError(t, o.ResolveDeliveryFee(10))

		fee, known := o.DeliveryFee()
		require.True(t, known)
		assert.InDelta(t, 10, fee, 1e-9)

		total, known := o.TotalPrice()
		require.True(t, known)
		assert.InDelta(t, 52.50, total, 1e-9)
	})

	t.Run("fee cannot be resolved twice", func(t *testing.T) {
		o := newPendingOrder(t)
		require.NoError(t, o.ResolveDeliveryFee(10))

		require.Error(t, o.ResolveDeliveryFee(15))

		fee, _ := o.DeliveryFee()
		assert.InDelta(t, 10, fee, 1e-9)
	})

	t.Run("negative fee is rejected", func(t *testing.T) {
		o := newPendingOrder(t)
		require.Error(t, o.ResolveDeliveryFee(-1))
	})

	t.Run("terminal order rejects fee resolution", func(t *testing.T) {
		o := newPendingOrder(t)
		require.NoError(t, o.Cancel(actor(t, kernel.RoleCustomer, customerID)))

		require.Error(t, o.ResolveDeliveryFee(10))
	})
}

func TestOrder_Accept(t *testing.T) {
	t.Run("owning restaurant accepts pending order", func(t *testing.T) {
		o := newPendingOrder(t)

		require.NoError(t, o.Accept(actor(t, kernel.RoleRestaurant, restaurantID)))
		assert.Equal(t, order.RestaurantAccepted, o.Status())
	})

	t.Run("every other actor is forbidden", func(t *testing.T) {
		attempts := []kernel.Actor{
			actor(t, kernel.RoleCustomer, customerID),
			actor(t, kernel.RoleDriver, driverID),
			actor(t, kernel.RoleRestaurant, restaurantID+1),
		}

		for _, a := range attempts {
			o := newPendingOrder(t)

			err := o.Accept(a)

			require.Error(t, err)
			assert.ErrorIs(t, err, order.ErrForbidden)
			assert.Equal(t, order.Pending, o.Status())
		}
	})

	t.Run("accept outside pending is an invalid transition", func(t *testing.T) {
		o := newPendingOrder(t)
		advance(t, o, order.ReadyForPickup)

		err := o.Accept(actor(t, kernel.RoleRestaurant, restaurantID))

		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrInvalidTransition)
	})
}

func TestOrder_Cancel(t *testing.T) {
	t.Run("customer cancels own pending order", func(t *testing.T) {
		o := newPendingOrder(t)

		require.NoError(t, o.Cancel(actor(t, kernel.RoleCustomer, customerID)))
		assert.Equal(t, order.Cancelled, o.Status())
	})

	t.Run("restaurant cancels pending and accepted orders", func(t *testing.T) {
		restaurant := actor(t, kernel.RoleRestaurant, restaurantID)

		pending := newPendingOrder(t)
		require.NoError(t, pending.Cancel(restaurant))

		accepted := newPendingOrder(t)
		advance(t, accepted, order.RestaurantAccepted)
		require.NoError(t, accepted.Cancel(restaurant))
	})

	t.Run("customer cannot cancel after acceptance", func(t *testing.T) {
		o := newPendingOrder(t)
		advance(t, o, order.RestaurantAccepted)

		err := o.Cancel(actor(t, kernel.RoleCustomer, customerID))

		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrForbidden)
	})

	t.Run("driver can never cancel", func(t *testing.T) {
		o := newPendingOrder(t)

		err := o.Cancel(actor(t, kernel.RoleDriver, driverID))

		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrForbidden)
	})

	t.Run("cancel after ready for pickup is an invalid transition", func(t *testing.T) {
		o := newPendingOrder(t)
		advance(t, o, order.ReadyForPickup)

		err := o.Cancel(actor(t, kernel.RoleRestaurant, restaurantID))

		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrInvalidTransition)
	})
}

func TestOrder_Claim(t *testing.T) {
	t.Run("driver claims accepted unassigned order", func(t *testing.T) {
		o := newPendingOrder(t)
		advance(t, o, order.RestaurantAccepted)

		require.NoError(t, o.Claim(actor(t, kernel.RoleDriver, driverID)))

		require.NotNil(t, o.Driver())
		assert.Equal(t, driverID, *o.Driver())
		assert.Equal(t, order.RestaurantAccepted, o.Status(), "claim must not change status")
	})

	t.Run("second claim fails with already assigned", func(t *testing.T) {
		o := newPendingOrder(t)
		advance(t, o, order.ReadyForPickup)
		require.NoError(t, o.Claim(actor(t, kernel.RoleDriver, driverID)))

		err := o.Claim(actor(t, kernel.RoleDriver, driverID+1))

		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrAlreadyAssigned)
		assert.Equal(t, driverID, *o.Driver())
	})

	t.Run("non-driver cannot claim", func(t *testing.T) {
		o := newPendingOrder(t)
		advance(t, o, order.ReadyForPickup)

		err := o.Claim(actor(t, kernel.RoleCustomer, customerID))

		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrForbidden)
	})

	t.Run("pending order is not claimable", func(t *testing.T) {
		o := newPendingOrder(t)

		err := o.Claim(actor(t, kernel.RoleDriver, driverID))

		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrInvalidTransition)
	})
}

func TestOrder_Pickup(t *testing.T) {
	t.Run("assigned driver picks up and pickup time is recorded", func(t *testing.T) {
		o := newPendingOrder(t)
		advance(t, o, order.ReadyForPickup)
		require.NoError(t, o.Claim(actor(t, kernel.RoleDriver, driverID)))

		now := time.Now()
		require.NoError(t, o.Pickup(actor(t, kernel.RoleDriver, driverID), now))

		assert.Equal(t, order.PickedUp, o.Status())
		require.NotNil(t, o.PickupTime())
		assert.Equal(t, now, *o.PickupTime())
		assert.Nil(t, o.DeliveryTime())
	})

	t.Run("unassigned driver is forbidden", func(t *testing.T) {
		o := newPendingOrder(t)
		advance(t, o, order.ReadyForPickup)
		require.NoError(t, o.Claim(actor(t, kernel.RoleDriver, driverID)))

		err := o.Pickup(actor(t, kernel.RoleDriver, driverID+1), time.Now())

		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrForbidden)
		assert.Nil(t, o.PickupTime())
	})

	t.Run("pickup before ready is an invalid transition", func(t *testing.T) {
		o := newPendingOrder(t)
		advance(t, o, order.RestaurantAccepted)
		require.NoError(t, o.Claim(actor(t, kernel.RoleDriver, driverID)))

		err := o.Pickup(actor(t, kernel.RoleDriver, driverID), time.Now())

		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrInvalidTransition)
	})
}

func TestOrder_Deliver(t *testing.T) {
	t.Run("assigned driver delivers and delivery time is recorded", func(t *testing.T) {
		o := newPendingOrder(t)
		advance(t, o, order.PickedUp)

		now := time.Now()
		require.NoError(t, o.Deliver(actor(t, kernel.RoleDriver, driverID), now))

		assert.Equal(t, order.Delivered, o.Status())
		require.NotNil(t, o.DeliveryTime())
		assert.Equal(t, now, *o.DeliveryTime())
	})

	t.Run("other driver is forbidden", func(t *testing.T) {
		o := newPendingOrder(t)
		advance(t, o, order.PickedUp)

		err := o.Deliver(actor(t, kernel.RoleDriver, driverID+1), time.Now())

		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrForbidden)
	})

	t.Run("delivered order accepts no further transition", func(t *testing.T) {
		o := newPendingOrder(t)
		advance(t, o, order.Delivered)

		err := o.Deliver(actor(t, kernel.RoleDriver, driverID), time.Now())

		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrInvalidTransition)
	})
}

func TestOrder_TransitionTo(t *testing.T) {
	t.Run("dispatches to the role-gated methods", func(t *testing.T) {
		o := newPendingOrder(t)
		restaurant := actor(t, kernel.RoleRestaurant, restaurantID)
		driver := actor(t, kernel.RoleDriver, driverID)

		require.NoError(t, o.TransitionTo(restaurant, order.RestaurantAccepted, time.Now()))
		require.NoError(t, o.TransitionTo(restaurant, order.ReadyForPickup, time.Now()))
		require.NoError(t, o.Claim(driver))
		require.NoError(t, o.TransitionTo(driver, order.PickedUp, time.Now()))
		require.NoError(t, o.TransitionTo(driver, order.Delivered, time.Now()))

		assert.Equal(t, order.Delivered, o.Status())
		assert.NotNil(t, o.PickupTime())
		assert.NotNil(t, o.DeliveryTime())
	})

	t.Run("transition to pending is always invalid", func(t *testing.T) {
		o := newPendingOrder(t)

		err := o.TransitionTo(actor(t, kernel.RoleRestaurant, restaurantID), order.Pending, time.Now())

		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrInvalidTransition)
	})
}

func TestOrder_EndToEndScenario(t *testing.T) {
	// order_price=42.50, distance 7.3 km -> fee=10 -> total=52.50
	o := newPendingOrder(t)
	require.NoError(t, o.ResolveDeliveryFee(10))

	total, known := o.TotalPrice()
	require.True(t, known)
	assert.InDelta(t, 52.50, total, 1e-9)

	// accept by driver fails with Forbidden, by restaurant succeeds
	err := o.Accept(actor(t, kernel.RoleDriver, driverID))
	require.ErrorIs(t, err, order.ErrForbidden)
	require.NoError(t, o.Accept(actor(t, kernel.RoleRestaurant, restaurantID)))

	require.NoError(t, o.MarkReady(actor(t, kernel.RoleRestaurant, restaurantID)))
	require.NoError(t, o.Claim(actor(t, kernel.RoleDriver, driverID)))

	// pickup requires the calling driver to be the assigned driver
	err = o.Pickup(actor(t, kernel.RoleDriver, driverID+1), time.Now())
	require.ErrorIs(t, err, order.ErrForbidden)

	require.NoError(t, o.Pickup(actor(t, kernel.RoleDriver, driverID), time.Now()))
	assert.NotNil(t, o.PickupTime())
}

func TestRestoreOrder(t *testing.T) {
	items := func() []order.Item { return testItems(t) }
	now := time.Now()
	fee := 10.0

	t.Run("should restore a consistent picked up order", func(t *testing.T) {
		driver := driverID
		pickup := now
		deliveryLoc := testLocation(t, -33.8688, 151.2093)
		restaurantLoc := testLocation(t, -33.8150, 151.0011)

		o, err := order.RestoreOrder(
			7, customerID, restaurantID, &driver, order.PickedUp,
			testAddress(t), testRestaurantAddress(t), &deliveryLoc, &restaurantLoc, &fee,
			items(), now, &pickup, nil, "note", "reply",
		)

		require.NoError(t, err)
		assert.Equal(t, int64(7), o.ID())
		assert.Equal(t, order.PickedUp, o.Status())
		assert.Equal(t, driverID, *o.Driver())
		require.NotNil(t, o.DeliveryLocation())
		require.NotNil(t, o.RestaurantLocation())
		total, known := o.TotalPrice()
		require.True(t, known)
		assert.InDelta(t, 52.50, total, 1e-9)
	})

	t.Run("should reject picked up order without driver", func(t *testing.T) {
		pickup := now

		_, err := order.RestoreOrder(
			7, customerID, restaurantID, nil, order.PickedUp,
			testAddress(t), testRestaurantAddress(t), nil, nil, nil,
			items(), now, &pickup, nil, "", "",
		)

		require.Error(t, err)
	})

	t.Run("should reject pending order with driver", func(t *testing.T) {
		driver := driverID

		_, err := order.RestoreOrder(
			7, customerID, restaurantID, &driver, order.Pending,
			testAddress(t), testRestaurantAddress(t), nil, nil, nil,
			items(), now, nil, nil, "", "",
		)

		require.Error(t, err)
	})

	t.Run("should reject pickup time inconsistent with status", func(t *testing.T) {
		pickup := now

		_, err := order.RestoreOrder(
			7, customerID, restaurantID, nil, order.Pending,
			testAddress(t), testRestaurantAddress(t), nil, nil, nil,
			items(), now, &pickup, nil, "", "",
		)
		require.Error(t, err)

		driver := driverID
		_, err = order.RestoreOrder(
			7, customerID, restaurantID, &driver, order.PickedUp,
			testAddress(t), testRestaurantAddress(t), nil, nil, nil,
			items(), now, nil, nil, "", "",
		)
		require.Error(t, err)
	})

	t.Run("should reject delivery time without delivered status", func(t *testing.T) {
		driver := driverID
		pickup := now
		delivered := now

		_, err := order.RestoreOrder(
			7, customerID, restaurantID, &driver, order.PickedUp,
			testAddress(t), testRestaurantAddress(t), nil, nil, nil,
			items(), now, &pickup, &delivered, "", "",
		)
		require.Error(t, err)
	})
}

func TestNewItem(t *testing.T) {
	t.Run("should create item and compute line total", func(t *testing.T) {
		item, err := order.NewItem(101, 3, 4.20)

		require.NoError(t, err)
		assert.Equal(t, int64(101), item.MenuItemID())
		assert.Equal(t, 3, item.Quantity())
		assert.InDelta(t, 12.60, item.LineTotal(), 1e-9)
	})

	t.Run("should reject invalid lines", func(t *testing.T) {
		_, err := order.NewItem(0, 1, 1)
		require.Error(t, err)

		_, err = order.NewItem(1, 0, 1)
		require.Error(t, err)

		_, err = order.NewItem(1, 1, -0.01)
		require.Error(t, err)
	})

	t.Run("zero value should fail validation", func(t *testing.T) {
		var item order.Item
		require.Error(t, item.Validate())
	})
}
