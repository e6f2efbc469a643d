package services

import (
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
)

// RouteMode identifies which leg of the delivery a route map should show.
type RouteMode string

const (
	// RouteDriverToRestaurant routes the assigned driver to the pickup point.
	RouteDriverToRestaurant RouteMode = "DRIVER_TO_RESTAURANT"

	// RouteRestaurantToCustomer routes from the pickup point to the
	// delivery address.
	RouteRestaurantToCustomer RouteMode = "RESTAURANT_TO_CUSTOMER"
)

// RenderHints tells a client what parts of an order view the current
// actor is allowed to see. The decision is made once here so every
// delivery surface redacts the same way.
type RenderHints struct {
	// ShowOverviewMap marks the order as claimable on a drivers' map of
	// open orders.
	ShowOverviewMap bool

	// ShowRouteMap enables the turn-by-turn route view; RouteMode says
	// which leg to draw.
	ShowRouteMap bool
	RouteMode    RouteMode

	ShowCustomerDetails   bool
	ShowRestaurantDetails bool
	ShowDriverDetails     bool
}

// DecideVisibility computes the render hints for a viewer looking at an
// order with the given status and driver assignment. It deliberately
// takes the bare facts so both the aggregate path and read-only query
// handlers can share it. The rules:
//
//   - Customers see the restaurant and, once assigned, the driver. They
//     never see maps.
//   - Restaurants see the customer and, once assigned, the driver. They
//     never see maps.
//   - Drivers browsing unassigned claimable orders see the overview map,
//     the restaurant, and the delivery address, so the full trip is
//     visible before claiming.
//   - The assigned driver sees the route to the restaurant until pickup,
//     then the route to the customer. Customer details stay visible for
//     the whole assignment.
//   - Terminal orders render no maps for anyone.
func DecideVisibility(status order.Status, driverID *int64, viewer kernel.Actor) RenderHints {
	claimable := status == order.RestaurantAccepted || status == order.ReadyForPickup

	switch viewer.Role() {
	case kernel.RoleCustomer:
		return RenderHints{
			ShowRestaurantDetails: true,
			ShowDriverDetails:     driverID != nil,
		}

	case kernel.RoleRestaurant:
		return RenderHints{
			ShowCustomerDetails: true,
			ShowDriverDetails:   driverID != nil,
		}

	case kernel.RoleDriver:
		assigned := driverID != nil && *driverID == viewer.ID()

		if !assigned {
			// An unassigned driver only ever sees open claimable orders.
			open := driverID == nil && claimable
			return RenderHints{
				ShowOverviewMap:       open,
				ShowRestaurantDetails: open,
				ShowCustomerDetails:   open,
			}
		}

		switch {
		case claimable:
			return RenderHints{
				ShowRouteMap:          true,
				RouteMode:             RouteDriverToRestaurant,
				ShowRestaurantDetails: true,
				ShowCustomerDetails:   true,
			}
		case status == order.PickedUp:
			return RenderHints{
				ShowRouteMap:        true,
				RouteMode:           RouteRestaurantToCustomer,
				ShowCustomerDetails: true,
			}
		default:
			// Delivered or cancelled while assigned: details without maps.
			return RenderHints{
				ShowCustomerDetails:   true,
				ShowRestaurantDetails: true,
			}
		}

	default:
		return RenderHints{}
	}
}
