package http

import (
	"time"

	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/services"
)

// AddressDTO is the wire shape of a street address.
type AddressDTO struct {
	Street   string `json:"street" validate:"required"`
	Suburb   string `json:"suburb" validate:"required"`
	State    string `json:"state" validate:"required"`
	Postcode string `json:"postcode" validate:"required"`
}

// OrderLineDTO is the wire shape of one order line.
type OrderLineDTO struct {
	MenuItemID int64   `json:"menu_item_id" validate:"required,gt=0"`
	Quantity   int     `json:"quantity" validate:"required,gt=0"`
	UnitPrice  float64 `json:"unit_price" validate:"required,gt=0"`
}

// CheckoutRequest is the request body for placing an order.
type CheckoutRequest struct {
	CustomerID        int64          `json:"customer_id" validate:"required,gt=0"`
	RestaurantID      int64          `json:"restaurant_id" validate:"required,gt=0"`
	DeliveryAddress   AddressDTO     `json:"delivery_address" validate:"required"`
	RestaurantAddress AddressDTO     `json:"restaurant_address" validate:"required"`
	Items             []OrderLineDTO `json:"items" validate:"required,min=1,dive"`
	Subtotal          float64        `json:"subtotal" validate:"required,gt=0"`
	CustomerNotes     string         `json:"customer_notes"`
}

// CheckoutResponse confirms a placed order.
type CheckoutResponse struct {
	OrderID int64 `json:"order_id"`
}

// TransitionRequest names the status an actor wants the order moved to.
type TransitionRequest struct {
	TargetStatus string `json:"target_status" validate:"required"`
}

// QuoteRequest asks for a delivery fee estimate, either from a known
// distance or from two addresses to be resolved.
type QuoteRequest struct {
	DistanceKm        float64     `json:"distance_km,omitempty" validate:"omitempty,gt=0"`
	DeliveryAddress   *AddressDTO `json:"delivery_address,omitempty"`
	RestaurantAddress *AddressDTO `json:"restaurant_address,omitempty"`
}

// QuoteResponse carries the resolved distance and the fee it maps to.
type QuoteResponse struct {
	DistanceKm  float64 `json:"distance_km"`
	DeliveryFee float64 `json:"delivery_fee"`
}

// PointDTO is the wire shape of a coordinate pair.
type PointDTO struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// RenderHintsDTO tells the client which panels and maps to render.
type RenderHintsDTO struct {
	ShowOverviewMap       bool   `json:"show_overview_map"`
	ShowRouteMap          bool   `json:"show_route_map"`
	RouteMode             string `json:"route_mode,omitempty"`
	ShowCustomerDetails   bool   `json:"show_customer_details"`
	ShowRestaurantDetails bool   `json:"show_restaurant_details"`
	ShowDriverDetails     bool   `json:"show_driver_details"`
}

// OrderResponse is the full single order view, already redacted for the
// viewer by the query side.
type OrderResponse struct {
	ID                 int64          `json:"id"`
	Status             string         `json:"status"`
	CustomerID         int64          `json:"customer_id"`
	RestaurantID       int64          `json:"restaurant_id"`
	DriverID           *int64         `json:"driver_id,omitempty"`
	OrderPrice         float64        `json:"order_price"`
	DeliveryFee        *float64       `json:"delivery_fee,omitempty"`
	TotalPrice         *float64       `json:"total_price,omitempty"`
	OrderTime          time.Time      `json:"order_time"`
	PickupTime         *time.Time     `json:"pickup_time,omitempty"`
	DeliveryTime       *time.Time     `json:"delivery_time,omitempty"`
	Items              []OrderLineDTO `json:"items,omitempty"`
	CustomerNotes      string         `json:"customer_notes,omitempty"`
	RestaurantNotes    string         `json:"restaurant_notes,omitempty"`
	DeliveryAddress    *AddressDTO    `json:"delivery_address,omitempty"`
	RestaurantAddress  *AddressDTO    `json:"restaurant_address,omitempty"`
	DeliveryLocation   *PointDTO      `json:"delivery_location,omitempty"`
	RestaurantLocation *PointDTO      `json:"restaurant_location,omitempty"`
	RenderHints        RenderHintsDTO `json:"render_hints"`
}

// OrderSummaryResponse is one entry of an order list.
type OrderSummaryResponse struct {
	ID                 int64       `json:"id"`
	Status             string      `json:"status"`
	RestaurantID       int64       `json:"restaurant_id"`
	OrderPrice         float64     `json:"order_price"`
	DeliveryFee        *float64    `json:"delivery_fee,omitempty"`
	TotalPrice         *float64    `json:"total_price,omitempty"`
	OrderTime          time.Time   `json:"order_time"`
	RestaurantLocation *PointDTO   `json:"restaurant_location,omitempty"`
	DeliveryAddress    *AddressDTO `json:"delivery_address,omitempty"`
}

// TransitionResponse confirms a completed transition or claim.
type TransitionResponse struct {
	ID           int64      `json:"id"`
	Status       string     `json:"status"`
	DriverID     *int64     `json:"driver_id,omitempty"`
	PickupTime   *time.Time `json:"pickup_time,omitempty"`
	DeliveryTime *time.Time `json:"delivery_time,omitempty"`
}

// Machine-readable error kinds. Clients branch on these, not on the
// message text: ALREADY_ASSIGNED in particular tells a driver app that
// the order is gone and its list of open orders needs a refresh, while
// INVALID_TRANSITION means the order itself moved on.
const (
	ErrorKindValidation        = "VALIDATION"
	ErrorKindForbidden         = "FORBIDDEN"
	ErrorKindInvalidTransition = "INVALID_TRANSITION"
	ErrorKindAlreadyAssigned   = "ALREADY_ASSIGNED"
	ErrorKindNotFound          = "NOT_FOUND"
	ErrorKindResolutionFailed  = "RESOLUTION_FAILED"
	ErrorKindInternal          = "INTERNAL"
)

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

func renderHintsDTO(hints services.RenderHints) RenderHintsDTO {
	return RenderHintsDTO{
		ShowOverviewMap:       hints.ShowOverviewMap,
		ShowRouteMap:          hints.ShowRouteMap,
		RouteMode:             string(hints.RouteMode),
		ShowCustomerDetails:   hints.ShowCustomerDetails,
		ShowRestaurantDetails: hints.ShowRestaurantDetails,
		ShowDriverDetails:     hints.ShowDriverDetails,
	}
}

func addressDTO(address *queries.AddressResponse) *AddressDTO {
	if address == nil {
		return nil
	}
	return &AddressDTO{
		Street:   address.Street,
		Suburb:   address.Suburb,
		State:    address.State,
		Postcode: address.Postcode,
	}
}

func pointDTO(point *queries.PointResponse) *PointDTO {
	if point == nil {
		return nil
	}
	return &PointDTO{Latitude: point.Latitude, Longitude: point.Longitude}
}

func orderResponseFromView(view queries.GetOrderQueryResponse) OrderResponse {
	items := make([]OrderLineDTO, len(view.Items))
	for i, item := range view.Items {
		items[i] = OrderLineDTO{
			MenuItemID: item.MenuItemID,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
		}
	}
	if len(items) == 0 {
		items = nil
	}

	return OrderResponse{
		ID:                 view.ID,
		Status:             view.Status,
		CustomerID:         view.CustomerID,
		RestaurantID:       view.RestaurantID,
		DriverID:           view.DriverID,
		OrderPrice:         view.OrderPrice,
		DeliveryFee:        view.DeliveryFee,
		TotalPrice:         view.TotalPrice,
		OrderTime:          view.OrderTime,
		PickupTime:         view.PickupTime,
		DeliveryTime:       view.DeliveryTime,
		Items:              items,
		CustomerNotes:      view.CustomerNotes,
		RestaurantNotes:    view.RestaurantNotes,
		DeliveryAddress:    addressDTO(view.DeliveryAddress),
		RestaurantAddress:  addressDTO(view.RestaurantAddress),
		DeliveryLocation:   pointDTO(view.DeliveryLocation),
		RestaurantLocation: pointDTO(view.RestaurantLocation),
		RenderHints:        renderHintsDTO(view.Hints),
	}
}

func orderSummaryFromView(view queries.ListOrdersQueryResponse) OrderSummaryResponse {
	return OrderSummaryResponse{
		ID:                 view.ID,
		Status:             view.Status,
		RestaurantID:       view.RestaurantID,
		OrderPrice:         view.OrderPrice,
		DeliveryFee:        view.DeliveryFee,
		TotalPrice:         view.TotalPrice,
		OrderTime:          view.OrderTime,
		RestaurantLocation: pointDTO(view.RestaurantLocation),
		DeliveryAddress:    addressDTO(view.DeliveryAddress),
	}
}

func transitionResponseFromOrder(o *order.Order) TransitionResponse {
	return TransitionResponse{
		ID:           o.ID(),
		Status:       o.Status().String(),
		DriverID:     o.Driver(),
		PickupTime:   o.PickupTime(),
		DeliveryTime: o.DeliveryTime(),
	}
}
