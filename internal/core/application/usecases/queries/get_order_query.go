// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Query handlers read the database directly and shape responses for the
// calling viewer, applying the visibility policy on the way out.
package queries

import (
	"errors"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/pkg/guard"
)

var (
	ErrGetOrderQueryIsNotConstructed = errors.New(
		"GetOrderQuery must be created via NewGetOrderQuery constructor",
	)
	ErrOrderIDIsInvalid = errors.New("order id must be greater than 0")
)

// GetOrderQuery retrieves a single order as seen by one viewer. The
// response is already redacted for that viewer's role.
type GetOrderQuery struct { //nolint:recvcheck //using for validation
	orderID int64
	viewer  kernel.Actor

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for one order view.
// Validates the order id and the viewing actor.
func NewGetOrderQuery(orderID int64, viewer kernel.Actor) (GetOrderQuery, error) {
	q := GetOrderQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		q.setOrderID(orderID),
		q.setViewer(viewer),
	); err != nil {
		return GetOrderQuery{}, err
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the id of the order to fetch.
func (q GetOrderQuery) OrderID() int64 {
	return q.orderID
}

// Viewer returns the actor the view is rendered for.
func (q GetOrderQuery) Viewer() kernel.Actor {
	return q.viewer
}

func (q *GetOrderQuery) setOrderID(orderID int64) error {
	if orderID <= 0 {
		return ErrOrderIDIsInvalid
	}

	q.orderID = orderID
	return nil
}

func (q *GetOrderQuery) setViewer(viewer kernel.Actor) error {
	if err := viewer.Validate(); err != nil {
		return err
	}

	q.viewer = viewer
	return nil
}

// AddressResponse is a street address in an order view.
type AddressResponse struct {
	Street   string
	Suburb   string
	State    string
	Postcode string
}

// PointResponse is a geographic coordinate in an order view.
type PointResponse struct {
	Latitude  float64
	Longitude float64
}

// OrderLineResponse is one order line in an order view.
type OrderLineResponse struct {
	MenuItemID int64
	Quantity   int
	UnitPrice  float64
}

// GetOrderQueryResponse is the redacted order view for one viewer.
// Optional fields are nil when hidden from the viewer or not yet known:
// DeliveryFee and TotalPrice stay nil while geocoding is degraded.
type GetOrderQueryResponse struct {
	ID           int64
	Status       string
	CustomerID   int64
	RestaurantID int64
	DriverID     *int64

	OrderPrice  float64
	DeliveryFee *float64
	TotalPrice  *float64

	OrderTime    time.Time
	PickupTime   *time.Time
	DeliveryTime *time.Time

	Items           []OrderLineResponse
	CustomerNotes   string
	RestaurantNotes string

	DeliveryAddress    *AddressResponse
	RestaurantAddress  *AddressResponse
	DeliveryLocation   *PointResponse
	RestaurantLocation *PointResponse

	Hints services.RenderHints
}
