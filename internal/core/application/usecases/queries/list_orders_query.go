package queries

import (
	"errors"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"
)

var (
	ErrListOrdersQueryIsNotConstructed = errors.New(
		"ListOrdersQuery must be created via NewListOrdersQuery constructor",
	)
	ErrScopeIsInvalid      = errors.New("unknown list scope")
	ErrScopeRequiresDriver = errors.New("scope available is limited to drivers")
)

// ListScope selects which slice of orders a list request returns.
type ListScope string

const (
	// ScopeMine lists the viewer's own orders: placed by the customer,
	// directed at the restaurant, or claimed by the driver.
	ScopeMine ListScope = "mine"

	// ScopeAvailable lists unassigned orders open for claiming.
	// Drivers only.
	ScopeAvailable ListScope = "available"
)

// ListOrdersQuery retrieves the orders visible to one viewer under a
// scope. The scope decides the filter; the viewer's role decides which
// column the filter applies to.
type ListOrdersQuery struct { //nolint:recvcheck //using for validation
	viewer kernel.Actor
	scope  ListScope

	guard guard.ConstructorGuard
}

// NewListOrdersQuery creates a query to list orders for a viewer.
// Validates the viewer and that the scope is valid for the viewer's role.
func NewListOrdersQuery(viewer kernel.Actor, scope ListScope) (ListOrdersQuery, error) {
	q := ListOrdersQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		q.setViewer(viewer),
		q.setScope(viewer, scope),
	); err != nil {
		return ListOrdersQuery{}, err
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

// Viewer returns the actor the list is rendered for.
func (q ListOrdersQuery) Viewer() kernel.Actor {
	return q.viewer
}

// Scope returns the requested list scope.
func (q ListOrdersQuery) Scope() ListScope {
	return q.scope
}

func (q *ListOrdersQuery) setViewer(viewer kernel.Actor) error {
	if err := viewer.Validate(); err != nil {
		return err
	}

	q.viewer = viewer
	return nil
}

func (q *ListOrdersQuery) setScope(viewer kernel.Actor, scope ListScope) error {
	switch scope {
	case ScopeMine:
	case ScopeAvailable:
		if !viewer.Is(kernel.RoleDriver) {
			return ErrScopeRequiresDriver
		}
	default:
		return ErrScopeIsInvalid
	}

	q.scope = scope
	return nil
}

// ListOrdersQueryResponse is one order in a list view. Lists carry a
// summary only; clients fetch the full view by id.
type ListOrdersQueryResponse struct {
	ID           int64
	Status       string
	RestaurantID int64
	OrderPrice   float64
	DeliveryFee  *float64
	TotalPrice   *float64
	OrderTime    time.Time

	// RestaurantLocation and DeliveryAddress are set on the available
	// scope so driver apps can place the order on the overview map and
	// show the full trip before a claim.
	RestaurantLocation *PointResponse
	DeliveryAddress    *AddressResponse
}
