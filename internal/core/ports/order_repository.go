package ports

import (
	"context"

	"fooddelivery/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Provides methods for storing, retrieving, and querying order entities
// based on their status and assignment state.
type OrderRepository interface {
	// Add persists a new order aggregate to storage and assigns its
	// database-generated identifier back onto the aggregate.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The order must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns errs.ObjectNotFoundError when no such order exists.
	Get(ctx context.Context, id int64) (*order.Order, error)

	// GetAllForCustomer retrieves all orders placed by the customer,
	// newest first.
	GetAllForCustomer(ctx context.Context, customerID int64) ([]*order.Order, error)

	// GetAllForRestaurant retrieves all orders directed at the
	// restaurant, newest first.
	GetAllForRestaurant(ctx context.Context, restaurantID int64) ([]*order.Order, error)

	// GetAllForDriver retrieves all orders the driver has claimed,
	// newest first.
	GetAllForDriver(ctx context.Context, driverID int64) ([]*order.Order, error)

	// GetAllAwaitingDriver retrieves unassigned orders in a claimable
	// status. Backs the drivers' overview of open orders.
	GetAllAwaitingDriver(ctx context.Context) ([]*order.Order, error)

	// GetAllWithUnresolvedFee retrieves non-terminal orders whose
	// delivery fee has not been computed yet.
	GetAllWithUnresolvedFee(ctx context.Context) ([]*order.Order, error)

	// ClaimForDriver atomically assigns the order to the driver: the
	// write succeeds only if the order is still unassigned and in a
	// claimable status. Returns the updated aggregate on success,
	// order.ErrAlreadyAssigned when another driver won the race,
	// order.ErrInvalidTransition when the order left the claimable
	// window, or errs.ObjectNotFoundError when the order does not exist.
	ClaimForDriver(ctx context.Context, orderID int64, driverID int64) (*order.Order, error)
}
