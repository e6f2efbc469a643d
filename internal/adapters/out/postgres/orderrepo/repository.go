package orderrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id int64, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database and assigns the generated id back
// onto the aggregate.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.ID = 0
	for i := range dto.Items {
		dto.Items[i].OrderID = 0
	}

	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	if err := aggregate.AssignID(dto.ID); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order to the database. Order lines are
// immutable after checkout and are not rewritten.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Omit("Items").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", dto.ID)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id int64) (*order.Order, error) {
	var dto OrderDTO
	err := r.db.WithContext(ctx).Preload("Items").First(&dto, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllForCustomer retrieves the customer's orders, newest first.
func (r *GormOrderRepository) GetAllForCustomer(ctx context.Context, customerID int64) ([]*order.Order, error) {
	return r.findAll(ctx, "customer_id = ?", customerID)
}

// GetAllForRestaurant retrieves the restaurant's orders, newest first.
func (r *GormOrderRepository) GetAllForRestaurant(ctx context.Context, restaurantID int64) ([]*order.Order, error) {
	return r.findAll(ctx, "restaurant_id = ?", restaurantID)
}

// GetAllForDriver retrieves the orders claimed by the driver, newest first.
func (r *GormOrderRepository) GetAllForDriver(ctx context.Context, driverID int64) ([]*order.Order, error) {
	return r.findAll(ctx, "driver_id = ?", driverID)
}

// GetAllAwaitingDriver retrieves unassigned orders in a claimable status.
func (r *GormOrderRepository) GetAllAwaitingDriver(ctx context.Context) ([]*order.Order, error) {
	return r.findAll(ctx,
		"driver_id IS NULL AND status IN (?, ?)",
		order.RestaurantAccepted.String(), order.ReadyForPickup.String(),
	)
}

// GetAllWithUnresolvedFee retrieves non-terminal orders without a fee.
func (r *GormOrderRepository) GetAllWithUnresolvedFee(ctx context.Context) ([]*order.Order, error) {
	return r.findAll(ctx,
		"delivery_fee IS NULL AND status NOT IN (?, ?)",
		order.Delivered.String(), order.Cancelled.String(),
	)
}

// ClaimForDriver atomically assigns the order to the driver with a single
// conditional update. Exactly one of any number of concurrent claims for
// the same order can match the WHERE clause; the losers take the follow-up
// read below to find out why they lost.
func (r *GormOrderRepository) ClaimForDriver(ctx context.Context, orderID int64, driverID int64) (*order.Order, error) {
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND driver_id IS NULL AND status IN (?, ?)",
			orderID, order.RestaurantAccepted.String(), order.ReadyForPickup.String()).
		Update("driver_id", driverID)
	if result.Error != nil {
		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		current, err := r.Get(ctx, orderID)
		if err != nil {
			return nil, err
		}

		if assigned := current.Driver(); assigned != nil {
			if *assigned == driverID {
				// Retry of a claim this driver already won.
				return current, nil
			}
			return nil, order.ErrAlreadyAssigned
		}

		return nil, order.NewInvalidTransitionError(current.Status(), order.PickedUp)
	}

	claimed, err := r.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	r.tracker.TrackAggregate(claimed.ID(), claimed)
	return claimed, nil
}

func (r *GormOrderRepository) findAll(ctx context.Context, cond string, args ...any) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where(cond, args...).
		Order("order_time DESC, id DESC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		orders = append(orders, o)
	}

	return orders, nil
}
