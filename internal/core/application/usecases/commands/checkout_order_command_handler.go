package commands

import (
	"context"
	"time"

	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/core/ports"
)

// CheckoutOrderCommandHandler handles the business logic for placing an
// order. Creates the order in Pending status, geocodes both addresses and
// prices the delivery fee from the route distance. Geocoding failure does
// not fail the checkout: the order is stored without a fee and a
// background job retries resolution later.
type CheckoutOrderCommandHandler struct {
	uowFactory  OrderUoWFactory
	geoResolver ports.GeoResolver
}

// NewCheckoutOrderCommandHandler creates a handler for order checkout.
// Requires an OrderUoWFactory for transactional persistence and a
// GeoResolver for address geocoding.
func NewCheckoutOrderCommandHandler(
	uowFactory OrderUoWFactory,
	geoResolver ports.GeoResolver,
) CheckoutOrderCommandHandler {
	return CheckoutOrderCommandHandler{
		uowFactory:  uowFactory,
		geoResolver: geoResolver,
	}
}

// Handle processes the checkout command and returns the id of the stored
// order. The order starts Pending; the delivery fee is resolved inline
// when geocoding succeeds and left unresolved otherwise.
func (h *CheckoutOrderCommandHandler) Handle(ctx context.Context, cmd CheckoutOrderCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	o, err := order.NewOrder(
		cmd.CustomerID(),
		cmd.RestaurantID(),
		cmd.DeliveryAddress(),
		cmd.RestaurantAddress(),
		cmd.Items(),
		cmd.CustomerNotes(),
		time.Now(),
	)
	if err != nil {
		return 0, err
	}

	// Best effort: a degraded geocoder must not block checkout.
	_ = resolveFee(ctx, h.geoResolver, o)

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return o.ID(), nil
}

// resolveFee geocodes any missing locations on the order, computes the
// route distance and resolves the delivery fee. Shared between checkout
// and the fee backfill command.
func resolveFee(ctx context.Context, geoResolver ports.GeoResolver, o *order.Order) error {
	if o.DeliveryLocation() == nil {
		location, err := geoResolver.ResolveAddress(ctx, o.DeliveryAddress())
		if err != nil {
			return err
		}
		if err = o.SetDeliveryLocation(location); err != nil {
			return err
		}
	}

	if o.RestaurantLocation() == nil {
		location, err := geoResolver.ResolveAddress(ctx, o.RestaurantAddress())
		if err != nil {
			return err
		}
		if err = o.SetRestaurantLocation(location); err != nil {
			return err
		}
	}

	distanceKm, err := o.RestaurantLocation().Point().DistanceKm(o.DeliveryLocation().Point())
	if err != nil {
		return err
	}

	fee, err := services.CalculateDeliveryFee(distanceKm)
	if err != nil {
		return err
	}

	return o.ResolveDeliveryFee(fee)
}
