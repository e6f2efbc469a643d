package commands

import (
	"context"
	"log/slog"

	"fooddelivery/internal/core/ports"
)

// ResolvePendingFeesCommandHandler retries geocoding and fee pricing for
// orders stored without a delivery fee. Each order is processed in its
// own transaction so one stuck order does not block the rest.
type ResolvePendingFeesCommandHandler struct {
	uowFactory  OrderUoWFactory
	geoResolver ports.GeoResolver
	logger      *slog.Logger
}

// NewResolvePendingFeesCommandHandler creates a handler for fee backfill.
func NewResolvePendingFeesCommandHandler(
	uowFactory OrderUoWFactory,
	geoResolver ports.GeoResolver,
	logger *slog.Logger,
) ResolvePendingFeesCommandHandler {
	return ResolvePendingFeesCommandHandler{
		uowFactory:  uowFactory,
		geoResolver: geoResolver,
		logger:      logger.With("component", "resolve_pending_fees_handler"),
	}
}

// Handle finds orders with an unresolved fee and retries resolution for
// each. Returns the number of orders whose fee was resolved; per-order
// failures are logged and retried on the next run.
func (h *ResolvePendingFeesCommandHandler) Handle(ctx context.Context, cmd ResolvePendingFeesCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	orders, err := uow.OrderRepository().GetAllWithUnresolvedFee(ctx)
	if rollbackErr := uow.Rollback(ctx); rollbackErr != nil && err == nil {
		err = rollbackErr
	}
	if err != nil {
		return 0, err
	}

	resolved := 0
	for _, o := range orders {
		if err = h.resolveOne(ctx, o.ID()); err != nil {
			h.logger.Warn("fee resolution failed", "order_id", o.ID(), "error", err)
			continue
		}
		resolved++
	}

	return resolved, nil
}

func (h *ResolvePendingFeesCommandHandler) resolveOne(ctx context.Context, orderID int64) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, orderID)
	if err != nil {
		return err
	}

	if _, known := o.DeliveryFee(); known {
		// Resolved concurrently since the scan.
		return nil
	}

	if err = resolveFee(ctx, h.geoResolver, o); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
