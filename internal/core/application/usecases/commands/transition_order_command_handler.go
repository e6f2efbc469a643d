package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"
)

// TransitionOrderCommandHandler handles status transition requests. Loads
// the order, lets the aggregate enforce the transition table and actor
// authorization, persists the result and publishes a status-changed event
// after commit.
type TransitionOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewTransitionOrderCommandHandler creates a handler for order transitions.
func NewTransitionOrderCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger.With("component", "transition_order_handler"),
	}
}

// Handle processes the transition command and returns the updated order.
// The event publish is best effort: a publish failure is logged and does
// not undo the committed transition.
func (h *TransitionOrderCommandHandler) Handle(ctx context.Context, cmd TransitionOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	from := o.Status()
	if err = o.TransitionTo(cmd.Actor(), cmd.Target(), time.Now()); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	event := ports.OrderStatusChangedEvent{
		EventID:    uuid.NewString(),
		OrderID:    o.ID(),
		From:       from,
		To:         o.Status(),
		DriverID:   o.Driver(),
		OccurredAt: time.Now(),
	}
	if err = h.publisher.PublishOrderStatusChanged(ctx, event); err != nil {
		h.logger.Warn("failed to publish status change",
			"order_id", o.ID(),
			"from", from.String(),
			"to", o.Status().String(),
			"error", err)
	}

	return o, nil
}
