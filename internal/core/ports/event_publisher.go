package ports

import (
	"context"
	"time"

	"fooddelivery/internal/core/domain/model/order"
)

// OrderStatusChangedEvent describes a completed status transition. It is
// published after the transaction that performed the transition commits.
type OrderStatusChangedEvent struct {
	EventID    string
	OrderID    int64
	From       order.Status
	To         order.Status
	DriverID   *int64
	OccurredAt time.Time
}

// EventPublisher delivers domain events to interested consumers outside
// the service (notification workers, analytics).
type EventPublisher interface {
	// PublishOrderStatusChanged emits a status transition event.
	// Publishing is best effort: callers log failures and do not roll
	// back the committed transition.
	PublishOrderStatusChanged(ctx context.Context, event OrderStatusChangedEvent) error
}
