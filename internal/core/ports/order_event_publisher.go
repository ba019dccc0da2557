package ports

import (
	"context"
	"time"

	"deliveryportal/internal/core/domain/model/kernel"
	"deliveryportal/internal/core/domain/model/order"
)

// OrderStatusChanged is emitted after a status change has been committed.
type OrderStatusChanged struct {
	OrderID     kernel.UUID
	OrderNumber order.Number
	CompanyID   kernel.UUID
	From        order.Status
	To          order.Status
	CourierID   *kernel.UUID
	OccurredAt  time.Time
}

// OrderEventPublisher delivers order events to interested parties.
// Publishing happens after commit, so a failure never undoes the change.
type OrderEventPublisher interface {
	PublishStatusChanged(ctx context.Context, event OrderStatusChanged) error
}
