package ports

import (
	"context"
	"time"

	"deliveryportal/internal/core/domain/model/kernel"
	"deliveryportal/internal/core/domain/model/order"
)

// OrderFilter narrows list and count queries. Zero values mean "no constraint".
type OrderFilter struct {
	CompanyID kernel.UUID
	Statuses  []order.Status

	// CompletedFrom and CompletedTo bound completedAt as a half-open interval
	// [CompletedFrom, CompletedTo). Both must be set to take effect.
	CompletedFrom time.Time
	CompletedTo   time.Time

	// Limit caps the number of orders returned by List. Zero means no cap.
	Limit int
}

// OrderCounts is one reading of a company's dashboard counters.
type OrderCounts struct {
	Active int64
	// Delivered counts delivered orders completed inside the requested window.
	Delivered int64
	Total     int64
}

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order and returns the order number allocated by storage.
	// Numbers are unique and increase with insertion order.
	Add(ctx context.Context, aggregate *order.Order) (order.Number, error)

	// UpdateStatus writes the status, courier and dates of the order, but only if
	// the stored status still equals expected. Otherwise it returns
	// errs.VersionIsInvalidError and leaves storage untouched.
	UpdateStatus(ctx context.Context, aggregate *order.Order, expected order.Status) error

	// Get retrieves an order by its identifier or returns errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// List returns orders matching the filter, newest first.
	List(ctx context.Context, filter OrderFilter) ([]*order.Order, error)

	// Count returns the number of orders matching the filter.
	Count(ctx context.Context, filter OrderFilter) (int64, error)

	// CountCompanyOrders reads the company's active, delivered in
	// [completedFrom, completedTo) and total counts from a single snapshot, so
	// an order moving between states is never counted twice.
	CountCompanyOrders(ctx context.Context, companyID kernel.UUID, completedFrom, completedTo time.Time) (OrderCounts, error)

	// ListCompanyIDs returns every company that owns at least one order.
	ListCompanyIDs(ctx context.Context) ([]kernel.UUID, error)
}
