// Package inmemory keeps orders in process memory. It backs tests and local
// runs without a database and honours the same concurrency contract as the
// postgres adapter: status updates are conditional on the expected status.
package inmemory

import (
	"context"
	"slices"
	"sync"
	"time"

	"deliveryportal/internal/core/domain/model/kernel"
	"deliveryportal/internal/core/domain/model/order"
	"deliveryportal/internal/core/ports"
	"deliveryportal/internal/pkg/errs"
)

// OrderRepository stores order snapshots guarded by a mutex. Every read
// rehydrates a fresh aggregate, so callers never share state.
type OrderRepository struct {
	mu       sync.RWMutex
	orders   map[kernel.UUID]order.Snapshot
	sequence int64

	// failWith, when set, is returned by every read. Tests use it to simulate
	// an unavailable store.
	failWith error
}

var _ ports.OrderRepository = (*OrderRepository)(nil)

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{orders: make(map[kernel.UUID]order.Snapshot)}
}

// FailReadsWith makes subsequent reads return err. Pass nil to recover.
func (r *OrderRepository) FailReadsWith(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failWith = err
}

func (r *OrderRepository) Add(ctx context.Context, aggregate *order.Order) (order.Number, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := aggregate.Validate(); err != nil {
		return "", err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[aggregate.ID()]; ok {
		return "", errs.NewValueIsInvalidError("order already exists")
	}

	r.sequence++
	number := order.NumberFromSequence(r.sequence)
	s := aggregate.Snapshot()
	s.Number = number
	r.orders[aggregate.ID()] = s

	return number, nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, aggregate *order.Order, expected order.Status) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := aggregate.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.orders[aggregate.ID()]
	if !ok {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}
	if stored.Status != expected {
		return errs.NewVersionIsInvalidErrorWithCause("order status")
	}

	next := aggregate.Snapshot()
	stored.Status = next.Status
	stored.AssignedAt = next.AssignedAt
	stored.CompletedAt = next.CompletedAt
	stored.CourierID = next.CourierID
	r.orders[aggregate.ID()] = stored

	return nil
}

func (r *OrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.failWith != nil {
		return nil, r.failWith
	}

	s, ok := r.orders[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}

	return order.RestoreOrder(s)
}

func (r *OrderRepository) List(ctx context.Context, filter ports.OrderFilter) ([]*order.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.failWith != nil {
		return nil, r.failWith
	}

	matched := r.match(filter)
	slices.SortFunc(matched, func(a, b order.Snapshot) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		// Same creation instant: the later insert comes first, as in the database.
		return compareNumbers(b.Number, a.Number)
	})
	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}

	result := make([]*order.Order, 0, len(matched))
	for _, s := range matched {
		o, err := order.RestoreOrder(s)
		if err != nil {
			return nil, err
		}
		result = append(result, o)
	}

	return result, nil
}

func (r *OrderRepository) Count(ctx context.Context, filter ports.OrderFilter) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.failWith != nil {
		return 0, r.failWith
	}

	return int64(len(r.match(filter))), nil
}

func (r *OrderRepository) CountCompanyOrders(
	ctx context.Context,
	companyID kernel.UUID,
	completedFrom, completedTo time.Time,
) (ports.OrderCounts, error) {
	if err := ctx.Err(); err != nil {
		return ports.OrderCounts{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.failWith != nil {
		return ports.OrderCounts{}, r.failWith
	}

	var counts ports.OrderCounts
	for _, s := range r.match(ports.OrderFilter{CompanyID: companyID}) {
		counts.Total++
		if slices.Contains(order.ActiveStatuses(), s.Status) {
			counts.Active++
		}
		if s.Status == order.Delivered && s.CompletedAt != nil &&
			!s.CompletedAt.Before(completedFrom) && s.CompletedAt.Before(completedTo) {
			counts.Delivered++
		}
	}

	return counts, nil
}

func (r *OrderRepository) ListCompanyIDs(ctx context.Context) ([]kernel.UUID, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.failWith != nil {
		return nil, r.failWith
	}

	seen := make(map[kernel.UUID]struct{})
	ids := make([]kernel.UUID, 0)
	for _, s := range r.orders {
		if _, ok := seen[s.CompanyID]; ok {
			continue
		}
		seen[s.CompanyID] = struct{}{}
		ids = append(ids, s.CompanyID)
	}

	return ids, nil
}

// match must be called with the lock held.
func (r *OrderRepository) match(filter ports.OrderFilter) []order.Snapshot {
	matched := make([]order.Snapshot, 0)
	for _, s := range r.orders {
		if filter.CompanyID.Validate() == nil && !s.CompanyID.IsEqual(filter.CompanyID) {
			continue
		}
		if len(filter.Statuses) > 0 && !slices.Contains(filter.Statuses, s.Status) {
			continue
		}
		if !filter.CompletedFrom.IsZero() && !filter.CompletedTo.IsZero() {
			if s.CompletedAt == nil ||
				s.CompletedAt.Before(filter.CompletedFrom) ||
				!s.CompletedAt.Before(filter.CompletedTo) {
				continue
			}
		}
		matched = append(matched, s)
	}
	return matched
}

func compareNumbers(a, b order.Number) int {
	if len(a) != len(b) {
		return len(a) - len(b)
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
