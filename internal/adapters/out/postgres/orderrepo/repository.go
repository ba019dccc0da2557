package orderrepo

import (
	"context"
	"errors"
	"time"

	"deliveryportal/internal/core/domain/model/kernel"
	"deliveryportal/internal/core/domain/model/order"
	"deliveryportal/internal/core/ports"
	"deliveryportal/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

var _ ports.OrderRepository = (*GormOrderRepository)(nil)

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add inserts the order and returns the number derived from the sequence
// value the database allocated for the row.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) (order.Number, error) {
	if err := aggregate.Validate(); err != nil {
		return "", err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return "", err
	}

	return order.NumberFromSequence(dto.Seq), nil
}

// UpdateStatus performs a conditional update guarded by the expected status,
// so that of two concurrent writers only the first one matches a row.
func (r *GormOrderRepository) UpdateStatus(ctx context.Context, aggregate *order.Order, expected order.Status) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND status = ?", dto.ID, int(expected)).
		Updates(map[string]any{
			"status":       dto.Status,
			"assigned_at":  dto.AssignedAt,
			"completed_at": dto.CompletedAt,
			"courier_id":   dto.CourierID,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var exists int64
		if err := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", dto.ID).Count(&exists).Error; err != nil {
			return err
		}
		if exists == 0 {
			return errs.NewObjectNotFoundError("order", aggregate.ID().String())
		}
		return errs.NewVersionIsInvalidErrorWithCause("order status")
	}

	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// List returns the filtered orders, newest first. Orders created in the same
// instant are ordered by descending sequence.
func (r *GormOrderRepository) List(ctx context.Context, filter ports.OrderFilter) ([]*order.Order, error) {
	query := applyFilter(r.db.WithContext(ctx).Model(&OrderDTO{}), filter).
		Order("created_at DESC").
		Order("seq DESC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var dtos []OrderDTO
	if err := query.Find(&dtos).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}

// Count returns the number of orders matching the filter.
func (r *GormOrderRepository) Count(ctx context.Context, filter ports.OrderFilter) (int64, error) {
	var count int64
	if err := applyFilter(r.db.WithContext(ctx).Model(&OrderDTO{}), filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountCompanyOrders aggregates the three counters in one statement.
func (r *GormOrderRepository) CountCompanyOrders(
	ctx context.Context,
	companyID kernel.UUID,
	completedFrom, completedTo time.Time,
) (ports.OrderCounts, error) {
	active := make([]int64, 0, len(order.ActiveStatuses()))
	for _, s := range order.ActiveStatuses() {
		active = append(active, int64(s))
	}

	var counts ports.OrderCounts
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) FILTER (WHERE status = ANY(?)) AS active,
			COUNT(*) FILTER (WHERE status = ? AND completed_at >= ? AND completed_at < ?) AS delivered,
			COUNT(*) AS total
		FROM orders
		WHERE company_id = ?
	`, pq.Array(active), int64(order.Delivered), completedFrom, completedTo, companyID.Bytes()).
		Scan(&counts).Error
	if err != nil {
		return ports.OrderCounts{}, err
	}
	return counts, nil
}

// ListCompanyIDs returns every company owning at least one order.
func (r *GormOrderRepository) ListCompanyIDs(ctx context.Context) ([]kernel.UUID, error) {
	rows, err := r.db.WithContext(ctx).Raw(`
		SELECT DISTINCT company_id
		FROM orders
		ORDER BY company_id
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]kernel.UUID, 0)
	for rows.Next() {
		var raw uuid.UUID
		if err = rows.Scan(&raw); err != nil {
			return nil, err
		}

		id, idErr := kernel.UUIDFromBytes(raw[:])
		if idErr != nil {
			return nil, idErr
		}
		ids = append(ids, id)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return ids, nil
}

func applyFilter(query *gorm.DB, filter ports.OrderFilter) *gorm.DB {
	if filter.CompanyID.Validate() == nil {
		query = query.Where("company_id = ?", filter.CompanyID.Bytes())
	}

	if len(filter.Statuses) > 0 {
		statuses := make([]int64, 0, len(filter.Statuses))
		for _, s := range filter.Statuses {
			statuses = append(statuses, int64(s))
		}
		query = query.Where("status = ANY(?)", pq.Array(statuses))
	}

	if !filter.CompletedFrom.IsZero() && !filter.CompletedTo.IsZero() {
		query = query.Where("completed_at >= ? AND completed_at < ?", filter.CompletedFrom, filter.CompletedTo)
	}

	return query
}
