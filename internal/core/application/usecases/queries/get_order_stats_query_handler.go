package queries

import (
	"context"

	"deliveryportal/internal/core/ports"
)

// GetOrderStatsQueryHandler computes the dashboard counters straight from the
// repository on every call. Nothing is cached, so the figures always reflect
// the latest committed orders. All three come from one repository read.
type GetOrderStatsQueryHandler struct {
	repo ports.OrderRepository
}

func NewGetOrderStatsQueryHandler(repo ports.OrderRepository) GetOrderStatsQueryHandler {
	return GetOrderStatsQueryHandler{repo: repo}
}

// Handle returns *StatsUnavailableError when the counters cannot be read.
func (h GetOrderStatsQueryHandler) Handle(ctx context.Context, query GetOrderStatsQuery) (OrderStats, error) {
	if err := query.Validate(); err != nil {
		return OrderStats{}, err
	}

	from, to := query.Today()

	counts, err := h.repo.CountCompanyOrders(ctx, query.CompanyID(), from, to)
	if err != nil {
		return OrderStats{}, &StatsUnavailableError{Cause: err}
	}

	return OrderStats{
		Active:         counts.Active,
		DeliveredToday: counts.Delivered,
		Total:          counts.Total,
	}, nil
}
