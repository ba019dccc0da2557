package queries

import (
	"context"

	"deliveryportal/internal/core/domain/model/order"
	"deliveryportal/internal/core/ports"
)

// ListOrdersQueryHandler returns a company's orders ordered by creation date, newest first.
type ListOrdersQueryHandler struct {
	repo ports.OrderRepository
}

func NewListOrdersQueryHandler(repo ports.OrderRepository) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{repo: repo}
}

func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	filter := ports.OrderFilter{
		CompanyID: query.CompanyID(),
		Limit:     query.Limit(),
	}
	if s := query.Status(); s != nil {
		filter.Statuses = []order.Status{*s}
	}

	orders, err := h.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	result := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		result = append(result, NewOrderResponse(o))
	}

	return result, nil
}
