package queries

import (
	"context"

	"deliveryportal/internal/core/ports"
	"deliveryportal/internal/pkg/errs"
)

// GetOrderQueryHandler loads a single order. An order owned by another company
// is reported as not found so that its existence is not disclosed.
type GetOrderQueryHandler struct {
	repo ports.OrderRepository
}

func NewGetOrderQueryHandler(repo ports.OrderRepository) GetOrderQueryHandler {
	return GetOrderQueryHandler{repo: repo}
}

func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return OrderResponse{}, err
	}

	o, err := h.repo.Get(ctx, query.OrderID())
	if err != nil {
		return OrderResponse{}, err
	}

	if !o.BelongsTo(query.CompanyID()) {
		return OrderResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}

	return NewOrderResponse(o), nil
}
