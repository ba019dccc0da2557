// Package queries contains read-only operations over orders.
package queries

import (
	"time"

	"deliveryportal/internal/core/domain/model/kernel"
	"deliveryportal/internal/core/domain/model/order"
)

// OrderResponse is the read model of an order shown to companies.
type OrderResponse struct {
	ID                 kernel.UUID
	Number             order.Number
	CompanyID          kernel.UUID
	Pickup             kernel.Address
	Dropoff            kernel.Address
	ProductDescription string
	ProductValue       kernel.Money
	ShippingFee        kernel.Money
	TotalValue         kernel.Money
	Notes              string
	Status             order.Status
	CreatedAt          time.Time
	AssignedAt         *time.Time
	CompletedAt        *time.Time
	CourierID          *kernel.UUID
}

// NewOrderResponse flattens an aggregate into its read model.
func NewOrderResponse(o *order.Order) OrderResponse {
	s := o.Snapshot()
	return OrderResponse{
		ID:                 s.ID,
		Number:             s.Number,
		CompanyID:          s.CompanyID,
		Pickup:             s.Pickup,
		Dropoff:            s.Dropoff,
		ProductDescription: s.Product.Description,
		ProductValue:       s.Product.Value,
		ShippingFee:        s.ShippingFee,
		TotalValue:         s.TotalValue,
		Notes:              s.Notes,
		Status:             s.Status,
		CreatedAt:          s.CreatedAt,
		AssignedAt:         s.AssignedAt,
		CompletedAt:        s.CompletedAt,
		CourierID:          s.CourierID,
	}
}
