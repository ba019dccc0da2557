package queries

import (
	"errors"

	"deliveryportal/internal/core/domain/model/kernel"
	"deliveryportal/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery fetches one order of a company.
type GetOrderQuery struct {
	companyID kernel.UUID
	orderID   kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(companyID, orderID kernel.UUID) (GetOrderQuery, error) {
	if err := errors.Join(companyID.Validate(), orderID.Validate()); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		companyID: companyID,
		orderID:   orderID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) CompanyID() kernel.UUID {
	return q.companyID
}

func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}
