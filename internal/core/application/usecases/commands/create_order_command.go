package commands

import (
	"errors"

	"deliveryportal/internal/core/domain/model/kernel"
	"deliveryportal/internal/core/domain/model/order"
	"deliveryportal/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a company's request for a new delivery.
// Address and fee rules are enforced by the order aggregate so that the
// caller receives the precise order.ValidationReason.
//
// Example:
//
//	fee, _ := estimator.Estimate(ctx, pickup.City, dropoff.City)
//	cmd, err := NewCreateOrderCommand(companyID, pickup, dropoff, product, fee, "fragile")
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	result, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	companyID   kernel.UUID
	pickup      kernel.Address
	dropoff     kernel.Address
	product     order.Product
	shippingFee kernel.Money
	notes       string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand checks the company identifier; everything else is
// checked when the order is built.
func NewCreateOrderCommand(
	companyID kernel.UUID,
	pickup, dropoff kernel.Address,
	product order.Product,
	shippingFee kernel.Money,
	notes string,
) (CreateOrderCommand, error) {
	if err := companyID.Validate(); err != nil {
		return CreateOrderCommand{}, err
	}

	return CreateOrderCommand{
		companyID:   companyID,
		pickup:      pickup,
		dropoff:     dropoff,
		product:     product,
		shippingFee: shippingFee,
		notes:       notes,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) CompanyID() kernel.UUID {
	return c.companyID
}

func (c CreateOrderCommand) Pickup() kernel.Address {
	return c.pickup
}

func (c CreateOrderCommand) Dropoff() kernel.Address {
	return c.dropoff
}

func (c CreateOrderCommand) Product() order.Product {
	return c.product
}

// ShippingFee is the amount previously quoted by the fee estimator.
func (c CreateOrderCommand) ShippingFee() kernel.Money {
	return c.shippingFee
}

func (c CreateOrderCommand) Notes() string {
	return c.notes
}
