package commands

import (
	"context"
	"time"

	"deliveryportal/internal/core/domain/model/kernel"
	"deliveryportal/internal/core/domain/model/order"
)

// CreateOrderResult describes a freshly stored order.
type CreateOrderResult struct {
	ID         kernel.UUID
	Number     order.Number
	Status     order.Status
	TotalValue kernel.Money
	CreatedAt  time.Time
}

// CreateOrderCommandHandler validates a draft, stores it in Received status and
// returns the storage-allocated order number.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, time.Now)
//	result, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, order.ErrOrderValidation) {
//	    // tell the company which field is missing
//	}
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      Clock
}

func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, clock Clock) CreateOrderCommandHandler {
	if clock == nil {
		clock = time.Now
	}
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle builds the aggregate before opening a transaction, so a rejected
// draft never reaches the repository.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (CreateOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return CreateOrderResult{}, err
	}

	o, err := order.NewOrder(order.Draft{
		ID:          kernel.NewUUID(),
		CompanyID:   cmd.CompanyID(),
		Pickup:      cmd.Pickup(),
		Dropoff:     cmd.Dropoff(),
		Product:     cmd.Product(),
		ShippingFee: cmd.ShippingFee(),
		Notes:       cmd.Notes(),
	}, h.clock())
	if err != nil {
		return CreateOrderResult{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return CreateOrderResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	number, err := uow.OrderRepository().Add(ctx, o)
	if err != nil {
		return CreateOrderResult{}, err
	}

	if err = o.AssignNumber(number); err != nil {
		return CreateOrderResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return CreateOrderResult{}, err
	}

	return CreateOrderResult{
		ID:         o.ID(),
		Number:     o.Number(),
		Status:     o.Status(),
		TotalValue: o.TotalValue(),
		CreatedAt:  o.CreatedAt(),
	}, nil
}
