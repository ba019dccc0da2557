package commands

import (
	"context"
	"errors"
	"time"

	"deliveryportal/internal/core/domain/model/order"
	"deliveryportal/internal/core/ports"
	"deliveryportal/internal/pkg/errs"
)

// maxStatusChangeAttempts bounds how often a change is re-evaluated after
// losing a race against a concurrent writer.
const maxStatusChangeAttempts = 3

// ChangeOrderStatusResult is the outcome of a status change.
type ChangeOrderStatusResult struct {
	Order    *order.Order
	Previous order.Status
	// Changed is false when the order already was in the requested status.
	Changed bool
}

// ChangeOrderStatusCommandHandler applies the order lifecycle.
//
// The write is conditional on the status read at the start of the attempt.
// When another writer got there first, the order is re-read and the request
// evaluated again against its new status: asking for the status the winner
// set is a no-op success, anything else the new status forbids is an
// *order.IllegalTransitionError.
//
// Example:
//
//	courier := kernel.NewUUID()
//	cmd, _ := NewChangeOrderStatusCommand(orderID, order.Sent, &courier)
//	result, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, order.ErrIllegalTransition) {
//	    // report the refusal to the operator
//	}
type ChangeOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.OrderEventPublisher
	clock      Clock
}

// NewChangeOrderStatusCommandHandler creates the handler. publisher may be nil.
func NewChangeOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.OrderEventPublisher,
	clock Clock,
) ChangeOrderStatusCommandHandler {
	if clock == nil {
		clock = time.Now
	}
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		clock:      clock,
	}
}

func (h *ChangeOrderStatusCommandHandler) Handle(
	ctx context.Context,
	cmd ChangeOrderStatusCommand,
) (ChangeOrderStatusResult, error) {
	if err := cmd.Validate(); err != nil {
		return ChangeOrderStatusResult{}, err
	}

	var err error
	for range maxStatusChangeAttempts {
		var result ChangeOrderStatusResult
		result, err = h.attempt(ctx, cmd)
		if errors.Is(err, errs.ErrVersionIsInvalid) {
			continue
		}
		if err != nil {
			return ChangeOrderStatusResult{}, err
		}

		if result.Changed {
			h.publish(ctx, result)
		}
		return result, nil
	}

	return ChangeOrderStatusResult{}, err
}

func (h *ChangeOrderStatusCommandHandler) attempt(
	ctx context.Context,
	cmd ChangeOrderStatusCommand,
) (ChangeOrderStatusResult, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ChangeOrderStatusResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	o, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		return ChangeOrderStatusResult{}, err
	}

	previous := o.Status()
	changed, err := o.TransitionTo(cmd.Target(), cmd.CourierID(), h.clock())
	if err != nil {
		return ChangeOrderStatusResult{}, err
	}

	if !changed {
		return ChangeOrderStatusResult{Order: o, Previous: previous}, nil
	}

	if err = repo.UpdateStatus(ctx, o, previous); err != nil {
		return ChangeOrderStatusResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return ChangeOrderStatusResult{}, err
	}

	return ChangeOrderStatusResult{Order: o, Previous: previous, Changed: true}, nil
}

// publish runs after commit; a delivery failure is the publisher's to report.
func (h *ChangeOrderStatusCommandHandler) publish(ctx context.Context, result ChangeOrderStatusResult) {
	if h.publisher == nil {
		return
	}

	o := result.Order
	occurredAt := h.clock()
	if o.Status() == order.Delivered && o.CompletedAt() != nil {
		occurredAt = *o.CompletedAt()
	}

	_ = h.publisher.PublishStatusChanged(ctx, ports.OrderStatusChanged{
		OrderID:     o.ID(),
		OrderNumber: o.Number(),
		CompanyID:   o.CompanyID(),
		From:        result.Previous,
		To:          o.Status(),
		CourierID:   o.Courier(),
		OccurredAt:  occurredAt,
	})
}
