package queries

import (
	"context"
	"errors"

	"deliveryportal/internal/core/domain/model/kernel"
	"deliveryportal/internal/core/domain/services"
	"deliveryportal/internal/pkg/guard"
)

var ErrEstimateFeeQueryIsNotConstructed = errors.New(
	"EstimateFeeQuery must be created via NewEstimateFeeQuery constructor",
)

// EstimateFeeQuery asks for a shipping fee quote between two cities.
// City presence is checked by the estimator.
type EstimateFeeQuery struct {
	pickupCity  string
	dropoffCity string

	guard guard.ConstructorGuard
}

func NewEstimateFeeQuery(pickupCity, dropoffCity string) EstimateFeeQuery {
	return EstimateFeeQuery{
		pickupCity:  pickupCity,
		dropoffCity: dropoffCity,
		guard:       guard.NewConstructorGuard(),
	}
}

// Validate ensures the query was created through the constructor.
func (q EstimateFeeQuery) Validate() error {
	return q.guard.Validate(ErrEstimateFeeQueryIsNotConstructed)
}

func (q EstimateFeeQuery) PickupCity() string {
	return q.pickupCity
}

func (q EstimateFeeQuery) DropoffCity() string {
	return q.dropoffCity
}

// EstimateFeeResponse carries the quote the caller must send back when creating the order.
type EstimateFeeResponse struct {
	ShippingFee kernel.Money
}

// EstimateFeeQueryHandler delegates to the configured FeeEstimator.
type EstimateFeeQueryHandler struct {
	estimator services.FeeEstimator
}

func NewEstimateFeeQueryHandler(estimator services.FeeEstimator) EstimateFeeQueryHandler {
	return EstimateFeeQueryHandler{estimator: estimator}
}

func (h EstimateFeeQueryHandler) Handle(ctx context.Context, query EstimateFeeQuery) (EstimateFeeResponse, error) {
	if err := query.Validate(); err != nil {
		return EstimateFeeResponse{}, err
	}

	fee, err := h.estimator.Estimate(ctx, query.PickupCity(), query.DropoffCity())
	if err != nil {
		return EstimateFeeResponse{}, err
	}

	return EstimateFeeResponse{ShippingFee: fee}, nil
}
