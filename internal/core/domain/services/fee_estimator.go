package services

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"

	"deliveryportal/internal/core/domain/model/kernel"
	"deliveryportal/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// DefaultFeeBase is the fixed part of every shipping fee.
	DefaultFeeBase = kernel.MustMoney("15.00")

	// DefaultFeeVariableCeiling bounds the variable part, which lies in [0, ceiling).
	DefaultFeeVariableCeiling = kernel.MustMoney("20.00")
)

// FeeEstimator quotes the shipping fee between two cities.
//
// Implementations must return a positive amount rounded to cents, or an error
// when either city is blank. Callers keep the quote and pass it to order
// creation; nothing re-estimates behind their back.
type FeeEstimator interface {
	Estimate(ctx context.Context, pickupCity, dropoffCity string) (kernel.Money, error)
}

// Sampler returns a value uniformly distributed in [0, 1).
type Sampler func() float64

// RandomFeeEstimator is a placeholder pricing policy: base plus a uniformly
// sampled variable part. It ignores the cities beyond checking they are present.
//
// Example usage:
//
//	estimator, _ := services.NewRandomFeeEstimator(services.DefaultFeeBase, services.DefaultFeeVariableCeiling, nil)
//	fee, err := estimator.Estimate(ctx, "São Paulo", "Campinas")
type RandomFeeEstimator struct {
	base    kernel.Money
	ceiling kernel.Money
	sample  Sampler
}

var _ FeeEstimator = (*RandomFeeEstimator)(nil)

// NewRandomFeeEstimator checks that base is positive. A nil sampler falls back
// to math/rand/v2, which is safe for concurrent use.
func NewRandomFeeEstimator(base, ceiling kernel.Money, sample Sampler) (*RandomFeeEstimator, error) {
	if !base.IsPositive() {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"fee base is invalid",
			fmt.Errorf("%s is not greater than 0", base),
		)
	}
	if sample == nil {
		sample = rand.Float64
	}

	return &RandomFeeEstimator{base: base, ceiling: ceiling, sample: sample}, nil
}

func (e *RandomFeeEstimator) Estimate(ctx context.Context, pickupCity, dropoffCity string) (kernel.Money, error) {
	if err := ctx.Err(); err != nil {
		return kernel.Money{}, err
	}
	if strings.TrimSpace(pickupCity) == "" {
		return kernel.Money{}, errs.NewValueIsRequiredError("pickupCity")
	}
	if strings.TrimSpace(dropoffCity) == "" {
		return kernel.Money{}, errs.NewValueIsRequiredError("dropoffCity")
	}

	s := e.sample()
	if s < 0 || s >= 1 {
		return kernel.Money{}, errs.NewValueIsOutOfRangeError("fee sample", s, 0, 1)
	}

	variable := e.ceiling.Amount().Mul(decimal.NewFromFloat(s))
	fee, err := kernel.NewMoney(e.base.Amount().Add(variable))
	if err != nil {
		return kernel.Money{}, err
	}

	return fee.Round(), nil
}
