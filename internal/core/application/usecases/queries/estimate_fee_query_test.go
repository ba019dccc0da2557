package queries_test

import (
	"context"
	"errors"
	"testing"

	"deliveryportal/internal/core/application/usecases/queries"
	"deliveryportal/internal/core/domain/model/kernel"
	"deliveryportal/internal/core/domain/services"
	"deliveryportal/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockFeeEstimator struct{ mock.Mock }

func (m *MockFeeEstimator) Estimate(ctx context.Context, pickupCity, dropoffCity string) (kernel.Money, error) {
	args := m.Called(ctx, pickupCity, dropoffCity)
	return args.Get(0).(kernel.Money), args.Error(1)
}

func TestEstimateFeeQueryHandler_Handle(t *testing.T) {
	ctx := context.Background()

	t.Run("should return the estimator quote", func(t *testing.T) {
		estimator := new(MockFeeEstimator)
		estimator.On("Estimate", ctx, "Salvador", "Feira de Santana").Return(kernel.MustMoney("31.07"), nil).Once()
		h := queries.NewEstimateFeeQueryHandler(estimator)

		resp, err := h.Handle(ctx, queries.NewEstimateFeeQuery("Salvador", "Feira de Santana"))

		require.NoError(t, err)
		assert.Equal(t, "31.07", resp.ShippingFee.String())
		estimator.AssertExpectations(t)
	})

	t.Run("should propagate estimator errors", func(t *testing.T) {
		estimator := new(MockFeeEstimator)
		boom := errors.New("pricing offline")
		estimator.On("Estimate", ctx, "A", "B").Return(kernel.Money{}, boom).Once()
		h := queries.NewEstimateFeeQueryHandler(estimator)

		_, err := h.Handle(ctx, queries.NewEstimateFeeQuery("A", "B"))

		assert.ErrorIs(t, err, boom)
	})

	t.Run("should report blank city through the random estimator", func(t *testing.T) {
		estimator, err := services.NewRandomFeeEstimator(services.DefaultFeeBase, services.DefaultFeeVariableCeiling, nil)
		require.NoError(t, err)
		h := queries.NewEstimateFeeQueryHandler(estimator)

		_, err = h.Handle(ctx, queries.NewEstimateFeeQuery("", "Campinas"))

		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject zero value query", func(t *testing.T) {
		h := queries.NewEstimateFeeQueryHandler(new(MockFeeEstimator))

		_, err := h.Handle(ctx, queries.EstimateFeeQuery{})

		assert.ErrorIs(t, err, queries.ErrEstimateFeeQueryIsNotConstructed)
	})
}
