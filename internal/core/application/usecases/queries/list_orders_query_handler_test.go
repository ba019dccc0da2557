package queries_test

import (
	"context"
	"testing"
	"time"

	"deliveryportal/internal/adapters/out/inmemory"
	"deliveryportal/internal/core/application/usecases/queries"
	"deliveryportal/internal/core/domain/model/kernel"
	"deliveryportal/internal/core/domain/model/order"
	"deliveryportal/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewListOrdersQuery(t *testing.T) {
	company := kernel.NewUUID()

	t.Run("should default limit and status", func(t *testing.T) {
		q, err := queries.NewListOrdersQuery(company, "", 0)

		require.NoError(t, err)
		assert.Equal(t, queries.DefaultListLimit, q.Limit())
		assert.Nil(t, q.Status())
	})

	t.Run("should treat all as no filter", func(t *testing.T) {
		q, err := queries.NewListOrdersQuery(company, "ALL", 10)

		require.NoError(t, err)
		assert.Nil(t, q.Status())
	})

	t.Run("should parse status filter", func(t *testing.T) {
		q, err := queries.NewListOrdersQuery(company, "in_transit", 10)

		require.NoError(t, err)
		require.NotNil(t, q.Status())
		assert.Equal(t, order.InTransit, *q.Status())
	})

	t.Run("should reject unknown status", func(t *testing.T) {
		_, err := queries.NewListOrdersQuery(company, "lost", 10)

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject limit out of range", func(t *testing.T) {
		for _, limit := range []int{-1, 101} {
			_, err := queries.NewListOrdersQuery(company, "", limit)

			assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		}
	})
}

func TestListOrdersQueryHandler_Handle(t *testing.T) {
	ctx := context.Background()
	repo := inmemory.NewOrderRepository()
	handler := queries.NewListOrdersQueryHandler(repo)
	company := kernel.NewUUID()
	base := time.Date(2025, 8, 1, 9, 0, 0, 0, time.UTC)

	first := seed(t, repo, company, base, base)
	second := seed(t, repo, company, base.Add(time.Hour), base.Add(2*time.Hour), order.Sent)
	third := seed(t, repo, company, base.Add(2*time.Hour), base.Add(3*time.Hour), order.Cancelled)
	seed(t, repo, kernel.NewUUID(), base.Add(3*time.Hour), base.Add(3*time.Hour))

	t.Run("should list newest first", func(t *testing.T) {
		q, _ := queries.NewListOrdersQuery(company, queries.StatusFilterAll, 0)

		list, err := handler.Handle(ctx, q)

		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, third.ID(), list[0].ID)
		assert.Equal(t, second.ID(), list[1].ID)
		assert.Equal(t, first.ID(), list[2].ID)
		assert.Equal(t, order.Number("PED-000001"), list[2].Number)
		assert.Equal(t, "21.40", list[2].TotalValue.String())
	})

	t.Run("should filter by status", func(t *testing.T) {
		q, _ := queries.NewListOrdersQuery(company, "sent", 0)

		list, err := handler.Handle(ctx, q)

		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, second.ID(), list[0].ID)
		assert.Equal(t, order.Sent, list[0].Status)
	})

	t.Run("should apply limit", func(t *testing.T) {
		q, _ := queries.NewListOrdersQuery(company, "", 2)

		list, err := handler.Handle(ctx, q)

		require.NoError(t, err)
		assert.Len(t, list, 2)
	})

	t.Run("should return empty list for company without orders", func(t *testing.T) {
		q, _ := queries.NewListOrdersQuery(kernel.NewUUID(), "", 0)

		list, err := handler.Handle(ctx, q)

		require.NoError(t, err)
		assert.Empty(t, list)
	})
}
