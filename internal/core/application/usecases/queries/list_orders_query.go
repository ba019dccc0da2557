package queries

import (
	"errors"
	"strings"

	"deliveryportal/internal/core/domain/model/kernel"
	"deliveryportal/internal/core/domain/model/order"
	"deliveryportal/internal/pkg/errs"
	"deliveryportal/internal/pkg/guard"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 100

	// StatusFilterAll disables status filtering, as does an empty filter.
	StatusFilterAll = "all"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersQuery pages through a company's orders, newest first.
type ListOrdersQuery struct {
	companyID kernel.UUID
	status    *order.Status
	limit     int

	guard guard.ConstructorGuard
}

// NewListOrdersQuery parses the status filter ("all", "" or a wire value such
// as "in_transit") and applies the default limit when limit is 0.
func NewListOrdersQuery(companyID kernel.UUID, statusFilter string, limit int) (ListOrdersQuery, error) {
	if err := companyID.Validate(); err != nil {
		return ListOrdersQuery{}, err
	}

	if limit == 0 {
		limit = DefaultListLimit
	}
	if limit < 1 || limit > MaxListLimit {
		return ListOrdersQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxListLimit)
	}

	q := ListOrdersQuery{
		companyID: companyID,
		limit:     limit,
		guard:     guard.NewConstructorGuard(),
	}

	filter := strings.TrimSpace(statusFilter)
	if filter != "" && !strings.EqualFold(filter, StatusFilterAll) {
		status, err := order.ParseStatus(filter)
		if err != nil {
			return ListOrdersQuery{}, err
		}
		q.status = &status
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) CompanyID() kernel.UUID {
	return q.companyID
}

// Status returns the status to filter on, or nil for all statuses.
func (q ListOrdersQuery) Status() *order.Status {
	return q.status
}

func (q ListOrdersQuery) Limit() int {
	return q.limit
}
