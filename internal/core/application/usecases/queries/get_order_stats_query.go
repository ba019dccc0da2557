package queries

import (
	"errors"
	"fmt"
	"time"

	"deliveryportal/internal/core/domain/model/kernel"
	"deliveryportal/internal/pkg/errs"
	"deliveryportal/internal/pkg/guard"
)

var (
	ErrGetOrderStatsQueryIsNotConstructed = errors.New(
		"GetOrderStatsQuery must be created via NewGetOrderStatsQuery constructor",
	)

	// ErrStatsUnavailable classifies every failure to read the dashboard counters.
	ErrStatsUnavailable = errors.New("order statistics unavailable")
)

// GetOrderStatsQuery asks for a company's dashboard counters as of an instant.
// "Today" is the calendar day of AsOf in AsOf's own location.
//
// Example:
//
//	query, _ := NewGetOrderStatsQuery(companyID, time.Now().In(saoPaulo))
//	stats, err := handler.Handle(ctx, query)
//	if errors.Is(err, ErrStatsUnavailable) {
//	    // show the dashboard as temporarily unavailable
//	}
type GetOrderStatsQuery struct {
	companyID kernel.UUID
	asOf      time.Time

	guard guard.ConstructorGuard
}

func NewGetOrderStatsQuery(companyID kernel.UUID, asOf time.Time) (GetOrderStatsQuery, error) {
	if err := companyID.Validate(); err != nil {
		return GetOrderStatsQuery{}, err
	}
	if asOf.IsZero() {
		return GetOrderStatsQuery{}, errs.NewValueIsRequiredError("asOf")
	}

	return GetOrderStatsQuery{
		companyID: companyID,
		asOf:      asOf,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderStatsQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderStatsQueryIsNotConstructed)
}

func (q GetOrderStatsQuery) CompanyID() kernel.UUID {
	return q.companyID
}

func (q GetOrderStatsQuery) AsOf() time.Time {
	return q.asOf
}

// Today returns the half-open window [midnight, next midnight) containing AsOf.
func (q GetOrderStatsQuery) Today() (time.Time, time.Time) {
	y, m, d := q.asOf.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, q.asOf.Location())
	return start, start.AddDate(0, 0, 1)
}

// OrderStats are the dashboard counters of one company.
type OrderStats struct {
	// Active counts orders received, sent or in transit.
	Active int64
	// DeliveredToday counts orders delivered during the calendar day of AsOf.
	DeliveredToday int64
	// Total counts every order of the company, whatever its status.
	Total int64
}

// StatsUnavailableError wraps the storage failure that prevented the counters
// from being read.
type StatsUnavailableError struct {
	Cause error
}

func (e *StatsUnavailableError) Error() string {
	return fmt.Sprintf("%s: %v", ErrStatsUnavailable, e.Cause)
}

// Unwrap exposes both the classification and the original cause.
func (e *StatsUnavailableError) Unwrap() []error {
	return []error{ErrStatsUnavailable, e.Cause}
}
