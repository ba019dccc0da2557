package order

import (
	"errors"
	"fmt"
	"strings"

	"deliveryportal/internal/pkg/errs"
)

// ErrIllegalTransition classifies every refused status change.
var ErrIllegalTransition = errors.New("illegal status transition")

// Status is the lifecycle state of an order.
//
//	Received ──> Sent ──> InTransit ──> Delivered
//	    │          │          │
//	    └──────────┴──────────┴──────> Cancelled
//
// Delivered and Cancelled are terminal. Requesting the current state again is
// accepted as a no-op by Order.TransitionTo.
type Status int

const (
	// Unknown is the zero value and never valid.
	Unknown Status = iota

	// Received is the initial state of every new order.
	Received

	// Sent means the order left the company, usually with a courier bound.
	Sent

	// InTransit means the parcel is on its way to the drop-off address.
	InTransit

	// Delivered is terminal; completedAt is stamped on entry.
	Delivered

	// Cancelled is terminal and reachable from every non-terminal state.
	Cancelled
)

var statusNames = map[Status]string{
	Received:  "received",
	Sent:      "sent",
	InTransit: "in_transit",
	Delivered: "delivered",
	Cancelled: "cancelled",
}

var statusLabels = map[Status]string{
	Received:  "Recebido",
	Sent:      "Enviado",
	InTransit: "A caminho",
	Delivered: "Entregue",
	Cancelled: "Cancelado",
}

// transitions lists, for each state, the states it may move to.
var transitions = map[Status][]Status{
	Received:  {Sent, Cancelled},
	Sent:      {InTransit, Cancelled},
	InTransit: {Delivered, Cancelled},
	Delivered: nil,
	Cancelled: nil,
}

// AllStatuses returns the valid statuses in lifecycle order.
func AllStatuses() []Status {
	return []Status{Received, Sent, InTransit, Delivered, Cancelled}
}

// ActiveStatuses returns the statuses counted as active on the dashboard.
func ActiveStatuses() []Status {
	return []Status{Received, Sent, InTransit}
}

// ParseStatus maps a wire value ("in_transit") to a Status.
func ParseStatus(s string) (Status, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for status, name := range statusNames {
		if name == needle {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status is invalid",
		fmt.Errorf("%q is not a valid status", s),
	)
}

// Validate rejects Unknown and out-of-range values, e.g. ones read from storage.
func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire value, or "unknown".
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// Label returns the display label shown to companies.
func (s Status) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return "Desconhecido"
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// IsActive reports whether the order still awaits delivery.
func (s Status) IsActive() bool {
	return s == Received || s == Sent || s == InTransit
}

// CanTransitionTo reports whether target is a legal next state. A state is
// never its own successor; same-state requests are handled by the aggregate.
func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range transitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// TransitionTo returns target when the move is legal and an
// *IllegalTransitionError otherwise. The receiver is never modified.
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return Unknown, err
	}
	if !s.CanTransitionTo(target) {
		return Unknown, &IllegalTransitionError{From: s, To: target}
	}
	return target, nil
}

// IllegalTransitionError carries the current and requested status of a refused
// change so the caller can explain the refusal.
type IllegalTransitionError struct {
	From Status
	To   Status
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrIllegalTransition, e.From, e.To)
}

func (e *IllegalTransitionError) Unwrap() error {
	return ErrIllegalTransition
}
