package order

import (
	"errors"
	"fmt"
)

// ErrOrderValidation classifies every draft rejected by NewOrder.
var ErrOrderValidation = errors.New("order validation failed")

// ValidationReason names the first requirement an order draft failed.
type ValidationReason string

const (
	PickupStreetMissing    ValidationReason = "pickup_street_missing"
	PickupCityMissing      ValidationReason = "pickup_city_missing"
	DropoffStreetMissing   ValidationReason = "dropoff_street_missing"
	DropoffCityMissing     ValidationReason = "dropoff_city_missing"
	ShippingFeeNotComputed ValidationReason = "shipping_fee_not_computed"
)

var reasonMessages = map[ValidationReason]string{
	PickupStreetMissing:    "pickup street is required",
	PickupCityMissing:      "pickup city is required",
	DropoffStreetMissing:   "drop-off street is required",
	DropoffCityMissing:     "drop-off city is required",
	ShippingFeeNotComputed: "shipping fee must be estimated before the order is created",
}

// Message is a human-readable explanation of the reason.
func (r ValidationReason) Message() string {
	if msg, ok := reasonMessages[r]; ok {
		return msg
	}
	return string(r)
}

// ValidationError is returned by NewOrder and RestoreOrder when a draft breaks
// one of the order invariants.
type ValidationError struct {
	Reason ValidationReason
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrOrderValidation, e.Reason.Message())
}

func (e *ValidationError) Unwrap() error {
	return ErrOrderValidation
}
