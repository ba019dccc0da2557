package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"deliveryportal/internal/core/domain/model/kernel"
	"deliveryportal/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not built by NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrCourierOnlyWhenSent is returned when a courier is bound to any transition but the one to Sent.
	ErrCourierOnlyWhenSent = errs.NewValueIsInvalidErrorWithCause(
		"courier is invalid",
		errors.New("a courier can only be bound when the order is sent"),
	)
)

// Number is the human-readable order code allocated by storage, e.g. "PED-000042".
type Number string

// NumberFromSequence formats a storage sequence value as an order number.
func NumberFromSequence(seq int64) Number {
	return Number(fmt.Sprintf("PED-%06d", seq))
}

func (n Number) String() string {
	return string(n)
}

// Product describes what is being shipped. Value defaults to zero.
type Product struct {
	Description string
	Value       kernel.Money
}

// Draft is everything a company supplies when requesting a delivery. The
// shipping fee must come from a FeeEstimator call made beforehand.
type Draft struct {
	ID          kernel.UUID
	CompanyID   kernel.UUID
	Pickup      kernel.Address
	Dropoff     kernel.Address
	Product     Product
	ShippingFee kernel.Money
	Notes       string
}

// Order is the aggregate root of a delivery request.
//
// Invariants:
//   - pickup and drop-off street and city are never blank
//   - shipping fee is positive
//   - total value equals product value plus shipping fee and never changes
//   - completedAt is set if and only if the status is Delivered
//   - status only moves along the transition table of Status
type Order struct {
	id          kernel.UUID
	number      Number
	companyID   kernel.UUID
	pickup      kernel.Address
	dropoff     kernel.Address
	product     Product
	shippingFee kernel.Money
	totalValue  kernel.Money
	notes       string
	status      Status
	createdAt   time.Time
	assignedAt  *time.Time
	completedAt *time.Time
	courierID   *kernel.UUID

	isConstructed bool
}

// NewOrder validates a draft and creates the order in Received status.
//
// Identifier errors are reported first. After that the draft is checked in a
// fixed order (pickup street, pickup city, drop-off street, drop-off city,
// shipping fee) and the first failure is returned as a *ValidationError.
// The order number is attached later by storage through AssignNumber.
func NewOrder(draft Draft, createdAt time.Time) (*Order, error) {
	if err := errors.Join(draft.ID.Validate(), draft.CompanyID.Validate()); err != nil {
		return nil, err
	}

	if err := validateDraft(draft); err != nil {
		return nil, err
	}

	return &Order{
		id:          draft.ID,
		companyID:   draft.CompanyID,
		pickup:      draft.Pickup.Normalize(),
		dropoff:     draft.Dropoff.Normalize(),
		product:     Product{Description: strings.TrimSpace(draft.Product.Description), Value: draft.Product.Value},
		shippingFee: draft.ShippingFee,
		totalValue:  draft.Product.Value.Add(draft.ShippingFee),
		notes:       strings.TrimSpace(draft.Notes),
		status:      Received,
		createdAt:   createdAt,

		isConstructed: true,
	}, nil
}

func validateDraft(draft Draft) error {
	switch {
	case !draft.Pickup.HasStreet():
		return &ValidationError{Reason: PickupStreetMissing}
	case !draft.Pickup.HasCity():
		return &ValidationError{Reason: PickupCityMissing}
	case !draft.Dropoff.HasStreet():
		return &ValidationError{Reason: DropoffStreetMissing}
	case !draft.Dropoff.HasCity():
		return &ValidationError{Reason: DropoffCityMissing}
	case !draft.ShippingFee.IsPositive():
		return &ValidationError{Reason: ShippingFeeNotComputed}
	}
	return nil
}

// Snapshot is the full persisted state of an order, used to rehydrate it.
type Snapshot struct {
	ID          kernel.UUID
	Number      Number
	CompanyID   kernel.UUID
	Pickup      kernel.Address
	Dropoff     kernel.Address
	Product     Product
	ShippingFee kernel.Money
	TotalValue  kernel.Money
	Notes       string
	Status      Status
	CreatedAt   time.Time
	AssignedAt  *time.Time
	CompletedAt *time.Time
	CourierID   *kernel.UUID
}

// RestoreOrder rebuilds an order read from storage and re-checks every invariant,
// so a corrupted row can never be loaded as a valid aggregate.
func RestoreOrder(s Snapshot) (*Order, error) {
	draft := Draft{
		ID:          s.ID,
		CompanyID:   s.CompanyID,
		Pickup:      s.Pickup,
		Dropoff:     s.Dropoff,
		Product:     s.Product,
		ShippingFee: s.ShippingFee,
		Notes:       s.Notes,
	}
	if err := errors.Join(draft.ID.Validate(), draft.CompanyID.Validate()); err != nil {
		return nil, err
	}
	if err := validateDraft(draft); err != nil {
		return nil, err
	}

	if err := errors.Join(
		validateNumber(s.Number),
		s.Status.Validate(),
		validateTotal(s.Product.Value, s.ShippingFee, s.TotalValue),
		validateCompletion(s.Status, s.CompletedAt),
		validateCourier(s.CourierID),
	); err != nil {
		return nil, err
	}

	return &Order{
		id:          s.ID,
		number:      s.Number,
		companyID:   s.CompanyID,
		pickup:      s.Pickup,
		dropoff:     s.Dropoff,
		product:     s.Product,
		shippingFee: s.ShippingFee,
		totalValue:  s.TotalValue,
		notes:       s.Notes,
		status:      s.Status,
		createdAt:   s.CreatedAt,
		assignedAt:  s.AssignedAt,
		completedAt: s.CompletedAt,
		courierID:   s.CourierID,

		isConstructed: true,
	}, nil
}

func validateNumber(n Number) error {
	if strings.TrimSpace(string(n)) == "" {
		return errs.NewValueIsRequiredError("order number")
	}
	return nil
}

func validateTotal(product, fee, total kernel.Money) error {
	if !product.Add(fee).Equal(total) {
		return errs.NewValueIsInvalidErrorWithCause(
			"total value is invalid",
			fmt.Errorf("%s is not %s + %s", total, product, fee),
		)
	}
	return nil
}

func validateCompletion(status Status, completedAt *time.Time) error {
	if status == Delivered && completedAt == nil {
		return errs.NewValueIsRequiredError("completedAt of a delivered order")
	}
	if status != Delivered && completedAt != nil {
		return errs.NewValueIsInvalidErrorWithCause(
			"completedAt is invalid",
			fmt.Errorf("%s orders have no completion date", status),
		)
	}
	return nil
}

func validateCourier(courierID *kernel.UUID) error {
	if courierID == nil {
		return nil
	}
	return courierID.Validate()
}

// Validate ensures the order was built by NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID { return o.id }
func (o *Order) Number() Number { return o.number }
func (o *Order) CompanyID() kernel.UUID { return o.companyID }
func (o *Order) Pickup() kernel.Address { return o.pickup }
func (o *Order) Dropoff() kernel.Address { return o.dropoff }
func (o *Order) Product() Product { return o.product }
func (o *Order) ShippingFee() kernel.Money { return o.shippingFee }
func (o *Order) TotalValue() kernel.Money { return o.totalValue }
func (o *Order) Notes() string { return o.notes }
func (o *Order) Status() Status { return o.status }
func (o *Order) CreatedAt() time.Time { return o.createdAt }
func (o *Order) AssignedAt() *time.Time { return o.assignedAt }
func (o *Order) CompletedAt() *time.Time { return o.completedAt }
func (o *Order) Courier() *kernel.UUID { return o.courierID }
func (o *Order) BelongsTo(c kernel.UUID) bool { return o.companyID.IsEqual(c) }

// Snapshot copies the full state of the order for persistence.
func (o *Order) Snapshot() Snapshot {
	s := Snapshot{
		ID:          o.id,
		Number:      o.number,
		CompanyID:   o.companyID,
		Pickup:      o.pickup,
		Dropoff:     o.dropoff,
		Product:     o.product,
		ShippingFee: o.shippingFee,
		TotalValue:  o.totalValue,
		Notes:       o.notes,
		Status:      o.status,
		CreatedAt:   o.createdAt,
	}
	if o.assignedAt != nil {
		t := *o.assignedAt
		s.AssignedAt = &t
	}
	if o.completedAt != nil {
		t := *o.completedAt
		s.CompletedAt = &t
	}
	if o.courierID != nil {
		id := *o.courierID
		s.CourierID = &id
	}
	return s
}

// AssignNumber attaches the storage-allocated order number. It may be called once.
func (o *Order) AssignNumber(n Number) error {
	if err := validateNumber(n); err != nil {
		return err
	}
	if o.number != "" {
		return errs.NewValueIsInvalidErrorWithCause(
			"order number is invalid",
			fmt.Errorf("order already numbered %s", o.number),
		)
	}
	o.number = n
	return nil
}

// TransitionTo moves the order to target at the given instant.
//
// Requesting the current status is a no-op: it reports changed == false and
// leaves courier and dates untouched. A courier may only be bound on the move
// to Sent; assignedAt is stamped the first time that happens. Entering
// Delivered stamps completedAt. On error the order is unchanged.
func (o *Order) TransitionTo(target Status, courierID *kernel.UUID, at time.Time) (bool, error) {
	if err := target.Validate(); err != nil {
		return false, err
	}
	if target == o.status {
		return false, nil
	}

	if courierID != nil {
		if target != Sent {
			return false, ErrCourierOnlyWhenSent
		}
		if err := courierID.Validate(); err != nil {
			return false, err
		}
	}

	next, err := o.status.TransitionTo(target)
	if err != nil {
		return false, err
	}

	switch next {
	case Sent:
		if courierID != nil {
			id := *courierID
			o.courierID = &id
			if o.assignedAt == nil {
				stamp := at
				o.assignedAt = &stamp
			}
		}
	case Delivered:
		stamp := at
		o.completedAt = &stamp
	case Unknown, Received, InTransit, Cancelled:
	}

	o.status = next
	return true, nil
}
