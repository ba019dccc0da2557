// Package orderrepo persists order aggregates with GORM and maps them between
// their domain and relational representations.
package orderrepo

import (
	"time"

	"deliveryportal/internal/core/domain/model/kernel"
	"deliveryportal/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is one row of the orders table. Seq is allocated by the database on
// insert and rendered as the order number.
type OrderDTO struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Seq                int64           `gorm:"type:bigserial;autoIncrement;not null;uniqueIndex"`
	CompanyID          uuid.UUID       `gorm:"type:uuid;not null;index:idx_orders_company_created,priority:1"`
	Pickup             AddressDTO      `gorm:"embedded;embeddedPrefix:pickup_"`
	Dropoff            AddressDTO      `gorm:"embedded;embeddedPrefix:dropoff_"`
	ProductDescription string          `gorm:"type:text"`
	ProductValue       decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	ShippingFee        decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	TotalValue         decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Notes              string          `gorm:"type:text"`
	Status             int             `gorm:"type:smallint;not null;index"`
	CreatedAt          time.Time       `gorm:"type:timestamptz;not null;index:idx_orders_company_created,priority:2"`
	AssignedAt         *time.Time      `gorm:"type:timestamptz"`
	CompletedAt        *time.Time      `gorm:"type:timestamptz;index"`
	CourierID          *uuid.UUID      `gorm:"type:uuid;index"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// AddressDTO is an address embedded in the orders table.
type AddressDTO struct {
	Street       string `gorm:"type:text;not null"`
	Neighborhood string `gorm:"type:text"`
	City         string `gorm:"type:text;not null"`
	PostalCode   string `gorm:"type:varchar(16)"`
	ContactName  string `gorm:"type:text"`
	ContactPhone string `gorm:"type:varchar(32)"`
}

func addressFromDomain(a kernel.Address) AddressDTO {
	return AddressDTO{
		Street:       a.Street,
		Neighborhood: a.Neighborhood,
		City:         a.City,
		PostalCode:   a.PostalCode,
		ContactName:  a.ContactName,
		ContactPhone: a.ContactPhone,
	}
}

func (a AddressDTO) toDomain() kernel.Address {
	return kernel.Address{
		Street:       a.Street,
		Neighborhood: a.Neighborhood,
		City:         a.City,
		PostalCode:   a.PostalCode,
		ContactName:  a.ContactName,
		ContactPhone: a.ContactPhone,
	}
}

// fromDomain converts an order aggregate to its row. Seq is left to the database.
func fromDomain(o *order.Order) OrderDTO {
	s := o.Snapshot()

	var courierID *uuid.UUID
	if s.CourierID != nil {
		raw := s.CourierID.Bytes()
		courierID = &raw
	}

	return OrderDTO{
		ID:                 s.ID.Bytes(),
		CompanyID:          s.CompanyID.Bytes(),
		Pickup:             addressFromDomain(s.Pickup),
		Dropoff:            addressFromDomain(s.Dropoff),
		ProductDescription: s.Product.Description,
		ProductValue:       s.Product.Value.Amount(),
		ShippingFee:        s.ShippingFee.Amount(),
		TotalValue:         s.TotalValue.Amount(),
		Notes:              s.Notes,
		Status:             int(s.Status),
		CreatedAt:          s.CreatedAt,
		AssignedAt:         s.AssignedAt,
		CompletedAt:        s.CompletedAt,
		CourierID:          courierID,
	}
}

// toDomain rebuilds the aggregate with RestoreOrder, which re-checks every invariant.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	companyID, err := kernel.UUIDFromBytes(dto.CompanyID[:])
	if err != nil {
		return nil, err
	}

	var courierID *kernel.UUID
	if dto.CourierID != nil {
		cID, courierErr := kernel.UUIDFromBytes((*dto.CourierID)[:])
		if courierErr != nil {
			return nil, courierErr
		}
		courierID = &cID
	}

	productValue, err := kernel.NewMoney(dto.ProductValue)
	if err != nil {
		return nil, err
	}
	shippingFee, err := kernel.NewMoney(dto.ShippingFee)
	if err != nil {
		return nil, err
	}
	totalValue, err := kernel.NewMoney(dto.TotalValue)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.Snapshot{
		ID:          id,
		Number:      order.NumberFromSequence(dto.Seq),
		CompanyID:   companyID,
		Pickup:      dto.Pickup.toDomain(),
		Dropoff:     dto.Dropoff.toDomain(),
		Product:     order.Product{Description: dto.ProductDescription, Value: productValue},
		ShippingFee: shippingFee,
		TotalValue:  totalValue,
		Notes:       dto.Notes,
		Status:      order.Status(dto.Status),
		CreatedAt:   dto.CreatedAt,
		AssignedAt:  dto.AssignedAt,
		CompletedAt: dto.CompletedAt,
		CourierID:   courierID,
	})
}
