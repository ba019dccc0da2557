package kernel

import "strings"

// Address is one end of a delivery: where a parcel is picked up or dropped off.
// Street and City are mandatory on a persisted order; the other fields are
// informational and may be empty.
//
// Address is a plain value: emptiness is reported, not rejected, so that the
// order validator can name exactly which part of which address is missing.
type Address struct {
	Street       string
	Neighborhood string
	City         string
	PostalCode   string
	ContactName  string
	ContactPhone string
}

// Normalize trims surrounding whitespace from every field.
func (a Address) Normalize() Address {
	return Address{
		Street:       strings.TrimSpace(a.Street),
		Neighborhood: strings.TrimSpace(a.Neighborhood),
		City:         strings.TrimSpace(a.City),
		PostalCode:   strings.TrimSpace(a.PostalCode),
		ContactName:  strings.TrimSpace(a.ContactName),
		ContactPhone: strings.TrimSpace(a.ContactPhone),
	}
}

// HasStreet reports whether the street line is non-blank.
func (a Address) HasStreet() bool {
	return strings.TrimSpace(a.Street) != ""
}

// HasCity reports whether the city is non-blank.
func (a Address) HasCity() bool {
	return strings.TrimSpace(a.City) != ""
}
