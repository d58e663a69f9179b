package address

import (
	"fmt"
	"strings"

	"order-fulfillment/internal/pkg/errs"
)

const DefaultCountry = "Taiwan"

var ErrInvalidAddress = errs.Validation("invalid address")

// Address is a delivery address snapshot.
type Address struct {
	street        string
	city          string
	district      string
	postalCode    string
	country       string
	recipientName string
	phoneNumber   string
}

type Params struct {
	Street        string
	City          string
	District      string
	PostalCode    string
	Country       string
	RecipientName string
	PhoneNumber   string
}

func New(p Params) (Address, error) {
	a := Address{
		street:        strings.TrimSpace(p.Street),
		city:          strings.TrimSpace(p.City),
		district:      strings.TrimSpace(p.District),
		postalCode:    strings.TrimSpace(p.PostalCode),
		country:       strings.TrimSpace(p.Country),
		recipientName: strings.TrimSpace(p.RecipientName),
		phoneNumber:   strings.TrimSpace(p.PhoneNumber),
	}
	if a.country == "" {
		a.country = DefaultCountry
	}

	required := []struct {
		field string
		value string
	}{
		{"street", a.street},
		{"city", a.city},
		{"postal code", a.postalCode},
		{"recipient name", a.recipientName},
		{"phone number", a.phoneNumber},
	}
	for _, r := range required {
		if r.value == "" {
			return Address{}, errs.Wrapf(ErrInvalidAddress, "%s is required", r.field)
		}
	}
	return a, nil
}

func (a Address) Street() string        { return a.street }
func (a Address) City() string          { return a.city }
func (a Address) District() string      { return a.district }
func (a Address) PostalCode() string    { return a.postalCode }
func (a Address) Country() string       { return a.country }
func (a Address) RecipientName() string { return a.recipientName }
func (a Address) PhoneNumber() string   { return a.phoneNumber }

func (a Address) IsZero() bool { return a == Address{} }

func (a Address) FullAddress() string {
	return fmt.Sprintf("%s %s%s%s, %s", a.postalCode, a.city, a.district, a.street, a.country)
}

func (a Address) Params() Params {
	return Params{
		Street:        a.street,
		City:          a.city,
		District:      a.district,
		PostalCode:    a.postalCode,
		Country:       a.country,
		RecipientName: a.recipientName,
		PhoneNumber:   a.phoneNumber,
	}
}
