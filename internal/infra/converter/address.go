package converter

import (
	"order-fulfillment/internal/domain/address"
)

// AddressDoc is the stored JSON form of an address.
type AddressDoc struct {
	Street        string `json:"street"`
	City          string `json:"city"`
	District      string `json:"district,omitempty"`
	PostalCode    string `json:"postalCode"`
	Country       string `json:"country"`
	RecipientName string `json:"recipientName"`
	PhoneNumber   string `json:"phoneNumber"`
}

func AddressToDoc(a address.Address) AddressDoc {
	return AddressDoc{
		Street:        a.Street(),
		City:          a.City(),
		District:      a.District(),
		PostalCode:    a.PostalCode(),
		Country:       a.Country(),
		RecipientName: a.RecipientName(),
		PhoneNumber:   a.PhoneNumber(),
	}
}

func AddressFromDoc(d AddressDoc) (address.Address, error) {
	return address.New(address.Params{
		Street:        d.Street,
		City:          d.City,
		District:      d.District,
		PostalCode:    d.PostalCode,
		Country:       d.Country,
		RecipientName: d.RecipientName,
		PhoneNumber:   d.PhoneNumber,
	})
}
