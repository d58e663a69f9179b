//go:build unit || e2e

package builder

import (
	"order-fulfillment/internal/domain/address"
)

type AddressBuilder struct {
	Params address.Params
}

func NewAddressBuilder() *AddressBuilder {
	return &AddressBuilder{Params: address.Params{
		Street:        "No. 7, Sec. 5, Xinyi Rd.",
		City:          "Taipei",
		District:      "Xinyi",
		PostalCode:    "110",
		RecipientName: "Lin Mei",
		PhoneNumber:   "0912345678",
	}}
}

func (a *AddressBuilder) With(mutate func(*AddressBuilder)) *AddressBuilder {
	mutate(a)
	return a
}

func (a *AddressBuilder) BuildDomain() (address.Address, error) {
	return address.New(a.Params)
}

// MustBuild is for fixtures whose address is known to be valid.
func (a *AddressBuilder) MustBuild() address.Address {
	addr, err := a.BuildDomain()
	if err != nil {
		panic(err)
	}
	return addr
}
