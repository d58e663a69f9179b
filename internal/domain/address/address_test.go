//go:build unit

package address_test

import (
	"testing"

	"order-fulfillment/internal/domain/address"
	"order-fulfillment/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddress(t *testing.T) {
	t.Run("defaults country and renders full address", func(t *testing.T) {
		a, err := builder.NewAddressBuilder().BuildDomain()
		require.NoError(t, err)
		assert.Equal(t, address.DefaultCountry, a.Country())
		assert.Equal(t, "110 TaipeiXinyiNo. 7, Sec. 5, Xinyi Rd., Taiwan", a.FullAddress())
	})

	required := map[string]func(*builder.AddressBuilder){
		"street":    func(b *builder.AddressBuilder) { b.Params.Street = " " },
		"city":      func(b *builder.AddressBuilder) { b.Params.City = "" },
		"postal":    func(b *builder.AddressBuilder) { b.Params.PostalCode = "" },
		"recipient": func(b *builder.AddressBuilder) { b.Params.RecipientName = "" },
		"phone":     func(b *builder.AddressBuilder) { b.Params.PhoneNumber = "" },
	}
	for name, mutate := range required {
		t.Run("missing "+name, func(t *testing.T) {
			_, err := builder.NewAddressBuilder().With(mutate).BuildDomain()
			assert.ErrorIs(t, err, address.ErrInvalidAddress)
		})
	}

	t.Run("district is optional", func(t *testing.T) {
		a, err := builder.NewAddressBuilder().With(func(b *builder.AddressBuilder) { b.Params.District = "" }).BuildDomain()
		require.NoError(t, err)
		assert.False(t, a.IsZero())
		assert.Equal(t, "Taipei", a.Params().City)
	})
}
