//go:build unit || e2e

package builder

import (
	"time"

	"order-fulfillment/internal/domain/address"
	"order-fulfillment/internal/domain/money"
	"order-fulfillment/internal/domain/order"
	reqdto "order-fulfillment/internal/handler/dto/request"
	"order-fulfillment/internal/usecase/queries"

	"github.com/google/uuid"
)

type ItemSpec struct {
	ProductID uuid.UUID
	Name      string
	SKU       string
	UnitPrice string
	Quantity  int
}

type OrderBuilder struct {
	CustomerID uuid.UUID
	Items      []ItemSpec
	Address    address.Address
	Currency   money.Currency
	Discount   string
	CouponCode *string
	Now        time.Time
}

func NewOrderBuilder() *OrderBuilder {
	return &OrderBuilder{
		CustomerID: uuid.New(),
		Items: []ItemSpec{{
			ProductID: uuid.New(),
			Name:      "Bubble Tea Maker",
			SKU:       "BTM-001",
			UnitPrice: "1000.00",
			Quantity:  2,
		}},
		Address:  NewAddressBuilder().MustBuild(),
		Currency: money.DefaultCurrency,
		Discount: "0",
		Now:      time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func (o *OrderBuilder) With(mutate func(*OrderBuilder)) *OrderBuilder {
	mutate(o)
	return o
}

func (o *OrderBuilder) WithCustomerID(id uuid.UUID) *OrderBuilder {
	o.CustomerID = id
	return o
}

func (o *OrderBuilder) WithDiscount(amount string, couponCode *string) *OrderBuilder {
	o.Discount = amount
	o.CouponCode = couponCode
	return o
}

func (o *OrderBuilder) WithNow(now time.Time) *OrderBuilder {
	o.Now = now
	return o
}

func (o *OrderBuilder) BuildItems() ([]order.Item, error) {
	items := make([]order.Item, 0, len(o.Items))
	for _, line := range o.Items {
		price, err := money.Parse(line.UnitPrice, o.Currency)
		if err != nil {
			return nil, err
		}
		qty, err := order.NewQuantity(line.Quantity)
		if err != nil {
			return nil, err
		}
		it, err := order.NewItem(line.ProductID, line.Name, line.SKU, price, qty)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, nil
}

func (o *OrderBuilder) BuildDomain() (*order.Order, error) {
	items, err := o.BuildItems()
	if err != nil {
		return nil, err
	}
	amount, err := money.Parse(o.Discount, o.Currency)
	if err != nil {
		return nil, err
	}
	return order.New(o.CustomerID, items, o.Address, order.Discount{CouponCode: o.CouponCode, Amount: amount}, o.Now)
}

// BuildPaid returns an order already moved to PAID with a random payment id.
func (o *OrderBuilder) BuildPaid() (*order.Order, error) {
	ord, err := o.BuildDomain()
	if err != nil {
		return nil, err
	}
	if err := ord.MarkAsPaid(uuid.New(), o.Now); err != nil {
		return nil, err
	}
	return ord, nil
}

func (o *OrderBuilder) BuildViewQuery() *queries.OrderView {
	ord, err := o.BuildDomain()
	if err != nil {
		panic(err)
	}
	return queries.NewOrderView(ord)
}

func (o *OrderBuilder) BuildCheckoutRequestDTO() reqdto.CheckoutRequest {
	p := NewAddressBuilder().Params
	return reqdto.CheckoutRequest{
		CouponCode: o.CouponCode,
		ShippingAddress: reqdto.AddressRequest{
			Street:        p.Street,
			City:          p.City,
			District:      p.District,
			PostalCode:    p.PostalCode,
			Country:       p.Country,
			RecipientName: p.RecipientName,
			PhoneNumber:   p.PhoneNumber,
		},
	}
}
