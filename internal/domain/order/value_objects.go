package order

import (
	"strings"

	"order-fulfillment/internal/domain/money"
	"order-fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
)

const (
	MinQuantity = 1
	MaxQuantity = 99
)

var (
	ErrInvalidQuantity = errs.Validation("quantity must be between 1 and 99")
	ErrInvalidItem     = errs.Validation("invalid order item")
)

type Quantity int

func NewQuantity(v int) (Quantity, error) {
	if v < MinQuantity || v > MaxQuantity {
		return 0, errs.Wrapf(ErrInvalidQuantity, "quantity %d", v)
	}
	return Quantity(v), nil
}

func (q Quantity) Int() int { return int(q) }

func (q Quantity) Add(other Quantity) (Quantity, error) {
	return NewQuantity(int(q) + int(other))
}

// Item is a line of an order. Price, name and SKU are frozen at checkout.
type Item struct {
	id        uuid.UUID
	productID uuid.UUID
	name      string
	sku       string
	unitPrice money.Money
	quantity  Quantity
}

func NewItem(productID uuid.UUID, name, sku string, unitPrice money.Money, quantity Quantity) (Item, error) {
	name = strings.TrimSpace(name)
	if productID == uuid.Nil {
		return Item{}, errs.Wrap(ErrInvalidItem, "product id is required")
	}
	if name == "" {
		return Item{}, errs.Wrap(ErrInvalidItem, "product name is required")
	}
	if _, err := NewQuantity(int(quantity)); err != nil {
		return Item{}, err
	}
	return Item{
		id:        uuid.New(),
		productID: productID,
		name:      name,
		sku:       strings.TrimSpace(sku),
		unitPrice: unitPrice,
		quantity:  quantity,
	}, nil
}

func ReconstructItem(id, productID uuid.UUID, name, sku string, unitPrice money.Money, quantity Quantity) Item {
	return Item{
		id:        id,
		productID: productID,
		name:      name,
		sku:       sku,
		unitPrice: unitPrice,
		quantity:  quantity,
	}
}

func (i Item) ID() uuid.UUID          { return i.id }
func (i Item) ProductID() uuid.UUID   { return i.productID }
func (i Item) Name() string           { return i.name }
func (i Item) SKU() string            { return i.sku }
func (i Item) UnitPrice() money.Money { return i.unitPrice }
func (i Item) Quantity() Quantity     { return i.quantity }

func (i Item) Subtotal() money.Money {
	// quantity is always positive, so Multiply cannot fail
	total, _ := i.unitPrice.Multiply(int(i.quantity))
	return total
}

// Discount is the amount taken off the subtotal at checkout, with the coupon
// that contributed to it, if any.
type Discount struct {
	CouponCode *string
	Amount     money.Money
}
