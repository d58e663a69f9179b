package order

import (
	"slices"
	"time"

	"order-fulfillment/internal/domain/money"
	"order-fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
)

const MaxCartItems = 50

var (
	ErrCartFull         = errs.BusinessRule("cart cannot hold more than 50 different products")
	ErrCartItemNotFound = errs.NotFound("cart item not found")
)

type CartItem struct {
	ProductID uuid.UUID
	Name      string
	SKU       string
	UnitPrice money.Money
	Quantity  Quantity
	AddedAt   time.Time
}

func (ci CartItem) Subtotal() money.Money {
	total, _ := ci.UnitPrice.Multiply(ci.Quantity.Int())
	return total
}

// Cart is the customer's pre-checkout basket; lines keep insertion order.
type Cart struct {
	customerID uuid.UUID
	items      []CartItem
	version    int
	createdAt  time.Time
	updatedAt  time.Time
}

func NewCart(customerID uuid.UUID, now time.Time) *Cart {
	return &Cart{customerID: customerID, createdAt: now, updatedAt: now}
}

func ReconstructCart(customerID uuid.UUID, items []CartItem, version int, createdAt, updatedAt time.Time) *Cart {
	return &Cart{
		customerID: customerID,
		items:      slices.Clone(items),
		version:    version,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

func (c *Cart) indexOf(productID uuid.UUID) int {
	return slices.IndexFunc(c.items, func(ci CartItem) bool { return ci.ProductID == productID })
}

// AddItem merges the quantity into an existing line for the same product.
func (c *Cart) AddItem(productID uuid.UUID, name, sku string, unitPrice money.Money, qty Quantity, now time.Time) error {
	if _, err := NewQuantity(qty.Int()); err != nil {
		return err
	}
	if len(c.items) > 0 && c.items[0].UnitPrice.Currency() != unitPrice.Currency() {
		return errs.Wrapf(ErrMixedCurrencies, "cart in %s, product in %s", c.items[0].UnitPrice.Currency(), unitPrice.Currency())
	}

	if i := c.indexOf(productID); i >= 0 {
		merged, err := c.items[i].Quantity.Add(qty)
		if err != nil {
			return err
		}
		c.items[i].Quantity = merged
		c.items[i].UnitPrice = unitPrice
		c.updatedAt = now
		return nil
	}

	if len(c.items) >= MaxCartItems {
		return ErrCartFull
	}
	c.items = append(c.items, CartItem{
		ProductID: productID,
		Name:      name,
		SKU:       sku,
		UnitPrice: unitPrice,
		Quantity:  qty,
		AddedAt:   now,
	})
	c.updatedAt = now
	return nil
}

func (c *Cart) UpdateItemQuantity(productID uuid.UUID, qty Quantity, now time.Time) error {
	if _, err := NewQuantity(qty.Int()); err != nil {
		return err
	}
	i := c.indexOf(productID)
	if i < 0 {
		return errs.Wrapf(ErrCartItemNotFound, "product %s", productID)
	}
	c.items[i].Quantity = qty
	c.updatedAt = now
	return nil
}

func (c *Cart) RemoveItem(productID uuid.UUID, now time.Time) error {
	i := c.indexOf(productID)
	if i < 0 {
		return errs.Wrapf(ErrCartItemNotFound, "product %s", productID)
	}
	c.items = slices.Delete(c.items, i, i+1)
	c.updatedAt = now
	return nil
}

func (c *Cart) Clear(now time.Time) {
	c.items = nil
	c.updatedAt = now
}

func (c *Cart) Item(productID uuid.UUID) (CartItem, bool) {
	i := c.indexOf(productID)
	if i < 0 {
		return CartItem{}, false
	}
	return c.items[i], true
}

func (c *Cart) Total() money.Money {
	if len(c.items) == 0 {
		return money.Zero(money.DefaultCurrency)
	}
	total := money.Zero(c.items[0].UnitPrice.Currency())
	for _, it := range c.items {
		// AddItem keeps a single currency per cart
		total, _ = total.Add(it.Subtotal())
	}
	return total
}

func (c *Cart) TotalQuantity() int {
	n := 0
	for _, it := range c.items {
		n += it.Quantity.Int()
	}
	return n
}

// OrderItems snapshots the cart lines for checkout.
func (c *Cart) OrderItems() ([]Item, error) {
	items := make([]Item, 0, len(c.items))
	for _, ci := range c.items {
		it, err := NewItem(ci.ProductID, ci.Name, ci.SKU, ci.UnitPrice, ci.Quantity)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, nil
}

func (c *Cart) IsEmpty() bool         { return len(c.items) == 0 }
func (c *Cart) ItemCount() int        { return len(c.items) }
func (c *Cart) CustomerID() uuid.UUID { return c.customerID }
func (c *Cart) Items() []CartItem     { return slices.Clone(c.items) }
func (c *Cart) Version() int          { return c.version }
func (c *Cart) CreatedAt() time.Time  { return c.createdAt }
func (c *Cart) UpdatedAt() time.Time  { return c.updatedAt }
func (c *Cart) IncrementVersion()     { c.version++ }
