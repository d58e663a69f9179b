package external

import (
	"context"
	"sync"

	"order-fulfillment/internal/domain/money"
	"order-fulfillment/internal/usecase/shared"

	"github.com/google/uuid"
)

// Fixed ids of the built-in sample products, so local clients can add them
// to a cart without a catalog endpoint.
var (
	SampleKeyboardID = uuid.MustParse("7b1e3c2a-0d4f-4a8e-9c61-1f2a3b4c5d01")
	SampleMouseID    = uuid.MustParse("7b1e3c2a-0d4f-4a8e-9c61-1f2a3b4c5d02")
	SampleMonitorID  = uuid.MustParse("7b1e3c2a-0d4f-4a8e-9c61-1f2a3b4c5d03")
	SampleHeadsetID  = uuid.MustParse("7b1e3c2a-0d4f-4a8e-9c61-1f2a3b4c5d04")
	SampleRetiredID  = uuid.MustParse("7b1e3c2a-0d4f-4a8e-9c61-1f2a3b4c5d05")
)

// Catalog is an in-memory product service.
type Catalog struct {
	mu       sync.RWMutex
	products map[uuid.UUID]shared.ProductInfo
}

func NewCatalog(products ...shared.ProductInfo) *Catalog {
	c := &Catalog{products: make(map[uuid.UUID]shared.ProductInfo, len(products))}
	for _, p := range products {
		c.Put(p)
	}
	return c
}

// NewSampleCatalog seeds the catalog with a handful of products priced in
// the given currency.
func NewSampleCatalog(currency money.Currency) *Catalog {
	price := func(amount string) money.Money { return money.MustParse(amount, currency) }
	return NewCatalog(
		shared.ProductInfo{ProductID: SampleKeyboardID, Name: "Mechanical Keyboard", SKU: "KB-001", Price: price("2990"), AvailableStock: 50, Active: true},
		shared.ProductInfo{ProductID: SampleMouseID, Name: "Wireless Mouse", SKU: "MS-002", Price: price("890"), AvailableStock: 120, Active: true},
		shared.ProductInfo{ProductID: SampleMonitorID, Name: "27\" Monitor", SKU: "MN-003", Price: price("8990"), AvailableStock: 10, Active: true},
		shared.ProductInfo{ProductID: SampleHeadsetID, Name: "Noise Cancelling Headset", SKU: "HS-004", Price: price("4590"), AvailableStock: 0, Active: true},
		shared.ProductInfo{ProductID: SampleRetiredID, Name: "Legacy Webcam", SKU: "WC-005", Price: price("1290"), AvailableStock: 30, Active: false},
	)
}

var _ shared.ProductService = (*Catalog)(nil)

// Put adds or replaces a product.
func (c *Catalog) Put(p shared.ProductInfo) {
	c.mu.Lock()
	c.products[p.ProductID] = p
	c.mu.Unlock()
}

func (c *Catalog) GetProductInfo(_ context.Context, productID uuid.UUID) (*shared.ProductInfo, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.products[productID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (c *Catalog) IsStockAvailable(_ context.Context, productID uuid.UUID, quantity int) (bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.products[productID]
	if !ok || !p.Active {
		return false, nil
	}
	return p.AvailableStock >= quantity, nil
}
