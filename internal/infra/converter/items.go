package converter

import (
	"time"

	"order-fulfillment/internal/domain/money"
	"order-fulfillment/internal/domain/order"
	"order-fulfillment/internal/domain/shipment"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderItemDoc struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"productId"`
	Name      string          `json:"name"`
	SKU       string          `json:"sku"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
}

func OrderItemsToDocs(items []order.Item) []OrderItemDoc {
	docs := make([]OrderItemDoc, 0, len(items))
	for _, it := range items {
		docs = append(docs, OrderItemDoc{
			ID:        it.ID(),
			ProductID: it.ProductID(),
			Name:      it.Name(),
			SKU:       it.SKU(),
			UnitPrice: it.UnitPrice().Amount(),
			Quantity:  it.Quantity().Int(),
		})
	}
	return docs
}

func OrderItemsFromDocs(docs []OrderItemDoc, currency money.Currency) ([]order.Item, error) {
	items := make([]order.Item, 0, len(docs))
	for _, d := range docs {
		price, err := money.New(d.UnitPrice, currency)
		if err != nil {
			return nil, err
		}
		items = append(items, order.ReconstructItem(d.ID, d.ProductID, d.Name, d.SKU, price, order.Quantity(d.Quantity)))
	}
	return items, nil
}

// CartDoc is the whole cart as one document; Redis stores it under a single key.
type CartDoc struct {
	CustomerID uuid.UUID     `json:"customerId"`
	Currency   string        `json:"currency"`
	Items      []CartItemDoc `json:"items"`
	Version    int           `json:"version"`
	CreatedAt  time.Time     `json:"createdAt"`
	UpdatedAt  time.Time     `json:"updatedAt"`
}

type CartItemDoc struct {
	ProductID uuid.UUID       `json:"productId"`
	Name      string          `json:"name"`
	SKU       string          `json:"sku"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
	AddedAt   time.Time       `json:"addedAt"`
}

func CartToDoc(c *order.Cart) CartDoc {
	items := c.Items()
	doc := CartDoc{
		CustomerID: c.CustomerID(),
		Currency:   c.Total().Currency().String(),
		Items:      make([]CartItemDoc, 0, len(items)),
		Version:    c.Version(),
		CreatedAt:  c.CreatedAt(),
		UpdatedAt:  c.UpdatedAt(),
	}
	for _, it := range items {
		doc.Items = append(doc.Items, CartItemDoc{
			ProductID: it.ProductID,
			Name:      it.Name,
			SKU:       it.SKU,
			UnitPrice: it.UnitPrice.Amount(),
			Quantity:  it.Quantity.Int(),
			AddedAt:   it.AddedAt,
		})
	}
	return doc
}

func CartFromDoc(d CartDoc) (*order.Cart, error) {
	items := make([]order.CartItem, 0, len(d.Items))
	for _, it := range d.Items {
		price, err := money.New(it.UnitPrice, money.Currency(d.Currency))
		if err != nil {
			return nil, err
		}
		items = append(items, order.CartItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			SKU:       it.SKU,
			UnitPrice: price,
			Quantity:  order.Quantity(it.Quantity),
			AddedAt:   it.AddedAt,
		})
	}
	return order.ReconstructCart(d.CustomerID, items, d.Version, d.CreatedAt, d.UpdatedAt), nil
}

type TrackingEventDoc struct {
	ID          uuid.UUID `json:"id"`
	Description string    `json:"description"`
	Location    *string   `json:"location,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

func TrackingEventsToDocs(events []shipment.TrackingEvent) []TrackingEventDoc {
	docs := make([]TrackingEventDoc, 0, len(events))
	for _, e := range events {
		docs = append(docs, TrackingEventDoc{
			ID:          e.ID(),
			Description: e.Description(),
			Location:    e.Location(),
			Timestamp:   e.Timestamp(),
		})
	}
	return docs
}

func TrackingEventsFromDocs(docs []TrackingEventDoc) []shipment.TrackingEvent {
	events := make([]shipment.TrackingEvent, 0, len(docs))
	for _, d := range docs {
		events = append(events, shipment.ReconstructTrackingEvent(d.ID, d.Description, d.Location, d.Timestamp))
	}
	return events
}
