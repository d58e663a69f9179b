package commands

//go:generate mockgen -source=cart.go -destination=../../../tests/mock/commands/cart.go -package=commandsmock

import (
	"context"

	"order-fulfillment/internal/domain/order"
	"order-fulfillment/internal/pkg/clock"
	"order-fulfillment/internal/pkg/errs"
	"order-fulfillment/internal/usecase/queries"
	"order-fulfillment/internal/usecase/shared"

	"github.com/google/uuid"
)

type CartCommands interface {
	AddToCart(ctx context.Context, customerID, productID uuid.UUID, quantity int) (*queries.CartView, error)
	UpdateCartItem(ctx context.Context, customerID, productID uuid.UUID, quantity int) (*queries.CartView, error)
	RemoveCartItem(ctx context.Context, customerID, productID uuid.UUID) (*queries.CartView, error)
	ClearCart(ctx context.Context, customerID uuid.UUID) error
}

type cartUseCaseImpl struct {
	carts    shared.CartRepository
	products shared.ProductService
	locker   shared.Locker
	clock    clock.Clock
}

func NewCartUseCase(carts shared.CartRepository, products shared.ProductService, locker shared.Locker, clk clock.Clock) CartCommands {
	return &cartUseCaseImpl{carts: carts, products: products, locker: locker, clock: clk}
}

func (uc *cartUseCaseImpl) AddToCart(ctx context.Context, customerID, productID uuid.UUID, quantity int) (*queries.CartView, error) {
	qty, err := order.NewQuantity(quantity)
	if err != nil {
		return nil, err
	}
	product, err := uc.activeProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	return uc.mutate(ctx, customerID, func(c *order.Cart) error {
		wanted := quantity
		if existing, ok := c.Item(productID); ok {
			wanted += existing.Quantity.Int()
		}
		if err := uc.checkStock(ctx, productID, wanted); err != nil {
			return err
		}
		return c.AddItem(productID, product.Name, product.SKU, product.Price, qty, uc.clock.Now())
	})
}

func (uc *cartUseCaseImpl) UpdateCartItem(ctx context.Context, customerID, productID uuid.UUID, quantity int) (*queries.CartView, error) {
	qty, err := order.NewQuantity(quantity)
	if err != nil {
		return nil, err
	}
	return uc.mutate(ctx, customerID, func(c *order.Cart) error {
		if _, ok := c.Item(productID); !ok {
			return errs.Wrapf(order.ErrCartItemNotFound, "product %s", productID)
		}
		if err := uc.checkStock(ctx, productID, quantity); err != nil {
			return err
		}
		return c.UpdateItemQuantity(productID, qty, uc.clock.Now())
	})
}

func (uc *cartUseCaseImpl) RemoveCartItem(ctx context.Context, customerID, productID uuid.UUID) (*queries.CartView, error) {
	return uc.mutate(ctx, customerID, func(c *order.Cart) error {
		return c.RemoveItem(productID, uc.clock.Now())
	})
}

func (uc *cartUseCaseImpl) ClearCart(ctx context.Context, customerID uuid.UUID) error {
	return withLock(ctx, uc.locker, shared.CartLockKey(customerID), func() error {
		return uc.carts.Delete(ctx, customerID)
	})
}

func (uc *cartUseCaseImpl) mutate(ctx context.Context, customerID uuid.UUID, fn func(*order.Cart) error) (*queries.CartView, error) {
	var view *queries.CartView
	err := withLock(ctx, uc.locker, shared.CartLockKey(customerID), func() error {
		c, err := uc.carts.FindByCustomerID(ctx, customerID)
		if err != nil {
			return err
		}
		if c == nil {
			c = order.NewCart(customerID, uc.clock.Now())
		}
		if err := fn(c); err != nil {
			return err
		}
		if err := uc.carts.Save(ctx, c); err != nil {
			return err
		}
		view = queries.NewCartView(c)
		return nil
	})
	return view, err
}

func (uc *cartUseCaseImpl) activeProduct(ctx context.Context, productID uuid.UUID) (*shared.ProductInfo, error) {
	product, err := uc.products.GetProductInfo(ctx, productID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrExternalDependency)
	}
	if product == nil || !product.Active {
		return nil, errs.Wrapf(ErrProductNotFound, "product %s", productID)
	}
	return product, nil
}

func (uc *cartUseCaseImpl) checkStock(ctx context.Context, productID uuid.UUID, quantity int) error {
	ok, err := uc.products.IsStockAvailable(ctx, productID, quantity)
	if err != nil {
		return errs.Mark(err, errs.ErrExternalDependency)
	}
	if !ok {
		return errs.Wrapf(ErrInsufficientStock, "product %s quantity %d", productID, quantity)
	}
	return nil
}
