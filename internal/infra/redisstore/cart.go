package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"order-fulfillment/internal/domain/order"
	"order-fulfillment/internal/infra/converter"
	"order-fulfillment/internal/pkg/errs"
	"order-fulfillment/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const cartPrefix = "cart:"

var errCartStore = errs.ExternalDependency("cart store unavailable")

// CartRepository keeps each cart as one JSON document with a sliding TTL.
type CartRepository struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewCartRepository(rdb *redis.Client, ttl time.Duration) *CartRepository {
	return &CartRepository{rdb: rdb, ttl: ttl}
}

var _ shared.CartRepository = (*CartRepository)(nil)

func cartKey(customerID uuid.UUID) string {
	return cartPrefix + customerID.String()
}

func (r *CartRepository) FindByCustomerID(ctx context.Context, customerID uuid.UUID) (*order.Cart, error) {
	raw, err := r.rdb.Get(ctx, cartKey(customerID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, errs.Wrapf(errCartStore, "get cart %s: %v", customerID, err)
	}
	return decodeCart(raw)
}

// Save uses WATCH so a concurrent writer makes the transaction fail instead
// of silently overwriting.
func (r *CartRepository) Save(ctx context.Context, c *order.Cart) error {
	key := cartKey(c.CustomerID())

	err := r.rdb.Watch(ctx, func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, key).Bytes()
		switch {
		case errors.Is(err, redis.Nil):
		case err != nil:
			return err
		default:
			stored, err := decodeCart(raw)
			if err != nil {
				return err
			}
			if stored.Version() != c.Version() {
				return errs.Wrapf(shared.ErrConcurrentModification, "cart %s stored version %d", c.CustomerID(), stored.Version())
			}
		}

		doc := converter.CartToDoc(c)
		doc.Version++
		payload, err := json.Marshal(doc)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, r.ttl)
			return nil
		})
		return err
	}, key)

	switch {
	case err == nil:
		c.IncrementVersion()
		return nil
	case errors.Is(err, redis.TxFailedErr):
		return errs.Wrapf(shared.ErrConcurrentModification, "cart %s", c.CustomerID())
	case errors.Is(err, shared.ErrConcurrentModification):
		return err
	default:
		return errs.Wrapf(errCartStore, "save cart %s: %v", c.CustomerID(), err)
	}
}

func (r *CartRepository) Delete(ctx context.Context, customerID uuid.UUID) error {
	if err := r.rdb.Del(ctx, cartKey(customerID)).Err(); err != nil {
		return errs.Wrapf(errCartStore, "delete cart %s: %v", customerID, err)
	}
	return nil
}

func decodeCart(raw []byte) (*order.Cart, error) {
	var doc converter.CartDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, errs.Wrap(err, "decode cart")
	}
	return converter.CartFromDoc(doc)
}
