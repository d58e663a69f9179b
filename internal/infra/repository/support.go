package repository

import (
	"encoding/json"

	"order-fulfillment/internal/domain/money"
	"order-fulfillment/internal/infra"
	"order-fulfillment/internal/pkg/errs"
	"order-fulfillment/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

// checkVersion turns an upsert that matched no row into a version conflict.
// The upserts only update when the stored version equals the expected one.
func checkVersion(tag pgconn.CommandTag, what string, expected int) error {
	if tag.RowsAffected() == 0 {
		return errs.Wrapf(shared.ErrConcurrentModification, "%s: expected version %d", what, expected)
	}
	return nil
}

func marshalDoc(what string, v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to encode "+what, err)
	}
	return raw, nil
}

func unmarshalDoc(what string, raw []byte, v any) error {
	if err := json.Unmarshal(raw, v); err != nil {
		return infra.WrapRepoErr("failed to decode "+what, err)
	}
	return nil
}

func toMoney(amount decimal.Decimal, currency string) (money.Money, error) {
	return money.New(amount, money.Currency(currency))
}

// optionalMoney splits a nullable minimum order into its two columns.
func optionalMoney(m *money.Money) (*decimal.Decimal, *string) {
	if m == nil {
		return nil, nil
	}
	amount := m.Amount()
	currency := m.Currency().String()
	return &amount, &currency
}

func fromOptionalMoney(amount *decimal.Decimal, currency *string) (*money.Money, error) {
	if amount == nil {
		return nil, nil
	}
	cur := ""
	if currency != nil {
		cur = *currency
	}
	m, err := toMoney(*amount, cur)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
