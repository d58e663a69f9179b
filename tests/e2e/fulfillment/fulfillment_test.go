//go:build e2e

package fulfillment_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	reqdto "order-fulfillment/internal/handler/dto/request"
	resdto "order-fulfillment/internal/handler/dto/response"
	"order-fulfillment/internal/infra/external"
	"order-fulfillment/internal/usecase/shared"
	"order-fulfillment/tests/common/builder"
	"order-fulfillment/tests/common/httptest"
	"order-fulfillment/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

const (
	cartItemsURL = "/api/cart/items"
	ordersURL    = "/api/orders"
	orderURL     = "/api/orders/%s"
	paymentsURL  = "/api/payments"
	refundURL    = "/api/payments/%s/refund"
	couponsURL   = "/api/coupons"
	shipmentsURL = "/api/shipments"
	transitURL   = "/api/shipments/%s/%s"
	trackURL     = "/api/shipments/track/%s"
	reconcileURL = "/api/admin/reconcile"
	goodCard     = "5555444433332222"
	declinedCard = "4000000000000002"
)

type FulfillmentSuite struct {
	e2e.SharedSuite
	adminToken string
}

func TestFulfillmentSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(FulfillmentSuite))
}

func (s *FulfillmentSuite) SetupSuite() {
	s.SharedSuite.SetupSuite()
	_, s.adminToken = s.Token(shared.RoleAdmin)
}

func (s *FulfillmentSuite) do(method, path string, body any, token string) (int, []byte) {
	w := httptest.PerformRequest(s.T(), s.Router, method, path, body, token)
	return w.Code, w.Body.Bytes()
}

func (s *FulfillmentSuite) decode(raw []byte, v any) {
	s.Require().NoError(json.Unmarshal(raw, v), string(raw))
}

func (s *FulfillmentSuite) addToCart(token string, productID uuid.UUID, qty int) {
	code, raw := s.do(http.MethodPost, cartItemsURL, reqdto.AddToCartRequest{ProductID: productID, Quantity: qty}, token)
	s.Require().Equal(http.StatusOK, code, string(raw))
}

func (s *FulfillmentSuite) checkout(token string, couponCode *string) resdto.OrderResponse {
	body := builder.NewOrderBuilder().WithDiscount("0", couponCode).BuildCheckoutRequestDTO()
	code, raw := s.do(http.MethodPost, ordersURL, body, token)
	s.Require().Equal(http.StatusCreated, code, string(raw))
	var o resdto.OrderResponse
	s.decode(raw, &o)
	return o
}

func (s *FulfillmentSuite) getOrder(token string, id uuid.UUID) resdto.OrderResponse {
	code, raw := s.do(http.MethodGet, fmt.Sprintf(orderURL, id), nil, token)
	s.Require().Equal(http.StatusOK, code, string(raw))
	var o resdto.OrderResponse
	s.decode(raw, &o)
	return o
}

func (s *FulfillmentSuite) pay(token string, orderID uuid.UUID, card string) (int, []byte) {
	return s.do(http.MethodPost, paymentsURL, reqdto.ProcessPaymentRequest{
		OrderID:    orderID,
		Method:     "CREDIT_CARD",
		CardNumber: card,
	}, token)
}

func (s *FulfillmentSuite) TestOrderLifecycle() {
	s.Run("checkout with coupon then pay, ship and deliver", func() {
		customerID, token := s.Token(shared.RoleCustomer)

		code, raw := s.do(http.MethodPost, couponsURL, reqdto.CreateCouponRequest{
			Code:        "SPRING10",
			Description: "10% off",
			Rule:        reqdto.RuleRequest{Type: "PERCENTAGE", Value: "10"},
			ExpiresAt:   time.Now().Add(30 * 24 * time.Hour),
		}, s.adminToken)
		s.Require().Equal(http.StatusCreated, code, string(raw))

		s.addToCart(token, external.SampleKeyboardID, 2)
		coupon := "SPRING10"
		placed := s.checkout(token, &coupon)

		want := resdto.OrderResponse{
			CustomerID: customerID,
			Subtotal:   "5980.00",
			Discount:   "598.00",
			Total:      "5382.00",
			Currency:   "TWD",
			CouponCode: &coupon,
			Status:     "PENDING_PAYMENT",
		}
		s.Empty(cmp.Diff(want, placed, cmpopts.IgnoreFields(resdto.OrderResponse{},
			"ID", "Items", "ShippingAddress", "CreatedAt", "UpdatedAt")))
		s.Require().Len(placed.Items, 1)
		s.Equal("Mechanical Keyboard", placed.Items[0].ProductName)

		code, raw = s.pay(token, placed.ID, goodCard)
		s.Require().Equal(http.StatusCreated, code, string(raw))
		var paid resdto.PaymentResponse
		s.decode(raw, &paid)
		s.Equal("COMPLETED", paid.Status)
		s.Equal("PAID", s.getOrder(token, placed.ID).Status)

		address := builder.NewOrderBuilder().BuildCheckoutRequestDTO().ShippingAddress
		code, raw = s.do(http.MethodPost, shipmentsURL, reqdto.CreateShipmentRequest{
			OrderID: placed.ID,
			Carrier: "BLACK_CAT",
			Address: &address,
		}, s.adminToken)
		s.Require().Equal(http.StatusCreated, code, string(raw))
		var shp resdto.ShipmentResponse
		s.decode(raw, &shp)
		s.True(strings.HasPrefix(shp.TrackingNumber, "BC"), shp.TrackingNumber)

		for _, step := range []string{"pickup", "in-transit", "deliver"} {
			code, raw = s.do(http.MethodPost, fmt.Sprintf(transitURL, shp.ID, step), nil, s.adminToken)
			s.Require().Equal(http.StatusOK, code, step+": "+string(raw))
		}

		delivered := s.getOrder(token, placed.ID)
		s.Equal("DELIVERED", delivered.Status)
		s.Equal(shp.TrackingNumber, delivered.TrackingNumber)

		code, raw = s.do(http.MethodGet, fmt.Sprintf(trackURL, shp.TrackingNumber), nil, "")
		s.Require().Equal(http.StatusOK, code, string(raw))
		var tracked resdto.ShipmentResponse
		s.decode(raw, &tracked)
		s.Equal("DELIVERED", tracked.Status)
		s.Len(tracked.Events, 3)
	})

	s.Run("declined card keeps the order payable", func() {
		_, token := s.Token(shared.RoleCustomer)
		s.addToCart(token, external.SampleMouseID, 1)
		placed := s.checkout(token, nil)

		code, raw := s.pay(token, placed.ID, declinedCard)
		s.Equal(http.StatusBadGateway, code, string(raw))
		s.Equal("PENDING_PAYMENT", s.getOrder(token, placed.ID).Status)

		code, raw = s.pay(token, placed.ID, goodCard)
		s.Require().Equal(http.StatusCreated, code, string(raw))
		s.Equal("PAID", s.getOrder(token, placed.ID).Status)
	})

	s.Run("full refund marks the order refunded", func() {
		_, token := s.Token(shared.RoleCustomer)
		s.addToCart(token, external.SampleMouseID, 1)
		placed := s.checkout(token, nil)

		code, raw := s.pay(token, placed.ID, goodCard)
		s.Require().Equal(http.StatusCreated, code, string(raw))
		var paid resdto.PaymentResponse
		s.decode(raw, &paid)

		code, raw = s.do(http.MethodPost, fmt.Sprintf(refundURL, paid.ID),
			reqdto.RefundPaymentRequest{Amount: "890", Reason: "changed mind"}, token)
		s.Equal(http.StatusForbidden, code, string(raw))

		code, raw = s.do(http.MethodPost, fmt.Sprintf(refundURL, paid.ID),
			reqdto.RefundPaymentRequest{Amount: "890", Reason: "changed mind"}, s.adminToken)
		s.Require().Equal(http.StatusOK, code, string(raw))
		var refunded resdto.PaymentResponse
		s.decode(raw, &refunded)
		s.Equal("REFUNDED", refunded.Status)
		s.Equal("REFUNDED", s.getOrder(token, placed.ID).Status)
	})
}

func (s *FulfillmentSuite) TestCartRules() {
	s.Run("out of stock product is rejected", func() {
		_, token := s.Token(shared.RoleCustomer)
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, cartItemsURL,
			reqdto.AddToCartRequest{ProductID: external.SampleHeadsetID, Quantity: 1}, token)
		httptest.AssertErrorCode(s.T(), w, http.StatusUnprocessableEntity, "BUSINESS_RULE_VIOLATED")
	})

	s.Run("orders are private to their customer", func() {
		_, owner := s.Token(shared.RoleCustomer)
		_, stranger := s.Token(shared.RoleCustomer)
		s.addToCart(owner, external.SampleMouseID, 1)
		placed := s.checkout(owner, nil)

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, fmt.Sprintf(orderURL, placed.ID), nil, stranger)
		httptest.AssertErrorCode(s.T(), w, http.StatusNotFound, "NOT_FOUND")
	})

	s.Run("reconcile with nothing overdue", func() {
		code, raw := s.do(http.MethodPost, reconcileURL, nil, s.adminToken)
		s.Require().Equal(http.StatusOK, code, string(raw))
	})
}
