//go:build unit

package commands_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"order-fulfillment/internal/domain/discount"
	"order-fulfillment/internal/domain/money"
	"order-fulfillment/internal/domain/order"
	"order-fulfillment/internal/domain/payment"
	"order-fulfillment/internal/domain/shipment"
	"order-fulfillment/internal/infra/external"
	"order-fulfillment/internal/infra/memory"
	"order-fulfillment/internal/infra/messaging"
	"order-fulfillment/internal/pkg/clock"
	"order-fulfillment/internal/pkg/keylock"
	"order-fulfillment/internal/usecase/commands"
	"order-fulfillment/internal/usecase/queries"
	"order-fulfillment/internal/usecase/shared"
	"order-fulfillment/tests/common/builder"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	goodCard     = "4242424242424242"
	declinedCard = "4000000000000002"
)

var productID = uuid.MustParse("0a6f3d1e-5b7c-4f8a-9d2e-3c4b5a6f7e80")

type FulfillmentTestSuite struct {
	suite.Suite
	ctx   context.Context
	clock *clock.MockClock

	orders    *memory.OrderRepository
	payments  *memory.PaymentRepository
	shipments *memory.ShipmentRepository
	coupons   *memory.CouponRepository
	catalog   *external.Catalog

	cart          commands.CartCommands
	coupon        commands.CouponCommands
	checkout      commands.OrderCommands
	notifications commands.OrderNotifications
	payment       commands.PaymentCommands
	shipment      commands.ShipmentCommands
	reconciler    commands.Reconciler
	orderQueries  queries.OrderQueries
}

func TestFulfillmentTestSuite(t *testing.T) {
	suite.Run(t, new(FulfillmentTestSuite))
}

func (s *FulfillmentTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.clock = clock.NewMockClock(time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC))

	s.orders = memory.NewOrderRepository()
	s.payments = memory.NewPaymentRepository()
	s.shipments = memory.NewShipmentRepository()
	s.coupons = memory.NewCouponRepository()
	carts := memory.NewCartRepository()
	promotions := memory.NewPromotionRepository()

	s.catalog = external.NewCatalog(shared.ProductInfo{
		ProductID:      productID,
		Name:           "Desk Lamp",
		SKU:            "LMP-100",
		Price:          money.MustParse("1000", money.DefaultCurrency),
		AvailableStock: 10,
		Active:         true,
	})

	locker := keylock.New()
	metrics := shared.NopMetrics{}

	s.cart = commands.NewCartUseCase(carts, s.catalog, locker, s.clock)
	s.coupon = commands.NewCouponUseCase(s.coupons, locker, s.clock)
	s.checkout = commands.NewOrderUseCase(s.orders, carts, promotions, s.coupon, locker, s.clock)
	s.notifications = commands.NewOrderNotifications(s.orders, locker, s.clock)

	orderService := messaging.NewInProcessOrderClient(s.orders, s.notifications)
	s.payment = commands.NewPaymentUseCase(s.payments, orderService, external.NewMockGateway(0), locker, metrics, s.clock)
	s.shipment = commands.NewShipmentUseCase(s.shipments, orderService, external.NewMockLogistics(0),
		shipment.NewTrackingNumbers(s.clock), locker, metrics, s.clock)
	s.reconciler = commands.NewReconciler(s.orders, s.payments, locker, metrics, s.clock,
		commands.SweepTimeouts{Order: 30 * time.Minute, Payment: 15 * time.Minute})
	s.orderQueries = queries.NewOrderQueries(s.orders)
}

func (s *FulfillmentTestSuite) placeOrder(customerID uuid.UUID, quantity int, couponCode *string) *queries.OrderView {
	s.T().Helper()
	_, err := s.cart.AddToCart(s.ctx, customerID, productID, quantity)
	s.Require().NoError(err)

	view, err := s.checkout.Checkout(s.ctx, customerID, commands.CheckoutRequest{
		CouponCode:      couponCode,
		ShippingAddress: builder.NewAddressBuilder().Params,
	})
	s.Require().NoError(err)
	return view
}

func (s *FulfillmentTestSuite) pay(o *queries.OrderView) *queries.PaymentView {
	s.T().Helper()
	p, err := s.payment.ProcessPayment(s.ctx, commands.ProcessPaymentRequest{
		OrderID:    o.ID,
		Method:     payment.MethodCreditCard,
		CardNumber: goodCard,
	}, o.CustomerID)
	s.Require().NoError(err)
	return p
}

func (s *FulfillmentTestSuite) createCoupon(code string, maxUses *int) {
	s.T().Helper()
	_, err := s.coupon.CreateCoupon(s.ctx, commands.CreateCouponRequest{
		Code:      code,
		Type:      discount.TypePercentage,
		Value:     decimal.NewFromInt(10),
		ExpiresAt: s.clock.Now().Add(30 * 24 * time.Hour),
		MaxUses:   maxUses,
	})
	s.Require().NoError(err)
}

func (s *FulfillmentTestSuite) orderStatus(id uuid.UUID) order.Status {
	s.T().Helper()
	o, err := s.orders.FindByID(s.ctx, id)
	s.Require().NoError(err)
	s.Require().NotNil(o)
	return o.Status()
}

func (s *FulfillmentTestSuite) TestCart() {
	customerID := uuid.New()

	s.Run("merges quantities of the same product", func() {
		_, err := s.cart.AddToCart(s.ctx, customerID, productID, 2)
		s.Require().NoError(err)
		view, err := s.cart.AddToCart(s.ctx, customerID, productID, 3)
		s.Require().NoError(err)

		s.Require().Len(view.Items, 1)
		s.Equal(5, view.Items[0].Quantity)
		s.Equal("5000.00", view.Total)
	})

	s.Run("rejects quantities beyond stock", func() {
		_, err := s.cart.AddToCart(s.ctx, customerID, productID, 6)
		s.ErrorIs(err, commands.ErrInsufficientStock)
	})

	s.Run("rejects inactive products", func() {
		s.catalog.Put(shared.ProductInfo{ProductID: external.SampleRetiredID, Name: "Old", SKU: "OLD", Price: money.MustParse("10", money.DefaultCurrency), Active: false})
		_, err := s.cart.AddToCart(s.ctx, customerID, external.SampleRetiredID, 1)
		s.ErrorIs(err, commands.ErrProductNotFound)
	})

	s.Run("update of a missing line", func() {
		_, err := s.cart.UpdateCartItem(s.ctx, customerID, uuid.New(), 1)
		s.ErrorIs(err, order.ErrCartItemNotFound)
	})
}

func (s *FulfillmentTestSuite) TestCheckout_WithCoupon() {
	customerID := uuid.New()
	s.createCoupon("SAVE10", nil)

	code := "save10"
	view := s.placeOrder(customerID, 2, &code)

	s.Equal("2000.00", view.Subtotal)
	s.Equal("200.00", view.Discount)
	s.Equal("1800.00", view.Total)
	s.Require().NotNil(view.CouponCode)
	s.Equal("SAVE10", *view.CouponCode)
	s.Equal(order.StatusPendingPayment.String(), view.Status)

	_, err := s.checkout.Checkout(s.ctx, customerID, commands.CheckoutRequest{ShippingAddress: builder.NewAddressBuilder().Params})
	s.ErrorIs(err, order.ErrEmptyCart, "cart is cleared after checkout")
}

func (s *FulfillmentTestSuite) TestCheckout_RejectedCouponKeepsCart() {
	customerID := uuid.New()
	_, err := s.cart.AddToCart(s.ctx, customerID, productID, 1)
	s.Require().NoError(err)

	unknown := "NOPE1234"
	_, err = s.checkout.Checkout(s.ctx, customerID, commands.CheckoutRequest{
		CouponCode:      &unknown,
		ShippingAddress: builder.NewAddressBuilder().Params,
	})
	s.ErrorIs(err, commands.ErrCouponInvalid)

	orders, err := s.orders.FindByCustomerID(s.ctx, customerID)
	s.Require().NoError(err)
	s.Empty(orders)

	view := s.placeOrder(customerID, 1, nil)
	s.Equal("2000.00", view.Subtotal)
}

type failingOrderSaves struct {
	shared.OrderRepository
	err error
}

func (f failingOrderSaves) Save(context.Context, *order.Order) error { return f.err }

func (s *FulfillmentTestSuite) TestCheckout_FailedOrderSaveReleasesCoupon() {
	one := 1
	s.createCoupon("LASTONE", &one)
	customerID := uuid.New()

	carts := memory.NewCartRepository()
	locker := keylock.New()
	_, err := commands.NewCartUseCase(carts, s.catalog, locker, s.clock).AddToCart(s.ctx, customerID, productID, 1)
	s.Require().NoError(err)

	saveErr := errors.New("connection reset")
	broken := commands.NewOrderUseCase(failingOrderSaves{OrderRepository: s.orders, err: saveErr},
		carts, memory.NewPromotionRepository(), s.coupon, locker, s.clock)
	code := "LASTONE"
	req := commands.CheckoutRequest{CouponCode: &code, ShippingAddress: builder.NewAddressBuilder().Params}

	_, err = broken.Checkout(s.ctx, customerID, req)
	s.ErrorIs(err, saveErr)

	c, err := s.coupons.FindByCode(s.ctx, discount.Code("LASTONE"))
	s.Require().NoError(err)
	s.Equal(0, c.UsageCount())
	s.Equal(0, c.TimesUsedBy(customerID))

	working := commands.NewOrderUseCase(s.orders, carts, memory.NewPromotionRepository(), s.coupon, locker, s.clock)
	view, err := working.Checkout(s.ctx, customerID, req)
	s.Require().NoError(err)
	s.Equal("100.00", view.Discount)
}

func (s *FulfillmentTestSuite) TestCoupon_SingleUseUnderContention() {
	one := 1
	s.createCoupon("ONCE", &one)

	const callers = 20
	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		valid int
	)
	total := money.MustParse("500", money.DefaultCurrency)
	for range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := s.coupon.Apply(s.ctx, commands.ApplyCouponRequest{Code: "ONCE", OrderTotal: total}, uuid.New())
			if err != nil || !res.Valid {
				return
			}
			mu.Lock()
			valid++
			mu.Unlock()
		}()
	}
	wg.Wait()

	s.Equal(1, valid)
	c, err := s.coupons.FindByCode(s.ctx, discount.Code("ONCE"))
	s.Require().NoError(err)
	s.Equal(1, c.UsageCount())

	res, err := s.coupon.Validate(s.ctx, commands.ApplyCouponRequest{Code: "ONCE", OrderTotal: total}, uuid.Nil)
	s.Require().NoError(err)
	s.False(res.Valid)
	s.Equal(discount.MsgCouponExhausted, res.Message)
}

func (s *FulfillmentTestSuite) TestCoupon_ValidateDoesNotConsume() {
	s.createCoupon("PREVIEW", nil)
	total := money.MustParse("1000", money.DefaultCurrency)

	for range 3 {
		res, err := s.coupon.Validate(s.ctx, commands.ApplyCouponRequest{Code: "PREVIEW", OrderTotal: total}, uuid.New())
		s.Require().NoError(err)
		s.True(res.Valid)
		s.Equal("100.00", res.DiscountAmount.StringFixed())
	}
	c, err := s.coupons.FindByCode(s.ctx, discount.Code("PREVIEW"))
	s.Require().NoError(err)
	s.Zero(c.UsageCount())

	s.Require().NoError(s.coupon.DeactivateCoupon(s.ctx, "preview"))
	res, err := s.coupon.Validate(s.ctx, commands.ApplyCouponRequest{Code: "PREVIEW", OrderTotal: total}, uuid.New())
	s.Require().NoError(err)
	s.False(res.Valid)
	s.Equal(discount.MsgCouponInactive, res.Message)

	_, err = s.coupon.CreateCoupon(s.ctx, commands.CreateCouponRequest{
		Code: "PREVIEW", Type: discount.TypeFixedAmount, Value: decimal.NewFromInt(50), ExpiresAt: s.clock.Now().Add(time.Hour),
	})
	s.ErrorIs(err, commands.ErrCouponCodeTaken)
}

func (s *FulfillmentTestSuite) TestPayment_CompletesOrder() {
	o := s.placeOrder(uuid.New(), 1, nil)

	p := s.pay(o)

	s.Equal(payment.StatusCompleted.String(), p.Status)
	s.NotEmpty(p.TransactionID)
	s.Equal("1000.00", p.Amount)
	s.Equal(order.StatusPaid, s.orderStatus(o.ID))

	_, err := s.payment.ProcessPayment(s.ctx, commands.ProcessPaymentRequest{
		OrderID: o.ID, Method: payment.MethodCreditCard, CardNumber: goodCard,
	}, o.CustomerID)
	s.ErrorIs(err, commands.ErrOrderNotPayable)
}

func (s *FulfillmentTestSuite) TestPayment_DeclinedThenRetried() {
	o := s.placeOrder(uuid.New(), 1, nil)

	_, err := s.payment.ProcessPayment(s.ctx, commands.ProcessPaymentRequest{
		OrderID: o.ID, Method: payment.MethodCreditCard, CardNumber: declinedCard,
	}, o.CustomerID)
	s.ErrorIs(err, commands.ErrPaymentFailed)
	s.Equal(order.StatusPendingPayment, s.orderStatus(o.ID))

	attempts, err := s.payments.FindByOrderID(s.ctx, o.ID)
	s.Require().NoError(err)
	s.Require().Len(attempts, 1)
	s.Equal(payment.StatusFailed, attempts[0].Status())
	s.Equal("Card declined by issuer", attempts[0].FailureReason())

	p := s.pay(o)
	s.Equal(payment.StatusCompleted.String(), p.Status)
	s.Equal(order.StatusPaid, s.orderStatus(o.ID))
}

func (s *FulfillmentTestSuite) TestPayment_OtherCustomersOrder() {
	o := s.placeOrder(uuid.New(), 1, nil)

	_, err := s.payment.ProcessPayment(s.ctx, commands.ProcessPaymentRequest{
		OrderID: o.ID, Method: payment.MethodCreditCard, CardNumber: goodCard,
	}, uuid.New())
	s.ErrorIs(err, commands.ErrOrderNotFound)
}

func (s *FulfillmentTestSuite) TestPayment_RefundFlow() {
	o := s.placeOrder(uuid.New(), 1, nil)
	p := s.pay(o)

	partial, err := s.payment.RefundPayment(s.ctx, commands.RefundPaymentRequest{
		PaymentID: p.ID, Amount: money.MustParse("400", money.DefaultCurrency), Reason: "damaged",
	})
	s.Require().NoError(err)
	s.Equal(payment.StatusPartiallyRefunded.String(), partial.Status)
	s.Equal(order.StatusPaid, s.orderStatus(o.ID))

	_, err = s.payment.RefundPayment(s.ctx, commands.RefundPaymentRequest{
		PaymentID: p.ID, Amount: money.MustParse("700", money.DefaultCurrency),
	})
	s.ErrorIs(err, payment.ErrRefundExceedsAmount)

	full, err := s.payment.RefundPayment(s.ctx, commands.RefundPaymentRequest{
		PaymentID: p.ID, Amount: money.MustParse("600", money.DefaultCurrency),
	})
	s.Require().NoError(err)
	s.Equal(payment.StatusRefunded.String(), full.Status)
	s.Equal("1000.00", full.RefundedAmount)
	s.Equal(order.StatusRefunded, s.orderStatus(o.ID))
}

func (s *FulfillmentTestSuite) TestNotifications_AreIdempotent() {
	o := s.placeOrder(uuid.New(), 1, nil)
	paymentID := uuid.New()

	s.Require().NoError(s.notifications.ApplyPaymentCompleted(s.ctx, o.ID, paymentID))
	first, err := s.orders.FindByID(s.ctx, o.ID)
	s.Require().NoError(err)

	s.Require().NoError(s.notifications.ApplyPaymentCompleted(s.ctx, o.ID, paymentID))
	second, err := s.orders.FindByID(s.ctx, o.ID)
	s.Require().NoError(err)

	s.Equal(order.StatusPaid, second.Status())
	s.Equal(first.Version(), second.Version())
	s.Equal(*first.PaidAt(), *second.PaidAt())

	s.ErrorIs(s.notifications.ApplyShipmentDelivered(s.ctx, uuid.New()), commands.ErrOrderNotFound)
}

func (s *FulfillmentTestSuite) TestNotifications_LatePaymentOnExpiredOrder() {
	o := s.placeOrder(uuid.New(), 1, nil)
	s.clock.Add(31 * time.Minute)
	_, err := s.reconciler.Sweep(s.ctx)
	s.Require().NoError(err)

	err = s.notifications.ApplyPaymentCompleted(s.ctx, o.ID, uuid.New())
	s.ErrorIs(err, order.ErrInvalidTransition)
	s.Equal(order.StatusPaymentExpired, s.orderStatus(o.ID))
}

func (s *FulfillmentTestSuite) TestShipment_FullLifecycle() {
	o := s.placeOrder(uuid.New(), 1, nil)

	_, err := s.shipment.CreateShipment(s.ctx, commands.CreateShipmentRequest{
		OrderID: o.ID, Carrier: shipment.CarrierBlackCat, Address: builder.NewAddressBuilder().Params,
	})
	s.ErrorIs(err, commands.ErrOrderNotShippable)

	s.pay(o)
	created, err := s.shipment.CreateShipment(s.ctx, commands.CreateShipmentRequest{
		OrderID: o.ID, Carrier: shipment.CarrierBlackCat, Address: builder.NewAddressBuilder().Params,
	})
	s.Require().NoError(err)
	s.Equal(shipment.StatusPending.String(), created.Status)
	s.Equal(o.CustomerID, created.CustomerID)

	stored, err := s.orders.FindByID(s.ctx, o.ID)
	s.Require().NoError(err)
	s.Equal(created.TrackingNumber, stored.TrackingNumber())
	s.Equal(order.StatusPaid, stored.Status())

	_, err = s.shipment.CreateShipment(s.ctx, commands.CreateShipmentRequest{
		OrderID: o.ID, Carrier: shipment.CarrierSFExpress, Address: builder.NewAddressBuilder().Params,
	})
	s.ErrorIs(err, commands.ErrShipmentAlreadyExists)

	_, err = s.shipment.Deliver(s.ctx, created.ID)
	s.ErrorIs(err, shipment.ErrInvalidTransition)

	_, err = s.shipment.PickUp(s.ctx, created.ID)
	s.Require().NoError(err)
	_, err = s.shipment.InTransit(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Equal(order.StatusShipped, s.orderStatus(o.ID))

	delivered, err := s.shipment.Deliver(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Equal(shipment.StatusDelivered.String(), delivered.Status)
	s.NotNil(delivered.DeliveredAt)
	s.Len(delivered.Events, 3)
	s.Equal(order.StatusDelivered, s.orderStatus(o.ID))
}

func (s *FulfillmentTestSuite) TestShipment_FailureLeavesOrderShipped() {
	o := s.placeOrder(uuid.New(), 1, nil)
	s.pay(o)
	created, err := s.shipment.CreateShipment(s.ctx, commands.CreateShipmentRequest{
		OrderID: o.ID, Carrier: shipment.CarrierPostOffice, Address: builder.NewAddressBuilder().Params,
	})
	s.Require().NoError(err)
	_, err = s.shipment.PickUp(s.ctx, created.ID)
	s.Require().NoError(err)
	_, err = s.shipment.InTransit(s.ctx, created.ID)
	s.Require().NoError(err)

	_, err = s.shipment.Fail(s.ctx, created.ID, " ")
	s.ErrorIs(err, shipment.ErrFailureReasonRequired)

	failed, err := s.shipment.Fail(s.ctx, created.ID, "recipient absent")
	s.Require().NoError(err)
	s.Equal("recipient absent", failed.FailureReason)
	s.Equal(order.StatusShipped, s.orderStatus(o.ID))

	returned, err := s.shipment.Return(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Equal(shipment.StatusReturned.String(), returned.Status)

	_, err = s.shipment.SetEstimatedDelivery(s.ctx, created.ID, s.clock.Now().Add(48*time.Hour))
	s.ErrorIs(err, shipment.ErrEstimateOnTerminalState)
}

func (s *FulfillmentTestSuite) TestSweep_SkipsPaidOrders() {
	stale := s.placeOrder(uuid.New(), 1, nil)
	paid := s.placeOrder(uuid.New(), 1, nil)
	s.pay(paid)

	s.clock.Add(31 * time.Minute)
	res, err := s.reconciler.Sweep(s.ctx)
	s.Require().NoError(err)

	s.Equal(1, res.ExpiredOrders)
	s.Equal(0, res.ExpiredPayments)
	s.Equal(order.StatusPaymentExpired, s.orderStatus(stale.ID))
	s.Equal(order.StatusPaid, s.orderStatus(paid.ID))

	again, err := s.reconciler.Sweep(s.ctx)
	s.Require().NoError(err)
	s.Equal(commands.SweepResult{}, again)
}

func (s *FulfillmentTestSuite) TestSweep_ExpiresPaymentLeftProcessing() {
	o := s.placeOrder(uuid.New(), 1, nil)

	orderService := messaging.NewInProcessOrderClient(s.orders, s.notifications)
	slow := commands.NewPaymentUseCase(s.payments, orderService, external.NewMockGateway(time.Second),
		keylock.New(), shared.NopMetrics{}, s.clock)
	ctx, cancel := context.WithTimeout(s.ctx, 10*time.Millisecond)
	defer cancel()

	_, err := slow.ProcessPayment(ctx, commands.ProcessPaymentRequest{
		OrderID: o.ID, Method: payment.MethodCreditCard, CardNumber: goodCard,
	}, o.CustomerID)
	s.ErrorIs(err, commands.ErrGatewayUnavailable)

	attempts, err := s.payments.FindByOrderID(s.ctx, o.ID)
	s.Require().NoError(err)
	s.Require().Len(attempts, 1)
	s.Equal(payment.StatusProcessing, attempts[0].Status())

	s.clock.Add(16 * time.Minute)
	n, err := s.reconciler.ExpireStalePayments(s.ctx, 15*time.Minute)
	s.Require().NoError(err)
	s.Equal(1, n)

	expired, err := s.payments.FindByID(s.ctx, attempts[0].ID())
	s.Require().NoError(err)
	s.Equal(payment.StatusExpired, expired.Status())
	s.Equal(order.StatusPendingPayment, s.orderStatus(o.ID))
}

func (s *FulfillmentTestSuite) TestCancel() {
	customerID := uuid.New()
	o := s.placeOrder(customerID, 1, nil)

	_, err := s.checkout.CancelOrder(s.ctx, o.ID, uuid.New(), "changed mind")
	s.ErrorIs(err, commands.ErrOrderNotFound)

	_, err = s.checkout.CancelOrder(s.ctx, o.ID, customerID, "")
	s.ErrorIs(err, order.ErrCancellationReasonRequired)

	s.pay(o)
	cancelled, err := s.checkout.CancelOrder(s.ctx, o.ID, customerID, "changed mind")
	s.Require().NoError(err)
	s.Equal(order.StatusCancelled.String(), cancelled.Status)
	s.True(cancelled.RefundRequired)
}

func (s *FulfillmentTestSuite) TestOrderQueries_Access() {
	owner := uuid.New()
	o := s.placeOrder(owner, 1, nil)

	got, err := s.orderQueries.GetOrder(s.ctx, o.ID, shared.Actor{ID: owner, Role: shared.RoleCustomer})
	s.Require().NoError(err)
	s.Equal(o.ID, got.ID)

	_, err = s.orderQueries.GetOrder(s.ctx, o.ID, shared.Actor{ID: uuid.New(), Role: shared.RoleCustomer})
	s.ErrorIs(err, shared.ErrOrderNotFound)

	_, err = s.orderQueries.GetOrder(s.ctx, o.ID, shared.Actor{ID: uuid.New(), Role: shared.RoleAdmin})
	s.NoError(err)
}

func TestPromotionDiscountAppliesAtCheckout(t *testing.T) {
	ctx := context.Background()
	clk := clock.NewMockClock(time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC))
	locker := keylock.New()
	carts := memory.NewCartRepository()
	promotions := memory.NewPromotionRepository()
	catalog := external.NewCatalog(shared.ProductInfo{
		ProductID: productID, Name: "Desk Lamp", SKU: "LMP-100",
		Price: money.MustParse("1000", money.DefaultCurrency), AvailableStock: 10, Active: true,
	})

	promos := commands.NewPromotionUseCase(promotions, locker, clk)
	active, err := promos.CreatePromotion(ctx, commands.CreatePromotionRequest{
		Name: "Spring", Type: discount.TypeFixedAmount, Value: decimal.NewFromInt(150),
		StartsAt: clk.Now().Add(-time.Hour), EndsAt: clk.Now().Add(time.Hour),
	})
	require.NoError(t, err)
	assert.True(t, active.Active)
	_, err = promos.CreatePromotion(ctx, commands.CreatePromotionRequest{
		Name: "Summer", Type: discount.TypePercentage, Value: decimal.NewFromInt(50),
		StartsAt: clk.Now().Add(24 * time.Hour), EndsAt: clk.Now().Add(48 * time.Hour),
	})
	require.NoError(t, err)

	customerID := uuid.New()
	cart := commands.NewCartUseCase(carts, catalog, locker, clk)
	_, err = cart.AddToCart(ctx, customerID, productID, 1)
	require.NoError(t, err)

	checkout := commands.NewOrderUseCase(memory.NewOrderRepository(), carts, promotions,
		commands.NewCouponUseCase(memory.NewCouponRepository(), locker, clk), locker, clk)
	view, err := checkout.Checkout(ctx, customerID, commands.CheckoutRequest{ShippingAddress: builder.NewAddressBuilder().Params})
	require.NoError(t, err)
	assert.Equal(t, "150.00", view.Discount)
	assert.Equal(t, "850.00", view.Total)

	deactivated, err := promos.DeactivatePromotion(ctx, active.ID)
	require.NoError(t, err)
	assert.False(t, deactivated.Active)
}
