//go:build unit

package api_test

import (
	"context"
	"net/http"
	"testing"

	"order-fulfillment/internal/domain/order"
	"order-fulfillment/internal/handler/api"
	resdto "order-fulfillment/internal/handler/dto/response"
	"order-fulfillment/internal/handler/httperr"
	"order-fulfillment/internal/pkg/errs"
	"order-fulfillment/internal/usecase/commands"
	"order-fulfillment/internal/usecase/queries"
	"order-fulfillment/internal/usecase/shared"
	"order-fulfillment/tests/common/builder"
	"order-fulfillment/tests/common/httptest"
	"order-fulfillment/tests/common/testutil"
	commandsmock "order-fulfillment/tests/mock/commands"
	queriesmock "order-fulfillment/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type OrderHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockOrderCommands
	mockQueries  *queriesmock.MockOrderQueries
	actor        shared.Actor
}

func (s *OrderHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockOrderCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockOrderQueries(s.mockCtrl)
	h := api.NewOrderHandler(s.mockCommands, s.mockQueries)

	s.actor = shared.Actor{ID: uuid.New(), Role: shared.RoleCustomer}
	auth := fakeAuth(&s.actor)

	s.router.POST("/api/orders", auth, h.Checkout)
	s.router.GET("/api/orders", auth, h.List)
	s.router.GET("/api/orders/:id", auth, h.Get)
	s.router.POST("/api/orders/:id/cancel", auth, h.Cancel)
}

func (s *OrderHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestOrderHandlerSuite(t *testing.T) {
	suite.Run(t, new(OrderHandlerTestSuite))
}

type testCaseOrder struct {
	name       string
	mutate     func(m map[string]any)
	expectCode int
}

func (s *OrderHandlerTestSuite) TestCheckout() {
	url := "/api/orders"
	reqBody := builder.NewOrderBuilder().BuildCheckoutRequestDTO()
	returnView := builder.NewOrderBuilder().WithCustomerID(s.actor.ID).BuildViewQuery()

	s.Run("success: returns 201 Created with Location", func() {
		s.mockCommands.EXPECT().
			Checkout(gomock.Any(), s.actor.ID, gomock.AssignableToTypeOf(commands.CheckoutRequest{})).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, bearerToken)

		var body resdto.OrderResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(returnView.ID, body.ID)
		s.Equal("2000.00", body.Total)
		s.Equal(string(order.StatusPendingPayment), body.Status)
		httptest.AssertHeaders(s.T(), rec, map[string]string{"Location": "/api/orders/" + returnView.ID.String()})
	})

	s.Run("success: blank coupon code is dropped", func() {
		blank := "   "
		withBlank := builder.NewOrderBuilder().WithDiscount("0", &blank).BuildCheckoutRequestDTO()
		s.mockCommands.EXPECT().
			Checkout(gomock.Any(), s.actor.ID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ uuid.UUID, req commands.CheckoutRequest) (*queries.OrderView, error) {
				s.Nil(req.CouponCode)
				return returnView, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, withBlank, bearerToken)
		s.Equal(http.StatusCreated, rec.Code)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		cases := []testCaseOrder{
			{name: "missing shippingAddress", mutate: testutil.Field("shippingAddress", nil), expectCode: http.StatusBadRequest},
			{name: "missing street", mutate: addressField("street", nil), expectCode: http.StatusBadRequest},
			{name: "missing phoneNumber", mutate: addressField("phoneNumber", nil), expectCode: http.StatusBadRequest},
			{name: "postalCode too long", mutate: addressField("postalCode", "12345678901"), expectCode: http.StatusBadRequest},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, bearerToken)
				httptest.AssertErrorCode(s.T(), rec, tc.expectCode, httperr.CodeValidation)
			})
		}
	})

	s.Run("error: 401 Unauthorized without token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: use case errors map to their class", func() {
		cases := []struct {
			name       string
			err        error
			expectCode int
			expectBody string
		}{
			{name: "empty cart", err: order.ErrEmptyCart, expectCode: http.StatusBadRequest, expectBody: httperr.CodeValidation},
			{name: "out of stock", err: errs.BusinessRule("insufficient stock"), expectCode: http.StatusUnprocessableEntity, expectBody: httperr.CodeBusinessRule},
			{name: "unexpected", err: errs.New("connection reset"), expectCode: http.StatusInternalServerError, expectBody: httperr.CodeInternal},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Checkout(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, tc.err).Times(1)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, bearerToken)
				httptest.AssertErrorCode(s.T(), rec, tc.expectCode, tc.expectBody)
			})
		}
	})

	s.Run("error: 500 hides the internal message", func() {
		s.mockCommands.EXPECT().Checkout(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errs.New("pq: connection refused")).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, bearerToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
		s.NotContains(rec.Body.String(), "connection refused")
	})
}

func (s *OrderHandlerTestSuite) TestGet() {
	returnView := builder.NewOrderBuilder().WithCustomerID(s.actor.ID).BuildViewQuery()

	s.Run("success: returns the order", func() {
		s.mockQueries.EXPECT().GetOrder(gomock.Any(), returnView.ID, s.actor).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/orders/"+returnView.ID.String(), nil, bearerToken)

		var body resdto.OrderResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(returnView.ID, body.ID)
		s.Equal(s.actor.ID, body.CustomerID)
	})

	s.Run("error: 400 on malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/orders/not-a-uuid", nil, bearerToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid id")
	})

	s.Run("error: 404 when missing or owned by someone else", func() {
		id := uuid.New()
		s.mockQueries.EXPECT().GetOrder(gomock.Any(), id, s.actor).
			Return(nil, errs.NotFound("order not found")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/orders/"+id.String(), nil, bearerToken)
		httptest.AssertErrorCode(s.T(), rec, http.StatusNotFound, httperr.CodeNotFound)
	})
}

func (s *OrderHandlerTestSuite) TestList() {
	first := builder.NewOrderBuilder().WithCustomerID(s.actor.ID).BuildViewQuery()
	second := builder.NewOrderBuilder().WithCustomerID(s.actor.ID).BuildViewQuery()

	s.mockQueries.EXPECT().ListOrders(gomock.Any(), s.actor.ID).
		Return([]*queries.OrderView{first, second}, nil).Times(1)

	rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/orders", nil, bearerToken)

	var body []resdto.OrderResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
	s.Len(body, 2)
	s.Equal(first.ID, body[0].ID)
}

func (s *OrderHandlerTestSuite) TestCancel() {
	id := uuid.New()
	url := "/api/orders/" + id.String() + "/cancel"

	s.Run("success: passes the reason through", func() {
		view := builder.NewOrderBuilder().WithCustomerID(s.actor.ID).BuildViewQuery()
		s.mockCommands.EXPECT().CancelOrder(gomock.Any(), id, s.actor.ID, "changed my mind").
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"reason": "changed my mind"}, bearerToken)
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("error: 400 without a reason", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{}, bearerToken)
		httptest.AssertErrorCode(s.T(), rec, http.StatusBadRequest, httperr.CodeValidation)
	})

	s.Run("error: 409 once shipped", func() {
		s.mockCommands.EXPECT().CancelOrder(gomock.Any(), id, s.actor.ID, gomock.Any()).
			Return(nil, errs.Wrapf(order.ErrInvalidTransition, "cannot cancel order %s in status SHIPPED", id)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"reason": "too late"}, bearerToken)
		httptest.AssertErrorCode(s.T(), rec, http.StatusConflict, httperr.CodeStateConflict)
	})
}

// addressField mutates one field of the nested shipping address.
func addressField(key string, value any) func(m map[string]any) {
	return func(m map[string]any) {
		addr, ok := m["shippingAddress"].(map[string]any)
		if !ok {
			return
		}
		testutil.Field(key, value)(addr)
	}
}
