//go:build unit

package api_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"order-fulfillment/internal/domain/discount"
	"order-fulfillment/internal/domain/money"
	"order-fulfillment/internal/handler/api"
	resdto "order-fulfillment/internal/handler/dto/response"
	"order-fulfillment/internal/handler/httperr"
	"order-fulfillment/internal/pkg/errs"
	"order-fulfillment/internal/usecase/commands"
	"order-fulfillment/internal/usecase/queries"
	"order-fulfillment/internal/usecase/shared"
	"order-fulfillment/tests/common/httptest"
	"order-fulfillment/tests/common/testutil"
	commandsmock "order-fulfillment/tests/mock/commands"
	queriesmock "order-fulfillment/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type DiscountHandlerTestSuite struct {
	suite.Suite
	router         *gin.Engine
	mockCtrl       *gomock.Controller
	mockCoupons    *commandsmock.MockCouponCommands
	mockPromotions *commandsmock.MockPromotionCommands
	mockPromoQuery *queriesmock.MockPromotionQueries
	mockReconciler *commandsmock.MockReconciler
	actor          shared.Actor
}

func (s *DiscountHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCoupons = commandsmock.NewMockCouponCommands(s.mockCtrl)
	s.mockPromotions = commandsmock.NewMockPromotionCommands(s.mockCtrl)
	s.mockPromoQuery = queriesmock.NewMockPromotionQueries(s.mockCtrl)
	s.mockReconciler = commandsmock.NewMockReconciler(s.mockCtrl)

	coupons := api.NewCouponHandler(s.mockCoupons)
	promotions := api.NewPromotionHandler(s.mockPromotions, s.mockPromoQuery)
	admin := api.NewAdminHandler(s.mockReconciler)

	s.actor = shared.Actor{ID: uuid.New(), Role: shared.RoleCustomer}
	auth := fakeAuth(&s.actor)

	s.router.POST("/api/coupons/validate", auth, coupons.Validate)
	s.router.POST("/api/coupons/apply", auth, coupons.Apply)
	s.router.POST("/api/coupons", auth, coupons.Create)
	s.router.POST("/api/coupons/:code/deactivate", auth, coupons.Deactivate)
	s.router.GET("/api/promotions", promotions.ListActive)
	s.router.GET("/api/promotions/:id", promotions.Get)
	s.router.POST("/api/promotions", auth, promotions.Create)
	s.router.POST("/api/admin/reconcile", auth, admin.Reconcile)
}

func (s *DiscountHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestDiscountHandlerSuite(t *testing.T) {
	suite.Run(t, new(DiscountHandlerTestSuite))
}

func (s *DiscountHandlerTestSuite) TestValidateCoupon() {
	url := "/api/coupons/validate"
	reqBody := map[string]any{"code": "SAVE10", "orderTotal": "2000"}

	s.Run("success: valid coupon reports the discount", func() {
		s.mockCoupons.EXPECT().Validate(gomock.Any(), gomock.Any(), s.actor.ID).
			DoAndReturn(func(_ context.Context, req commands.ApplyCouponRequest, _ uuid.UUID) (*commands.CouponValidation, error) {
				s.Equal("SAVE10", req.Code)
				s.True(req.OrderTotal.Equal(money.MustParse("2000", money.DefaultCurrency)))
				return &commands.CouponValidation{
					Valid:          true,
					Code:           "SAVE10",
					DiscountAmount: money.MustParse("200", money.DefaultCurrency),
				}, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, bearerToken)

		var body resdto.CouponValidationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.True(body.Valid)
		s.Equal("200.00", body.DiscountAmount)
		s.Equal("TWD", body.Currency)
	})

	s.Run("success: rejected coupon is still 200", func() {
		s.mockCoupons.EXPECT().Validate(gomock.Any(), gomock.Any(), s.actor.ID).
			Return(&commands.CouponValidation{
				Valid:          false,
				Message:        "Coupon has expired",
				Code:           "SAVE10",
				DiscountAmount: money.Zero(money.DefaultCurrency),
			}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, bearerToken)

		var body resdto.CouponValidationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.False(body.Valid)
		s.Equal("Coupon has expired", body.Message)
		s.Equal("0.00", body.DiscountAmount)
	})

	s.Run("error: 400 on validation errors", func() {
		cases := []struct {
			name   string
			mutate func(m map[string]any)
		}{
			{name: "missing code", mutate: testutil.Field("code", nil)},
			{name: "missing orderTotal", mutate: testutil.Field("orderTotal", nil)},
			{name: "orderTotal not a number", mutate: testutil.Field("orderTotal", "lots")},
			{name: "negative orderTotal", mutate: testutil.Field("orderTotal", "-1")},
			{name: "currency not three letters", mutate: testutil.Field("currency", "NTDX")},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, bearerToken)
				httptest.AssertErrorCode(s.T(), rec, http.StatusBadRequest, httperr.CodeValidation)
			})
		}
	})
}

func (s *DiscountHandlerTestSuite) TestApplyCoupon() {
	s.mockCoupons.EXPECT().Apply(gomock.Any(), gomock.Any(), s.actor.ID).
		Return(&commands.CouponValidation{
			Valid:          false,
			Message:        "Coupon usage limit reached",
			Code:           "ONCE",
			DiscountAmount: money.Zero(money.DefaultCurrency),
		}, nil).Times(1)

	rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/coupons/apply",
		map[string]any{"code": "ONCE", "orderTotal": "500"}, bearerToken)

	var body resdto.CouponValidationResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
	s.False(body.Valid)
	s.Equal("Coupon usage limit reached", body.Message)
}

func (s *DiscountHandlerTestSuite) TestCreateCoupon() {
	url := "/api/coupons"
	expires := time.Date(2026, 12, 31, 23, 59, 0, 0, time.UTC)
	reqBody := map[string]any{
		"code":        "SAVE10",
		"description": "10% off",
		"rule":        map[string]any{"type": "PERCENTAGE", "value": "10", "minimumOrder": "1000"},
		"expiresAt":   expires.Format(time.RFC3339),
		"maxUses":     100,
	}

	s.Run("success: returns 201 Created", func() {
		s.mockCoupons.EXPECT().CreateCoupon(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req commands.CreateCouponRequest) (*queries.CouponView, error) {
				s.Equal(discount.TypePercentage, req.Type)
				s.True(req.Value.Equal(decimal.NewFromInt(10)))
				s.Require().NotNil(req.MinimumOrder)
				s.True(req.MinimumOrder.Equal(money.MustParse("1000", money.DefaultCurrency)))
				s.Require().NotNil(req.MaxUses)
				s.Equal(100, *req.MaxUses)
				return &queries.CouponView{ID: uuid.New(), Code: req.Code, ExpiresAt: expires, Active: true}, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, bearerToken)

		var body resdto.CouponResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal("SAVE10", body.Code)
	})

	s.Run("error: 400 on unknown rule type", func() {
		bad := testutil.DtoMap(s.T(), reqBody, testutil.Field("rule", map[string]any{"type": "BOGO", "value": "1"}))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, bad, bearerToken)
		httptest.AssertErrorCode(s.T(), rec, http.StatusBadRequest, httperr.CodeValidation)
	})

	s.Run("error: 400 on malformed rule value", func() {
		bad := testutil.DtoMap(s.T(), reqBody, testutil.Field("rule", map[string]any{"type": "FIXED_AMOUNT", "value": "ten"}))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, bad, bearerToken)
		httptest.AssertErrorCode(s.T(), rec, http.StatusBadRequest, httperr.CodeValidation)
	})

	s.Run("error: 409 on duplicate code", func() {
		s.mockCoupons.EXPECT().CreateCoupon(gomock.Any(), gomock.Any()).
			Return(nil, errs.StateConflict("coupon code already exists")).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, bearerToken)
		httptest.AssertErrorCode(s.T(), rec, http.StatusConflict, httperr.CodeStateConflict)
	})
}

func (s *DiscountHandlerTestSuite) TestDeactivateCoupon() {
	s.mockCoupons.EXPECT().DeactivateCoupon(gomock.Any(), "SAVE10").Return(nil).Times(1)
	rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/coupons/SAVE10/deactivate", nil, bearerToken)
	s.Equal(http.StatusNoContent, rec.Code)

	s.mockCoupons.EXPECT().DeactivateCoupon(gomock.Any(), "NOPE").Return(errs.NotFound("coupon not found")).Times(1)
	rec = httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/coupons/NOPE/deactivate", nil, bearerToken)
	httptest.AssertErrorCode(s.T(), rec, http.StatusNotFound, httperr.CodeNotFound)
}

func (s *DiscountHandlerTestSuite) TestPromotions() {
	view := &queries.PromotionView{
		ID:       uuid.New(),
		Name:     "Autumn sale",
		Rule:     queries.RuleView{Type: string(discount.TypePercentage), Value: "10"},
		StartsAt: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		EndsAt:   time.Date(2026, 10, 31, 0, 0, 0, 0, time.UTC),
		Active:   true,
	}

	s.Run("list active is public", func() {
		s.mockPromoQuery.EXPECT().GetActivePromotions(gomock.Any()).Return([]*queries.PromotionView{view}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/promotions", nil, "")

		var body []resdto.PromotionResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Len(body, 1)
		s.Equal("Autumn sale", body[0].Name)
	})

	s.Run("get by id", func() {
		s.mockPromoQuery.EXPECT().GetPromotion(gomock.Any(), view.ID).Return(view, nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/promotions/"+view.ID.String(), nil, "")
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("create rejects a missing window", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/promotions", map[string]any{
			"name": "No dates",
			"rule": map[string]any{"type": "PERCENTAGE", "value": "5"},
		}, bearerToken)
		httptest.AssertErrorCode(s.T(), rec, http.StatusBadRequest, httperr.CodeValidation)
	})
}

func (s *DiscountHandlerTestSuite) TestReconcile() {
	s.mockReconciler.EXPECT().Sweep(gomock.Any()).
		Return(commands.SweepResult{ExpiredOrders: 2, ExpiredPayments: 1}, nil).Times(1)

	rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/admin/reconcile", nil, bearerToken)

	var body resdto.SweepResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
	s.Equal(2, body.ExpiredOrders)
	s.Equal(1, body.ExpiredPayments)
}
