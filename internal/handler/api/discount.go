package api

import (
	"context"
	"net/http"

	reqdto "order-fulfillment/internal/handler/dto/request"
	resdto "order-fulfillment/internal/handler/dto/response"
	"order-fulfillment/internal/handler/httperr"
	"order-fulfillment/internal/usecase/commands"
	"order-fulfillment/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CouponHandler struct {
	cmds commands.CouponCommands
}

func NewCouponHandler(cmds commands.CouponCommands) *CouponHandler {
	return &CouponHandler{cmds: cmds}
}

// @Summary Validate coupon
// @Description Preview a coupon's discount without using it
// @Tags coupons
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CouponCheckRequest true "Coupon and order total"
// @Success 200 {object} resdto.CouponValidationResponse
// @Failure 400 {object} httperr.Response
// @Router /api/coupons/validate [post]
func (h *CouponHandler) Validate(c *gin.Context) {
	h.check(c, h.cmds.Validate)
}

// @Summary Apply coupon
// @Description Validate a coupon and record one use
// @Tags coupons
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CouponCheckRequest true "Coupon and order total"
// @Success 200 {object} resdto.CouponValidationResponse
// @Failure 400 {object} httperr.Response
// @Router /api/coupons/apply [post]
func (h *CouponHandler) Apply(c *gin.Context) {
	h.check(c, h.cmds.Apply)
}

type couponCheckFunc func(ctx context.Context, req commands.ApplyCouponRequest, customerID uuid.UUID) (*commands.CouponValidation, error)

// A rejected coupon is a normal answer (valid=false), not an HTTP error.
func (h *CouponHandler) check(c *gin.Context, fn couponCheckFunc) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req reqdto.CouponCheckRequest
	if !bindJSON(c, &req) {
		return
	}
	cmd, err := req.ToCommand()
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	result, err := fn(c.Request.Context(), cmd, actor.ID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCouponValidation(result))
}

// @Summary Create coupon
// @Tags coupons
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateCouponRequest true "Coupon definition"
// @Success 201 {object} resdto.CouponResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/coupons [post]
func (h *CouponHandler) Create(c *gin.Context) {
	var req reqdto.CreateCouponRequest
	if !bindJSON(c, &req) {
		return
	}
	cmd, err := req.ToCommand()
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	view, err := h.cmds.CreateCoupon(c.Request.Context(), cmd)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromCouponView(view))
}

// @Summary Deactivate coupon
// @Tags coupons
// @Security BearerAuth
// @Param code path string true "Coupon code"
// @Success 204 "No Content"
// @Failure 404 {object} httperr.Response
// @Router /api/coupons/{code}/deactivate [post]
func (h *CouponHandler) Deactivate(c *gin.Context) {
	if err := h.cmds.DeactivateCoupon(c.Request.Context(), c.Param("code")); err != nil {
		httperr.Abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Reactivate coupon
// @Tags coupons
// @Security BearerAuth
// @Param code path string true "Coupon code"
// @Success 204 "No Content"
// @Failure 404 {object} httperr.Response
// @Router /api/coupons/{code}/reactivate [post]
func (h *CouponHandler) Reactivate(c *gin.Context) {
	if err := h.cmds.ReactivateCoupon(c.Request.Context(), c.Param("code")); err != nil {
		httperr.Abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type PromotionHandler struct {
	cmds commands.PromotionCommands
	q    queries.PromotionQueries
}

func NewPromotionHandler(cmds commands.PromotionCommands, q queries.PromotionQueries) *PromotionHandler {
	return &PromotionHandler{cmds: cmds, q: q}
}

// @Summary Active promotions
// @Tags promotions
// @Produce json
// @Success 200 {array} resdto.PromotionResponse
// @Router /api/promotions [get]
func (h *PromotionHandler) ListActive(c *gin.Context) {
	views, err := h.q.GetActivePromotions(c.Request.Context())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromPromotionViews(views))
}

// @Summary Get promotion
// @Tags promotions
// @Produce json
// @Param id path string true "Promotion ID"
// @Success 200 {object} resdto.PromotionResponse
// @Failure 404 {object} httperr.Response
// @Router /api/promotions/{id} [get]
func (h *PromotionHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	view, err := h.q.GetPromotion(c.Request.Context(), id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromPromotionView(view))
}

// @Summary Create promotion
// @Tags promotions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreatePromotionRequest true "Promotion definition"
// @Success 201 {object} resdto.PromotionResponse
// @Failure 400 {object} httperr.Response
// @Router /api/promotions [post]
func (h *PromotionHandler) Create(c *gin.Context) {
	var req reqdto.CreatePromotionRequest
	if !bindJSON(c, &req) {
		return
	}
	cmd, err := req.ToCommand()
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	view, err := h.cmds.CreatePromotion(c.Request.Context(), cmd)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromPromotionView(view))
}

// @Summary Activate promotion
// @Tags promotions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Promotion ID"
// @Success 200 {object} resdto.PromotionResponse
// @Router /api/promotions/{id}/activate [post]
func (h *PromotionHandler) Activate(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	view, err := h.cmds.ActivatePromotion(c.Request.Context(), id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromPromotionView(view))
}

// @Summary Deactivate promotion
// @Tags promotions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Promotion ID"
// @Success 200 {object} resdto.PromotionResponse
// @Router /api/promotions/{id}/deactivate [post]
func (h *PromotionHandler) Deactivate(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	view, err := h.cmds.DeactivatePromotion(c.Request.Context(), id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromPromotionView(view))
}
