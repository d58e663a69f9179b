package api

import (
	"net/http"

	reqdto "order-fulfillment/internal/handler/dto/request"
	resdto "order-fulfillment/internal/handler/dto/response"
	"order-fulfillment/internal/handler/httperr"
	"order-fulfillment/internal/usecase/commands"
	"order-fulfillment/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PaymentHandler struct {
	cmds commands.PaymentCommands
	q    queries.PaymentQueries
}

func NewPaymentHandler(cmds commands.PaymentCommands, q queries.PaymentQueries) *PaymentHandler {
	return &PaymentHandler{cmds: cmds, q: q}
}

// @Summary Pay for an order
// @Description Charge the order total. Repeating the call for an order with a processing or completed payment returns that payment.
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.ProcessPaymentRequest true "Payment request"
// @Success 201 {object} resdto.PaymentResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /api/payments [post]
func (h *PaymentHandler) Process(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req reqdto.ProcessPaymentRequest
	if !bindJSON(c, &req) {
		return
	}
	view, err := h.cmds.ProcessPayment(c.Request.Context(), req.ToCommand(), actor.ID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.Header("Location", "/api/payments/"+view.ID.String())
	c.JSON(http.StatusCreated, resdto.FromPaymentView(view))
}

// @Summary Get payment
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Payment ID"
// @Success 200 {object} resdto.PaymentResponse
// @Failure 404 {object} httperr.Response
// @Router /api/payments/{id} [get]
func (h *PaymentHandler) Get(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	view, err := h.q.GetPayment(c.Request.Context(), id, actor)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromPaymentView(view))
}

// @Summary List payments
// @Description Payments of one order when orderId is given, otherwise the caller's payments
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param orderId query string false "Order ID"
// @Success 200 {array} resdto.PaymentResponse
// @Failure 400 {object} httperr.Response
// @Router /api/payments [get]
func (h *PaymentHandler) List(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var (
		views []*queries.PaymentView
		err   error
	)
	if raw := c.Query("orderId"); raw != "" {
		orderID, parseErr := uuid.Parse(raw)
		if parseErr != nil {
			httperr.BadRequest(c, parseErr, "Invalid orderId")
			return
		}
		views, err = h.q.GetPaymentsByOrder(c.Request.Context(), orderID, actor)
	} else {
		views, err = h.q.GetPaymentsByCustomer(c.Request.Context(), actor.ID)
	}
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromPaymentViews(views))
}

// @Summary Refund payment
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Payment ID"
// @Param request body reqdto.RefundPaymentRequest true "Refund request"
// @Success 200 {object} resdto.PaymentResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /api/payments/{id}/refund [post]
func (h *PaymentHandler) Refund(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req reqdto.RefundPaymentRequest
	if !bindJSON(c, &req) {
		return
	}
	cmd, err := req.ToCommand(id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	view, err := h.cmds.RefundPayment(c.Request.Context(), cmd)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromPaymentView(view))
}
