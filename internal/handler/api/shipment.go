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

type ShipmentHandler struct {
	cmds commands.ShipmentCommands
	q    queries.ShipmentQueries
}

func NewShipmentHandler(cmds commands.ShipmentCommands, q queries.ShipmentQueries) *ShipmentHandler {
	return &ShipmentHandler{cmds: cmds, q: q}
}

// @Summary Create shipment
// @Description Create the shipment for a paid order
// @Tags shipments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateShipmentRequest true "Shipment request"
// @Success 201 {object} resdto.ShipmentResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/shipments [post]
func (h *ShipmentHandler) Create(c *gin.Context) {
	var req reqdto.CreateShipmentRequest
	if !bindJSON(c, &req) {
		return
	}
	cmd, err := req.ToCommand()
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	view, err := h.cmds.CreateShipment(c.Request.Context(), cmd)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.Header("Location", "/api/shipments/"+view.ID.String())
	c.JSON(http.StatusCreated, resdto.FromShipmentView(view))
}

// @Summary Get shipment
// @Tags shipments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Shipment ID"
// @Success 200 {object} resdto.ShipmentResponse
// @Failure 404 {object} httperr.Response
// @Router /api/shipments/{id} [get]
func (h *ShipmentHandler) Get(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	view, err := h.q.GetShipment(c.Request.Context(), id, actor)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromShipmentView(view))
}

// @Summary Get shipment by order
// @Tags shipments
// @Produce json
// @Security BearerAuth
// @Param orderId path string true "Order ID"
// @Success 200 {object} resdto.ShipmentResponse
// @Failure 404 {object} httperr.Response
// @Router /api/shipments/order/{orderId} [get]
func (h *ShipmentHandler) GetByOrder(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	orderID, ok := uuidParam(c, "orderId")
	if !ok {
		return
	}
	view, err := h.q.GetShipmentByOrder(c.Request.Context(), orderID, actor)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromShipmentView(view))
}

// @Summary Track shipment
// @Description Public tracking by tracking number
// @Tags shipments
// @Produce json
// @Param trackingNumber path string true "Tracking number"
// @Success 200 {object} resdto.ShipmentResponse
// @Failure 404 {object} httperr.Response
// @Router /api/shipments/track/{trackingNumber} [get]
func (h *ShipmentHandler) Track(c *gin.Context) {
	view, err := h.q.TrackShipment(c.Request.Context(), c.Param("trackingNumber"))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromShipmentView(view))
}

type transitionFunc func(ctx context.Context, id uuid.UUID) (*queries.ShipmentView, error)

func (h *ShipmentHandler) transition(fn transitionFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := uuidParam(c, "id")
		if !ok {
			return
		}
		view, err := fn(c.Request.Context(), id)
		if err != nil {
			httperr.Abort(c, err)
			return
		}
		c.JSON(http.StatusOK, resdto.FromShipmentView(view))
	}
}

// @Summary Mark shipment picked up
// @Tags shipments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Shipment ID"
// @Success 200 {object} resdto.ShipmentResponse
// @Failure 409 {object} httperr.Response
// @Router /api/shipments/{id}/pickup [post]
func (h *ShipmentHandler) PickUp(c *gin.Context) { h.transition(h.cmds.PickUp)(c) }

// @Summary Mark shipment in transit
// @Tags shipments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Shipment ID"
// @Success 200 {object} resdto.ShipmentResponse
// @Failure 409 {object} httperr.Response
// @Router /api/shipments/{id}/in-transit [post]
func (h *ShipmentHandler) InTransit(c *gin.Context) { h.transition(h.cmds.InTransit)(c) }

// @Summary Mark shipment out for delivery
// @Tags shipments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Shipment ID"
// @Success 200 {object} resdto.ShipmentResponse
// @Failure 409 {object} httperr.Response
// @Router /api/shipments/{id}/out-for-delivery [post]
func (h *ShipmentHandler) OutForDelivery(c *gin.Context) { h.transition(h.cmds.OutForDelivery)(c) }

// @Summary Mark shipment delivered
// @Tags shipments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Shipment ID"
// @Success 200 {object} resdto.ShipmentResponse
// @Failure 409 {object} httperr.Response
// @Router /api/shipments/{id}/deliver [post]
func (h *ShipmentHandler) Deliver(c *gin.Context) { h.transition(h.cmds.Deliver)(c) }

// @Summary Mark shipment returned
// @Tags shipments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Shipment ID"
// @Success 200 {object} resdto.ShipmentResponse
// @Failure 409 {object} httperr.Response
// @Router /api/shipments/{id}/return [post]
func (h *ShipmentHandler) Return(c *gin.Context) { h.transition(h.cmds.Return)(c) }

// @Summary Mark shipment failed
// @Tags shipments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Shipment ID"
// @Param request body reqdto.FailShipmentRequest true "Failure reason"
// @Success 200 {object} resdto.ShipmentResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/shipments/{id}/fail [post]
func (h *ShipmentHandler) Fail(c *gin.Context) {
	var req reqdto.FailShipmentRequest
	if !bindJSON(c, &req) {
		return
	}
	h.transition(func(ctx context.Context, id uuid.UUID) (*queries.ShipmentView, error) {
		return h.cmds.Fail(ctx, id, req.Reason)
	})(c)
}

// @Summary Set estimated delivery date
// @Tags shipments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Shipment ID"
// @Param request body reqdto.EstimatedDeliveryRequest true "Estimated date"
// @Success 200 {object} resdto.ShipmentResponse
// @Failure 400 {object} httperr.Response
// @Router /api/shipments/{id}/estimated-delivery [post]
func (h *ShipmentHandler) SetEstimatedDelivery(c *gin.Context) {
	var req reqdto.EstimatedDeliveryRequest
	if !bindJSON(c, &req) {
		return
	}
	h.transition(func(ctx context.Context, id uuid.UUID) (*queries.ShipmentView, error) {
		return h.cmds.SetEstimatedDelivery(ctx, id, req.Date)
	})(c)
}
