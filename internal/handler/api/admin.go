package api

import (
	"net/http"

	resdto "order-fulfillment/internal/handler/dto/response"
	"order-fulfillment/internal/handler/httperr"
	"order-fulfillment/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	reconciler commands.Reconciler
}

func NewAdminHandler(reconciler commands.Reconciler) *AdminHandler {
	return &AdminHandler{reconciler: reconciler}
}

// @Summary Run reconciliation
// @Description Expire orders and payments that waited too long for payment
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.SweepResponse
// @Failure 500 {object} httperr.Response
// @Router /api/admin/reconcile [post]
func (h *AdminHandler) Reconcile(c *gin.Context) {
	result, err := h.reconciler.Sweep(c.Request.Context())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromSweepResult(result))
}
