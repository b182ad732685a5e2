package handlers

import (
	"net/http"

	request "orderflow/internal/adapter/http/dto/request"
	response "orderflow/internal/adapter/http/dto/response"
	"orderflow/internal/usecase"
	"orderflow/pkg/logger"

	"github.com/gin-gonic/gin"
)

// BillingHandler exposes the estimated and final totals of an order.
type BillingHandler struct {
	usecase usecase.IBillingUseCase
}

func NewBillingHandler(uc usecase.IBillingUseCase) *BillingHandler {
	return &BillingHandler{usecase: uc}
}

// GetBill godoc
// @Summary  Estimated and final totals with a per-line breakdown
// @Tags     billing
// @Produce  json
// @Param    id path string true "order id"
// @Success  200 {object} response.BillResponse
// @Router   /orders/{id}/bill [get]
func (h *BillingHandler) GetBill(c *gin.Context) {
	b, err := h.usecase.GetBill(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromBill(b))
}

// RunningTotal godoc
// @Summary  Checker's running total over unsaved ticks and edits
// @Tags     billing
// @Accept   json
// @Produce  json
// @Param    id   path string true "order id"
// @Param    body body request.CheckReportRequest true "unsaved ticks and edits"
// @Success  200 {object} response.RunningTotalResponse
// @Router   /orders/{id}/bill/running-total [post]
func (h *BillingHandler) RunningTotal(c *gin.Context) {
	var payload request.CheckReportRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeAppError(c, errInvalidPayload)
		return
	}
	report := payload.ToReport()
	total, err := h.usecase.CheckerRunningTotal(c.Request.Context(), c.Param("id"), report.Edited, report.Checked)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.RunningTotalResponse{OrderID: c.Param("id"), Total: total.Round(2)})
}

// IssueBill godoc
// @Summary  Biller issues the bill of a completed order
// @Tags     billing
// @Produce  json
// @Param    id path string true "order id"
// @Success  200 {object} response.BillResponse
// @Failure  409 {object} pkg.HTTPError
// @Router   /orders/{id}/bill/issue [post]
func (h *BillingHandler) IssueBill(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	b, err := h.usecase.IssueBill(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		logger.Warnf(c.Request.Context(), "[billing][handler] issue failed order_id=%s err=%v", c.Param("id"), err)
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromBill(b))
}
