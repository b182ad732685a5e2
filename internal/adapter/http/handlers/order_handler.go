package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	request "orderflow/internal/adapter/http/dto/request"
	response "orderflow/internal/adapter/http/dto/response"
	"orderflow/internal/domain/entities"
	"orderflow/internal/usecase"
	"orderflow/pkg"
	"orderflow/pkg/logger"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidOrderPayload = pkg.NewDomainErrorSimple("INVALID_ORDER_INPUT", "Invalid order payload", http.StatusBadRequest)
	errInvalidRole         = pkg.NewDomainErrorSimple("INVALID_ROLE", "Role must be storekeeper, checker or biller", http.StatusBadRequest)
	errInvalidOlderThan    = pkg.NewDomainErrorSimple("INVALID_REQUEST", "older_than must be a duration such as 30m", http.StatusBadRequest)
)

// OrderHandler handles HTTP requests for the order lifecycle.
type OrderHandler struct {
	usecase usecase.IOrderUseCase
}

func NewOrderHandler(uc usecase.IOrderUseCase) *OrderHandler {
	return &OrderHandler{usecase: uc}
}

// CreateOrder godoc
// @Summary  Create an order with its initial lines
// @Tags     orders
// @Accept   json
// @Produce  json
// @Param    X-Actor-ID   header string true "acting user"
// @Param    X-Actor-Role header string true "acting role"
// @Param    body body request.CreateOrderRequest true "order"
// @Success  201 {object} response.CreateOrderResponse
// @Failure  400 {object} pkg.HTTPError
// @Router   /orders [post]
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var payload request.CreateOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeAppError(c, errInvalidOrderPayload)
		return
	}

	o, lines, err := h.usecase.CreateOrder(c.Request.Context(), actor, payload.ToInput())
	if err != nil {
		logger.Warnf(c.Request.Context(), "[order][handler] create failed err=%v", err)
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.FromCreatedOrder(o, lines))
}

// GetOrder godoc
// @Summary  Get an order
// @Tags     orders
// @Produce  json
// @Param    id path string true "order id"
// @Success  200 {object} response.OrderResponse
// @Failure  404 {object} pkg.HTTPError
// @Router   /orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	o, err := h.usecase.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromOrder(o))
}

// AddLine godoc
// @Summary  Add a line to a new order
// @Tags     orders
// @Accept   json
// @Produce  json
// @Param    id   path string true "order id"
// @Param    body body request.LineRequest true "line"
// @Success  201 {object} response.LineResponse
// @Failure  409 {object} pkg.HTTPError
// @Router   /orders/{id}/lines [post]
func (h *OrderHandler) AddLine(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var payload request.LineRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeAppError(c, errInvalidOrderPayload)
		return
	}

	l, err := h.usecase.AddLine(c.Request.Context(), actor, c.Param("id"), payload.ToInput())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.FromLine(l))
}

// ListLines godoc
// @Summary  Every line of the order, replaced and cancelled ones included
// @Tags     orders
// @Produce  json
// @Param    id path string true "order id"
// @Success  200 {array} response.LineResponse
// @Router   /orders/{id}/lines [get]
func (h *OrderHandler) ListLines(c *gin.Context) {
	lines, err := h.usecase.ListLines(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromLines(lines))
}

// DisplayItems godoc
// @Summary  Live lines with the line each replacement stands in for
// @Tags     orders
// @Produce  json
// @Param    id path string true "order id"
// @Success  200 {array} response.DisplayItemResponse
// @Router   /orders/{id}/items [get]
func (h *OrderHandler) DisplayItems(c *gin.Context) {
	items, err := h.usecase.DisplayItems(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromDisplayItems(items))
}

// Submit godoc
// @Summary  Send a new order to the storekeeper pool
// @Tags     orders
// @Produce  json
// @Param    id path string true "order id"
// @Success  200 {object} response.OrderResponse
// @Router   /orders/{id}/submit [post]
func (h *OrderHandler) Submit(c *gin.Context) {
	h.transition(c, h.usecase.Submit)
}

// InformUpdates godoc
// @Summary  Storekeeper hands a fully decided order back to the salesman
// @Tags     orders
// @Produce  json
// @Param    id path string true "order id"
// @Success  200 {object} response.OrderResponse
// @Router   /orders/{id}/inform-updates [post]
func (h *OrderHandler) InformUpdates(c *gin.Context) {
	h.transition(c, h.usecase.InformUpdates)
}

// SendToChecker godoc
// @Summary  Send an order with every line in stock to the checker
// @Tags     orders
// @Produce  json
// @Param    id path string true "order id"
// @Success  200 {object} response.OrderResponse
// @Router   /orders/{id}/send-to-checker [post]
func (h *OrderHandler) SendToChecker(c *gin.Context) {
	h.transition(c, h.usecase.SendToChecker)
}

// Cancel godoc
// @Summary  Cancel an order
// @Tags     orders
// @Produce  json
// @Param    id path string true "order id"
// @Success  200 {object} response.OrderResponse
// @Router   /orders/{id}/cancel [post]
func (h *OrderHandler) Cancel(c *gin.Context) {
	h.transition(c, h.usecase.Cancel)
}

// Reject godoc
// @Summary  Reject an order
// @Tags     orders
// @Produce  json
// @Param    id path string true "order id"
// @Success  200 {object} response.OrderResponse
// @Router   /orders/{id}/reject [post]
func (h *OrderHandler) Reject(c *gin.Context) {
	h.transition(c, h.usecase.Reject)
}

func (h *OrderHandler) transition(c *gin.Context, step func(ctx context.Context, actor entities.Actor, orderID string) (entities.Order, error)) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	o, err := step(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		logger.Warnf(c.Request.Context(), "[order][handler] transition failed order_id=%s err=%v", c.Param("id"), err)
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromOrder(o))
}

// Claim godoc
// @Summary  Claim the order for a role
// @Tags     claims
// @Produce  json
// @Param    id   path string true "order id"
// @Param    role path string true "storekeeper, checker or biller"
// @Success  200 {object} response.ClaimResponse
// @Failure  409 {object} pkg.HTTPError
// @Router   /orders/{id}/claims/{role} [post]
func (h *OrderHandler) Claim(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	role, ok := claimRole(c)
	if !ok {
		return
	}
	tok, err := h.usecase.Claim(c.Request.Context(), actor, c.Param("id"), role)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromClaimToken(tok))
}

// ReleaseClaim godoc
// @Summary  Release a stale claim (admin)
// @Tags     claims
// @Produce  json
// @Param    id         path  string true  "order id"
// @Param    role       path  string true  "storekeeper, checker or biller"
// @Param    older_than query string false "only release claims older than this duration"
// @Success  200 {object} response.OrderResponse
// @Failure  403 {object} pkg.HTTPError
// @Router   /orders/{id}/claims/{role} [delete]
func (h *OrderHandler) ReleaseClaim(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	role, ok := claimRole(c)
	if !ok {
		return
	}
	var olderThan time.Duration
	if v := strings.TrimSpace(c.Query("older_than")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 {
			writeAppError(c, errInvalidOlderThan)
			return
		}
		olderThan = d
	}

	o, err := h.usecase.ReleaseClaim(c.Request.Context(), actor, c.Param("id"), role, olderThan)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromOrder(o))
}

func claimRole(c *gin.Context) (entities.Role, bool) {
	role, valid := entities.ParseRole(c.Param("role"))
	if !valid || !role.Claimable() {
		writeAppError(c, errInvalidRole)
		return "", false
	}
	return role, true
}

// AssignBiller godoc
// @Summary  Assign the biller slot, or leave it to the biller pool
// @Tags     claims
// @Accept   json
// @Produce  json
// @Param    id   path string true "order id"
// @Param    body body request.BillerRequest false "biller"
// @Success  200 {object} response.ClaimResponse
// @Success  202 "offered to the biller pool"
// @Router   /orders/{id}/assign-biller [post]
func (h *OrderHandler) AssignBiller(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	payload, ok := bindBiller(c)
	if !ok {
		return
	}
	tok, err := h.usecase.AssignBiller(c.Request.Context(), actor, c.Param("id"), payload.ResolveBillerID())
	if err != nil {
		writeError(c, err)
		return
	}
	if tok.ActorID == "" {
		c.Status(http.StatusAccepted)
		return
	}
	c.JSON(http.StatusOK, response.FromClaimToken(tok))
}

// Dispatch godoc
// @Summary  Send to the checker and assign the biller; each leg reports on its own
// @Tags     orders
// @Accept   json
// @Produce  json
// @Param    id   path string true "order id"
// @Param    body body request.BillerRequest false "biller"
// @Success  200 {object} response.DispatchResponse
// @Router   /orders/{id}/dispatch [post]
func (h *OrderHandler) Dispatch(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	payload, ok := bindBiller(c)
	if !ok {
		return
	}
	res := h.usecase.SendToBillerAndChecker(c.Request.Context(), actor, c.Param("id"), payload.ResolveBillerID())
	if res.CheckerErr != nil && res.BillerErr != nil {
		writeError(c, res.CheckerErr)
		return
	}
	c.JSON(http.StatusOK, response.FromDispatch(res))
}

func bindBiller(c *gin.Context) (request.BillerRequest, bool) {
	var payload request.BillerRequest
	if c.Request.ContentLength == 0 {
		return payload, true
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeAppError(c, errInvalidPayload)
		return payload, false
	}
	return payload, true
}

// SubmitCheckedReport godoc
// @Summary  Checker submits ticks and edited quantities
// @Tags     orders
// @Accept   json
// @Produce  json
// @Param    id   path string true "order id"
// @Param    body body request.CheckReportRequest true "report"
// @Success  200 {object} response.OrderResponse
// @Router   /orders/{id}/check-report [post]
func (h *OrderHandler) SubmitCheckedReport(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var payload request.CheckReportRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeAppError(c, errInvalidPayload)
		return
	}
	o, err := h.usecase.SubmitCheckedReport(c.Request.Context(), actor, c.Param("id"), payload.ToReport())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromOrder(o))
}
