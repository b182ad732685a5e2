package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"strings"

	response "orderflow/internal/adapter/http/dto/response"
	"orderflow/internal/usecase"
	"orderflow/pkg/logger"

	"github.com/gin-gonic/gin"
)

// BillPaymentHandler handles HTTP requests for payments of billed orders.

type BillPaymentHandler struct {
	usecase  usecase.IBillPaymentUseCase
	mockMode bool
}

func NewBillPaymentHandler(uc usecase.IBillPaymentUseCase, mockMode bool) *BillPaymentHandler {
	return &BillPaymentHandler{usecase: uc, mockMode: mockMode}
}

// CollectPayment godoc
// @Summary  Charge the final total of a billed order
// @Tags     payments
// @Accept   json
// @Produce  json
// @Param    id   path string true "order id"
// @Param    body body request.BillPaymentCreateRequest false "Mercado Pago payload, wrapped or bare"
// @Success  200 {object} response.BillPaymentResponse
// @Failure  409 {object} pkg.HTTPError
// @Router   /orders/{id}/payments [post]
func (h *BillPaymentHandler) CollectPayment(c *gin.Context) {
	ctx := c.Request.Context()
	orderID := c.Param("id")
	logger.Infof(ctx, "[payment][handler] create start order_id=%s", orderID)
	mpPayload, err := readMPPayload(c)
	if err != nil {
		if h.mockMode {
			logger.Warnf(ctx, "[payment][handler] payload invalid in mock mode; fallback to empty payload order_id=%s err=%v", orderID, err)
			mpPayload = json.RawMessage("{}")
		} else {
			logger.Warnf(ctx, "[payment][handler] invalid payload order_id=%s err=%v", orderID, err)
			writeAppError(c, errInvalidPayload)
			return
		}
	}

	created, err := h.usecase.CollectPayment(ctx, orderID, mpPayload)
	if err != nil {
		logger.Errorf(ctx, "[payment][handler] create failed order_id=%s err=%v", orderID, err)
		writeError(c, err)
		return
	}
	logger.Infof(ctx, "[payment][handler] create success order_id=%s payment_id=%s status=%s", orderID, created.ID, created.Status)

	c.JSON(http.StatusOK, response.FromBillPayment(created))
}

// ListPayments godoc
// @Summary  Payments of an order, latest first
// @Tags     payments
// @Produce  json
// @Param    id path string true "order id"
// @Success  200 {array} response.BillPaymentResponse
// @Router   /orders/{id}/payments [get]
func (h *BillPaymentHandler) ListPayments(c *gin.Context) {
	orderID := c.Param("id")
	payments, err := h.usecase.ListByOrderID(c.Request.Context(), orderID)
	if err != nil {
		logger.Warnf(c.Request.Context(), "[payment][handler] list failed order_id=%s err=%v", orderID, err)
		writeError(c, err)
		return
	}

	sort.SliceStable(payments, func(i, j int) bool { return payments[i].Date.After(payments[j].Date) })
	c.JSON(http.StatusOK, response.FromBillPayments(payments))
}

// GetPayment godoc
// @Summary  Get a payment
// @Tags     payments
// @Produce  json
// @Param    id path string true "payment id"
// @Success  200 {object} response.BillPaymentResponse
// @Failure  404 {object} pkg.HTTPError
// @Router   /payments/{id} [get]
func (h *BillPaymentHandler) GetPayment(c *gin.Context) {
	p, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromBillPayment(p))
}

func readMPPayload(c *gin.Context) (json.RawMessage, error) {
	raw, err := c.GetRawData()
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return json.RawMessage("{}"), nil
	}
	if !json.Valid(raw) {
		return nil, errors.New("request body is not valid json")
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err == nil {
		if wrapped, ok := envelope["mp_payload"]; ok {
			if len(strings.TrimSpace(string(wrapped))) == 0 || strings.TrimSpace(string(wrapped)) == "null" {
				return nil, errors.New("mp_payload cannot be empty")
			}
			return wrapped, nil
		}
	}

	return json.RawMessage(raw), nil
}
