package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"orderflow/internal/domain/billing"
	"orderflow/internal/domain/entities"
	"orderflow/internal/usecase/interfaces"
	"orderflow/pkg/logger"
)

var (
	ErrBillPaymentNotFound            = errors.New("bill payment not found")
	ErrInvalidPaymentID               = fmt.Errorf("%w: invalid payment id", entities.ErrInvalidInput)
	ErrInvalidMPPayload               = fmt.Errorf("%w: invalid mercado pago payload", entities.ErrInvalidInput)
	ErrOrderNotBilled                 = entities.Guard("order is not billed")
	ErrPaymentGatewayNotConfigured    = errors.New("payment gateway not configured")
	ErrPaymentGatewayBadRequest       = errors.New("payment gateway bad request")
	ErrPaymentGatewayUnauthorized     = errors.New("payment gateway unauthorized")
	ErrPaymentGatewayInvalidUsers     = errors.New("payment gateway invalid users involved")
	ErrPaymentGatewayCustomerNotFound = errors.New("payment gateway customer not found")
)

// PaymentOptions carries the provider settings the payload enrichment needs.
type PaymentOptions struct {
	Mock            bool
	Sandbox         bool
	TestPayerEmail  string
	TestPayerUserID string
}

// IBillPaymentUseCase settles billed orders.
type IBillPaymentUseCase interface {
	CollectPayment(ctx context.Context, orderID string, mpPayload json.RawMessage) (entities.BillPayment, error)
	GetByID(ctx context.Context, id string) (entities.BillPayment, error)
	ListByOrderID(ctx context.Context, orderID string) ([]entities.BillPayment, error)
}

type BillPaymentUseCase struct {
	repo      interfaces.IBillPaymentRepository
	orderRepo interfaces.IOrderRepository
	gateway   interfaces.IPaymentGateway
	opts      PaymentOptions
	now       func() time.Time
}

var _ IBillPaymentUseCase = (*BillPaymentUseCase)(nil)

func NewBillPaymentUseCase(repo interfaces.IBillPaymentRepository, orderRepo interfaces.IOrderRepository, gateway interfaces.IPaymentGateway, opts PaymentOptions) *BillPaymentUseCase {
	return &BillPaymentUseCase{
		repo:      repo,
		orderRepo: orderRepo,
		gateway:   gateway,
		opts:      opts,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// CollectPayment charges the final total of a billed order and records the
// provider's answer. The amount always comes from the stored order, never
// from the payload.
func (u *BillPaymentUseCase) CollectPayment(ctx context.Context, orderID string, mpPayload json.RawMessage) (entities.BillPayment, error) {
	orderID = strings.TrimSpace(orderID)
	ctx = logger.WithOrderID(ctx, orderID)
	logger.Infof(ctx, "[payment][usecase] collect start order_id=%s payload_len=%d", orderID, len(mpPayload))
	if orderID == "" {
		return entities.BillPayment{}, ErrInvalidOrderID
	}
	mockMode := u.opts.Mock
	if len(mpPayload) == 0 || !json.Valid(mpPayload) {
		if !mockMode {
			logger.Warnf(ctx, "[payment][usecase] invalid payload order_id=%s", orderID)
			return entities.BillPayment{}, ErrInvalidMPPayload
		}
		mpPayload = json.RawMessage("{}")
	}
	if u.gateway == nil && !mockMode {
		return entities.BillPayment{}, ErrPaymentGatewayNotConfigured
	}

	o, err := u.orderRepo.LoadOrder(ctx, orderID)
	if err != nil {
		return entities.BillPayment{}, storageErr("loadOrder", err)
	}
	if o.ID == "" {
		return entities.BillPayment{}, &entities.NotFound{Kind: "order", ID: orderID}
	}
	if o.ApprovalFlag == entities.ApprovalCancelled {
		return entities.BillPayment{}, entities.ErrOrderCancelled
	}
	if !o.IsBilled {
		logger.Infof(ctx, "[payment][usecase] order not billed order_id=%s flag=%s", orderID, o.ApprovalFlag)
		return entities.BillPayment{}, ErrOrderNotBilled
	}
	lines, err := u.orderRepo.LoadLines(ctx, orderID)
	if err != nil {
		return entities.BillPayment{}, storageErr("loadLines", err)
	}
	amount := billing.Round(billing.FinalTotal(lines, o.FreightCharge))
	amountF, _ := amount.Float64()
	logger.Infof(ctx, "[payment][usecase] order loaded order_id=%s amount=%s", orderID, amount)

	var reqMap map[string]any
	if err := json.Unmarshal(mpPayload, &reqMap); err == nil {
		if !mockMode && !hasNonEmptyString(reqMap, "payment_method_id") {
			logger.Warnf(ctx, "[payment][usecase] missing payment_method_id order_id=%s", orderID)
			return entities.BillPayment{}, ErrInvalidMPPayload
		}
		if !mockMode {
			u.normalizeSandboxPayer(ctx, reqMap)
			u.ensurePayerDefaults(reqMap)
			if !hasPayer(reqMap) {
				logger.Warnf(ctx, "[payment][usecase] missing/invalid payer order_id=%s", orderID)
				return entities.BillPayment{}, ErrInvalidMPPayload
			}
		}
		if _, ok := reqMap["external_reference"]; !ok {
			reqMap["external_reference"] = orderID
		}
		if _, ok := reqMap["description"]; !ok {
			reqMap["description"] = fmt.Sprintf("Order %s", orderID)
		}
		reqMap["transaction_amount"] = amountF
		if b, err := json.Marshal(reqMap); err == nil {
			mpPayload = b
		}
	} else {
		logger.Warnf(ctx, "[payment][usecase] payload unmarshal failed order_id=%s err=%v", orderID, err)
	}

	var (
		providerPaymentID string
		providerStatus    string
		providerResp      json.RawMessage
	)
	if mockMode {
		logger.Infof(ctx, "[payment][usecase] mock mode enabled; skipping payment gateway order_id=%s", orderID)
		providerPaymentID, providerStatus, providerResp, err = mockProviderResponse(mpPayload, u.now())
		if err != nil {
			return entities.BillPayment{}, err
		}
	} else {
		providerPaymentID, providerStatus, providerResp, err = u.gateway.CreatePayment(ctx, mpPayload)
		if err != nil {
			logger.Errorf(ctx, "[payment][usecase] payment gateway failed order_id=%s err=%v", orderID, err)
			return entities.BillPayment{}, classifyGatewayError(err)
		}
	}
	logger.Infof(ctx, "[payment][usecase] payment gateway success order_id=%s provider_payment_id=%s provider_status=%s", orderID, providerPaymentID, providerStatus)

	var parsed map[string]interface{}
	if err := json.Unmarshal(providerResp, &parsed); err != nil {
		logger.Warnf(ctx, "[payment][usecase] provider response unmarshal failed order_id=%s err=%v", orderID, err)
	}

	p := entities.BillPayment{
		ID:                 providerPaymentID,
		OrderID:            orderID,
		Amount:             amount,
		Date:               u.now(),
		Status:             paymentStatusOf(providerStatus),
		ProviderPayloadRaw: providerResp,
		ProviderPayload:    parsed,
	}
	created, err := u.repo.Create(ctx, p)
	if err != nil {
		logger.Errorf(ctx, "[payment][usecase] payment repository create failed order_id=%s payment_id=%s err=%v", orderID, p.ID, err)
		return entities.BillPayment{}, storageErr("createPayment", err)
	}
	logger.Infof(ctx, "[payment][usecase] collect success order_id=%s payment_id=%s status=%s", orderID, created.ID, created.Status)
	return created, nil
}

func mockProviderResponse(payload json.RawMessage, now time.Time) (string, string, json.RawMessage, error) {
	id := strconv.FormatInt(now.UnixNano(), 10)
	resp := map[string]any{}
	if len(payload) > 0 && json.Valid(payload) {
		_ = json.Unmarshal(payload, &resp)
	}
	ts := now.Format(time.RFC3339Nano)
	resp["id"] = id
	resp["status"] = "approved"
	resp["status_detail"] = "accredited"
	resp["date_created"] = ts
	resp["date_approved"] = ts
	b, err := json.Marshal(resp)
	if err != nil {
		return "", "", nil, err
	}
	return id, "approved", b, nil
}

func paymentStatusOf(providerStatus string) entities.PaymentStatus {
	switch strings.ToLower(strings.TrimSpace(providerStatus)) {
	case "approved", "authorized":
		return entities.PaymentStatusApproved
	case "rejected", "cancelled", "refunded", "charged_back":
		return entities.PaymentStatusDenied
	}
	return entities.PaymentStatusPending
}

func hasNonEmptyString(m map[string]any, key string) bool {
	s, ok := m[key].(string)
	return ok && strings.TrimSpace(s) != ""
}

func hasPayer(m map[string]any) bool {
	payer, ok := m["payer"].(map[string]any)
	if !ok {
		return false
	}
	return hasNonEmptyString(payer, "email") || hasPayerID(payer)
}

func hasPayerID(payer map[string]any) bool {
	v, ok := payer["id"]
	if !ok || v == nil {
		return false
	}
	s := strings.TrimSpace(fmt.Sprintf("%v", v))
	return s != "" && s != "<nil>"
}

func (u *BillPaymentUseCase) ensurePayerDefaults(m map[string]any) {
	v, ok := m["payer"]
	if !ok || v == nil {
		v = map[string]any{}
		m["payer"] = v
	}
	payer, ok := v.(map[string]any)
	if !ok {
		return
	}
	if _, ok := payer["type"]; !ok {
		payer["type"] = "customer"
	}
	// In sandbox either payer.id or payer.email is accepted.
	if !hasPayerID(payer) && !hasNonEmptyString(payer, "email") {
		if email := strings.TrimSpace(u.opts.TestPayerEmail); email != "" {
			payer["email"] = email
		} else if u.opts.Sandbox {
			payer["email"] = "test_user_br@testuser.com"
		}
	}
}

// normalizeSandboxPayer swaps the configured sandbox user id for its email,
// which is what the sandbox expects.
func (u *BillPaymentUseCase) normalizeSandboxPayer(ctx context.Context, m map[string]any) {
	if !u.opts.Sandbox {
		return
	}
	payer, ok := m["payer"].(map[string]any)
	if !ok || !hasPayerID(payer) || hasNonEmptyString(payer, "email") {
		return
	}
	userID := strings.TrimSpace(u.opts.TestPayerUserID)
	email := strings.TrimSpace(u.opts.TestPayerEmail)
	if userID == "" || email == "" {
		return
	}
	if strings.TrimSpace(fmt.Sprintf("%v", payer["id"])) != userID {
		return
	}
	payer["email"] = email
	delete(payer, "id")
	logger.Debugf(ctx, "[payment][usecase] mapped sandbox payer user_id to payer.email")
}

func classifyGatewayError(err error) error {
	switch {
	case isGatewayCustomerNotFound(err):
		return ErrPaymentGatewayCustomerNotFound
	case isGatewayInvalidUsers(err):
		return ErrPaymentGatewayInvalidUsers
	case isGatewayUnauthorized(err):
		return ErrPaymentGatewayUnauthorized
	case isGatewayBadRequest(err):
		return ErrPaymentGatewayBadRequest
	}
	return err
}

func gatewayMessage(err error) string {
	if err == nil {
		return ""
	}
	return strings.ToLower(err.Error())
}

func isGatewayBadRequest(err error) bool {
	msg := gatewayMessage(err)
	return strings.Contains(msg, "\"error\":\"bad_request\"") || strings.Contains(msg, "\"status\":400")
}

func isGatewayUnauthorized(err error) bool {
	msg := gatewayMessage(err)
	return strings.Contains(msg, "\"error\":\"unauthorized\"") || strings.Contains(msg, "\"status\":401")
}

func isGatewayInvalidUsers(err error) bool {
	msg := gatewayMessage(err)
	return strings.Contains(msg, "invalid users involved") || strings.Contains(msg, "\"code\":2034")
}

func isGatewayCustomerNotFound(err error) bool {
	msg := gatewayMessage(err)
	return strings.Contains(msg, "customer not found") || strings.Contains(msg, "\"code\":2002")
}

func (u *BillPaymentUseCase) GetByID(ctx context.Context, id string) (entities.BillPayment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.BillPayment{}, ErrInvalidPaymentID
	}
	p, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.BillPayment{}, storageErr("getPayment", err)
	}
	if p.ID == "" {
		return entities.BillPayment{}, ErrBillPaymentNotFound
	}
	return p, nil
}

func (u *BillPaymentUseCase) ListByOrderID(ctx context.Context, orderID string) ([]entities.BillPayment, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return nil, ErrInvalidOrderID
	}
	out, err := u.repo.ListByOrderID(ctx, orderID)
	if err != nil {
		return nil, storageErr("listPayments", err)
	}
	return out, nil
}
