package payments

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	appconfig "orderflow/internal/infrastructure/config"

	"github.com/mercadopago/sdk-go/pkg/payment"
)

type fakeCreator struct {
	req  payment.Request
	resp *payment.Response
	err  error
}

func (f *fakeCreator) Create(ctx context.Context, request payment.Request) (*payment.Response, error) {
	f.req = request
	return f.resp, f.err
}

func TestNewMercadoPagoGateway(t *testing.T) {
	g, err := NewMercadoPagoGateway(appconfig.PaymentsConfig{Mock: true})
	if err != nil || g != nil {
		t.Fatalf("mock mode should return no gateway, got %v %v", g, err)
	}

	_, err = NewMercadoPagoGateway(appconfig.PaymentsConfig{})
	if !errors.Is(err, ErrMissingMercadoPagoAccessToken) {
		t.Fatalf("expected missing token error, got %v", err)
	}

	g, err = NewMercadoPagoGateway(appconfig.PaymentsConfig{MercadoPagoAccessToken: "TEST-123"})
	if err != nil || g == nil || g.client == nil {
		t.Fatalf("expected configured gateway, got %v %v", g, err)
	}
}

func TestMercadoPagoGateway_CreatePayment(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		var g *MercadoPagoGateway
		_, _, _, err := g.CreatePayment(context.Background(), json.RawMessage(`{}`))
		if !errors.Is(err, ErrMercadoPagoGatewayNotConfigured) {
			t.Fatalf("expected not configured, got %v", err)
		}
	})

	t.Run("bad payload", func(t *testing.T) {
		g := &MercadoPagoGateway{client: &fakeCreator{}}
		if _, _, _, err := g.CreatePayment(context.Background(), json.RawMessage(`{`)); err == nil {
			t.Fatalf("expected unmarshal error")
		}
	})

	t.Run("sdk error", func(t *testing.T) {
		sdkErr := errors.New("bad_request")
		g := &MercadoPagoGateway{client: &fakeCreator{err: sdkErr}}
		_, _, _, err := g.CreatePayment(context.Background(), json.RawMessage(`{"transaction_amount":10}`))
		if !errors.Is(err, sdkErr) {
			t.Fatalf("expected sdk error, got %v", err)
		}
	})

	t.Run("success", func(t *testing.T) {
		fc := &fakeCreator{resp: &payment.Response{ID: 42, Status: "approved"}}
		g := &MercadoPagoGateway{client: fc}
		id, status, raw, err := g.CreatePayment(context.Background(), json.RawMessage(`{"transaction_amount":77.2,"payment_method_id":"pix"}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if id != "42" || status != "approved" || len(raw) == 0 {
			t.Fatalf("unexpected result id=%s status=%s raw=%s", id, status, raw)
		}
		if fc.req.TransactionAmount != 77.2 || fc.req.PaymentMethodID != "pix" {
			t.Fatalf("request not forwarded: %+v", fc.req)
		}
	})
}
