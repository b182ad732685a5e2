package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	appconfig "orderflow/internal/infrastructure/config"
	"orderflow/internal/usecase/interfaces"
	"orderflow/pkg/logger"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
)

var ErrMissingMercadoPagoAccessToken = errors.New("missing MERCADOPAGO_ACCESS_TOKEN")
var ErrMercadoPagoGatewayNotConfigured = errors.New("mercado pago gateway not configured")

type paymentCreator interface {
	Create(ctx context.Context, request payment.Request) (*payment.Response, error)
}

type MercadoPagoGateway struct {
	client paymentCreator
}

var _ interfaces.IPaymentGateway = (*MercadoPagoGateway)(nil)

// NewMercadoPagoGateway returns nil without error in mock mode; the bill
// payment usecase answers for the provider then.
func NewMercadoPagoGateway(cfg appconfig.PaymentsConfig) (*MercadoPagoGateway, error) {
	ctx := context.Background()
	if cfg.Mock {
		logger.Infof(ctx, "[payment][gateway] mock mode enabled, no provider client")
		return nil, nil
	}
	if cfg.MercadoPagoAccessToken == "" {
		logger.Errorf(ctx, "[payment][gateway] missing MERCADOPAGO_ACCESS_TOKEN")
		return nil, ErrMissingMercadoPagoAccessToken
	}

	sdkCfg, err := config.New(cfg.MercadoPagoAccessToken)
	if err != nil {
		logger.Errorf(ctx, "[payment][gateway] failed creating sdk config err=%v", err)
		return nil, err
	}
	logger.Infof(ctx, "[payment][gateway] Mercado Pago client initialized sandbox=%t", cfg.Sandbox())

	return &MercadoPagoGateway{client: payment.NewClient(sdkCfg)}, nil
}

func (g *MercadoPagoGateway) CreatePayment(ctx context.Context, requestPayload json.RawMessage) (providerPaymentID string, providerStatus string, providerResponse json.RawMessage, err error) {
	if g == nil || g.client == nil {
		logger.Errorf(ctx, "[payment][gateway] gateway not configured")
		return "", "", nil, ErrMercadoPagoGatewayNotConfigured
	}
	logger.Debugf(ctx, "[payment][gateway] create start payload_len=%d", len(requestPayload))

	var req payment.Request
	if err := json.Unmarshal(requestPayload, &req); err != nil {
		logger.Warnf(ctx, "[payment][gateway] payload unmarshal failed err=%v", err)
		return "", "", nil, err
	}

	resp, err := g.client.Create(ctx, req)
	if err != nil {
		logger.Errorf(ctx, "[payment][gateway] sdk create failed err=%v", err)
		return "", "", nil, err
	}

	b, err := json.Marshal(resp)
	if err != nil {
		logger.Errorf(ctx, "[payment][gateway] response marshal failed err=%v", err)
		return "", "", nil, err
	}
	logger.Infof(ctx, "[payment][gateway] create success provider_payment_id=%d provider_status=%s", resp.ID, resp.Status)

	return fmt.Sprintf("%d", resp.ID), resp.Status, b, nil
}
