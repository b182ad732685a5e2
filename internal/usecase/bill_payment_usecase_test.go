package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"orderflow/internal/domain/entities"
	mock_interfaces "orderflow/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func billedOrder(id string) (entities.Order, []entities.LineItem) {
	o := entities.Order{
		ID:            id,
		ApprovalFlag:  entities.ApprovalCompleted,
		IsBilled:      true,
		FreightCharge: dec("5"),
	}
	lines := []entities.LineItem{
		{ID: id + "-l1", OrderID: id, OrderedQty: dec("2"), Rate: dec("36.1"), Flag: entities.FlagInStock, IsChecked: true},
		{ID: id + "-l2", OrderID: id, OrderedQty: dec("9"), Rate: dec("1"), Flag: entities.FlagReplaced},
	}
	return o, lines
}

type paymentMocks struct {
	repo    *mock_interfaces.MockIBillPaymentRepository
	orders  *mock_interfaces.MockIOrderRepository
	gateway *mock_interfaces.MockIPaymentGateway
}

func newPaymentMocks(t *testing.T) paymentMocks {
	ctrl := gomock.NewController(t)
	return paymentMocks{
		repo:    mock_interfaces.NewMockIBillPaymentRepository(ctrl),
		orders:  mock_interfaces.NewMockIOrderRepository(ctrl),
		gateway: mock_interfaces.NewMockIPaymentGateway(ctrl),
	}
}

func (m paymentMocks) expectBilled(id string) {
	o, lines := billedOrder(id)
	m.orders.EXPECT().LoadOrder(gomock.Any(), id).Return(o, nil)
	m.orders.EXPECT().LoadLines(gomock.Any(), id).Return(lines, nil)
}

func TestBillPaymentUseCase_CollectPayment_Validations(t *testing.T) {
	t.Run("empty order id", func(t *testing.T) {
		uc := NewBillPaymentUseCase(nil, nil, nil, PaymentOptions{})
		_, err := uc.CollectPayment(context.Background(), " ", json.RawMessage(`{}`))
		if !errors.Is(err, ErrInvalidOrderID) {
			t.Fatalf("expected ErrInvalidOrderID, got %v", err)
		}
	})

	t.Run("empty payload", func(t *testing.T) {
		uc := NewBillPaymentUseCase(nil, nil, nil, PaymentOptions{})
		_, err := uc.CollectPayment(context.Background(), "o-1", nil)
		if !errors.Is(err, ErrInvalidMPPayload) {
			t.Fatalf("expected ErrInvalidMPPayload, got %v", err)
		}
	})

	t.Run("invalid json payload", func(t *testing.T) {
		uc := NewBillPaymentUseCase(nil, nil, nil, PaymentOptions{})
		_, err := uc.CollectPayment(context.Background(), "o-1", json.RawMessage(`{`))
		if !errors.Is(err, ErrInvalidMPPayload) || !errors.Is(err, entities.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidMPPayload, got %v", err)
		}
	})

	t.Run("gateway not configured", func(t *testing.T) {
		m := newPaymentMocks(t)
		uc := NewBillPaymentUseCase(m.repo, m.orders, nil, PaymentOptions{})
		_, err := uc.CollectPayment(context.Background(), "o-1", json.RawMessage(`{"payment_method_id":"pix"}`))
		if !errors.Is(err, ErrPaymentGatewayNotConfigured) {
			t.Fatalf("expected ErrPaymentGatewayNotConfigured, got %v", err)
		}
	})
}

func TestBillPaymentUseCase_CollectPayment_OrderChecks(t *testing.T) {
	payload := json.RawMessage(`{"payment_method_id":"pix","payer":{"email":"x@test.com"}}`)

	t.Run("order repo returns error", func(t *testing.T) {
		m := newPaymentMocks(t)
		uc := NewBillPaymentUseCase(m.repo, m.orders, m.gateway, PaymentOptions{})
		dbErr := errors.New("db")
		m.orders.EXPECT().LoadOrder(gomock.Any(), "o-1").Return(entities.Order{}, dbErr)

		_, err := uc.CollectPayment(context.Background(), "o-1", payload)
		var se *entities.StorageError
		if !errors.As(err, &se) || !errors.Is(err, dbErr) {
			t.Fatalf("expected StorageError wrapping db, got %v", err)
		}
	})

	t.Run("order not found", func(t *testing.T) {
		m := newPaymentMocks(t)
		uc := NewBillPaymentUseCase(m.repo, m.orders, m.gateway, PaymentOptions{})
		m.orders.EXPECT().LoadOrder(gomock.Any(), "o-1").Return(entities.Order{}, nil)

		_, err := uc.CollectPayment(context.Background(), "o-1", payload)
		var nf *entities.NotFound
		if !errors.As(err, &nf) {
			t.Fatalf("expected NotFound, got %v", err)
		}
	})

	t.Run("order cancelled", func(t *testing.T) {
		m := newPaymentMocks(t)
		uc := NewBillPaymentUseCase(m.repo, m.orders, m.gateway, PaymentOptions{})
		m.orders.EXPECT().LoadOrder(gomock.Any(), "o-1").Return(entities.Order{ID: "o-1", ApprovalFlag: entities.ApprovalCancelled}, nil)

		_, err := uc.CollectPayment(context.Background(), "o-1", payload)
		if !errors.Is(err, entities.ErrOrderCancelled) {
			t.Fatalf("expected ErrOrderCancelled, got %v", err)
		}
	})

	t.Run("order not billed", func(t *testing.T) {
		m := newPaymentMocks(t)
		uc := NewBillPaymentUseCase(m.repo, m.orders, m.gateway, PaymentOptions{})
		m.orders.EXPECT().LoadOrder(gomock.Any(), "o-1").Return(entities.Order{ID: "o-1", ApprovalFlag: entities.ApprovalCompleted}, nil)

		_, err := uc.CollectPayment(context.Background(), "o-1", payload)
		if !errors.Is(err, ErrOrderNotBilled) || !entities.IsGuardViolation(err) {
			t.Fatalf("expected ErrOrderNotBilled, got %v", err)
		}
	})
}

func TestBillPaymentUseCase_CollectPayment_PayloadValidation(t *testing.T) {
	t.Run("missing payment_method_id", func(t *testing.T) {
		m := newPaymentMocks(t)
		uc := NewBillPaymentUseCase(m.repo, m.orders, m.gateway, PaymentOptions{})
		m.expectBilled("o-1")

		_, err := uc.CollectPayment(context.Background(), "o-1", json.RawMessage(`{"payer":{"email":"x@test.com"}}`))
		if !errors.Is(err, ErrInvalidMPPayload) {
			t.Fatalf("expected ErrInvalidMPPayload, got %v", err)
		}
	})

	t.Run("missing payer outside sandbox", func(t *testing.T) {
		m := newPaymentMocks(t)
		uc := NewBillPaymentUseCase(m.repo, m.orders, m.gateway, PaymentOptions{})
		m.expectBilled("o-1")

		_, err := uc.CollectPayment(context.Background(), "o-1", json.RawMessage(`{"payment_method_id":"pix"}`))
		if !errors.Is(err, ErrInvalidMPPayload) {
			t.Fatalf("expected ErrInvalidMPPayload, got %v", err)
		}
	})
}

func TestBillPaymentUseCase_CollectPayment_GatewayErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want error
	}{
		{name: "customer not found", err: errors.New(`{"code":2002}`), want: ErrPaymentGatewayCustomerNotFound},
		{name: "invalid users", err: errors.New(`invalid users involved`), want: ErrPaymentGatewayInvalidUsers},
		{name: "unauthorized", err: errors.New(`{"error":"unauthorized"}`), want: ErrPaymentGatewayUnauthorized},
		{name: "bad request", err: errors.New(`{"status":400}`), want: ErrPaymentGatewayBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := newPaymentMocks(t)
			uc := NewBillPaymentUseCase(m.repo, m.orders, m.gateway, PaymentOptions{})
			m.expectBilled("o-1")
			m.gateway.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).Return("", "", nil, tc.err)

			_, err := uc.CollectPayment(context.Background(), "o-1", json.RawMessage(`{"payment_method_id":"pix","payer":{"email":"x@test.com"}}`))
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}

	t.Run("unknown gateway error", func(t *testing.T) {
		m := newPaymentMocks(t)
		uc := NewBillPaymentUseCase(m.repo, m.orders, m.gateway, PaymentOptions{})
		m.expectBilled("o-1")
		m.gateway.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).Return("", "", nil, errors.New("boom"))

		_, err := uc.CollectPayment(context.Background(), "o-1", json.RawMessage(`{"payment_method_id":"pix","payer":{"email":"x@test.com"}}`))
		if err == nil || err.Error() != "boom" {
			t.Fatalf("expected boom, got %v", err)
		}
	})
}

func TestBillPaymentUseCase_CollectPayment_SuccessAndStatuses(t *testing.T) {
	cases := []struct {
		name           string
		providerStatus string
		want           entities.PaymentStatus
		providerResp   json.RawMessage
	}{
		{name: "approved", providerStatus: "approved", want: entities.PaymentStatusApproved, providerResp: json.RawMessage(`{"id":123}`)},
		{name: "authorized", providerStatus: "authorized", want: entities.PaymentStatusApproved, providerResp: json.RawMessage(`{"id":123}`)},
		{name: "rejected", providerStatus: "rejected", want: entities.PaymentStatusDenied, providerResp: json.RawMessage(`{"id":123}`)},
		{name: "charged back", providerStatus: "charged_back", want: entities.PaymentStatusDenied, providerResp: json.RawMessage(`{"id":123}`)},
		{name: "pending default", providerStatus: "in_process", want: entities.PaymentStatusPending, providerResp: json.RawMessage(`{"id":123}`)},
		{name: "invalid provider response json", providerStatus: "approved", want: entities.PaymentStatusApproved, providerResp: json.RawMessage(`{`)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := newPaymentMocks(t)
			uc := NewBillPaymentUseCase(m.repo, m.orders, m.gateway, PaymentOptions{
				Sandbox:         true,
				TestPayerUserID: "123",
				TestPayerEmail:  "sandbox@test.com",
			})
			m.expectBilled("o-1")

			m.gateway.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).DoAndReturn(
				func(_ context.Context, payload json.RawMessage) (string, string, json.RawMessage, error) {
					var body map[string]any
					if err := json.Unmarshal(payload, &body); err != nil {
						t.Fatalf("payload should be valid json: %v", err)
					}
					if body["external_reference"] != "o-1" {
						t.Fatalf("external_reference not set")
					}
					if body["description"] != "Order o-1" {
						t.Fatalf("description not set")
					}
					if body["transaction_amount"] != float64(77.2) {
						t.Fatalf("transaction_amount should be the order's final total, got %v", body["transaction_amount"])
					}
					payer := body["payer"].(map[string]any)
					if payer["email"] != "sandbox@test.com" || payer["id"] != nil {
						t.Fatalf("sandbox payer id should be mapped to its email: %+v", payer)
					}
					return "pay-1", tc.providerStatus, tc.providerResp, nil
				},
			)

			m.repo.EXPECT().Create(gomock.Any(), gomock.AssignableToTypeOf(entities.BillPayment{})).DoAndReturn(
				func(_ context.Context, p entities.BillPayment) (entities.BillPayment, error) {
					if p.ID != "pay-1" || p.OrderID != "o-1" || p.Status != tc.want {
						t.Fatalf("unexpected payment: %+v", p)
					}
					if !p.Amount.Equal(dec("77.2")) {
						t.Fatalf("unexpected amount %s", p.Amount)
					}
					if p.Date.IsZero() {
						t.Fatalf("date must be set")
					}
					return p, nil
				},
			)

			res, err := uc.CollectPayment(context.Background(), "o-1", json.RawMessage(`{"payment_method_id":"pix","payer":{"id":"123"},"transaction_amount":1}`))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.Status != tc.want {
				t.Fatalf("expected status %s, got %s", tc.want, res.Status)
			}
		})
	}

	t.Run("mock mode skips the gateway", func(t *testing.T) {
		m := newPaymentMocks(t)
		uc := NewBillPaymentUseCase(m.repo, m.orders, nil, PaymentOptions{Mock: true})
		m.expectBilled("o-1")
		m.repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, p entities.BillPayment) (entities.BillPayment, error) { return p, nil },
		)

		res, err := uc.CollectPayment(context.Background(), "o-1", nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.ID == "" || res.Status != entities.PaymentStatusApproved || res.ProviderPayload["status_detail"] != "accredited" {
			t.Fatalf("unexpected mock payment: %+v", res)
		}
	})

	t.Run("repository create error", func(t *testing.T) {
		m := newPaymentMocks(t)
		uc := NewBillPaymentUseCase(m.repo, m.orders, m.gateway, PaymentOptions{})
		m.expectBilled("o-1")
		dbErr := errors.New("db-create")
		m.gateway.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).Return("pay-1", "approved", json.RawMessage(`{"id":123}`), nil)
		m.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.BillPayment{}, dbErr)

		_, err := uc.CollectPayment(context.Background(), "o-1", json.RawMessage(`{"payment_method_id":"pix","payer":{"email":"x@test.com"}}`))
		if !errors.Is(err, dbErr) {
			t.Fatalf("expected db-create error, got %v", err)
		}
	})
}

func TestBillPaymentUseCase_Getters(t *testing.T) {
	t.Run("GetByID invalid", func(t *testing.T) {
		uc := NewBillPaymentUseCase(nil, nil, nil, PaymentOptions{})
		_, err := uc.GetByID(context.Background(), "")
		if !errors.Is(err, ErrInvalidPaymentID) {
			t.Fatalf("expected ErrInvalidPaymentID, got %v", err)
		}
	})

	t.Run("GetByID repo error", func(t *testing.T) {
		m := newPaymentMocks(t)
		uc := NewBillPaymentUseCase(m.repo, nil, nil, PaymentOptions{})
		dbErr := errors.New("db")
		m.repo.EXPECT().GetByID(gomock.Any(), "id-1").Return(entities.BillPayment{}, dbErr)

		_, err := uc.GetByID(context.Background(), "id-1")
		if !errors.Is(err, dbErr) {
			t.Fatalf("expected db error, got %v", err)
		}
	})

	t.Run("GetByID not found", func(t *testing.T) {
		m := newPaymentMocks(t)
		uc := NewBillPaymentUseCase(m.repo, nil, nil, PaymentOptions{})
		m.repo.EXPECT().GetByID(gomock.Any(), "id-1").Return(entities.BillPayment{}, nil)

		_, err := uc.GetByID(context.Background(), "id-1")
		if !errors.Is(err, ErrBillPaymentNotFound) {
			t.Fatalf("expected ErrBillPaymentNotFound, got %v", err)
		}
	})

	t.Run("GetByID success", func(t *testing.T) {
		m := newPaymentMocks(t)
		uc := NewBillPaymentUseCase(m.repo, nil, nil, PaymentOptions{})
		m.repo.EXPECT().GetByID(gomock.Any(), "id-1").Return(entities.BillPayment{ID: "id-1"}, nil)

		res, err := uc.GetByID(context.Background(), " id-1 ")
		if err != nil || res.ID != "id-1" {
			t.Fatalf("unexpected result err=%v res=%+v", err, res)
		}
	})

	t.Run("ListByOrderID invalid", func(t *testing.T) {
		uc := NewBillPaymentUseCase(nil, nil, nil, PaymentOptions{})
		_, err := uc.ListByOrderID(context.Background(), " ")
		if !errors.Is(err, ErrInvalidOrderID) {
			t.Fatalf("expected ErrInvalidOrderID, got %v", err)
		}
	})

	t.Run("ListByOrderID success", func(t *testing.T) {
		m := newPaymentMocks(t)
		uc := NewBillPaymentUseCase(m.repo, nil, nil, PaymentOptions{})
		expected := []entities.BillPayment{{ID: "p1", Date: time.Now()}}
		m.repo.EXPECT().ListByOrderID(gomock.Any(), "o-1").Return(expected, nil)

		res, err := uc.ListByOrderID(context.Background(), " o-1 ")
		if err != nil || len(res) != 1 || res[0].ID != "p1" {
			t.Fatalf("unexpected result err=%v res=%+v", err, res)
		}
	})
}

func TestBillPaymentUseCase_PayerHelpers(t *testing.T) {
	t.Run("hasNonEmptyString", func(t *testing.T) {
		if hasNonEmptyString(map[string]any{}, "x") {
			t.Fatalf("expected false")
		}
		if hasNonEmptyString(map[string]any{"x": 1}, "x") {
			t.Fatalf("expected false for non-string")
		}
		if hasNonEmptyString(map[string]any{"x": "   "}, "x") {
			t.Fatalf("expected false for empty string")
		}
		if !hasNonEmptyString(map[string]any{"x": "ok"}, "x") {
			t.Fatalf("expected true")
		}
	})

	t.Run("hasPayer and hasPayerID", func(t *testing.T) {
		if hasPayer(map[string]any{}) || hasPayer(map[string]any{"payer": "x"}) || hasPayer(map[string]any{"payer": map[string]any{}}) {
			t.Fatalf("expected false")
		}
		if !hasPayer(map[string]any{"payer": map[string]any{"email": "a@b.com"}}) {
			t.Fatalf("expected true with email")
		}
		if !hasPayer(map[string]any{"payer": map[string]any{"id": 10}}) {
			t.Fatalf("expected true with id")
		}
		if hasPayerID(map[string]any{"id": nil}) || hasPayerID(map[string]any{"id": " "}) {
			t.Fatalf("expected false for nil or blank id")
		}
	})

	t.Run("ensurePayerDefaults", func(t *testing.T) {
		plain := &BillPaymentUseCase{}
		m := map[string]any{}
		plain.ensurePayerDefaults(m)
		payer := m["payer"].(map[string]any)
		if payer["type"] != "customer" || payer["email"] != nil {
			t.Fatalf("unexpected defaults: %+v", payer)
		}

		configured := &BillPaymentUseCase{opts: PaymentOptions{TestPayerEmail: "custom@test.com"}}
		m2 := map[string]any{"payer": map[string]any{}}
		configured.ensurePayerDefaults(m2)
		if m2["payer"].(map[string]any)["email"] != "custom@test.com" {
			t.Fatalf("expected configured email fallback")
		}

		sandbox := &BillPaymentUseCase{opts: PaymentOptions{Sandbox: true}}
		m3 := map[string]any{"payer": map[string]any{}}
		sandbox.ensurePayerDefaults(m3)
		if m3["payer"].(map[string]any)["email"] != "test_user_br@testuser.com" {
			t.Fatalf("expected sandbox fallback email")
		}

		m4 := map[string]any{"payer": "invalid"}
		sandbox.ensurePayerDefaults(m4)
	})

	t.Run("normalizeSandboxPayer", func(t *testing.T) {
		ctx := context.Background()
		live := &BillPaymentUseCase{opts: PaymentOptions{TestPayerUserID: "123", TestPayerEmail: "sandbox@test.com"}}
		m := map[string]any{"payer": map[string]any{"id": "123"}}
		live.normalizeSandboxPayer(ctx, m)
		if _, ok := m["payer"].(map[string]any)["email"]; ok {
			t.Fatalf("should not map outside the sandbox")
		}

		unconfigured := &BillPaymentUseCase{opts: PaymentOptions{Sandbox: true}}
		m2 := map[string]any{"payer": map[string]any{"id": "123"}}
		unconfigured.normalizeSandboxPayer(ctx, m2)
		if _, ok := m2["payer"].(map[string]any)["email"]; ok {
			t.Fatalf("should not map without a configured test payer")
		}

		sandbox := &BillPaymentUseCase{opts: PaymentOptions{Sandbox: true, TestPayerUserID: "123", TestPayerEmail: "sandbox@test.com"}}
		m3 := map[string]any{"payer": map[string]any{"id": "999"}}
		sandbox.normalizeSandboxPayer(ctx, m3)
		if _, ok := m3["payer"].(map[string]any)["email"]; ok {
			t.Fatalf("should not map a different user id")
		}

		m4 := map[string]any{"payer": map[string]any{"id": "123"}}
		sandbox.normalizeSandboxPayer(ctx, m4)
		payer := m4["payer"].(map[string]any)
		if payer["email"] != "sandbox@test.com" || payer["id"] != nil {
			t.Fatalf("expected id replaced by email: %+v", payer)
		}
	})

	t.Run("paymentStatusOf", func(t *testing.T) {
		cases := map[string]entities.PaymentStatus{
			"approved": entities.PaymentStatusApproved, " AUTHORIZED ": entities.PaymentStatusApproved,
			"refunded": entities.PaymentStatusDenied, "cancelled": entities.PaymentStatusDenied,
			"": entities.PaymentStatusPending, "in_mediation": entities.PaymentStatusPending,
		}
		for in, want := range cases {
			if got := paymentStatusOf(in); got != want {
				t.Fatalf("paymentStatusOf(%q) = %s, want %s", in, got, want)
			}
		}
	})
}
