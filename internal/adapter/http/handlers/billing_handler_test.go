package handlers

import (
	"net/http"
	"testing"

	"orderflow/internal/adapter/http/handlers/mocks"
	"orderflow/internal/domain/billing"
	"orderflow/internal/domain/entities"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

func billingRouter(t *testing.T) (*gin.Engine, *mocks.MockIBillingUseCase) {
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockIBillingUseCase(ctrl)
	h := NewBillingHandler(uc)

	r := newTestRouter()
	r.GET("/v1/orders/:id/bill", h.GetBill)
	r.POST("/v1/orders/:id/bill/running-total", h.RunningTotal)
	r.POST("/v1/orders/:id/bill/issue", h.IssueBill)
	return r, uc
}

func TestBillingHandler_GetBill(t *testing.T) {
	r, uc := billingRouter(t)
	uc.EXPECT().GetBill(gomock.Any(), "o-1").Return(billing.Bill{
		OrderID:        "o-1",
		Freight:        decimal.NewFromInt(5),
		EstimatedTotal: decimal.NewFromInt(35),
		FinalTotal:     decimal.RequireFromString("32.5"),
	}, nil)

	w := serve(r, http.MethodGet, "/v1/orders/o-1/bill", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["final_total"] != "32.5" || body["estimated_total"] != "35" {
		t.Fatalf("unexpected bill: %v", body)
	}
}

func TestBillingHandler_RunningTotal(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		r, uc := billingRouter(t)
		uc.EXPECT().CheckerRunningTotal(gomock.Any(), "o-1",
			map[string]decimal.Decimal{"l-2": decimal.NewFromInt(1)},
			map[string]bool{"l-1": true},
		).Return(decimal.RequireFromString("10.004"), nil)

		w := serve(r, http.MethodPost, "/v1/orders/o-1/bill/running-total", `{"checked":{"l-1":true},"edited":{"l-2":"1"}}`, &checker)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		if decodeBody(t, w)["total"] != "10" {
			t.Fatalf("total should be rounded to cents: %s", w.Body.String())
		}
	})

	t.Run("bad body", func(t *testing.T) {
		r, _ := billingRouter(t)
		w := serve(r, http.MethodPost, "/v1/orders/o-1/bill/running-total", `[`, &checker)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})
}

func TestBillingHandler_IssueBill(t *testing.T) {
	t.Run("not completed", func(t *testing.T) {
		r, uc := billingRouter(t)
		uc.EXPECT().IssueBill(gomock.Any(), biller, "o-1").Return(billing.Bill{}, entities.Guard("order is sentToChecker"))
		w := serve(r, http.MethodPost, "/v1/orders/o-1/bill/issue", "", &biller)
		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("issued", func(t *testing.T) {
		r, uc := billingRouter(t)
		uc.EXPECT().IssueBill(gomock.Any(), biller, "o-1").Return(billing.Bill{OrderID: "o-1", IsBilled: true}, nil)
		w := serve(r, http.MethodPost, "/v1/orders/o-1/bill/issue", "", &biller)
		if w.Code != http.StatusOK || decodeBody(t, w)["is_billed"] != true {
			t.Fatalf("unexpected response %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("missing actor", func(t *testing.T) {
		r, _ := billingRouter(t)
		w := serve(r, http.MethodPost, "/v1/orders/o-1/bill/issue", "", nil)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})
}
