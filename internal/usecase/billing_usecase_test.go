package usecase

import (
	"errors"
	"testing"

	"orderflow/internal/domain/entities"
	"orderflow/internal/domain/lifecycle"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

func TestBillingUseCase_GetBill(t *testing.T) {
	h := newHarness(t)
	h.allowNotifications()

	if _, err := h.billing.GetBill(h.ctx, ""); !errors.Is(err, ErrInvalidOrderID) {
		t.Fatalf("expected ErrInvalidOrderID, got %v", err)
	}
	var nf *entities.NotFound
	if _, err := h.billing.GetBill(h.ctx, "ghost"); !errors.As(err, &nf) {
		t.Fatalf("expected NotFound, got %v", err)
	}

	o, _ := h.draft(t)
	bill, err := h.billing.GetBill(h.ctx, o.ID)
	if err != nil {
		t.Fatalf("get bill: %v", err)
	}
	if !bill.EstimatedTotal.Equal(dec("5")) {
		t.Fatalf("estimate is only freight before the snapshot, got %s", bill.EstimatedTotal)
	}
	if !bill.FinalTotal.Equal(dec("35")) || len(bill.Lines) != 2 || bill.IsBilled {
		t.Fatalf("unexpected bill: %+v", bill)
	}
}

func TestBillingUseCase_CheckerRunningTotal(t *testing.T) {
	h := newHarness(t)
	h.allowNotifications()
	o, lines := h.atChecking(t)

	tests := []struct {
		name    string
		edited  map[string]decimal.Decimal
		checked map[string]bool
		want    string
		wantErr error
	}{
		{name: "nothing ticked", want: "0"},
		{name: "one ticked", checked: map[string]bool{lines[1].ID: true}, want: "10"},
		{
			name:    "edited on screen",
			edited:  map[string]decimal.Decimal{lines[0].ID: dec("1.5")},
			checked: map[string]bool{lines[0].ID: true, lines[1].ID: true},
			want:    "25",
		},
		{
			name:    "edits without tick do not count",
			edited:  map[string]decimal.Decimal{lines[0].ID: dec("1")},
			checked: map[string]bool{lines[1].ID: true},
			want:    "10",
		},
		{
			name:    "negative edit",
			edited:  map[string]decimal.Decimal{lines[0].ID: dec("-1")},
			wantErr: ErrInvalidQuantity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := h.billing.CheckerRunningTotal(h.ctx, o.ID, tt.edited, tt.checked)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(dec(tt.want)) {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
		})
	}

	if l := h.line(t, lines[0].ID); !l.OrderedQty.Equal(dec("2")) || l.IsChecked {
		t.Fatalf("running total must not persist anything: %+v", l)
	}
}

func TestBillingUseCase_IssueBill(t *testing.T) {
	complete := func(t *testing.T, h *harness) entities.Order {
		t.Helper()
		o, lines := h.atChecking(t)
		_, err := h.orders.SubmitCheckedReport(h.ctx, checker, o.ID, lifecycle.CheckReport{
			Checked: map[string]bool{lines[0].ID: true, lines[1].ID: true},
		})
		if err != nil {
			t.Fatalf("complete: %v", err)
		}
		return o
	}

	t.Run("not completed yet", func(t *testing.T) {
		h := newHarness(t)
		h.allowNotifications()
		o, _ := h.atChecking(t)
		_, err := h.billing.IssueBill(h.ctx, biller, o.ID)
		asGuard(t, err)
	})

	t.Run("another biller holds the slot", func(t *testing.T) {
		h := newHarness(t)
		h.allowNotifications()
		o := complete(t, h)
		other := entities.Actor{ID: "b2", Role: entities.RoleBiller}
		_, err := h.billing.IssueBill(h.ctx, other, o.ID)
		var ac *entities.AlreadyClaimed
		if !errors.As(err, &ac) || ac.By != biller.ID {
			t.Fatalf("expected AlreadyClaimed by b1, got %v", err)
		}
	})

	t.Run("non biller", func(t *testing.T) {
		h := newHarness(t)
		h.allowNotifications()
		o := complete(t, h)
		if _, err := h.billing.IssueBill(h.ctx, salesman, o.ID); !errors.Is(err, entities.ErrUnauthorized) {
			t.Fatalf("expected ErrUnauthorized, got %v", err)
		}
	})

	t.Run("notifies the salesman once", func(t *testing.T) {
		h := newHarness(t)
		h.notifier.EXPECT().NotifyRole(gomock.Any(), entities.RoleSalesman, gomock.Any(), "order billed").Return(nil).Times(1)
		h.allowNotifications()
		o := complete(t, h)

		for i := 0; i < 2; i++ {
			bill, err := h.billing.IssueBill(h.ctx, biller, o.ID)
			if err != nil || !bill.IsBilled {
				t.Fatalf("issue %d: %+v err=%v", i, bill, err)
			}
			if !bill.FinalTotal.Equal(dec("35")) {
				t.Fatalf("unexpected final total %s", bill.FinalTotal)
			}
		}
	})

	t.Run("biller claims a free slot on the way", func(t *testing.T) {
		h := newHarness(t)
		h.allowNotifications()
		o, lines := h.atStorekeeper(t)
		for _, l := range lines {
			if _, err := h.lines.MarkInStock(h.ctx, storekeeper, l.ID); err != nil {
				t.Fatalf("mark in stock: %v", err)
			}
		}
		if _, err := h.orders.SendToChecker(h.ctx, salesman, o.ID); err != nil {
			t.Fatalf("send to checker: %v", err)
		}
		if _, err := h.orders.Claim(h.ctx, checker, o.ID, entities.RoleChecker); err != nil {
			t.Fatalf("checker claim: %v", err)
		}
		if _, err := h.orders.SubmitCheckedReport(h.ctx, checker, o.ID, lifecycle.CheckReport{
			Checked: map[string]bool{lines[0].ID: true, lines[1].ID: true},
		}); err != nil {
			t.Fatalf("complete: %v", err)
		}

		bill, err := h.billing.IssueBill(h.ctx, biller, o.ID)
		if err != nil || !bill.IsBilled {
			t.Fatalf("issue: %+v err=%v", bill, err)
		}
		if got := h.order(t, o.ID); !got.Biller.Is(biller.ID) {
			t.Fatalf("biller slot should be claimed, got %q", got.Biller)
		}
	})
}
