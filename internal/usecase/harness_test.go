package usecase

import (
	"context"
	"errors"
	"testing"

	"orderflow/internal/adapter/persistence/repository"
	"orderflow/internal/domain/entities"
	mock_interfaces "orderflow/internal/usecase/interfaces/mocks"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

var (
	salesman    = entities.Actor{ID: "s1", Role: entities.RoleSalesman}
	storekeeper = entities.Actor{ID: "k1", Role: entities.RoleStorekeeper}
	checker     = entities.Actor{ID: "c1", Role: entities.RoleChecker}
	biller      = entities.Actor{ID: "b1", Role: entities.RoleBiller}
	admin       = entities.Actor{ID: "a1", Role: entities.RoleAdmin, IsAdmin: true}
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// harness wires the usecases on the in-memory repository with mocked
// notifier and supplier.
type harness struct {
	ctx      context.Context
	repo     *repository.OrderMemoryRepository
	notifier *mock_interfaces.MockINotifier
	supplier *mock_interfaces.MockISupplierGateway
	claims   *ClaimGuard
	orders   *OrderUseCase
	lines    *LineUseCase
	billing  *BillingUseCase
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := repository.NewOrderMemoryRepository()
	notifier := mock_interfaces.NewMockINotifier(ctrl)
	supplier := mock_interfaces.NewMockISupplierGateway(ctrl)
	claims := NewClaimGuard(repo)
	return &harness{
		ctx:      context.Background(),
		repo:     repo,
		notifier: notifier,
		supplier: supplier,
		claims:   claims,
		orders:   NewOrderUseCase(repo, claims, notifier),
		lines:    NewLineUseCase(repo, claims, notifier, supplier),
		billing:  NewBillingUseCase(repo, claims, notifier),
	}
}

// allowNotifications accepts any further notification. Expectations declared
// before this call still take precedence.
func (h *harness) allowNotifications() {
	h.notifier.EXPECT().NotifyRole(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	h.notifier.EXPECT().OrderChanged(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
}

func (h *harness) allowSupplier() {
	h.supplier.EXPECT().QueryAvailability(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
}

// draft creates a new order with two lines: 2 x 10 and 4 x 2.5, freight 5.
func (h *harness) draft(t *testing.T) (entities.Order, []entities.LineItem) {
	t.Helper()
	o, lines, err := h.orders.CreateOrder(h.ctx, salesman, CreateOrderInput{
		Freight: dec("5"),
		Lines: []LineInput{
			{ProductRef: "SKU-1", Qty: dec("2"), Rate: dec("10")},
			{ProductRef: "SKU-2", Qty: dec("4"), Rate: dec("2.5")},
		},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	return o, lines
}

// atStorekeeper drafts, submits and lets k1 claim the order.
func (h *harness) atStorekeeper(t *testing.T) (entities.Order, []entities.LineItem) {
	t.Helper()
	o, lines := h.draft(t)
	if _, err := h.orders.Submit(h.ctx, salesman, o.ID); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := h.orders.Claim(h.ctx, storekeeper, o.ID, entities.RoleStorekeeper); err != nil {
		t.Fatalf("storekeeper claim: %v", err)
	}
	return o, lines
}

// atChecking takes the order through stock check and dispatch and lets c1
// start checking.
func (h *harness) atChecking(t *testing.T) (entities.Order, []entities.LineItem) {
	t.Helper()
	o, lines := h.atStorekeeper(t)
	for _, l := range lines {
		if _, err := h.lines.MarkInStock(h.ctx, storekeeper, l.ID); err != nil {
			t.Fatalf("mark in stock: %v", err)
		}
	}
	if _, err := h.orders.InformUpdates(h.ctx, storekeeper, o.ID); err != nil {
		t.Fatalf("inform updates: %v", err)
	}
	res := h.orders.SendToBillerAndChecker(h.ctx, salesman, o.ID, biller.ID)
	if res.CheckerErr != nil || res.BillerErr != nil {
		t.Fatalf("dispatch: checker=%v biller=%v", res.CheckerErr, res.BillerErr)
	}
	if _, err := h.orders.Claim(h.ctx, checker, o.ID, entities.RoleChecker); err != nil {
		t.Fatalf("checker claim: %v", err)
	}
	return o, lines
}

func (h *harness) order(t *testing.T, id string) entities.Order {
	t.Helper()
	o, err := h.orders.GetOrder(h.ctx, id)
	if err != nil {
		t.Fatalf("get order: %v", err)
	}
	return o
}

func (h *harness) line(t *testing.T, id string) entities.LineItem {
	t.Helper()
	l, err := h.repo.LoadLine(h.ctx, id)
	if err != nil || l.ID == "" {
		t.Fatalf("load line %s: %+v err=%v", id, l, err)
	}
	return l
}

func asGuard(t *testing.T, err error) *entities.GuardViolation {
	t.Helper()
	var gv *entities.GuardViolation
	if !errors.As(err, &gv) {
		t.Fatalf("expected *GuardViolation, got %T %v", err, err)
	}
	return gv
}
