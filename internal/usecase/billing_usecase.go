package usecase

import (
	"context"
	"strings"

	"orderflow/internal/domain/billing"
	"orderflow/internal/domain/entities"
	"orderflow/internal/domain/lifecycle"
	"orderflow/internal/usecase/interfaces"
	"orderflow/pkg/logger"

	"github.com/shopspring/decimal"
)

// IBillingUseCase exposes the bill projections and the biller's issue step.
type IBillingUseCase interface {
	GetBill(ctx context.Context, orderID string) (billing.Bill, error)
	CheckerRunningTotal(ctx context.Context, orderID string, edited map[string]decimal.Decimal, checked map[string]bool) (decimal.Decimal, error)
	IssueBill(ctx context.Context, actor entities.Actor, orderID string) (billing.Bill, error)
}

type BillingUseCase struct {
	*engine
	claims IClaimGuard
}

var _ IBillingUseCase = (*BillingUseCase)(nil)

func NewBillingUseCase(repo interfaces.IOrderRepository, claims IClaimGuard, notifier interfaces.INotifier) *BillingUseCase {
	return &BillingUseCase{engine: newEngine(repo, notifier, nil), claims: claims}
}

func (u *BillingUseCase) GetBill(ctx context.Context, orderID string) (billing.Bill, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return billing.Bill{}, ErrInvalidOrderID
	}
	s, err := u.load(ctx, orderID)
	if err != nil {
		return billing.Bill{}, err
	}
	return billing.Compute(s.order, s.lines), nil
}

// CheckerRunningTotal projects the total of the lines a checker has ticked so
// far. Nothing is persisted.
func (u *BillingUseCase) CheckerRunningTotal(ctx context.Context, orderID string, edited map[string]decimal.Decimal, checked map[string]bool) (decimal.Decimal, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return decimal.Zero, ErrInvalidOrderID
	}
	for _, q := range edited {
		if q.IsNegative() {
			return decimal.Zero, ErrInvalidQuantity
		}
	}
	s, err := u.load(ctx, orderID)
	if err != nil {
		return decimal.Zero, err
	}
	return billing.CheckerRunningTotal(s.lines, edited, checked), nil
}

// IssueBill marks a completed order as billed. The biller slot is claimed
// first when free; issuing twice is a no-op.
func (u *BillingUseCase) IssueBill(ctx context.Context, actor entities.Actor, orderID string) (billing.Bill, error) {
	if err := validActor(actor); err != nil {
		return billing.Bill{}, err
	}
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return billing.Bill{}, ErrInvalidOrderID
	}
	ctx = logger.WithActorID(ctx, actor.ID)
	logger.Infof(ctx, "[billing][usecase] issue bill start order_id=%s", orderID)

	if actor.Role == entities.RoleBiller {
		if _, err := u.claims.TryClaim(ctx, entities.ClaimResource{Kind: entities.ClaimOrder, ID: orderID}, entities.RoleBiller, actor); err != nil {
			return billing.Bill{}, err
		}
	}

	s, err := u.apply(ctx, "issueBill", orderID, func(s snapshot) (outcome, error) {
		next, changed, err := lifecycle.MarkBilled(s.order, actor, u.now())
		if err != nil {
			return outcome{}, err
		}
		if !changed {
			return outcome{}, nil
		}
		notices := []lifecycle.Notice{{Role: entities.RoleSalesman, OrderID: s.order.ID, Message: "order billed"}}
		return outcome{changes: interfaces.Changeset{Order: orderPtr(next)}, notices: notices}, nil
	})
	if err != nil {
		return billing.Bill{}, err
	}
	bill := billing.Compute(s.order, s.lines)
	logger.Infof(ctx, "[billing][usecase] issue bill success order_id=%s final_total=%s", orderID, billing.Round(bill.FinalTotal))
	return bill, nil
}
