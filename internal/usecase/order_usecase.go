package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"orderflow/internal/domain/entities"
	"orderflow/internal/domain/lifecycle"
	"orderflow/internal/usecase/interfaces"
	"orderflow/pkg/logger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineInput describes a line to add to a draft order.
type LineInput struct {
	ProductRef string
	Qty        decimal.Decimal
	Rate       decimal.Decimal
	Note       string
}

// CreateOrderInput is a salesman's new order.
type CreateOrderInput struct {
	Freight decimal.Decimal
	Note    string
	Lines   []LineInput
}

// DispatchResult reports the two independent legs of a dispatch. A failed leg
// does not roll back the other.
type DispatchResult struct {
	Order      entities.Order
	CheckerErr error
	BillerErr  error
}

// IOrderUseCase exposes the order-level lifecycle.
type IOrderUseCase interface {
	CreateOrder(ctx context.Context, actor entities.Actor, in CreateOrderInput) (entities.Order, []entities.LineItem, error)
	AddLine(ctx context.Context, actor entities.Actor, orderID string, in LineInput) (entities.LineItem, error)
	GetOrder(ctx context.Context, orderID string) (entities.Order, error)
	ListLines(ctx context.Context, orderID string) ([]entities.LineItem, error)
	DisplayItems(ctx context.Context, orderID string) ([]lifecycle.DisplayItem, error)

	Submit(ctx context.Context, actor entities.Actor, orderID string) (entities.Order, error)
	Claim(ctx context.Context, actor entities.Actor, orderID string, role entities.Role) (entities.ClaimToken, error)
	ReleaseClaim(ctx context.Context, actor entities.Actor, orderID string, role entities.Role, olderThan time.Duration) (entities.Order, error)
	InformUpdates(ctx context.Context, actor entities.Actor, orderID string) (entities.Order, error)
	SendToChecker(ctx context.Context, actor entities.Actor, orderID string) (entities.Order, error)
	AssignBiller(ctx context.Context, actor entities.Actor, orderID, billerID string) (entities.ClaimToken, error)
	SendToBillerAndChecker(ctx context.Context, actor entities.Actor, orderID, billerID string) DispatchResult
	SubmitCheckedReport(ctx context.Context, actor entities.Actor, orderID string, report lifecycle.CheckReport) (entities.Order, error)
	Cancel(ctx context.Context, actor entities.Actor, orderID string) (entities.Order, error)
	Reject(ctx context.Context, actor entities.Actor, orderID string) (entities.Order, error)
}

type OrderUseCase struct {
	*engine
	claims IClaimGuard
}

var _ IOrderUseCase = (*OrderUseCase)(nil)

func NewOrderUseCase(repo interfaces.IOrderRepository, claims IClaimGuard, notifier interfaces.INotifier) *OrderUseCase {
	return &OrderUseCase{engine: newEngine(repo, notifier, nil), claims: claims}
}

func (u *OrderUseCase) CreateOrder(ctx context.Context, actor entities.Actor, in CreateOrderInput) (entities.Order, []entities.LineItem, error) {
	if err := validActor(actor); err != nil {
		return entities.Order{}, nil, err
	}
	ctx = logger.WithActorID(ctx, actor.ID)
	now := u.now()

	o, err := lifecycle.NewOrder(uuid.NewString(), actor, in.Freight, in.Note, now)
	if err != nil {
		return entities.Order{}, nil, err
	}
	lines := make([]entities.LineItem, 0, len(in.Lines))
	for _, li := range in.Lines {
		l, err := lifecycle.NewLine(o.ID, li.ProductRef, li.Qty, li.Rate, li.Note, now)
		if err != nil {
			return entities.Order{}, nil, err
		}
		lines = append(lines, l)
	}

	created, createdLines, err := u.repo.CreateOrder(ctx, o, lines)
	if err != nil {
		logger.Errorf(ctx, "[order][usecase] create failed err=%v", err)
		return entities.Order{}, nil, storageErr("createOrder", err)
	}
	logger.Infof(ctx, "[order][usecase] created order_id=%s lines=%d", created.ID, len(createdLines))
	return created, createdLines, nil
}

func (u *OrderUseCase) AddLine(ctx context.Context, actor entities.Actor, orderID string, in LineInput) (entities.LineItem, error) {
	if err := validActor(actor); err != nil {
		return entities.LineItem{}, err
	}
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return entities.LineItem{}, ErrInvalidOrderID
	}
	var lineID string
	s, err := u.apply(ctx, "addLine", orderID, func(s snapshot) (outcome, error) {
		l, err := lifecycle.AddLine(s.order, actor, in.ProductRef, in.Qty, in.Rate, in.Note, u.now())
		if err != nil {
			return outcome{}, err
		}
		lineID = l.ID
		// The order is written too so that a concurrent submit loses the version race.
		o := s.order
		o.UpdatedAt = l.CreatedAt
		return outcome{changes: interfaces.Changeset{Order: &o, NewLines: []entities.LineItem{l}}}, nil
	})
	if err != nil {
		return entities.LineItem{}, err
	}
	l, _ := s.line(lineID)
	return l, nil
}

func (u *OrderUseCase) GetOrder(ctx context.Context, orderID string) (entities.Order, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return entities.Order{}, ErrInvalidOrderID
	}
	return u.loadOrder(ctx, orderID)
}

// ListLines returns every line of the order, replaced and cancelled ones included.
func (u *OrderUseCase) ListLines(ctx context.Context, orderID string) ([]entities.LineItem, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return nil, ErrInvalidOrderID
	}
	s, err := u.load(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return s.lines, nil
}

func (u *OrderUseCase) DisplayItems(ctx context.Context, orderID string) ([]lifecycle.DisplayItem, error) {
	lines, err := u.ListLines(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return lifecycle.DisplayItems(lines), nil
}

func (u *OrderUseCase) orderStep(ctx context.Context, op string, actor entities.Actor, orderID string, fn mutation) (entities.Order, error) {
	if err := validActor(actor); err != nil {
		return entities.Order{}, err
	}
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return entities.Order{}, ErrInvalidOrderID
	}
	s, err := u.apply(logger.WithActorID(ctx, actor.ID), op, orderID, fn)
	if err != nil {
		return entities.Order{}, err
	}
	return s.order, nil
}

func (u *OrderUseCase) Submit(ctx context.Context, actor entities.Actor, orderID string) (entities.Order, error) {
	return u.orderStep(ctx, "submit", actor, orderID, func(s snapshot) (outcome, error) {
		o, notices, err := lifecycle.Submit(s.order, s.lines, actor, u.now())
		if err != nil {
			return outcome{}, err
		}
		return outcome{changes: interfaces.Changeset{Order: &o}, notices: notices}, nil
	})
}

// Claim takes role's slot on the order. A checker's claim also starts the
// check, so a checker re-entering an order it owns lands in checking.
func (u *OrderUseCase) Claim(ctx context.Context, actor entities.Actor, orderID string, role entities.Role) (entities.ClaimToken, error) {
	tok, err := u.claims.TryClaim(ctx, entities.ClaimResource{Kind: entities.ClaimOrder, ID: orderID}, role, actor)
	if err != nil {
		return entities.ClaimToken{}, err
	}
	if role != entities.RoleChecker {
		return tok, nil
	}
	_, err = u.orderStep(ctx, "startChecking", actor, tok.Resource.ID, func(s snapshot) (outcome, error) {
		o, err := lifecycle.StartChecking(s.order, actor, u.now())
		if err != nil {
			return outcome{}, err
		}
		if o.ApprovalFlag == s.order.ApprovalFlag {
			return outcome{}, nil
		}
		return outcome{changes: interfaces.Changeset{Order: &o}}, nil
	})
	if err != nil {
		return entities.ClaimToken{}, err
	}
	return tok, nil
}

func (u *OrderUseCase) ReleaseClaim(ctx context.Context, actor entities.Actor, orderID string, role entities.Role, olderThan time.Duration) (entities.Order, error) {
	o, err := u.claims.Release(ctx, orderID, role, actor, olderThan)
	if err != nil {
		return entities.Order{}, err
	}
	u.notify(ctx, o.ID, []lifecycle.Notice{{Role: role, OrderID: o.ID, Message: "order released and open for claiming"}})
	return o, nil
}

func (u *OrderUseCase) InformUpdates(ctx context.Context, actor entities.Actor, orderID string) (entities.Order, error) {
	return u.orderStep(ctx, "informUpdates", actor, orderID, func(s snapshot) (outcome, error) {
		o, notices, err := lifecycle.InformUpdates(s.order, s.lines, actor, u.now())
		if err != nil {
			return outcome{}, err
		}
		return outcome{changes: interfaces.Changeset{Order: &o}, notices: notices}, nil
	})
}

func (u *OrderUseCase) SendToChecker(ctx context.Context, actor entities.Actor, orderID string) (entities.Order, error) {
	return u.orderStep(ctx, "sendToChecker", actor, orderID, func(s snapshot) (outcome, error) {
		o, changed, notices, err := lifecycle.SendToChecker(s.order, s.lines, actor, u.now())
		if err != nil {
			return outcome{}, err
		}
		return outcome{changes: interfaces.Changeset{Order: &o, Lines: changed}, notices: notices}, nil
	})
}

// AssignBiller claims the biller slot on behalf of billerID. Without a biller
// id the biller pool is notified instead and any biller may claim later.
func (u *OrderUseCase) AssignBiller(ctx context.Context, actor entities.Actor, orderID, billerID string) (entities.ClaimToken, error) {
	if err := validActor(actor); err != nil {
		return entities.ClaimToken{}, err
	}
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return entities.ClaimToken{}, ErrInvalidOrderID
	}
	o, err := u.loadOrder(ctx, orderID)
	if err != nil {
		return entities.ClaimToken{}, err
	}
	if !actor.IsAdmin && !(actor.Role == entities.RoleSalesman && o.IsOwner(actor.ID)) {
		return entities.ClaimToken{}, entities.ErrUnauthorized
	}
	billerID = strings.TrimSpace(billerID)
	if billerID == "" {
		if err := lifecycle.CanClaim(o, entities.RoleBiller); err != nil {
			return entities.ClaimToken{}, err
		}
		u.notify(ctx, orderID, []lifecycle.Notice{{Role: entities.RoleBiller, OrderID: orderID, Message: "order waiting for a biller"}})
		return entities.ClaimToken{}, nil
	}
	biller := entities.Actor{ID: billerID, Role: entities.RoleBiller}
	tok, err := u.claims.TryClaim(ctx, entities.ClaimResource{Kind: entities.ClaimOrder, ID: orderID}, entities.RoleBiller, biller)
	if err != nil {
		return entities.ClaimToken{}, err
	}
	u.notify(ctx, orderID, []lifecycle.Notice{{Role: entities.RoleBiller, OrderID: orderID, Message: "order assigned to " + billerID}})
	return tok, nil
}

// SendToBillerAndChecker runs both dispatch legs concurrently. They touch
// disjoint slots; the versioned commit retries if they interleave.
func (u *OrderUseCase) SendToBillerAndChecker(ctx context.Context, actor entities.Actor, orderID, billerID string) DispatchResult {
	var (
		wg  sync.WaitGroup
		res DispatchResult
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, res.CheckerErr = u.SendToChecker(ctx, actor, orderID)
	}()
	go func() {
		defer wg.Done()
		_, res.BillerErr = u.AssignBiller(ctx, actor, orderID, billerID)
	}()
	wg.Wait()

	if o, err := u.loadOrder(ctx, strings.TrimSpace(orderID)); err == nil {
		res.Order = o
	}
	logger.Infof(ctx, "[order][usecase] dispatch done order_id=%s checker_err=%v biller_err=%v", orderID, res.CheckerErr, res.BillerErr)
	return res
}

// SubmitCheckedReport merges the checker's report onto the current lines and
// completes the order if every countable line is checked. The merge is
// committed even when completion is refused, so ticks are not lost.
func (u *OrderUseCase) SubmitCheckedReport(ctx context.Context, actor entities.Actor, orderID string, report lifecycle.CheckReport) (entities.Order, error) {
	var completeErr error
	o, err := u.orderStep(ctx, "submitCheckedReport", actor, orderID, func(s snapshot) (outcome, error) {
		completeErr = nil
		now := u.now()
		merged, changed, err := lifecycle.MergeCheckReport(s.order, s.lines, actor, report, now)
		if err != nil {
			return outcome{}, err
		}
		o, snapshots, notices, err := lifecycle.CompleteCheck(s.order, merged, actor, now)
		if err != nil {
			if !entities.IsGuardViolation(err) {
				return outcome{}, err
			}
			completeErr = err
			return outcome{changes: interfaces.Changeset{Lines: changed}}, nil
		}
		return outcome{
			changes: interfaces.Changeset{Order: &o, Lines: mergeLineWrites(changed, snapshots)},
			notices: notices,
		}, nil
	})
	if err != nil {
		return entities.Order{}, err
	}
	if completeErr != nil {
		return entities.Order{}, completeErr
	}
	return o, nil
}

// mergeLineWrites folds later writes of the same line into earlier ones.
func mergeLineWrites(first, second []entities.LineItem) []entities.LineItem {
	out := entities.CloneLines(first)
	for _, l := range second {
		replaced := false
		for i := range out {
			if out[i].ID == l.ID {
				out[i] = l
				replaced = true
			}
		}
		if !replaced {
			out = append(out, l)
		}
	}
	return out
}

func (u *OrderUseCase) Cancel(ctx context.Context, actor entities.Actor, orderID string) (entities.Order, error) {
	return u.orderStep(ctx, "cancel", actor, orderID, func(s snapshot) (outcome, error) {
		o, err := lifecycle.Cancel(s.order, actor, u.now())
		if err != nil {
			return outcome{}, err
		}
		return outcome{changes: interfaces.Changeset{Order: &o}, notices: terminalNotices(o, "order cancelled")}, nil
	})
}

func (u *OrderUseCase) Reject(ctx context.Context, actor entities.Actor, orderID string) (entities.Order, error) {
	return u.orderStep(ctx, "reject", actor, orderID, func(s snapshot) (outcome, error) {
		o, err := lifecycle.Reject(s.order, actor, u.now())
		if err != nil {
			return outcome{}, err
		}
		return outcome{changes: interfaces.Changeset{Order: &o}, notices: terminalNotices(o, "order rejected")}, nil
	})
}

// terminalNotices tells every actor holding a slot that the order is gone.
func terminalNotices(o entities.Order, msg string) []lifecycle.Notice {
	var out []lifecycle.Notice
	for _, r := range []entities.Role{entities.RoleSalesman, entities.RoleStorekeeper, entities.RoleChecker, entities.RoleBiller} {
		if o.Slot(r).IsAssigned() {
			out = append(out, lifecycle.Notice{Role: r, OrderID: o.ID, Message: msg})
		}
	}
	return out
}
