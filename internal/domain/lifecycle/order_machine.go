// Package lifecycle holds the order state machine and the line resolution
// engine. Every function works on copies: it either returns the fully updated
// values or an error, never a half-applied change.
package lifecycle

import (
	"fmt"
	"strings"
	"time"

	"orderflow/internal/domain/entities"

	"github.com/shopspring/decimal"
)

// Notice is a role-pool notification produced by a transition. Delivery is
// the caller's concern.
type Notice struct {
	Role    entities.Role
	OrderID string
	Message string
}

// ensureActive fails fast on terminal orders. Cancellation gets its own error.
func ensureActive(o entities.Order) error {
	switch o.ApprovalFlag {
	case entities.ApprovalCancelled:
		return entities.ErrOrderCancelled
	case entities.ApprovalCompleted, entities.ApprovalRejected:
		return entities.Guard("order is " + string(o.ApprovalFlag))
	}
	return nil
}

func requireFlag(o entities.Order, allowed ...entities.ApprovalFlag) error {
	for _, f := range allowed {
		if o.ApprovalFlag == f {
			return nil
		}
	}
	names := make([]string, len(allowed))
	for i, f := range allowed {
		names[i] = string(f)
	}
	return entities.Guard(fmt.Sprintf("order is %s, expected %s", o.ApprovalFlag, strings.Join(names, " or ")))
}

func requireOwnerOrAdmin(o entities.Order, actor entities.Actor) error {
	if actor.IsAdmin {
		return nil
	}
	if actor.Role == entities.RoleSalesman && o.IsOwner(actor.ID) {
		return nil
	}
	return entities.ErrUnauthorized
}

// requireSlot checks the actor holds role and owns role's slot on the order.
func requireSlot(o entities.Order, role entities.Role, actor entities.Actor) error {
	if actor.Role != role {
		return entities.ErrUnauthorized
	}
	if !o.Slot(role).Is(actor.ID) {
		return entities.Guard(fmt.Sprintf("%s has not claimed this order", actor.ID))
	}
	return nil
}

// inLiveTotal is false for lines removed from the bill.
func inLiveTotal(l entities.LineItem) bool {
	return l.IsLive() && l.Flag != entities.FlagNotAvailable
}

func touch(o entities.Order, now time.Time) entities.Order {
	o.UpdatedAt = now.UTC()
	return o
}

// NewOrder builds an order in the new state owned by the creating salesman.
func NewOrder(id string, salesman entities.Actor, freight decimal.Decimal, note string, now time.Time) (entities.Order, error) {
	if salesman.Role != entities.RoleSalesman && !salesman.IsAdmin {
		return entities.Order{}, entities.ErrUnauthorized
	}
	if freight.IsNegative() {
		return entities.Order{}, entities.Guard("freight charge cannot be negative")
	}
	now = now.UTC()
	return entities.Order{
		ID:            id,
		ApprovalFlag:  entities.ApprovalNew,
		Salesman:      entities.AssignedTo(salesman.ID, now),
		FreightCharge: freight,
		Note:          note,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// Submit moves a new order to the storekeeper pool.
func Submit(o entities.Order, lines []entities.LineItem, actor entities.Actor, now time.Time) (entities.Order, []Notice, error) {
	if err := ensureActive(o); err != nil {
		return o, nil, err
	}
	if err := requireOwnerOrAdmin(o, actor); err != nil {
		return o, nil, err
	}
	if err := requireFlag(o, entities.ApprovalNew); err != nil {
		return o, nil, err
	}
	live := 0
	for _, l := range lines {
		if l.IsLive() {
			live++
		}
	}
	if live == 0 {
		return o, nil, entities.Guard("order has no line items")
	}
	o.ApprovalFlag = entities.ApprovalSentToStorekeeper
	notices := []Notice{{Role: entities.RoleStorekeeper, OrderID: o.ID, Message: "new order waiting for stock check"}}
	return touch(o, now), notices, nil
}

// CanClaim checks that role's slot may be claimed at the order's current stage.
func CanClaim(o entities.Order, role entities.Role) error {
	if o.ApprovalFlag == entities.ApprovalCancelled {
		return entities.ErrOrderCancelled
	}
	switch role {
	case entities.RoleStorekeeper:
		if err := ensureActive(o); err != nil {
			return err
		}
		return requireFlag(o, entities.ApprovalSentToStorekeeper)
	case entities.RoleChecker:
		if err := ensureActive(o); err != nil {
			return err
		}
		return requireFlag(o, entities.ApprovalSentToChecker, entities.ApprovalCheckerIsChecking)
	case entities.RoleBiller:
		if o.ApprovalFlag == entities.ApprovalRejected {
			return entities.Guard("order is rejected")
		}
		return requireFlag(o, entities.ApprovalSentToStorekeeper, entities.ApprovalVerifiedByStorekeeper,
			entities.ApprovalSentToChecker, entities.ApprovalCheckerIsChecking, entities.ApprovalCompleted)
	}
	return entities.Guard(fmt.Sprintf("role %s has no claimable slot", role))
}

// InformUpdates closes the storekeeper stage once every unchecked line has a
// stock decision.
func InformUpdates(o entities.Order, lines []entities.LineItem, actor entities.Actor, now time.Time) (entities.Order, []Notice, error) {
	if err := ensureActive(o); err != nil {
		return o, nil, err
	}
	if err := requireSlot(o, entities.RoleStorekeeper, actor); err != nil {
		return o, nil, err
	}
	if err := requireFlag(o, entities.ApprovalSentToStorekeeper); err != nil {
		return o, nil, err
	}
	for _, l := range lines {
		if !l.IsLive() || l.IsChecked {
			continue
		}
		if !l.Flag.HasStockDecision() {
			return o, nil, entities.Guard("items without a stock decision remain")
		}
	}
	o.ApprovalFlag = entities.ApprovalVerifiedByStorekeeper
	notices := []Notice{{Role: entities.RoleSalesman, OrderID: o.ID, Message: "storekeeper verified the order"}}
	return touch(o, now), notices, nil
}

// SendToChecker forwards the order to the checker pool and freezes the
// estimated bill. Re-sending an order already at sentToChecker re-notifies.
func SendToChecker(o entities.Order, lines []entities.LineItem, actor entities.Actor, now time.Time) (entities.Order, []entities.LineItem, []Notice, error) {
	if err := ensureActive(o); err != nil {
		return o, nil, nil, err
	}
	if err := requireOwnerOrAdmin(o, actor); err != nil {
		return o, nil, nil, err
	}
	if err := requireFlag(o, entities.ApprovalSentToStorekeeper, entities.ApprovalVerifiedByStorekeeper, entities.ApprovalSentToChecker); err != nil {
		return o, nil, nil, err
	}
	for _, l := range lines {
		if inLiveTotal(l) && !l.Flag.IndicatesInStock() {
			return o, nil, nil, entities.Guard("not all items in stock")
		}
	}
	changed := SnapshotEstimates(lines, now)
	o.ApprovalFlag = entities.ApprovalSentToChecker
	notices := []Notice{{Role: entities.RoleChecker, OrderID: o.ID, Message: "order ready for checking"}}
	return touch(o, now), changed, notices, nil
}

// StartChecking moves a claimed order into checking.
func StartChecking(o entities.Order, actor entities.Actor, now time.Time) (entities.Order, error) {
	if err := ensureActive(o); err != nil {
		return o, err
	}
	if err := requireSlot(o, entities.RoleChecker, actor); err != nil {
		return o, err
	}
	if o.ApprovalFlag == entities.ApprovalCheckerIsChecking {
		return o, nil
	}
	if err := requireFlag(o, entities.ApprovalSentToChecker); err != nil {
		return o, err
	}
	o.ApprovalFlag = entities.ApprovalCheckerIsChecking
	return touch(o, now), nil
}

// CompleteCheck finishes the order once every countable line is checked.
func CompleteCheck(o entities.Order, lines []entities.LineItem, actor entities.Actor, now time.Time) (entities.Order, []entities.LineItem, []Notice, error) {
	if err := ensureActive(o); err != nil {
		return o, nil, nil, err
	}
	if err := requireSlot(o, entities.RoleChecker, actor); err != nil {
		return o, nil, nil, err
	}
	if err := requireFlag(o, entities.ApprovalCheckerIsChecking); err != nil {
		return o, nil, nil, err
	}
	for _, l := range lines {
		if l.Countable() && !l.IsChecked {
			return o, nil, nil, entities.Guard("unchecked items remain")
		}
	}
	changed := SnapshotEstimates(lines, now)
	o.ApprovalFlag = entities.ApprovalCompleted
	notices := []Notice{
		{Role: entities.RoleBiller, OrderID: o.ID, Message: "order checked and ready to bill"},
		{Role: entities.RoleSalesman, OrderID: o.ID, Message: "order completed"},
	}
	return touch(o, now), changed, notices, nil
}

// Cancel is allowed to the order's salesman or an admin.
func Cancel(o entities.Order, actor entities.Actor, now time.Time) (entities.Order, error) {
	if err := ensureActive(o); err != nil {
		return o, err
	}
	if err := requireOwnerOrAdmin(o, actor); err != nil {
		return o, err
	}
	o.ApprovalFlag = entities.ApprovalCancelled
	return touch(o, now), nil
}

// Reject is the administrative override.
func Reject(o entities.Order, actor entities.Actor, now time.Time) (entities.Order, error) {
	if err := ensureActive(o); err != nil {
		return o, err
	}
	if !actor.IsAdmin {
		return o, entities.ErrUnauthorized
	}
	o.ApprovalFlag = entities.ApprovalRejected
	return touch(o, now), nil
}

// MarkBilled records the bill. Billing an already billed order is a no-op.
func MarkBilled(o entities.Order, actor entities.Actor, now time.Time) (entities.Order, bool, error) {
	if o.ApprovalFlag == entities.ApprovalCancelled {
		return o, false, entities.ErrOrderCancelled
	}
	if err := requireSlot(o, entities.RoleBiller, actor); err != nil {
		return o, false, err
	}
	if err := requireFlag(o, entities.ApprovalCompleted); err != nil {
		return o, false, err
	}
	if o.IsBilled {
		return o, false, nil
	}
	o.IsBilled = true
	return touch(o, now), true, nil
}

// ReleaseSlot empties a claimed slot. Admin only; the caller owns the staleness policy.
func ReleaseSlot(o entities.Order, role entities.Role, actor entities.Actor) error {
	if !actor.IsAdmin {
		return entities.ErrUnauthorized
	}
	if !role.Claimable() {
		return entities.Guard(fmt.Sprintf("role %s has no claimable slot", role))
	}
	if err := ensureActive(o); err != nil {
		return err
	}
	return nil
}

// SnapshotEstimates freezes estimatedQty/estimatedTotal on every in-stock line
// that has no snapshot yet and returns the lines it touched.
func SnapshotEstimates(lines []entities.LineItem, now time.Time) []entities.LineItem {
	var changed []entities.LineItem
	for _, l := range lines {
		if !l.IsLive() || !l.Flag.IndicatesInStock() || l.HasEstimate() {
			continue
		}
		l = l.Clone()
		l.EstimatedQty = l.EffectiveQty()
		l.EstimatedTotal = l.Rate.Mul(l.EstimatedQty)
		l.EstimatedAt = now.UTC()
		l.UpdatedAt = now.UTC()
		changed = append(changed, l)
	}
	return changed
}
