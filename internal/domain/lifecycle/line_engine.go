package lifecycle

import (
	"fmt"
	"strings"
	"time"

	"orderflow/internal/domain/billing"
	"orderflow/internal/domain/entities"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReplacementNarration is stamped on a line created from an accepted suggestion.
const ReplacementNarration = "Original item replaced"

// AvailabilityResponse is the supplier's answer to a shortage query.
type AvailabilityResponse struct {
	Available   bool
	Qty         decimal.Decimal
	SupplierRef string
}

// ShortageQuery is what gets sent to the supplier side after a shortage report.
type ShortageQuery struct {
	OrderID      string
	LineID       string
	ProductRef   string
	RequestedQty decimal.Decimal
	SupplierRef  string
}

// advance moves a line's flag forward. Decreasing severity is refused; side
// states are absorbing.
func advance(l *entities.LineItem, to entities.FulfillmentFlag) error {
	if l.Flag.IsSideState() {
		return entities.Guard("line is " + l.Flag.String())
	}
	if !to.IsSideState() && !to.AtLeast(l.Flag) {
		return entities.Guard(fmt.Sprintf("line flag cannot move from %s to %s", l.Flag, to))
	}
	l.Flag = to
	return nil
}

func requireLiveLine(l entities.LineItem) error {
	if !l.IsLive() {
		return entities.Guard("line is " + l.Flag.String())
	}
	return nil
}

// requireCheckableLine also refuses notAvailable lines: their available
// quantity is settled at zero and a checker edit must not bring them back
// into the bill.
func requireCheckableLine(l entities.LineItem) error {
	if !inLiveTotal(l) {
		return entities.Guard("line is " + l.Flag.String())
	}
	return nil
}

// requireStockInspector allows the owning storekeeper during the storekeeper
// stage and the owning checker while checking.
func requireStockInspector(o entities.Order, actor entities.Actor) error {
	switch actor.Role {
	case entities.RoleStorekeeper:
		if err := requireSlot(o, entities.RoleStorekeeper, actor); err != nil {
			return err
		}
		return requireFlag(o, entities.ApprovalSentToStorekeeper)
	case entities.RoleChecker:
		if err := requireSlot(o, entities.RoleChecker, actor); err != nil {
			return err
		}
		return requireFlag(o, entities.ApprovalCheckerIsChecking)
	}
	return entities.ErrUnauthorized
}

// requireDecisionMaker allows the order's salesman or an admin holding (or
// free to hold) the line decision.
func requireDecisionMaker(o entities.Order, l entities.LineItem, actor entities.Actor) error {
	if err := requireOwnerOrAdmin(o, actor); err != nil {
		return err
	}
	if by, ok := l.DecisionOwner.ID(); ok && by != actor.ID {
		return &entities.AlreadyClaimed{Resource: "line " + l.ID, Role: actor.Role, By: by}
	}
	return nil
}

// CanClaimDecision checks that actor may take the accept/reject decision on
// a shortage line.
func CanClaimDecision(o entities.Order, l entities.LineItem, actor entities.Actor) error {
	if err := ensureActive(o); err != nil {
		return err
	}
	if err := requireOwnerOrAdmin(o, actor); err != nil {
		return err
	}
	if !isOpenShortage(l.Flag) {
		return entities.Guard("line has no open shortage")
	}
	return nil
}

func requireChecking(o entities.Order, actor entities.Actor) error {
	if err := requireSlot(o, entities.RoleChecker, actor); err != nil {
		return err
	}
	return requireFlag(o, entities.ApprovalCheckerIsChecking)
}

func isOpenShortage(f entities.FulfillmentFlag) bool {
	return f == entities.FlagOutOfStock || f == entities.FlagReported
}

func stamp(l entities.LineItem, now time.Time) entities.LineItem {
	l.UpdatedAt = now.UTC()
	return l
}

// NewLine builds a fresh line for an order.
func NewLine(orderID, productRef string, qty, rate decimal.Decimal, note string, now time.Time) (entities.LineItem, error) {
	if strings.TrimSpace(productRef) == "" {
		return entities.LineItem{}, entities.Guard("product reference is required")
	}
	if !qty.IsPositive() {
		return entities.LineItem{}, entities.Guard("ordered quantity must be positive")
	}
	if rate.IsNegative() {
		return entities.LineItem{}, entities.Guard("rate cannot be negative")
	}
	now = now.UTC()
	return entities.LineItem{
		ID:           uuid.NewString(),
		OrderID:      orderID,
		ProductRef:   strings.TrimSpace(productRef),
		OrderedQty:   qty,
		AvailableQty: decimal.Zero,
		Rate:         rate,
		Flag:         entities.FlagNewItem,
		Note:         note,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// AddLine appends a line while the order is still being drafted.
func AddLine(o entities.Order, actor entities.Actor, productRef string, qty, rate decimal.Decimal, note string, now time.Time) (entities.LineItem, error) {
	if err := ensureActive(o); err != nil {
		return entities.LineItem{}, err
	}
	if err := requireOwnerOrAdmin(o, actor); err != nil {
		return entities.LineItem{}, err
	}
	if err := requireFlag(o, entities.ApprovalNew); err != nil {
		return entities.LineItem{}, err
	}
	return NewLine(o.ID, productRef, qty, rate, note, now)
}

// MarkInStock records a positive stock decision.
func MarkInStock(o entities.Order, l entities.LineItem, actor entities.Actor, now time.Time) (entities.LineItem, error) {
	if err := ensureActive(o); err != nil {
		return l, err
	}
	if err := requireStockInspector(o, actor); err != nil {
		return l, err
	}
	l = l.Clone()
	if err := advance(&l, entities.FlagInStock); err != nil {
		return l, err
	}
	return stamp(l, now), nil
}

// ReportShortage marks the line out of stock with what is on hand and returns
// the supplier query to issue.
func ReportShortage(o entities.Order, l entities.LineItem, actor entities.Actor, availableQty decimal.Decimal, note string, now time.Time) (entities.LineItem, ShortageQuery, error) {
	if err := ensureActive(o); err != nil {
		return l, ShortageQuery{}, err
	}
	if err := requireStockInspector(o, actor); err != nil {
		return l, ShortageQuery{}, err
	}
	if availableQty.IsNegative() {
		return l, ShortageQuery{}, entities.Guard("available quantity cannot be negative")
	}
	if availableQty.GreaterThan(l.OrderedQty) {
		return l, ShortageQuery{}, entities.Guard("available quantity exceeds ordered quantity")
	}
	l = l.Clone()
	if err := advance(&l, entities.FlagOutOfStock); err != nil {
		return l, ShortageQuery{}, err
	}
	l.AvailableQty = availableQty
	if strings.TrimSpace(note) != "" {
		l.Note = note
	}
	l.Supplier.Status = entities.SupplierPending
	l.Supplier.OfferedQty = decimal.Zero
	l.Supplier.RequestedAt = now.UTC()
	l.Supplier.RespondedAt = time.Time{}
	q := ShortageQuery{
		OrderID:      l.OrderID,
		LineID:       l.ID,
		ProductRef:   l.ProductRef,
		RequestedQty: l.OrderedQty.Sub(availableQty),
		SupplierRef:  l.Supplier.SupplierRef,
	}
	return stamp(l, now), q, nil
}

// RecordAvailabilityResponse stores the supplier's answer. The flag does not
// move: a positive answer still needs an explicit accept or reject.
func RecordAvailabilityResponse(o entities.Order, l entities.LineItem, resp AvailabilityResponse, now time.Time) (entities.LineItem, error) {
	if err := ensureActive(o); err != nil {
		return l, err
	}
	if !isOpenShortage(l.Flag) {
		return l, entities.Guard("line has no open shortage")
	}
	if l.Supplier.Status != entities.SupplierPending {
		return l, entities.Guard("no supplier query is pending for this line")
	}
	l = l.Clone()
	if ref := strings.TrimSpace(resp.SupplierRef); ref != "" {
		l.Supplier.SupplierRef = ref
	}
	l.Supplier.RespondedAt = now.UTC()
	if resp.Available && resp.Qty.IsPositive() {
		offered := resp.Qty
		if offered.GreaterThan(l.OrderedQty) {
			offered = l.OrderedQty
		}
		l.Supplier.Status = entities.SupplierAvailable
		l.Supplier.OfferedQty = offered
	} else {
		l.Supplier.Status = entities.SupplierUnavailable
		l.Supplier.OfferedQty = decimal.Zero
	}
	return stamp(l, now), nil
}

// ReissueShortage sends the query to another supplier after a negative answer
// on a line with nothing on hand. Admin only.
func ReissueShortage(o entities.Order, l entities.LineItem, actor entities.Actor, supplierRef string, now time.Time) (entities.LineItem, ShortageQuery, error) {
	if err := ensureActive(o); err != nil {
		return l, ShortageQuery{}, err
	}
	if !actor.IsAdmin {
		return l, ShortageQuery{}, entities.ErrUnauthorized
	}
	if strings.TrimSpace(supplierRef) == "" {
		return l, ShortageQuery{}, entities.Guard("supplier reference is required")
	}
	if !isOpenShortage(l.Flag) {
		return l, ShortageQuery{}, entities.Guard("line has no open shortage")
	}
	switch l.Supplier.Status {
	case entities.SupplierPending:
		return l, ShortageQuery{}, entities.Guard("a supplier query is still pending")
	case entities.SupplierAvailable:
		return l, ShortageQuery{}, entities.Guard("a supplier offer is waiting for a decision")
	}
	if !l.AvailableQty.IsZero() {
		return l, ShortageQuery{}, entities.Guard("line already has available quantity")
	}
	l = l.Clone()
	l.Supplier = entities.SupplierState{
		SupplierRef: strings.TrimSpace(supplierRef),
		Status:      entities.SupplierPending,
		OfferedQty:  decimal.Zero,
		RequestedAt: now.UTC(),
	}
	q := ShortageQuery{
		OrderID:      l.OrderID,
		LineID:       l.ID,
		ProductRef:   l.ProductRef,
		RequestedQty: l.OrderedQty,
		SupplierRef:  l.Supplier.SupplierRef,
	}
	return stamp(l, now), q, nil
}

// AcceptAvailability takes the supplier offer, or the quantity on hand when no
// offer is waiting, as the line's resolution.
func AcceptAvailability(o entities.Order, l entities.LineItem, actor entities.Actor, now time.Time) (entities.LineItem, []Notice, error) {
	if err := ensureActive(o); err != nil {
		return l, nil, err
	}
	if err := requireDecisionMaker(o, l, actor); err != nil {
		return l, nil, err
	}
	if !isOpenShortage(l.Flag) {
		return l, nil, entities.Guard("line has no open shortage")
	}
	qty := l.AvailableQty
	if l.Supplier.Status == entities.SupplierAvailable {
		qty = l.Supplier.OfferedQty
	}
	if !qty.IsPositive() {
		return l, nil, entities.Guard("no availability to accept")
	}
	l = l.Clone()
	if err := advance(&l, entities.FlagAvailable); err != nil {
		return l, nil, err
	}
	l.AvailableQty = qty
	l.DecisionOwner = entities.AssignedTo(actor.ID, now)
	notices := []Notice{{
		Role:    DownstreamRole(o),
		OrderID: o.ID,
		Message: fmt.Sprintf("line %s accepted with reduced quantity %s", l.ID, qty.String()),
	}}
	return stamp(l, now), notices, nil
}

// RejectAvailability escalates the shortage instead of accepting what is offered.
func RejectAvailability(o entities.Order, l entities.LineItem, actor entities.Actor, now time.Time) (entities.LineItem, error) {
	if err := ensureActive(o); err != nil {
		return l, err
	}
	if err := requireDecisionMaker(o, l, actor); err != nil {
		return l, err
	}
	if !isOpenShortage(l.Flag) {
		return l, entities.Guard("line has no open shortage")
	}
	if l.Supplier.Status != entities.SupplierAvailable && !l.AvailableQty.IsPositive() {
		return l, entities.Guard("no availability to reject")
	}
	l = l.Clone()
	if err := advance(&l, entities.FlagReported); err != nil {
		return l, err
	}
	if l.Supplier.Status == entities.SupplierAvailable {
		l.Supplier.Status = entities.SupplierNone
		l.Supplier.OfferedQty = decimal.Zero
	}
	l.DecisionOwner = entities.AssignedTo(actor.ID, now)
	return stamp(l, now), nil
}

// MarkNotAvailable gives up on a shortage. The line drops out of the live
// total and stays on the order for history.
func MarkNotAvailable(o entities.Order, l entities.LineItem, actor entities.Actor, now time.Time) (entities.LineItem, error) {
	if err := ensureActive(o); err != nil {
		return l, err
	}
	if err := requireDecisionMaker(o, l, actor); err != nil {
		return l, err
	}
	if !isOpenShortage(l.Flag) {
		return l, entities.Guard("line has no open shortage")
	}
	l = l.Clone()
	if err := advance(&l, entities.FlagNotAvailable); err != nil {
		return l, err
	}
	l.AvailableQty = decimal.Zero
	if l.Supplier.Status == entities.SupplierPending || l.Supplier.Status == entities.SupplierAvailable {
		l.Supplier.Status = entities.SupplierUnavailable
		l.Supplier.OfferedQty = decimal.Zero
	}
	l.DecisionOwner = entities.AssignedTo(actor.ID, now)
	return stamp(l, now), nil
}

// CancelLine removes a line from the order before completion.
func CancelLine(o entities.Order, l entities.LineItem, actor entities.Actor, now time.Time) (entities.LineItem, error) {
	if err := ensureActive(o); err != nil {
		return l, err
	}
	if err := requireOwnerOrAdmin(o, actor); err != nil {
		return l, err
	}
	l = l.Clone()
	if err := advance(&l, entities.FlagCancelled); err != nil {
		return l, err
	}
	return stamp(l, now), nil
}

// DownstreamRole is the role currently working the order after the storekeeper.
func DownstreamRole(o entities.Order) entities.Role {
	switch o.ApprovalFlag {
	case entities.ApprovalSentToChecker, entities.ApprovalCheckerIsChecking:
		return entities.RoleChecker
	}
	return entities.RoleStorekeeper
}

func canSuggest(o entities.Order, actor entities.Actor) error {
	if actor.IsAdmin {
		return nil
	}
	switch actor.Role {
	case entities.RoleStorekeeper, entities.RoleChecker:
		if !o.Slot(actor.Role).Is(actor.ID) {
			return entities.Guard(fmt.Sprintf("%s has not claimed this order", actor.ID))
		}
		return nil
	case entities.RoleSalesman:
		if o.IsOwner(actor.ID) {
			return nil
		}
	}
	return entities.ErrUnauthorized
}

// AddSuggestion attaches a substitute-product proposal to a line.
func AddSuggestion(o entities.Order, l entities.LineItem, actor entities.Actor, productRef string, price decimal.Decimal, note string, now time.Time) (entities.LineItem, entities.Suggestion, error) {
	if err := ensureActive(o); err != nil {
		return l, entities.Suggestion{}, err
	}
	if err := canSuggest(o, actor); err != nil {
		return l, entities.Suggestion{}, err
	}
	if err := requireLiveLine(l); err != nil {
		return l, entities.Suggestion{}, err
	}
	if strings.TrimSpace(productRef) == "" {
		return l, entities.Suggestion{}, entities.Guard("proposed product is required")
	}
	if price.IsNegative() {
		return l, entities.Suggestion{}, entities.Guard("price cannot be negative")
	}
	s := entities.Suggestion{
		ID:                 uuid.NewString(),
		OwnerLineID:        l.ID,
		ProposedProductRef: strings.TrimSpace(productRef),
		Price:              price,
		Note:               note,
		ProposedBy:         actor.ID,
		CreatedAt:          now.UTC(),
	}
	l = l.Clone()
	l.Suggestions = append(l.Suggestions, s)
	return stamp(l, now), s, nil
}

func findSuggestion(l entities.LineItem, suggestionID string) (int, bool) {
	for i, s := range l.Suggestions {
		if s.ID == suggestionID {
			return i, true
		}
	}
	return -1, false
}

func withoutSuggestion(l entities.LineItem, idx int) []entities.Suggestion {
	out := make([]entities.Suggestion, 0, len(l.Suggestions)-1)
	out = append(out, l.Suggestions[:idx]...)
	return append(out, l.Suggestions[idx+1:]...)
}

// DiscardSuggestion drops a proposal without touching the line's flag.
func DiscardSuggestion(o entities.Order, l entities.LineItem, actor entities.Actor, suggestionID string, now time.Time) (entities.LineItem, error) {
	if err := ensureActive(o); err != nil {
		return l, err
	}
	if err := canSuggest(o, actor); err != nil {
		return l, err
	}
	idx, ok := findSuggestion(l, suggestionID)
	if !ok {
		return l, &entities.NotFound{Kind: "suggestion", ID: suggestionID}
	}
	l = l.Clone()
	l.Suggestions = withoutSuggestion(l, idx)
	return stamp(l, now), nil
}

// AcceptSuggestion converts a proposal into a new line that replaces the
// original. The original is kept, flagged replaced, for the audit trail.
func AcceptSuggestion(o entities.Order, l entities.LineItem, actor entities.Actor, suggestionID string, now time.Time) (entities.LineItem, entities.LineItem, error) {
	if err := ensureActive(o); err != nil {
		return l, entities.LineItem{}, err
	}
	if err := requireOwnerOrAdmin(o, actor); err != nil {
		return l, entities.LineItem{}, err
	}
	if err := requireLiveLine(l); err != nil {
		return l, entities.LineItem{}, err
	}
	idx, ok := findSuggestion(l, suggestionID)
	if !ok {
		return l, entities.LineItem{}, &entities.NotFound{Kind: "suggestion", ID: suggestionID}
	}
	s := l.Suggestions[idx]

	replacement, err := NewLine(l.OrderID, s.ProposedProductRef, l.OrderedQty, s.Price, s.Note, now)
	if err != nil {
		return l, entities.LineItem{}, err
	}
	replacement.ReplacesLineID = l.ID
	replacement.Narration = ReplacementNarration

	original := l.Clone()
	original.Suggestions = withoutSuggestion(original, idx)
	if err := advance(&original, entities.FlagReplaced); err != nil {
		return l, entities.LineItem{}, err
	}
	original.ReplacedByLineID = replacement.ID
	return stamp(original, now), replacement, nil
}

// AttachImage adds checker evidence to a line, at most MaxLineImages.
func AttachImage(o entities.Order, l entities.LineItem, actor entities.Actor, contentType string, data []byte, now time.Time) (entities.LineItem, entities.Image, error) {
	if err := ensureActive(o); err != nil {
		return l, entities.Image{}, err
	}
	if err := requireChecking(o, actor); err != nil {
		return l, entities.Image{}, err
	}
	if len(data) == 0 {
		return l, entities.Image{}, entities.Guard("image is empty")
	}
	if len(l.Images) >= entities.MaxLineImages {
		return l, entities.Image{}, &entities.LimitExceeded{Resource: "line images", Limit: entities.MaxLineImages}
	}
	img := entities.Image{
		ID:          uuid.NewString(),
		ContentType: contentType,
		Data:        append([]byte(nil), data...),
		AttachedBy:  actor.ID,
		AttachedAt:  now.UTC(),
	}
	l = l.Clone()
	l.Images = append(l.Images, img)
	return stamp(l, now), img, nil
}

// SetChecked toggles the checker's tick on a line.
func SetChecked(o entities.Order, l entities.LineItem, actor entities.Actor, checked bool, now time.Time) (entities.LineItem, error) {
	if err := ensureActive(o); err != nil {
		return l, err
	}
	if err := requireChecking(o, actor); err != nil {
		return l, err
	}
	if err := requireCheckableLine(l); err != nil {
		return l, err
	}
	if l.IsChecked == checked {
		return l, nil
	}
	l = l.Clone()
	l.IsChecked = checked
	return stamp(l, now), nil
}

// EditCheckedQuantity applies a checker's quantity correction to the line's
// base quantity. Differences below billing.QtyEpsilon are ignored.
func EditCheckedQuantity(o entities.Order, l entities.LineItem, actor entities.Actor, qty decimal.Decimal, now time.Time) (entities.LineItem, bool, error) {
	if err := ensureActive(o); err != nil {
		return l, false, err
	}
	if err := requireChecking(o, actor); err != nil {
		return l, false, err
	}
	if err := requireCheckableLine(l); err != nil {
		return l, false, err
	}
	if qty.IsNegative() {
		return l, false, entities.Guard("quantity cannot be negative")
	}
	if !billing.QtyChanged(l.EffectiveQty(), qty) {
		return l, false, nil
	}
	l = l.Clone()
	if l.Flag.IsShortage() {
		if qty.GreaterThan(l.OrderedQty) {
			return l, false, entities.Guard("available quantity exceeds ordered quantity")
		}
		l.AvailableQty = qty
	} else {
		l.OrderedQty = qty
	}
	return stamp(l, now), true, nil
}

// CheckReport is a checker's submission: the set of ticked lines and the
// quantities edited on screen.
type CheckReport struct {
	Checked map[string]bool
	Edited  map[string]decimal.Decimal
}

// MergeCheckReport applies a report onto a fresh snapshot of the lines. Only
// lines that actually change are returned; unknown ids are rejected before
// anything is applied.
func MergeCheckReport(o entities.Order, lines []entities.LineItem, actor entities.Actor, report CheckReport, now time.Time) ([]entities.LineItem, []entities.LineItem, error) {
	if err := ensureActive(o); err != nil {
		return nil, nil, err
	}
	if err := requireChecking(o, actor); err != nil {
		return nil, nil, err
	}
	index := make(map[string]int, len(lines))
	for i, l := range lines {
		index[l.ID] = i
	}
	for id := range report.Checked {
		if _, ok := index[id]; !ok {
			return nil, nil, &entities.NotFound{Kind: "line", ID: id}
		}
	}
	for id := range report.Edited {
		if _, ok := index[id]; !ok {
			return nil, nil, &entities.NotFound{Kind: "line", ID: id}
		}
	}

	merged := entities.CloneLines(lines)
	var changed []entities.LineItem
	for i, l := range merged {
		if !inLiveTotal(l) {
			continue
		}
		dirty := false
		if qty, ok := report.Edited[l.ID]; ok {
			next, edited, err := EditCheckedQuantity(o, l, actor, qty, now)
			if err != nil {
				return nil, nil, err
			}
			if edited {
				l, dirty = next, true
			}
		}
		if checked, ok := report.Checked[l.ID]; ok && checked != l.IsChecked {
			next, err := SetChecked(o, l, actor, checked, now)
			if err != nil {
				return nil, nil, err
			}
			l, dirty = next, true
		}
		if dirty {
			merged[i] = l
			changed = append(changed, l)
		}
	}
	return merged, changed, nil
}
