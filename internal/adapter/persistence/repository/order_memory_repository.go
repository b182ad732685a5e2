package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"orderflow/internal/domain/entities"
	"orderflow/internal/usecase/interfaces"
)

// OrderMemoryRepository keeps orders and lines in process memory. Every
// method runs under one mutex, so a Commit is atomic and a claim is a true
// compare-and-set.
type OrderMemoryRepository struct {
	mu      sync.Mutex
	orders  map[string]entities.Order
	lines   map[string]entities.LineItem
	byOrder map[string][]string
}

var _ interfaces.IOrderRepository = (*OrderMemoryRepository)(nil)

func NewOrderMemoryRepository() *OrderMemoryRepository {
	return &OrderMemoryRepository{
		orders:  map[string]entities.Order{},
		lines:   map[string]entities.LineItem{},
		byOrder: map[string][]string{},
	}
}

func (r *OrderMemoryRepository) CreateOrder(_ context.Context, o entities.Order, lines []entities.LineItem) (entities.Order, []entities.LineItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[o.ID]; ok {
		return entities.Order{}, nil, fmt.Errorf("order %s already exists", o.ID)
	}
	for _, l := range lines {
		if _, ok := r.lines[l.ID]; ok {
			return entities.Order{}, nil, fmt.Errorf("line %s already exists", l.ID)
		}
	}
	o.Version = 1
	r.orders[o.ID] = o
	out := make([]entities.LineItem, 0, len(lines))
	for _, l := range lines {
		l = l.Clone()
		l.Version = 1
		r.putLine(l)
		out = append(out, l.Clone())
	}
	return o, out, nil
}

func (r *OrderMemoryRepository) putLine(l entities.LineItem) {
	if _, ok := r.lines[l.ID]; !ok {
		r.byOrder[l.OrderID] = append(r.byOrder[l.OrderID], l.ID)
	}
	r.lines[l.ID] = l
}

func (r *OrderMemoryRepository) LoadOrder(_ context.Context, id string) (entities.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.orders[id], nil
}

func (r *OrderMemoryRepository) SaveOrder(ctx context.Context, o entities.Order) (entities.Order, error) {
	stored, err := r.Commit(ctx, interfaces.Changeset{Order: &o})
	if err != nil {
		return entities.Order{}, err
	}
	return *stored.Order, nil
}

func (r *OrderMemoryRepository) LoadLines(_ context.Context, orderID string) ([]entities.LineItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := r.byOrder[orderID]
	out := make([]entities.LineItem, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.lines[id].Clone())
	}
	return out, nil
}

func (r *OrderMemoryRepository) LoadLine(_ context.Context, id string) (entities.LineItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lines[id].Clone(), nil
}

func (r *OrderMemoryRepository) SaveLine(ctx context.Context, l entities.LineItem) (entities.LineItem, error) {
	stored, err := r.Commit(ctx, interfaces.Changeset{Lines: []entities.LineItem{l}})
	if err != nil {
		return entities.LineItem{}, err
	}
	return stored.Lines[0], nil
}

func (r *OrderMemoryRepository) Commit(_ context.Context, c interfaces.Changeset) (interfaces.Changeset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c.Order != nil {
		cur, ok := r.orders[c.Order.ID]
		if !ok || cur.Version != c.Order.Version {
			return interfaces.Changeset{}, entities.ErrConcurrentUpdate
		}
	}
	for _, l := range c.Lines {
		cur, ok := r.lines[l.ID]
		if !ok || cur.Version != l.Version {
			return interfaces.Changeset{}, entities.ErrConcurrentUpdate
		}
	}
	for _, l := range c.NewLines {
		if _, ok := r.lines[l.ID]; ok {
			return interfaces.Changeset{}, entities.ErrConcurrentUpdate
		}
	}

	var out interfaces.Changeset
	if c.Order != nil {
		o := *c.Order
		o.Version++
		r.orders[o.ID] = o
		out.Order = &o
	}
	for _, l := range c.Lines {
		l = l.Clone()
		l.Version++
		r.putLine(l)
		out.Lines = append(out.Lines, l.Clone())
	}
	for _, l := range c.NewLines {
		l = l.Clone()
		l.Version = 1
		r.putLine(l)
		out.NewLines = append(out.NewLines, l.Clone())
	}
	return out, nil
}

func (r *OrderMemoryRepository) ClaimOrderRole(_ context.Context, orderID string, role entities.Role, actorID string, at time.Time) (entities.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.orders[orderID]
	if !ok {
		return entities.Order{}, nil
	}
	if o.Slot(role).IsAssigned() || o.ApprovalFlag.ClosesClaims() {
		return o, nil
	}
	o = o.WithSlot(role, entities.AssignedTo(actorID, at))
	o.Version++
	r.orders[orderID] = o
	return o, nil
}

func (r *OrderMemoryRepository) ReleaseOrderRole(_ context.Context, orderID string, role entities.Role, expectedActorID string) (entities.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.orders[orderID]
	if !ok {
		return entities.Order{}, nil
	}
	if !o.Slot(role).Is(expectedActorID) {
		return o, nil
	}
	o = o.WithSlot(role, entities.Unassigned())
	o.Version++
	r.orders[orderID] = o
	return o, nil
}

func (r *OrderMemoryRepository) ClaimLineDecision(_ context.Context, lineID string, actorID string, at time.Time) (entities.LineItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.lines[lineID]
	if !ok {
		return entities.LineItem{}, nil
	}
	if l.DecisionOwner.IsAssigned() {
		return l.Clone(), nil
	}
	l = l.Clone()
	l.DecisionOwner = entities.AssignedTo(actorID, at)
	l.Version++
	r.lines[lineID] = l
	return l.Clone(), nil
}

// BillPaymentMemoryRepository keeps payments in process memory.
type BillPaymentMemoryRepository struct {
	mu       sync.Mutex
	payments map[string]entities.BillPayment
	order    []string
}

var _ interfaces.IBillPaymentRepository = (*BillPaymentMemoryRepository)(nil)

func NewBillPaymentMemoryRepository() *BillPaymentMemoryRepository {
	return &BillPaymentMemoryRepository{payments: map[string]entities.BillPayment{}}
}

func (r *BillPaymentMemoryRepository) Create(_ context.Context, p entities.BillPayment) (entities.BillPayment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.payments[p.ID]; ok {
		return entities.BillPayment{}, fmt.Errorf("payment %s already exists", p.ID)
	}
	r.payments[p.ID] = p
	r.order = append(r.order, p.ID)
	return p, nil
}

func (r *BillPaymentMemoryRepository) GetByID(_ context.Context, id string) (entities.BillPayment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.payments[id], nil
}

func (r *BillPaymentMemoryRepository) ListByOrderID(_ context.Context, orderID string) ([]entities.BillPayment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entities.BillPayment, 0)
	for _, id := range r.order {
		if p := r.payments[id]; p.OrderID == orderID {
			out = append(out, p)
		}
	}
	return out, nil
}
