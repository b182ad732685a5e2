package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"orderflow/internal/domain/entities"
	"orderflow/internal/domain/lifecycle"
	"orderflow/internal/usecase/interfaces"
	"orderflow/pkg/logger"
)

// maxMutationAttempts bounds the reload-and-retry loop when a versioned commit
// loses a race.
const maxMutationAttempts = 3

// snapshot is an order and its lines as loaded for one attempt.
type snapshot struct {
	order entities.Order
	lines []entities.LineItem
}

func (s snapshot) line(id string) (entities.LineItem, bool) {
	for _, l := range s.lines {
		if l.ID == id {
			return l, true
		}
	}
	return entities.LineItem{}, false
}

// merge overlays the stored writes on the loaded state.
func (s snapshot) merge(stored interfaces.Changeset) snapshot {
	out := snapshot{order: s.order, lines: entities.CloneLines(s.lines)}
	if stored.Order != nil {
		out.order = *stored.Order
	}
	for _, w := range stored.Lines {
		for i := range out.lines {
			if out.lines[i].ID == w.ID {
				out.lines[i] = w
			}
		}
	}
	out.lines = append(out.lines, stored.NewLines...)
	return out
}

// outcome is what one transition wants written plus its side effects.
type outcome struct {
	changes interfaces.Changeset
	notices []lifecycle.Notice
	queries []lifecycle.ShortageQuery
}

type mutation func(s snapshot) (outcome, error)

// engine runs guard-then-mutate steps against the repository.
type engine struct {
	repo     interfaces.IOrderRepository
	notifier interfaces.INotifier
	supplier interfaces.ISupplierGateway
	now      func() time.Time
}

func newEngine(repo interfaces.IOrderRepository, notifier interfaces.INotifier, supplier interfaces.ISupplierGateway) *engine {
	return &engine{repo: repo, notifier: notifier, supplier: supplier, now: func() time.Time { return time.Now().UTC() }}
}

func (e *engine) loadOrder(ctx context.Context, id string) (entities.Order, error) {
	o, err := e.repo.LoadOrder(ctx, id)
	if err != nil {
		return entities.Order{}, storageErr("loadOrder", err)
	}
	if o.ID == "" {
		return entities.Order{}, &entities.NotFound{Kind: "order", ID: id}
	}
	return o, nil
}

func (e *engine) loadLine(ctx context.Context, id string) (entities.LineItem, error) {
	l, err := e.repo.LoadLine(ctx, id)
	if err != nil {
		return entities.LineItem{}, storageErr("loadLine", err)
	}
	if l.ID == "" {
		return entities.LineItem{}, &entities.NotFound{Kind: "line", ID: id}
	}
	return l, nil
}

func (e *engine) load(ctx context.Context, orderID string) (snapshot, error) {
	o, err := e.loadOrder(ctx, orderID)
	if err != nil {
		return snapshot{}, err
	}
	lines, err := e.repo.LoadLines(ctx, orderID)
	if err != nil {
		return snapshot{}, storageErr("loadLines", err)
	}
	return snapshot{order: o, lines: lines}, nil
}

// apply loads the order, runs fn and commits its changeset. A lost version
// race reloads and re-runs fn so its guards see the winner's state.
func (e *engine) apply(ctx context.Context, op, orderID string, fn mutation) (snapshot, error) {
	ctx = logger.WithOrderID(ctx, orderID)
	for attempt := 1; ; attempt++ {
		s, err := e.load(ctx, orderID)
		if err != nil {
			return snapshot{}, err
		}
		out, err := fn(s)
		if err != nil {
			logger.Infof(ctx, "[order][usecase] %s refused order_id=%s err=%v", op, orderID, err)
			return snapshot{}, err
		}
		if out.changes.Empty() {
			return s, nil
		}
		stored, err := e.repo.Commit(ctx, out.changes)
		if errors.Is(err, entities.ErrConcurrentUpdate) {
			if attempt < maxMutationAttempts {
				logger.Warnf(ctx, "[order][usecase] %s lost version race order_id=%s attempt=%d", op, orderID, attempt)
				continue
			}
			return snapshot{}, err
		}
		if err != nil {
			logger.Errorf(ctx, "[order][usecase] %s commit failed order_id=%s err=%v", op, orderID, err)
			return snapshot{}, storageErr(op, err)
		}
		logger.Infof(ctx, "[order][usecase] %s applied order_id=%s", op, orderID)
		e.afterCommit(ctx, orderID, out)
		return s.merge(stored), nil
	}
}

// afterCommit fires the side effects of a committed transition. Failures are
// logged only.
func (e *engine) afterCommit(ctx context.Context, orderID string, out outcome) {
	e.notify(ctx, orderID, out.notices)
	for _, q := range out.queries {
		if e.supplier == nil {
			logger.Warnf(ctx, "[supplier][usecase] no supplier gateway, query dropped line_id=%s", q.LineID)
			continue
		}
		if err := e.supplier.QueryAvailability(ctx, q); err != nil {
			logger.Errorf(ctx, "[supplier][usecase] query availability failed line_id=%s err=%v", q.LineID, err)
		}
	}
}

func (e *engine) notify(ctx context.Context, orderID string, notices []lifecycle.Notice) {
	if e.notifier == nil {
		return
	}
	for _, n := range notices {
		if err := e.notifier.NotifyRole(ctx, n.Role, n.OrderID, n.Message); err != nil {
			logger.Warnf(ctx, "[notify][usecase] notify role failed role=%s order_id=%s err=%v", n.Role, n.OrderID, err)
		}
	}
	if err := e.notifier.OrderChanged(ctx, orderID); err != nil {
		logger.Warnf(ctx, "[notify][usecase] order changed failed order_id=%s err=%v", orderID, err)
	}
}

// applyToLine loads a line to find its order, then runs fn inside apply with
// the line taken from the same snapshot as the order.
func (e *engine) applyToLine(ctx context.Context, op, lineID string, fn func(s snapshot, l entities.LineItem) (outcome, error)) (snapshot, error) {
	lineID = strings.TrimSpace(lineID)
	if lineID == "" {
		return snapshot{}, ErrInvalidLineID
	}
	l, err := e.loadLine(ctx, lineID)
	if err != nil {
		return snapshot{}, err
	}
	return e.apply(ctx, op, l.OrderID, func(s snapshot) (outcome, error) {
		current, ok := s.line(lineID)
		if !ok {
			return outcome{}, &entities.NotFound{Kind: "line", ID: lineID}
		}
		return fn(s, current)
	})
}

func validActor(actor entities.Actor) error {
	if !actor.Valid() {
		return ErrInvalidActor
	}
	return nil
}

func orderPtr(o entities.Order) *entities.Order {
	return &o
}
