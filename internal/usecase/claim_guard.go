package usecase

import (
	"context"
	"strings"
	"time"

	"orderflow/internal/domain/entities"
	"orderflow/internal/domain/lifecycle"
	"orderflow/internal/usecase/interfaces"
	"orderflow/pkg/logger"
)

// IClaimGuard is the ownership compare-and-set.
type IClaimGuard interface {
	TryClaim(ctx context.Context, resource entities.ClaimResource, role entities.Role, actor entities.Actor) (entities.ClaimToken, error)
	Release(ctx context.Context, orderID string, role entities.Role, actor entities.Actor, olderThan time.Duration) (entities.Order, error)
}

// ClaimGuard lets exactly one actor own a role slot on an order or the
// decision on a disputed line. The swap itself is a single conditional write
// in the repository; a read-then-write here would race.
type ClaimGuard struct {
	repo interfaces.IOrderRepository
	now  func() time.Time
}

var _ IClaimGuard = (*ClaimGuard)(nil)

func NewClaimGuard(repo interfaces.IOrderRepository) *ClaimGuard {
	return &ClaimGuard{repo: repo, now: func() time.Time { return time.Now().UTC() }}
}

// TryClaim succeeds when the slot is free or already held by actor, and fails
// with *entities.AlreadyClaimed naming the holder otherwise. Contention is
// never retried.
func (g *ClaimGuard) TryClaim(ctx context.Context, resource entities.ClaimResource, role entities.Role, actor entities.Actor) (entities.ClaimToken, error) {
	if err := validActor(actor); err != nil {
		return entities.ClaimToken{}, err
	}
	resource.ID = strings.TrimSpace(resource.ID)
	switch resource.Kind {
	case entities.ClaimOrder:
		if resource.ID == "" {
			return entities.ClaimToken{}, ErrInvalidOrderID
		}
		return g.claimOrder(ctx, resource, role, actor)
	case entities.ClaimLine:
		if resource.ID == "" {
			return entities.ClaimToken{}, ErrInvalidLineID
		}
		return g.claimLine(ctx, resource, actor)
	}
	return entities.ClaimToken{}, ErrInvalidRole
}

func (g *ClaimGuard) claimOrder(ctx context.Context, resource entities.ClaimResource, role entities.Role, actor entities.Actor) (entities.ClaimToken, error) {
	ctx = logger.WithOrderID(logger.WithActorID(ctx, actor.ID), resource.ID)
	if !role.Claimable() {
		return entities.ClaimToken{}, ErrInvalidRole
	}
	if actor.Role != role {
		return entities.ClaimToken{}, entities.ErrUnauthorized
	}

	o, err := g.repo.LoadOrder(ctx, resource.ID)
	if err != nil {
		return entities.ClaimToken{}, storageErr("loadOrder", err)
	}
	if o.ID == "" {
		return entities.ClaimToken{}, &entities.NotFound{Kind: "order", ID: resource.ID}
	}
	if err := lifecycle.CanClaim(o, role); err != nil {
		return entities.ClaimToken{}, err
	}
	if tok, done, err := tokenFor(resource, role, actor, o.Slot(role)); done {
		return tok, err
	}

	stored, err := g.repo.ClaimOrderRole(ctx, resource.ID, role, actor.ID, g.now())
	if err != nil {
		logger.Errorf(ctx, "[claim][usecase] claim order failed role=%s err=%v", role, err)
		return entities.ClaimToken{}, storageErr("claimOrderRole", err)
	}
	if stored.ID == "" {
		return entities.ClaimToken{}, &entities.NotFound{Kind: "order", ID: resource.ID}
	}
	tok, done, err := tokenFor(resource, role, actor, stored.Slot(role))
	if !done {
		// The order was cancelled or rejected between the load and the write.
		if err := lifecycle.CanClaim(stored, role); err != nil {
			return entities.ClaimToken{}, err
		}
		return entities.ClaimToken{}, entities.ErrConcurrentUpdate
	}
	if err == nil {
		logger.Infof(ctx, "[claim][usecase] order claimed role=%s actor_id=%s", role, actor.ID)
	}
	return tok, err
}

func (g *ClaimGuard) claimLine(ctx context.Context, resource entities.ClaimResource, actor entities.Actor) (entities.ClaimToken, error) {
	ctx = logger.WithActorID(ctx, actor.ID)
	l, err := g.repo.LoadLine(ctx, resource.ID)
	if err != nil {
		return entities.ClaimToken{}, storageErr("loadLine", err)
	}
	if l.ID == "" {
		return entities.ClaimToken{}, &entities.NotFound{Kind: "line", ID: resource.ID}
	}
	o, err := g.repo.LoadOrder(ctx, l.OrderID)
	if err != nil {
		return entities.ClaimToken{}, storageErr("loadOrder", err)
	}
	if o.ID == "" {
		return entities.ClaimToken{}, &entities.NotFound{Kind: "order", ID: l.OrderID}
	}
	if err := lifecycle.CanClaimDecision(o, l, actor); err != nil {
		return entities.ClaimToken{}, err
	}
	if tok, done, err := tokenFor(resource, actor.Role, actor, l.DecisionOwner); done {
		return tok, err
	}

	stored, err := g.repo.ClaimLineDecision(ctx, resource.ID, actor.ID, g.now())
	if err != nil {
		logger.Errorf(ctx, "[claim][usecase] claim line failed line_id=%s err=%v", resource.ID, err)
		return entities.ClaimToken{}, storageErr("claimLineDecision", err)
	}
	if stored.ID == "" {
		return entities.ClaimToken{}, &entities.NotFound{Kind: "line", ID: resource.ID}
	}
	tok, done, err := tokenFor(resource, actor.Role, actor, stored.DecisionOwner)
	if !done {
		return entities.ClaimToken{}, entities.ErrConcurrentUpdate
	}
	return tok, err
}

// tokenFor interprets a slot: held by actor is success, held by someone else
// is AlreadyClaimed, unassigned is not decided yet.
func tokenFor(resource entities.ClaimResource, role entities.Role, actor entities.Actor, slot entities.ActorRef) (entities.ClaimToken, bool, error) {
	by, assigned := slot.ID()
	if !assigned {
		return entities.ClaimToken{}, false, nil
	}
	if by != actor.ID {
		return entities.ClaimToken{}, true, &entities.AlreadyClaimed{Resource: resource.String(), Role: role, By: by}
	}
	return entities.ClaimToken{Resource: resource, Role: role, ActorID: actor.ID, ClaimedAt: slot.Since()}, true, nil
}

// Release frees a role slot. Admin only. A positive olderThan refuses to
// release claims younger than that, so callers can express a staleness policy.
func (g *ClaimGuard) Release(ctx context.Context, orderID string, role entities.Role, actor entities.Actor, olderThan time.Duration) (entities.Order, error) {
	if err := validActor(actor); err != nil {
		return entities.Order{}, err
	}
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return entities.Order{}, ErrInvalidOrderID
	}
	ctx = logger.WithOrderID(logger.WithActorID(ctx, actor.ID), orderID)

	o, err := g.repo.LoadOrder(ctx, orderID)
	if err != nil {
		return entities.Order{}, storageErr("loadOrder", err)
	}
	if o.ID == "" {
		return entities.Order{}, &entities.NotFound{Kind: "order", ID: orderID}
	}
	if err := lifecycle.ReleaseSlot(o, role, actor); err != nil {
		return entities.Order{}, err
	}
	holder, assigned := o.Slot(role).ID()
	if !assigned {
		return o, nil
	}
	tok := entities.ClaimToken{Role: role, ActorID: holder, ClaimedAt: o.Slot(role).Since()}
	if olderThan > 0 && !tok.OlderThan(olderThan, g.now()) {
		return entities.Order{}, entities.Guard("claim is not stale yet")
	}

	stored, err := g.repo.ReleaseOrderRole(ctx, orderID, role, holder)
	if err != nil {
		return entities.Order{}, storageErr("releaseOrderRole", err)
	}
	if by, ok := stored.Slot(role).ID(); ok {
		// Someone re-claimed between the load and the conditional reset.
		return entities.Order{}, &entities.AlreadyClaimed{Resource: "order " + orderID, Role: role, By: by}
	}
	logger.Infof(ctx, "[claim][usecase] claim released role=%s previous_actor_id=%s", role, holder)
	return stored, nil
}
