package interfaces

import (
	"context"
	"time"

	"orderflow/internal/domain/entities"
)

// Changeset is the set of writes produced by one transition. It is committed
// atomically: every existing entity is written only if its stored Version
// still matches, otherwise nothing is written and ErrConcurrentUpdate is
// returned.
type Changeset struct {
	Order    *entities.Order
	Lines    []entities.LineItem
	NewLines []entities.LineItem
}

// Empty reports whether the changeset has nothing to write.
func (c Changeset) Empty() bool {
	return c.Order == nil && len(c.Lines) == 0 && len(c.NewLines) == 0
}

// IOrderRepository persists orders and their line items.
//
// Conventions:
//   - Load* return a zero value (empty ID) when the entity does not exist.
//   - Save*/Commit bump Version on every written entity and return the stored copies.
//   - Claim*/Release* are single conditional updates on one ownership slot. They
//     return the entity as stored after the attempt, whether or not the swap happened.
type IOrderRepository interface {
	CreateOrder(ctx context.Context, o entities.Order, lines []entities.LineItem) (entities.Order, []entities.LineItem, error)
	LoadOrder(ctx context.Context, id string) (entities.Order, error)
	SaveOrder(ctx context.Context, o entities.Order) (entities.Order, error)

	LoadLines(ctx context.Context, orderID string) ([]entities.LineItem, error)
	LoadLine(ctx context.Context, id string) (entities.LineItem, error)
	SaveLine(ctx context.Context, l entities.LineItem) (entities.LineItem, error)

	Commit(ctx context.Context, c Changeset) (Changeset, error)

	ClaimOrderRole(ctx context.Context, orderID string, role entities.Role, actorID string, at time.Time) (entities.Order, error)
	ReleaseOrderRole(ctx context.Context, orderID string, role entities.Role, expectedActorID string) (entities.Order, error)
	ClaimLineDecision(ctx context.Context, lineID string, actorID string, at time.Time) (entities.LineItem, error)
}
