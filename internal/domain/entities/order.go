package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is the purchase order moving through the role pipeline.
//
// Storage model:
//   - PK: id
//   - Version guards every write (optimistic concurrency).
//   - Storekeeper/Checker/Biller slots are written by conditional claim updates only.
type Order struct {
	ID            string
	ApprovalFlag  ApprovalFlag
	Salesman      ActorRef
	Storekeeper   ActorRef
	Checker       ActorRef
	Biller        ActorRef
	IsBilled      bool
	FreightCharge decimal.Decimal
	Note          string
	Version       int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Slot returns the ownership slot held by role.
func (o Order) Slot(role Role) ActorRef {
	switch role {
	case RoleSalesman:
		return o.Salesman
	case RoleStorekeeper:
		return o.Storekeeper
	case RoleChecker:
		return o.Checker
	case RoleBiller:
		return o.Biller
	}
	return Unassigned()
}

// WithSlot returns a copy of o with role's slot replaced.
func (o Order) WithSlot(role Role, ref ActorRef) Order {
	switch role {
	case RoleSalesman:
		o.Salesman = ref
	case RoleStorekeeper:
		o.Storekeeper = ref
	case RoleChecker:
		o.Checker = ref
	case RoleBiller:
		o.Biller = ref
	}
	return o
}

// IsOwner reports whether actorID created the order.
func (o Order) IsOwner(actorID string) bool {
	return o.Salesman.Is(actorID)
}
