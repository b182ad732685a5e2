package entities

import (
	"strings"
	"time"
)

// Role is the job an actor performs on an order.
type Role string

const (
	RoleSalesman    Role = "salesman"
	RoleStorekeeper Role = "storekeeper"
	RoleChecker     Role = "checker"
	RoleBiller      Role = "biller"
	RoleAdmin       Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleSalesman, RoleStorekeeper, RoleChecker, RoleBiller, RoleAdmin:
		return true
	}
	return false
}

// Claimable reports whether r owns a slot on the order that can be claimed.
func (r Role) Claimable() bool {
	switch r {
	case RoleStorekeeper, RoleChecker, RoleBiller:
		return true
	}
	return false
}

func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	return r, r.Valid()
}

// Actor is the resolved identity performing an action. Authentication happens
// upstream; the engine only trusts this tuple.
type Actor struct {
	ID      string
	Role    Role
	IsAdmin bool
}

func (a Actor) Valid() bool {
	return strings.TrimSpace(a.ID) != "" && a.Role.Valid()
}

// ActorRef is an ownership slot: either unassigned (zero value) or assigned to
// one actor since a point in time.
type ActorRef struct {
	id    string
	since time.Time
}

func Unassigned() ActorRef { return ActorRef{} }

func AssignedTo(id string, since time.Time) ActorRef {
	id = strings.TrimSpace(id)
	if id == "" {
		return ActorRef{}
	}
	return ActorRef{id: id, since: since.UTC()}
}

func (r ActorRef) IsAssigned() bool { return r.id != "" }

// ID returns the owner id and whether the slot is assigned.
func (r ActorRef) ID() (string, bool) { return r.id, r.id != "" }

// Since is the time the slot was claimed. Zero when unassigned.
func (r ActorRef) Since() time.Time { return r.since }

// Is reports whether the slot is assigned to actorID.
func (r ActorRef) Is(actorID string) bool {
	return r.id != "" && r.id == strings.TrimSpace(actorID)
}

// String returns the owner id or an empty string.
func (r ActorRef) String() string { return r.id }
