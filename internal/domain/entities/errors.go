package entities

import (
	"errors"
	"fmt"
)

var (
	// ErrOrderCancelled is returned by every gated action on a cancelled order.
	ErrOrderCancelled = errors.New("order is cancelled")
	// ErrUnauthorized means the actor's role or admin bit does not allow the action.
	ErrUnauthorized = errors.New("actor not authorized for this action")
	// ErrConcurrentUpdate is returned by repositories when a versioned write lost a race.
	ErrConcurrentUpdate = errors.New("concurrent update")
	// ErrInvalidInput is wrapped by usecase validation errors.
	ErrInvalidInput = errors.New("invalid input")
)

// GuardViolation reports an unmet transition precondition. Nothing was mutated.
type GuardViolation struct {
	Reason string
}

func (e *GuardViolation) Error() string {
	return "guard violation: " + e.Reason
}

func Guard(reason string) error {
	return &GuardViolation{Reason: reason}
}

// AlreadyClaimed reports ownership contention on a role slot or a line decision.
type AlreadyClaimed struct {
	Resource string
	Role     Role
	By       string
}

func (e *AlreadyClaimed) Error() string {
	return fmt.Sprintf("%s already claimed as %s by %s", e.Resource, e.Role, e.By)
}

// LimitExceeded rejects a single sub-action that would exceed a bound.
type LimitExceeded struct {
	Resource string
	Limit    int
}

func (e *LimitExceeded) Error() string {
	return fmt.Sprintf("limit exceeded for %s (max %d)", e.Resource, e.Limit)
}

// NotFound reports a missing order, line or suggestion.
type NotFound struct {
	Kind string
	ID   string
}

func (e *NotFound) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

// StorageError wraps a persistence collaborator failure as-is.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error during %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// IsGuardViolation is a convenience for errors.As on *GuardViolation.
func IsGuardViolation(err error) bool {
	var gv *GuardViolation
	return errors.As(err, &gv)
}
