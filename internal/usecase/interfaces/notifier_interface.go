package interfaces

import (
	"context"

	"orderflow/internal/domain/entities"
)

// INotifier delivers role-pool notifications and order-changed events.
// Callers log failures and never fail the originating transition on them.
type INotifier interface {
	NotifyRole(ctx context.Context, role entities.Role, orderID string, message string) error
	OrderChanged(ctx context.Context, orderID string) error
}
