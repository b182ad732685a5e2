package interfaces

import (
	"context"

	"orderflow/internal/domain/entities"
)

// IBillPaymentRepository abstracts persistence for BillPayment.
//
// Lookups return a zero-value payment (empty ID) when nothing matches.
type IBillPaymentRepository interface {
	Create(ctx context.Context, p entities.BillPayment) (entities.BillPayment, error)
	GetByID(ctx context.Context, id string) (entities.BillPayment, error)
	ListByOrderID(ctx context.Context, orderID string) ([]entities.BillPayment, error)
}
