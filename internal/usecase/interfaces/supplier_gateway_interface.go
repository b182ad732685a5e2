package interfaces

import (
	"context"

	"orderflow/internal/domain/lifecycle"
)

// ISupplierGateway forwards shortage queries to the supplier side. Answers
// come back asynchronously through RecordAvailabilityResponse.
type ISupplierGateway interface {
	QueryAvailability(ctx context.Context, q lifecycle.ShortageQuery) error
}
