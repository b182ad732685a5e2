package usecase

import (
	"fmt"

	"orderflow/internal/domain/entities"
)

// Validation errors wrap entities.ErrInvalidInput so transports can map them
// as a family.
var (
	ErrInvalidOrderID      = fmt.Errorf("%w: invalid order id", entities.ErrInvalidInput)
	ErrInvalidLineID       = fmt.Errorf("%w: invalid line id", entities.ErrInvalidInput)
	ErrInvalidSuggestionID = fmt.Errorf("%w: invalid suggestion id", entities.ErrInvalidInput)
	ErrInvalidActor        = fmt.Errorf("%w: invalid actor", entities.ErrInvalidInput)
	ErrInvalidRole         = fmt.Errorf("%w: invalid role", entities.ErrInvalidInput)
	ErrInvalidQuantity     = fmt.Errorf("%w: invalid quantity", entities.ErrInvalidInput)
	ErrInvalidImage        = fmt.Errorf("%w: invalid image", entities.ErrInvalidInput)
	ErrInvalidResponse     = fmt.Errorf("%w: invalid availability response", entities.ErrInvalidInput)
)

func storageErr(op string, err error) error {
	return &entities.StorageError{Op: op, Err: err}
}
