package ledger

import (
	"fmt"

	"logistics/internal/entities"
)

var (
	ErrInvalidTransaction  = fmt.Errorf("invalid transaction: %w", entities.ErrValidation)
	ErrTransactionNotFound = fmt.Errorf("transaction: %w", entities.ErrNotFound)
	ErrAlreadyResolved     = fmt.Errorf("transaction already resolved: %w", entities.ErrIllegalTransition)
	ErrDuplicateCODReturn  = fmt.Errorf("submission already has a cod return: %w", entities.ErrConcurrencyConflict)
)
