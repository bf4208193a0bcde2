package submission

import (
	"errors"
	"fmt"

	"logistics/internal/entities"
)

var (
	ErrInvalidSubmission     = fmt.Errorf("invalid submission: %w", entities.ErrValidation)
	ErrSubmissionNotFound    = fmt.Errorf("submission: %w", entities.ErrNotFound)
	ErrVersionConflict       = fmt.Errorf("submission version changed: %w", entities.ErrConcurrencyConflict)
	ErrOrderAlreadySubmitted = fmt.Errorf("order already in an active submission: %w", entities.ErrConcurrencyConflict)
	ErrNotPending            = fmt.Errorf("submission is not pending: %w", entities.ErrIllegalTransition)

	ErrAmountMismatch   = errors.New("amount mismatch")
	ErrOrderNotEligible = errors.New("order not eligible for submission")
)
