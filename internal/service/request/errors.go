package request

import (
	"fmt"

	"logistics/internal/entities"
)

var (
	ErrInvalidRequest  = fmt.Errorf("invalid request: %w", entities.ErrValidation)
	ErrRequestNotFound = fmt.Errorf("request: %w", entities.ErrNotFound)
	ErrRequestClosed   = fmt.Errorf("request is closed: %w", entities.ErrIllegalTransition)
)
