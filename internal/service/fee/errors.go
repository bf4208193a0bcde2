package fee

import (
	"fmt"

	"logistics/internal/entities"
)

var (
	ErrInvalidInput           = fmt.Errorf("invalid fee input: %w", entities.ErrValidation)
	ErrPromotionNotApplicable = fmt.Errorf("promotion not applicable: %w", entities.ErrValidation)
)
