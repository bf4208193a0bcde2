package promotion

import (
	"fmt"

	"logistics/internal/entities"
)

var (
	ErrInvalidPromotion   = fmt.Errorf("invalid promotion: %w", entities.ErrValidation)
	ErrPromotionCodeTaken = fmt.Errorf("promotion code already exists: %w", entities.ErrValidation)
	ErrPromotionNotFound  = fmt.Errorf("promotion: %w", entities.ErrNotFound)
)
