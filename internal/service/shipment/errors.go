package shipment

import (
	"errors"
	"fmt"

	"logistics/internal/entities"
)

var (
	ErrInvalidShipment     = fmt.Errorf("invalid shipment: %w", entities.ErrValidation)
	ErrShipmentNotFound    = fmt.Errorf("shipment: %w", entities.ErrNotFound)
	ErrVersionConflict     = fmt.Errorf("shipment version changed: %w", entities.ErrConcurrencyConflict)
	ErrOrderAlreadyShipped = fmt.Errorf("order already in an active shipment: %w", entities.ErrConcurrencyConflict)
	ErrIllegalStatus       = fmt.Errorf("shipment status: %w", entities.ErrIllegalTransition)

	ErrPartialBatchRejected = errors.New("partial batch rejected")
	ErrIncompleteShipment   = errors.New("incomplete shipment")
)
