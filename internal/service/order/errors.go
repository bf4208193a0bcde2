package order

import (
	"errors"
	"fmt"

	"logistics/internal/entities"
)

var (
	ErrInvalidOrder        = fmt.Errorf("invalid order: %w", entities.ErrValidation)
	ErrOrderNotFound       = fmt.Errorf("order: %w", entities.ErrNotFound)
	ErrVersionConflict     = fmt.Errorf("order version changed: %w", entities.ErrConcurrencyConflict)
	ErrNotOwner            = fmt.Errorf("order belongs to another owner: %w", entities.ErrIllegalTransition)
	ErrNoServiceableOffice = errors.New("no serviceable office")
	ErrInternalAction      = fmt.Errorf("action is performed by the shipment batcher only: %w", entities.ErrIllegalTransition)
	ErrNotShipmentDriver   = fmt.Errorf("driver does not carry the order: %w", entities.ErrIllegalTransition)

	ErrTrackingNumberTaken = errors.New("tracking number already taken")

	ErrNotOnlinePayment    = fmt.Errorf("order is paid in cash: %w", entities.ErrValidation)
	ErrAlreadyPaid         = fmt.Errorf("order already paid: %w", entities.ErrIllegalTransition)
	ErrPaymentMismatch     = fmt.Errorf("paid amount differs from payable fee: %w", entities.ErrValidation)
	ErrInvalidSignature    = fmt.Errorf("invalid payment signature: %w", entities.ErrValidation)
	ErrRefundNotApplicable = fmt.Errorf("refund not applicable: %w", entities.ErrIllegalTransition)
)
