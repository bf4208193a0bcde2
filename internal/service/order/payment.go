package order

import (
	"context"
	"fmt"

	"logistics/internal/entities"
)

const paymentActorID = "payment-gateway"

// PaymentURL возвращает ссылку на оплату для заказов с онлайн-оплатой.
func (s *Service) PaymentURL(ctx context.Context, orderID string) (string, error) {
	o, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return "", err
	}
	if !o.RequiresOnlinePayment() {
		return "", ErrNotOnlinePayment
	}
	if o.PaymentStatus != entities.PaymentUnpaid {
		return "", ErrAlreadyPaid
	}

	url, err := s.payments.CreatePaymentURL(ctx, o.ID, o.PayableFee())
	if err != nil {
		return "", fmt.Errorf("create payment url: %w", err)
	}
	return url, nil
}

// MarkPaid обрабатывает callback шлюза. Повторный callback по оплаченному заказу ничего не меняет.
func (s *Service) MarkPaid(ctx context.Context, callback entities.PaymentCallback) (*entities.Order, error) {
	if !isValidID(callback.OrderID) {
		return nil, fmt.Errorf("%w: order id is required", ErrInvalidOrder)
	}
	if err := s.payments.VerifyCallback(callback); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSignature, err)
	}

	var result *entities.Order
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		current, err := s.lockOne(ctx, callback.OrderID)
		if err != nil {
			return err
		}

		switch {
		case current.PaymentStatus == entities.PaymentPaid:
			result = current
			return nil
		case current.PaymentStatus == entities.PaymentRefunded:
			return ErrAlreadyPaid
		case !current.RequiresOnlinePayment():
			return ErrNotOnlinePayment
		case current.PayableFee() != callback.Amount:
			return fmt.Errorf("%w: paid %d, payable %d", ErrPaymentMismatch, callback.Amount, current.PayableFee())
		}

		next := *current
		next.PaymentStatus = entities.PaymentPaid
		next.UpdatedAt = s.now()
		result, err = s.repository.Update(ctx, next, current.Version)
		if err != nil {
			return fmt.Errorf("update order: %w", err)
		}

		officeID := s.settlementOfficeID
		if current.FromOfficeID != nil {
			officeID = *current.FromOfficeID
		}
		orderID := current.ID
		_, err = s.ledger.PostTransaction(ctx, entities.TransactionPost{
			Type:      entities.TransactionIncome,
			Purpose:   entities.PurposeShippingService,
			Amount:    callback.Amount,
			OfficeID:  officeID,
			OrderID:   &orderID,
			Note:      "online payment " + callback.Reference,
			CreatedBy: paymentActorID,
		})
		if err != nil {
			return fmt.Errorf("post shipping income: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// MarkRefunded вызывается журналом при подтверждении проводки Refund.
func (s *Service) MarkRefunded(ctx context.Context, tx entities.Transaction) error {
	if tx.OrderID == nil {
		return fmt.Errorf("%w: refund %s has no order", ErrRefundNotApplicable, tx.ID)
	}

	return s.txManager.Do(ctx, func(ctx context.Context) error {
		current, err := s.lockOne(ctx, *tx.OrderID)
		if err != nil {
			return err
		}
		switch current.PaymentStatus {
		case entities.PaymentRefunded:
			return nil
		case entities.PaymentUnpaid:
			return fmt.Errorf("%w: order %s was never paid", ErrRefundNotApplicable, current.ID)
		}

		next := *current
		next.PaymentStatus = entities.PaymentRefunded
		next.UpdatedAt = s.now()
		if _, err := s.repository.Update(ctx, next, current.Version); err != nil {
			return fmt.Errorf("update order: %w", err)
		}
		return nil
	})
}
