//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=payment_callback_post_test
package payment_callback_post

import (
	"context"

	"logistics/internal/entities"
	"logistics/pkg/logger"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	MarkPaid(ctx context.Context, callback entities.PaymentCallback) (*entities.Order, error)
}
