//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=order_payment_url_get_test
package order_payment_url_get

import (
	"context"

	"logistics/pkg/logger"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	PaymentURL(ctx context.Context, orderID string) (string, error)
}
