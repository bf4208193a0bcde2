//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=transaction_get_test
package transaction_get

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
	GetTransaction(ctx context.Context, id string) (*entities.Transaction, error)
}
