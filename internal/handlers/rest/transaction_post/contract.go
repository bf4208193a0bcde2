//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=transaction_post_test
package transaction_post

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
	PostTransaction(ctx context.Context, post entities.TransactionPost) (*entities.Transaction, error)
}
