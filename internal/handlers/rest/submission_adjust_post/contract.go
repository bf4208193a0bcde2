//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=submission_adjust_post_test
package submission_adjust_post

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
	AdjustSubmission(ctx context.Context, id string, correctedAmount int64, note, by string) (*entities.PaymentSubmission, error)
}
