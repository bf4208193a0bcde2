//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=submission_reject_post_test
package submission_reject_post

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
	RejectSubmission(ctx context.Context, id, reason, by string) (*entities.PaymentSubmission, error)
}
