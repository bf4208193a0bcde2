//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=submission_confirm_post_test
package submission_confirm_post

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
	ConfirmSubmission(ctx context.Context, id, confirmedBy string) (*entities.PaymentSubmission, error)
}
