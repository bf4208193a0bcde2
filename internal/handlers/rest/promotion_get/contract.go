//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=promotion_get_test
package promotion_get

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
	GetPromotion(ctx context.Context, code string) (*entities.Promotion, error)
}
