//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=promotions_get_test
package promotions_get

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
	ListPromotions(ctx context.Context, status *entities.PromotionStatus) ([]entities.Promotion, error)
}
