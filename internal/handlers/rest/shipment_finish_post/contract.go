//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=shipment_finish_post_test
package shipment_finish_post

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
	FinishShipment(ctx context.Context, id string, status entities.ShipmentStatus) (*entities.Shipment, error)
}
