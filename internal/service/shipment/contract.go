//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=shipment_test
package shipment

import (
	"context"

	"logistics/internal/entities"
)

type Repository interface {
	Create(ctx context.Context, shipment entities.Shipment) (*entities.Shipment, error)
	GetByID(ctx context.Context, id string) (*entities.Shipment, error)
	LockByID(ctx context.Context, id string) (*entities.Shipment, error)
	Update(ctx context.Context, shipment entities.Shipment, expectedVersion int64) (*entities.Shipment, error)
	// ActiveByOrders возвращает order_id -> id активной поездки.
	ActiveByOrders(ctx context.Context, orderIDs []string) (map[string]string, error)
	DeactivateOrders(ctx context.Context, shipmentID string) error
}

type OrderService interface {
	LockOrders(ctx context.Context, ids []string) ([]entities.Order, error)
	TransitionBatch(ctx context.Context, steps []entities.OrderStep) ([]entities.Order, error)
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
