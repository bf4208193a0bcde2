//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=request_test
package request

import (
	"context"

	"logistics/internal/entities"
)

type Repository interface {
	Create(ctx context.Context, request entities.CustomerRequest) (*entities.CustomerRequest, error)
	GetByID(ctx context.Context, id string) (*entities.CustomerRequest, error)
	LockByID(ctx context.Context, id string) (*entities.CustomerRequest, error)
	Update(ctx context.Context, request entities.CustomerRequest) (*entities.CustomerRequest, error)
	ListByOrder(ctx context.Context, orderID string) ([]entities.CustomerRequest, error)
}

type OrderService interface {
	GetOrder(ctx context.Context, id string) (*entities.Order, error)
	Transition(ctx context.Context, transition entities.OrderTransition) (*entities.Order, error)
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
