//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=order_test
package order

import (
	"context"

	"logistics/internal/entities"
	"logistics/pkg/logger"
)

type Repository interface {
	Create(ctx context.Context, order entities.Order) (*entities.Order, error)
	GetByID(ctx context.Context, id string) (*entities.Order, error)
	GetByTrackingNumber(ctx context.Context, trackingNumber string) (*entities.Order, error)
	List(ctx context.Context, filter entities.OrderFilter) ([]entities.Order, error)
	// LockByIDs берет FOR UPDATE по возрастанию id. Отсутствующие id просто не попадают в результат.
	LockByIDs(ctx context.Context, ids []string) ([]entities.Order, error)
	// Update пишет заказ, если версия в БД равна expectedVersion, и увеличивает ее.
	Update(ctx context.Context, order entities.Order, expectedVersion int64) (*entities.Order, error)
	// ActiveShipmentDriver возвращает водителя активной поездки заказа или "", если заказ ни в одной.
	ActiveShipmentDriver(ctx context.Context, orderID string) (string, error)
}

type PromotionRepository interface {
	GetByCode(ctx context.Context, code string) (*entities.Promotion, error)
	GetByID(ctx context.Context, id string) (*entities.Promotion, error)
	IncrementUsage(ctx context.Context, id string) error
	DecrementUsage(ctx context.Context, id string) error
}

type Ledger interface {
	PostTransaction(ctx context.Context, post entities.TransactionPost) (*entities.Transaction, error)
}

type OfficeDirectory interface {
	GetOfficesServingRegion(ctx context.Context, regionCode string) ([]entities.Office, error)
}

type PaymentGateway interface {
	CreatePaymentURL(ctx context.Context, orderID string, amount int64) (string, error)
	VerifyCallback(callback entities.PaymentCallback) error
}

type Outbox interface {
	Add(ctx context.Context, event entities.OutboxEvent) error
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

type serviceLogger interface {
	Warn(msg string, fields ...logger.Field)
}
