//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=ledger_test
package ledger

import (
	"context"

	"logistics/internal/entities"
)

type Repository interface {
	Create(ctx context.Context, tx entities.Transaction) (*entities.Transaction, error)
	GetByID(ctx context.Context, id string) (*entities.Transaction, error)
	LockByID(ctx context.Context, id string) (*entities.Transaction, error)
	// Resolve переводит Pending проводку в терминальный статус.
	Resolve(ctx context.Context, tx entities.Transaction) (*entities.Transaction, error)
	List(ctx context.Context, filter entities.TransactionFilter) ([]entities.Transaction, error)
	Balances(ctx context.Context, officeID *string) ([]entities.OfficeBalance, error)
}

type Outbox interface {
	Add(ctx context.Context, event entities.OutboxEvent) error
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}
