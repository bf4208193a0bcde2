//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=outbox_relay_test
package outbox_relay

import (
	"context"

	"logistics/internal/entities"
)

type Outbox interface {
	FetchPending(ctx context.Context, limit int) ([]entities.OutboxEvent, error)
	MarkSent(ctx context.Context, ids []string) error
}

type Producer interface {
	Publish(ctx context.Context, events []entities.OutboxEvent) ([]string, error)
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
