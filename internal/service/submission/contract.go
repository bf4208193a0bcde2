//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=submission_test
package submission

import (
	"context"
	"time"

	"logistics/internal/entities"
)

type Repository interface {
	// Create сохраняет сдачу и ее заказы как активные. Заказ уже в другой активной сдаче -> ErrOrderAlreadySubmitted.
	Create(ctx context.Context, submission entities.PaymentSubmission) (*entities.PaymentSubmission, error)
	GetByID(ctx context.Context, id string) (*entities.PaymentSubmission, error)
	LockByID(ctx context.Context, id string) (*entities.PaymentSubmission, error)
	Update(ctx context.Context, submission entities.PaymentSubmission, expectedVersion int64) (*entities.PaymentSubmission, error)
	DeactivateOrders(ctx context.Context, submissionID string) error
	// ActiveByOrders возвращает order_id -> id активной сдачи.
	ActiveByOrders(ctx context.Context, orderIDs []string) (map[string]string, error)
	List(ctx context.Context, filter entities.SubmissionFilter) ([]entities.PaymentSubmission, error)
	// Unsubmitted: доставленные заказы с наложенным платежом вне активных сдач.
	Unsubmitted(ctx context.Context, driverID *string, deliveredBefore *time.Time) ([]entities.CODHolding, error)
}

type OrderService interface {
	LockOrders(ctx context.Context, ids []string) ([]entities.Order, error)
}

type Ledger interface {
	PostTransaction(ctx context.Context, post entities.TransactionPost) (*entities.Transaction, error)
}

type Outbox interface {
	Add(ctx context.Context, event entities.OutboxEvent) error
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
