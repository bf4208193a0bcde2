//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=promotion_test
package promotion

import (
	"context"
	"time"

	"logistics/internal/entities"
)

type Repository interface {
	// Create возвращает ErrPromotionCodeTaken, если код уже занят.
	Create(ctx context.Context, promotion entities.Promotion) (*entities.Promotion, error)
	GetByCode(ctx context.Context, code string) (*entities.Promotion, error)
	List(ctx context.Context, status *entities.PromotionStatus) ([]entities.Promotion, error)
	// ExpireEnded переводит активные акции с EndDate < now в expired и возвращает их число.
	ExpireEnded(ctx context.Context, now time.Time) (int64, error)
}
