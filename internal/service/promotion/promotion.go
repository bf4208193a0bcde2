package promotion

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"logistics/internal/entities"
)

type Service struct {
	repository Repository
	now        func() time.Time
}

func New(repository Repository) *Service {
	return &Service{
		repository: repository,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// NormalizeCode: коды акций сравниваются без учета регистра.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func (s *Service) CreatePromotion(ctx context.Context, create entities.PromotionCreate) (*entities.Promotion, error) {
	create.Code = NormalizeCode(create.Code)
	if err := create.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPromotion, err)
	}

	status := entities.PromotionActive
	if !create.EndDate.After(s.now()) {
		status = entities.PromotionExpired
	}
	return s.repository.Create(ctx, entities.Promotion{
		ID:                uuid.NewString(),
		Code:              create.Code,
		DiscountType:      create.DiscountType,
		DiscountValue:     create.DiscountValue,
		MinOrderValue:     create.MinOrderValue,
		MaxDiscountAmount: create.MaxDiscountAmount,
		StartDate:         create.StartDate,
		EndDate:           create.EndDate,
		UsageLimit:        create.UsageLimit,
		Status:            status,
		CreatedAt:         s.now(),
	})
}

func (s *Service) GetPromotion(ctx context.Context, code string) (*entities.Promotion, error) {
	code = NormalizeCode(code)
	if code == "" {
		return nil, fmt.Errorf("%w: code is required", ErrInvalidPromotion)
	}
	return s.repository.GetByCode(ctx, code)
}

func (s *Service) ListPromotions(ctx context.Context, status *entities.PromotionStatus) ([]entities.Promotion, error) {
	return s.repository.List(ctx, status)
}

// ExpirePromotions переводит закончившиеся акции в expired. Вызывается фоновой задачей.
func (s *Service) ExpirePromotions(ctx context.Context, now time.Time) (int64, error) {
	n, err := s.repository.ExpireEnded(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("expire promotions: %w", err)
	}
	return n, nil
}
