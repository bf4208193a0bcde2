package entities

import (
	"fmt"
	"time"
)

type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

type PromotionStatus string

const (
	PromotionActive   PromotionStatus = "active"
	PromotionInactive PromotionStatus = "inactive"
	PromotionExpired  PromotionStatus = "expired"
)

type Promotion struct {
	ID                string
	Code              string
	DiscountType      DiscountType
	DiscountValue     int64
	MinOrderValue     int64
	MaxDiscountAmount *int64
	StartDate         time.Time
	EndDate           time.Time
	UsageLimit        *int64
	UsedCount         int64
	Status            PromotionStatus
	CreatedAt         time.Time
}

// Exhausted: лимит использований выбран.
func (p Promotion) Exhausted() bool {
	return p.UsageLimit != nil && p.UsedCount >= *p.UsageLimit
}

func (p Promotion) InWindow(now time.Time) bool {
	return !now.Before(p.StartDate) && !now.After(p.EndDate)
}

type PromotionCreate struct {
	Code              string
	DiscountType      DiscountType
	DiscountValue     int64
	MinOrderValue     int64
	MaxDiscountAmount *int64
	StartDate         time.Time
	EndDate           time.Time
	UsageLimit        *int64
}

func (p PromotionCreate) Validate() error {
	if p.Code == "" {
		return fmt.Errorf("%w: promotion code is required", ErrValidation)
	}
	switch p.DiscountType {
	case DiscountPercentage:
		if p.DiscountValue <= 0 || p.DiscountValue > 100 {
			return fmt.Errorf("%w: percentage must be in (0, 100]", ErrValidation)
		}
	case DiscountFixed:
		if p.DiscountValue <= 0 {
			return fmt.Errorf("%w: fixed discount must be > 0", ErrValidation)
		}
	default:
		return fmt.Errorf("%w: unknown discount type %q", ErrValidation, p.DiscountType)
	}
	if p.MinOrderValue < 0 {
		return fmt.Errorf("%w: min order value must be >= 0", ErrValidation)
	}
	if p.MaxDiscountAmount != nil && *p.MaxDiscountAmount <= 0 {
		return fmt.Errorf("%w: max discount must be > 0", ErrValidation)
	}
	if p.UsageLimit != nil && *p.UsageLimit <= 0 {
		return fmt.Errorf("%w: usage limit must be > 0", ErrValidation)
	}
	if !p.EndDate.After(p.StartDate) {
		return fmt.Errorf("%w: end date must be after start date", ErrValidation)
	}
	return nil
}
