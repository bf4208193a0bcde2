package dto

import (
	"time"

	"logistics/internal/entities"
)

type PromotionCreate struct {
	Code              string    `json:"code"`
	DiscountType      string    `json:"discount_type"`
	DiscountValue     int64     `json:"discount_value"`
	MinOrderValue     int64     `json:"min_order_value"`
	MaxDiscountAmount *int64    `json:"max_discount_amount,omitempty"`
	StartDate         time.Time `json:"start_date"`
	EndDate           time.Time `json:"end_date"`
	UsageLimit        *int64    `json:"usage_limit,omitempty"`
}

type Promotion struct {
	ID                string    `json:"id"`
	Code              string    `json:"code"`
	DiscountType      string    `json:"discount_type"`
	DiscountValue     int64     `json:"discount_value"`
	MinOrderValue     int64     `json:"min_order_value"`
	MaxDiscountAmount *int64    `json:"max_discount_amount,omitempty"`
	StartDate         time.Time `json:"start_date"`
	EndDate           time.Time `json:"end_date"`
	UsageLimit        *int64    `json:"usage_limit,omitempty"`
	UsedCount         int64     `json:"used_count"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"created_at"`
}

func (c PromotionCreate) ToDomain() entities.PromotionCreate {
	return entities.PromotionCreate{
		Code:              c.Code,
		DiscountType:      entities.DiscountType(c.DiscountType),
		DiscountValue:     c.DiscountValue,
		MinOrderValue:     c.MinOrderValue,
		MaxDiscountAmount: c.MaxDiscountAmount,
		StartDate:         c.StartDate,
		EndDate:           c.EndDate,
		UsageLimit:        c.UsageLimit,
	}
}

func FromPromotion(p entities.Promotion) Promotion {
	return Promotion{
		ID:                p.ID,
		Code:              p.Code,
		DiscountType:      string(p.DiscountType),
		DiscountValue:     p.DiscountValue,
		MinOrderValue:     p.MinOrderValue,
		MaxDiscountAmount: p.MaxDiscountAmount,
		StartDate:         p.StartDate,
		EndDate:           p.EndDate,
		UsageLimit:        p.UsageLimit,
		UsedCount:         p.UsedCount,
		Status:            string(p.Status),
		CreatedAt:         p.CreatedAt,
	}
}

func FromPromotions(promos []entities.Promotion) []Promotion {
	out := make([]Promotion, 0, len(promos))
	for _, p := range promos {
		out = append(out, FromPromotion(p))
	}
	return out
}
