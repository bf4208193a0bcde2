package promotion_expiry

import (
	"context"
	"time"

	"logistics/pkg/logger"
)

type Service interface {
	ExpirePromotions(ctx context.Context, now time.Time) (int64, error)
}

type PromotionExpiry struct {
	log      logger.Logger
	service  Service
	interval time.Duration
}

func NewPromotionExpiry(log logger.Logger, service Service, interval time.Duration) *PromotionExpiry {
	return &PromotionExpiry{
		log:      log,
		service:  service,
		interval: interval,
	}
}

func (p *PromotionExpiry) TTL() time.Duration {
	return p.interval
}

func (p *PromotionExpiry) Do(ctx context.Context) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, p.interval)
	defer cancel()

	expired, err := p.service.ExpirePromotions(ctxWithTimeout, time.Now().UTC())

	if expired > 0 {
		p.log.With(
			logger.NewField("expired_promotions", expired),
		).Info("promotion expiry")
	}

	return err
}

func (p *PromotionExpiry) Info() string {
	return "promotion expiry"
}
