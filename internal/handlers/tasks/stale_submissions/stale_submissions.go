package stale_submissions

import (
	"context"
	"time"

	"github.com/AlekSi/pointer"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"logistics/internal/entities"
	"logistics/pkg/logger"
)

const scanLimit = 500

var OverdueSubmissions = promauto.NewGauge(
	prometheus.GaugeOpts{
		Name: "submissions_stale",
		Help: "Pending submissions older than the review window",
	},
)

// StaleSubmissions напоминает о сдачах, которые офис не сверил вовремя.
// Автоматически сдачи не отклоняются.
type StaleSubmissions struct {
	log      logger.Logger
	service  Service
	interval time.Duration
	window   time.Duration
	now      func() time.Time
}

func New(log logger.Logger, service Service, interval, window time.Duration) *StaleSubmissions {
	return &StaleSubmissions{
		log:      log,
		service:  service,
		interval: interval,
		window:   window,
		now:      time.Now,
	}
}

func (s *StaleSubmissions) TTL() time.Duration {
	return s.interval
}

func (s *StaleSubmissions) Do(ctx context.Context) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, s.interval)
	defer cancel()

	now := s.now()
	subs, err := s.service.ListSubmissions(ctxWithTimeout, entities.SubmissionFilter{
		Status:    pointer.To(entities.SubmissionPending),
		CreatedLT: pointer.To(now.Add(-s.window)),
		Limit:     scanLimit,
	})
	if err != nil {
		return err
	}

	OverdueSubmissions.Set(float64(len(subs)))

	for _, sub := range subs {
		s.log.With(
			logger.NewField("submission_id", sub.ID),
			logger.NewField("office_id", sub.OfficeID),
			logger.NewField("submitted_by", sub.SubmittedBy),
			logger.NewField("amount", sub.TotalAmountSubmitted),
			logger.NewField("age", now.Sub(sub.CreatedAt).Round(time.Minute).String()),
		).Warn("submission awaiting reconciliation")
	}
	return nil
}

func (s *StaleSubmissions) Info() string {
	return "stale submissions"
}
