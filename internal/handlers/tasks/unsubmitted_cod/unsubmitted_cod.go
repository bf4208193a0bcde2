package unsubmitted_cod

import (
	"context"
	"sort"
	"time"

	"logistics/pkg/logger"
)

// UnsubmittedCOD находит наложенные платежи, которые водители держат дольше SLA.
// Задача только сигналит, деньги не двигает.
type UnsubmittedCOD struct {
	log      logger.Logger
	service  Service
	interval time.Duration
	sla      time.Duration
	now      func() time.Time
}

func NewUnsubmittedCOD(log logger.Logger, service Service, interval, sla time.Duration) *UnsubmittedCOD {
	return &UnsubmittedCOD{
		log:      log,
		service:  service,
		interval: interval,
		sla:      sla,
		now:      time.Now,
	}
}

type driverDebt struct {
	orders int
	amount int64
	oldest time.Time
}

func (u *UnsubmittedCOD) TTL() time.Duration {
	return u.interval
}

func (u *UnsubmittedCOD) Do(ctx context.Context) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, u.interval)
	defer cancel()

	holdings, err := u.service.UnsubmittedSince(ctxWithTimeout, u.now().Add(-u.sla))
	if err != nil {
		return err
	}

	debts := make(map[string]*driverDebt)
	var total int64
	for _, h := range holdings {
		d, ok := debts[h.DriverID]
		if !ok {
			d = &driverDebt{oldest: h.DeliveredAt}
			debts[h.DriverID] = d
		}
		d.orders++
		d.amount += h.Amount
		if h.DeliveredAt.Before(d.oldest) {
			d.oldest = h.DeliveredAt
		}
		total += h.Amount
	}

	OverdueOrders.Set(float64(len(holdings)))
	OverdueAmount.Set(float64(total))
	OverdueDrivers.Set(float64(len(debts)))

	drivers := make([]string, 0, len(debts))
	for id := range debts {
		drivers = append(drivers, id)
	}
	sort.Strings(drivers)

	for _, id := range drivers {
		d := debts[id]
		u.log.With(
			logger.NewField("driver_id", id),
			logger.NewField("orders", d.orders),
			logger.NewField("amount", d.amount),
			logger.NewField("oldest_delivered_at", d.oldest),
		).Warn("cod not submitted within sla")
	}
	return nil
}

func (u *UnsubmittedCOD) Info() string {
	return "unsubmitted cod"
}
