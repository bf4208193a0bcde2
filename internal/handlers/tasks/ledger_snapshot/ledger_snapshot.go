package ledger_snapshot

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/robfig/cron/v3"
	"logistics/internal/entities"
	"logistics/pkg/logger"
)

const runTimeout = time.Minute

var OfficeBalance = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "ledger_office_balance",
		Help: "Confirmed income, expense and balance per office at the last snapshot",
	},
	[]string{"office_id", "kind"},
)

type Service interface {
	Balance(ctx context.Context, officeID *string) ([]entities.OfficeBalance, error)
}

// Job по расписанию снимает балансы офисов из подтвержденных проводок.
type Job struct {
	log     logger.Logger
	service Service
	spec    string
	cron    *cron.Cron
}

func New(log logger.Logger, service Service, spec string) *Job {
	return &Job{
		log:     log.With(logger.NewField("job", "ledger_snapshot")),
		service: service,
		spec:    spec,
		cron:    cron.New(),
	}
}

func (j *Job) Start() error {
	if _, err := j.cron.AddFunc(j.spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
		defer cancel()

		if err := j.Snapshot(ctx); err != nil {
			j.log.With(logger.NewField("error", err)).Error("ledger snapshot failed")
		}
	}); err != nil {
		return fmt.Errorf("schedule ledger snapshot %q: %w", j.spec, err)
	}

	j.cron.Start()
	j.log.With(logger.NewField("schedule", j.spec)).Info("ledger snapshot job started")
	return nil
}

// Stop ждет завершения текущего снимка, если он идет.
func (j *Job) Stop() {
	<-j.cron.Stop().Done()
	j.log.Info("ledger snapshot job stopped")
}

func (j *Job) Snapshot(ctx context.Context) error {
	balances, err := j.service.Balance(ctx, nil)
	if err != nil {
		return err
	}

	var total int64
	for _, b := range balances {
		OfficeBalance.WithLabelValues(b.OfficeID, "income").Set(float64(b.Income))
		OfficeBalance.WithLabelValues(b.OfficeID, "expense").Set(float64(b.Expense))
		OfficeBalance.WithLabelValues(b.OfficeID, "balance").Set(float64(b.Net()))
		total += b.Net()
	}

	j.log.With(
		logger.NewField("offices", len(balances)),
		logger.NewField("total_balance", total),
	).Info("ledger snapshot")
	return nil
}
