package outbox_relay

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"logistics/pkg/logger"
)

var EventsPublishedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "outbox_events_published_total",
		Help: "Outbox events handed to the broker",
	},
	[]string{"result"},
)

// OutboxRelay переносит события из таблицы outbox в Kafka.
// Выборка, публикация и отметка идут в одной транзакции: строки заблокированы,
// второй экземпляр relay их пропустит. Доставка at-least-once.
type OutboxRelay struct {
	log       logger.Logger
	outbox    Outbox
	producer  Producer
	tx        TxManager
	interval  time.Duration
	batchSize int
}

func NewOutboxRelay(log logger.Logger, outbox Outbox, producer Producer, tx TxManager, interval time.Duration, batchSize int) *OutboxRelay {
	return &OutboxRelay{
		log:       log,
		outbox:    outbox,
		producer:  producer,
		tx:        tx,
		interval:  interval,
		batchSize: batchSize,
	}
}

func (o *OutboxRelay) TTL() time.Duration {
	return o.interval
}

func (o *OutboxRelay) Do(ctx context.Context) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, o.interval)
	defer cancel()

	var (
		fetched    int
		sent       []string
		publishErr error
	)
	err := o.tx.Do(ctxWithTimeout, func(ctx context.Context) error {
		events, err := o.outbox.FetchPending(ctx, o.batchSize)
		if err != nil {
			return err
		}
		fetched = len(events)
		if fetched == 0 {
			return nil
		}

		// частичный успех фиксируем, остальное уйдет следующим тиком
		sent, publishErr = o.producer.Publish(ctx, events)
		if len(sent) == 0 {
			return nil
		}
		return o.outbox.MarkSent(ctx, sent)
	})
	if err != nil {
		return fmt.Errorf("relay outbox: %w", err)
	}

	if len(sent) > 0 {
		EventsPublishedTotal.WithLabelValues("ok").Add(float64(len(sent)))
	}
	if failed := fetched - len(sent); failed > 0 {
		EventsPublishedTotal.WithLabelValues("error").Add(float64(failed))
	}
	if publishErr != nil {
		return fmt.Errorf("publish outbox events: %w", publishErr)
	}

	if len(sent) > 0 {
		o.log.With(
			logger.NewField("events", len(sent)),
		).Info("outbox relayed")
	}
	return nil
}

func (o *OutboxRelay) Info() string {
	return "outbox relay"
}
