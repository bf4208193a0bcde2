package kafka

import (
	"context"
	"errors"
	"fmt"

	"github.com/IBM/sarama"
	"logistics/internal/entities"
	"logistics/internal/pkg/config"
	"logistics/pkg/logger"
)

type Producer struct {
	log      logger.Logger
	producer sarama.SyncProducer
}

func NewSaramaProducerConfig(versionStr string) (*sarama.Config, error) {
	cfg := sarama.NewConfig()

	version, err := sarama.ParseKafkaVersion(versionStr)
	if err != nil {
		return nil, fmt.Errorf("parse kafka version %q: %w", versionStr, err)
	}
	cfg.Version = version

	// SyncProducer требует Return.Successes
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Idempotent = true
	cfg.Net.MaxOpenRequests = 1
	cfg.Producer.Retry.Max = 5

	return cfg, nil
}

func NewProducer(ctx context.Context, log logger.Logger, cfg *config.Kafka, brokers []string) (*Producer, error) {
	saramaConfig, err := NewSaramaProducerConfig(cfg.Sarama.Version)
	if err != nil {
		return nil, fmt.Errorf("build saramaConfig: %w", err)
	}

	kafkaLog := log.With(
		logger.NewField("brokers", brokers),
		logger.NewField("component", "kafka-producer"),
	)

	err = pingKafka(ctx, kafkaLog, brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("kafka connection: %w", err)
	}

	producer, err := sarama.NewSyncProducer(brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create producer: %w", err)
	}

	return NewProducerFromSarama(kafkaLog, producer), nil
}

func NewProducerFromSarama(log logger.Logger, producer sarama.SyncProducer) *Producer {
	return &Producer{
		log:      log,
		producer: producer,
	}
}

// Publish отправляет пачку событий outbox. Ключ сообщения равен ключу события, поэтому события
// одного заказа попадают в одну партицию и сохраняют порядок.
// Возвращает id событий, которые брокер принял; при частичной ошибке их можно пометить отправленными.
func (p *Producer) Publish(ctx context.Context, events []entities.OutboxEvent) ([]string, error) {
	if len(events) == 0 {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	msgs := make([]*sarama.ProducerMessage, 0, len(events))
	for _, e := range events {
		msgs = append(msgs, &sarama.ProducerMessage{
			Topic:    e.Topic,
			Key:      sarama.StringEncoder(e.Key),
			Value:    sarama.ByteEncoder(e.Payload),
			Headers:  []sarama.RecordHeader{{Key: []byte("event_id"), Value: []byte(e.ID)}},
			Metadata: e.ID,
		})
	}

	err := p.producer.SendMessages(msgs)
	if err == nil {
		sent := make([]string, 0, len(events))
		for _, e := range events {
			sent = append(sent, e.ID)
		}
		return sent, nil
	}

	var produceErrs sarama.ProducerErrors
	if !errors.As(err, &produceErrs) {
		return nil, fmt.Errorf("send messages: %w", err)
	}

	failed := make(map[string]struct{}, len(produceErrs))
	for _, pe := range produceErrs {
		if id, ok := pe.Msg.Metadata.(string); ok {
			failed[id] = struct{}{}
		}
	}
	sent := make([]string, 0, len(events)-len(failed))
	for _, e := range events {
		if _, ok := failed[e.ID]; !ok {
			sent = append(sent, e.ID)
		}
	}

	p.log.With(
		logger.NewField("failed", len(failed)),
		logger.NewField("sent", len(sent)),
	).Warn("kafka producer: partial batch failure")

	return sent, fmt.Errorf("send messages: %d of %d failed: %w", len(failed), len(events), err)
}

func (p *Producer) Close() error {
	return p.producer.Close()
}
