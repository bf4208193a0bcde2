package delivery_events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"logistics/internal/entities"
	"logistics/pkg/logger"
	retrierconfig "logistics/pkg/retrier"
	"logistics/pkg/retrier/backoff_adapter"
)

const (
	initialInterval = 50 * time.Millisecond
	maxInterval     = 1 * time.Second
	maxElapsedTime  = 5 * time.Second
	randomization   = 0.5
	multiplier      = 2.0
)

var errDuplicate = errors.New("order already in target status")

type retrier interface {
	ExecuteWithContext(ctx context.Context, fn func(context.Context) error) error
}

type Handler struct {
	orderService             Service
	log                      handlerLogger
	retrier                  retrier
	messageProcessingTimeout time.Duration
}

func New(log handlerLogger, orderService Service, timeout time.Duration) *Handler {
	retryConfig := retrierconfig.Config{
		InitialInterval: initialInterval,
		MaxInterval:     maxInterval,
		MaxElapsedTime:  maxElapsedTime,
		Randomization:   randomization,
		Multiplier:      multiplier,
		// повторяется только гонка версий, остальные ошибки окончательные
		ShouldRetry: func(err error) bool {
			return errors.Is(err, entities.ErrConcurrencyConflict)
		},
	}

	return &Handler{
		orderService:             orderService,
		log:                      log.With(logger.NewField("topic", "delivery.events")),
		retrier:                  backoff_adapter.New(retryConfig),
		messageProcessingTimeout: timeout,
	}
}

func (h *Handler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *Handler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *Handler) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				h.log.Info("delivery.events: claim.Messages() closed, exiting ConsumeClaim")
				return nil
			}

			shouldExit := h.messageProcessing(sess, message)
			if shouldExit {
				return nil
			}
		case <-sess.Context().Done():
			// rebalance или остановка consumer group
			h.log.Info("delivery.events: session context done, exiting ConsumeClaim")
			return nil
		}
	}
}

// messageProcessing обрабатывает одно сообщение. Возвращает true, если ConsumeClaim нужно прервать
// без коммита смещения (контекст отменен, сообщение будет прочитано повторно).
func (h *Handler) messageProcessing(sess sarama.ConsumerGroupSession, message *sarama.ConsumerMessage) bool {
	ctx, cancel := context.WithTimeout(sess.Context(), h.messageProcessingTimeout)
	defer cancel()

	var dto deliveryEvent
	if err := json.Unmarshal(message.Value, &dto); err != nil {
		h.log.With(
			logger.NewField("error", err),
			logger.NewField("offset", message.Offset),
		).Error("delivery.events handler received bad message")
		sess.MarkMessage(message, "")
		return false
	}

	event := toDomain(dto)
	msgLog := h.log.With(
		logger.NewField("event", event.EventID),
		logger.NewField("order", event.OrderID),
		logger.NewField("kind", string(event.Kind)),
		logger.NewField("offset", message.Offset),
	)

	order, err := h.process(ctx, event)
	if err != nil {
		switch {
		case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
			msgLog.With(
				logger.NewField("error", err),
			).Warn("delivery.events handler context cancelled, message will be reprocessed")
			return true
		case errors.Is(err, errDuplicate):
			msgLog.Info("delivery.events: duplicate event skipped")
		case errors.Is(err, entities.ErrValidation), errors.Is(err, entities.ErrNotFound):
			msgLog.With(
				logger.NewField("error", err),
			).Warn("delivery.events handler rejected event")
		case errors.Is(err, entities.ErrIllegalTransition):
			msgLog.With(
				logger.NewField("error", err),
			).Warn("delivery.events handler: transition not allowed")
		default:
			msgLog.With(
				logger.NewField("error", err),
			).Error("delivery.events handler failed to process event")
		}
		sess.MarkMessage(message, "")
		return false
	}

	msgLog.With(
		logger.NewField("status", order.Status.String()),
		logger.NewField("version", order.Version),
	).Info("delivery.events: processed")

	sess.MarkMessage(message, "")
	return false
}

// process применяет событие к заказу. Версия перечитывается на каждой попытке: событие из приложения
// водителя является фактом, а конфликт версий означает лишь параллельную запись.
func (h *Handler) process(ctx context.Context, event entities.DeliveryEvent) (*entities.Order, error) {
	cmd, err := toCommand(event)
	if err != nil {
		return nil, err
	}
	target, _ := cmd.Action.TargetStatus()

	var result *entities.Order
	err = h.retrier.ExecuteWithContext(ctx, func(ctx context.Context) error {
		current, err := h.orderService.GetOrder(ctx, event.OrderID)
		if err != nil {
			return err
		}
		if current.Status == target {
			return errDuplicate
		}
		if event.Version > 0 && current.Version < event.Version {
			return fmt.Errorf("%w: event saw version %d, order is at %d", entities.ErrConcurrencyConflict, event.Version, current.Version)
		}

		result, err = h.orderService.Transition(ctx, entities.OrderTransition{
			OrderID:         current.ID,
			ExpectedVersion: current.Version,
			Command:         cmd,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
