package request

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
	orders     OrderService
	txManager  TxManager
	now        func() time.Time
}

func New(repository Repository, orders OrderService, txManager TxManager) *Service {
	return &Service{
		repository: repository,
		orders:     orders,
		txManager:  txManager,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) OpenRequest(ctx context.Context, orderID string, kind entities.RequestKind, description string, images []string, by string) (*entities.CustomerRequest, error) {
	if strings.TrimSpace(orderID) == "" || strings.TrimSpace(by) == "" {
		return nil, fmt.Errorf("%w: order and author are required", ErrInvalidRequest)
	}
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidRequest, kind)
	}
	if strings.TrimSpace(description) == "" {
		return nil, fmt.Errorf("%w: description is required", ErrInvalidRequest)
	}
	if _, err := s.orders.GetOrder(ctx, orderID); err != nil {
		return nil, err
	}
	if images == nil {
		images = []string{}
	}

	return s.repository.Create(ctx, entities.CustomerRequest{
		ID:          uuid.NewString(),
		OrderID:     orderID,
		Kind:        kind,
		Description: description,
		Images:      images,
		Status:      entities.RequestOpen,
		CreatedBy:   by,
		CreatedAt:   s.now(),
	})
}

// ResolveRequest закрывает обращение и, если нужно, проводит действие над заказом через
// общий API переходов. Если переход отклонен, обращение остается открытым.
func (s *Service) ResolveRequest(ctx context.Context, id, resolution string, by entities.Actor) (*entities.CustomerRequest, error) {
	if strings.TrimSpace(id) == "" || strings.TrimSpace(by.ID) == "" {
		return nil, fmt.Errorf("%w: id and resolver are required", ErrInvalidRequest)
	}
	if strings.TrimSpace(resolution) == "" {
		return nil, fmt.Errorf("%w: resolution is required", ErrInvalidRequest)
	}

	var result *entities.CustomerRequest
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		current, err := s.repository.LockByID(ctx, id)
		if err != nil {
			return err
		}
		if current.Status != entities.RequestOpen {
			return fmt.Errorf("%w: %s is %s", ErrRequestClosed, id, current.Status)
		}

		if err := s.actOnOrder(ctx, *current, resolution, by); err != nil {
			return err
		}

		now := s.now()
		next := *current
		next.Status = entities.RequestResolved
		next.Resolution = &resolution
		next.ResolvedBy = &by.ID
		next.ResolvedAt = &now
		result, err = s.repository.Update(ctx, next)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Service) actOnOrder(ctx context.Context, req entities.CustomerRequest, resolution string, by entities.Actor) error {
	var action entities.OrderAction
	switch req.Kind {
	case entities.RequestCancelOrder:
		action = entities.ActionCancel
	case entities.RequestDeliveryIncident:
		action = entities.ActionFailDelivery
	default:
		return nil
	}

	o, err := s.orders.GetOrder(ctx, req.OrderID)
	if err != nil {
		return err
	}
	// инцидент вне пути не меняет заказ
	if action == entities.ActionFailDelivery && o.Status != entities.OrderInTransit {
		return nil
	}

	_, err = s.orders.Transition(ctx, entities.OrderTransition{
		OrderID:         o.ID,
		ExpectedVersion: o.Version,
		Command: entities.OrderCommand{
			Action: action,
			Actor:  by,
			Reason: resolution,
		},
	})
	if err != nil {
		return fmt.Errorf("resolve %s: %w", req.Kind, err)
	}
	return nil
}

func (s *Service) DismissRequest(ctx context.Context, id, reason, by string) (*entities.CustomerRequest, error) {
	if strings.TrimSpace(id) == "" || strings.TrimSpace(by) == "" {
		return nil, fmt.Errorf("%w: id and resolver are required", ErrInvalidRequest)
	}

	var result *entities.CustomerRequest
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		current, err := s.repository.LockByID(ctx, id)
		if err != nil {
			return err
		}
		if current.Status != entities.RequestOpen {
			return fmt.Errorf("%w: %s is %s", ErrRequestClosed, id, current.Status)
		}

		now := s.now()
		next := *current
		next.Status = entities.RequestDismissed
		if reason != "" {
			next.Resolution = &reason
		}
		next.ResolvedBy = &by
		next.ResolvedAt = &now
		result, err = s.repository.Update(ctx, next)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Service) GetRequest(ctx context.Context, id string) (*entities.CustomerRequest, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: id is required", ErrInvalidRequest)
	}
	return s.repository.GetByID(ctx, id)
}

func (s *Service) ListRequests(ctx context.Context, orderID string) ([]entities.CustomerRequest, error) {
	if strings.TrimSpace(orderID) == "" {
		return nil, fmt.Errorf("%w: order id is required", ErrInvalidRequest)
	}
	return s.repository.ListByOrder(ctx, orderID)
}
