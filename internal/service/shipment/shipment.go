package shipment

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"logistics/internal/entities"
)

const cancelReason = "shipment cancelled"

// batcher выполняет переходы заказов поездки. pickup и depart доступны только ему.
var batcher = entities.Actor{ID: "shipment-batcher", Role: entities.RoleSystem}

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

// CreateShipment собирает подтвержденные заказы в поездку и переводит их в picked_up.
// Если хоть один заказ не подходит, не пишется ничего.
func (s *Service) CreateShipment(ctx context.Context, create entities.ShipmentCreate) (*entities.Shipment, error) {
	if strings.TrimSpace(create.VehicleID) == "" || strings.TrimSpace(create.DriverID) == "" {
		return nil, fmt.Errorf("%w: vehicle and driver are required", ErrInvalidShipment)
	}
	ids := dedupe(create.OrderIDs)
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: at least one order is required", ErrInvalidShipment)
	}

	var created *entities.Shipment
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		orders, err := s.orders.LockOrders(ctx, ids)
		if err != nil {
			return err
		}
		active, err := s.repository.ActiveByOrders(ctx, ids)
		if err != nil {
			return fmt.Errorf("active shipments: %w", err)
		}
		if failures := checkBatchable(ids, orders, active); len(failures) > 0 {
			return &entities.BatchError{Kind: ErrPartialBatchRejected, Failures: failures}
		}

		if _, err := s.orders.TransitionBatch(ctx, steps(ids, entities.ActionPickup, batcher, "")); err != nil {
			return asPartialBatch(err)
		}

		created, err = s.repository.Create(ctx, entities.Shipment{
			ID:        uuid.NewString(),
			VehicleID: create.VehicleID,
			DriverID:  create.DriverID,
			Status:    entities.ShipmentPending,
			OrderIDs:  ids,
			CreatedAt: s.now(),
		})
		if err != nil {
			return fmt.Errorf("create shipment: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func checkBatchable(ids []string, orders []entities.Order, active map[string]string) []entities.BatchFailure {
	byID := make(map[string]entities.Order, len(orders))
	for _, o := range orders {
		byID[o.ID] = o
	}

	var failures []entities.BatchFailure
	for _, id := range ids {
		o, ok := byID[id]
		switch {
		case !ok:
			failures = append(failures, entities.BatchFailure{OrderID: id, Reason: entities.ErrNotFound})
		case o.Status != entities.OrderConfirmed:
			failures = append(failures, entities.BatchFailure{OrderID: id, Reason: fmt.Errorf("status is %s, want confirmed", o.Status)})
		case active[id] != "":
			failures = append(failures, entities.BatchFailure{OrderID: id, Reason: fmt.Errorf("already claimed by shipment %s", active[id])})
		}
	}
	return failures
}

// StartShipment отправляет поездку в путь: все заказы picked_up переходят в in_transit.
func (s *Service) StartShipment(ctx context.Context, id string) (*entities.Shipment, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: id is required", ErrInvalidShipment)
	}

	var result *entities.Shipment
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		current, err := s.repository.LockByID(ctx, id)
		if err != nil {
			return err
		}
		if current.Status != entities.ShipmentPending {
			return fmt.Errorf("%w: cannot start %s shipment", ErrIllegalStatus, current.Status)
		}

		orders, err := s.orders.LockOrders(ctx, current.OrderIDs)
		if err != nil {
			return err
		}
		var departing []string
		for _, o := range orders {
			if o.Status == entities.OrderPickedUp {
				departing = append(departing, o.ID)
			}
		}
		if len(departing) == 0 {
			return fmt.Errorf("%w: no picked up orders to depart", ErrIllegalStatus)
		}
		if _, err := s.orders.TransitionBatch(ctx, steps(departing, entities.ActionDepart, batcher, "")); err != nil {
			return err
		}

		now := s.now()
		next := *current
		next.Status = entities.ShipmentInTransit
		next.StartTime = &now
		result, err = s.repository.Update(ctx, next, current.Version)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// FinishShipment закрывает поездку. Completed требует, чтобы каждый заказ дошел до конечного
// статуса доставки. Cancelled возвращает заказы: picked_up -> confirmed, in_transit -> returning.
func (s *Service) FinishShipment(ctx context.Context, id string, status entities.ShipmentStatus) (*entities.Shipment, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: id is required", ErrInvalidShipment)
	}
	if status != entities.ShipmentCompleted && status != entities.ShipmentCancelled {
		return nil, fmt.Errorf("%w: finish status must be Completed or Cancelled, got %q", ErrInvalidShipment, status)
	}

	var result *entities.Shipment
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		current, err := s.repository.LockByID(ctx, id)
		if err != nil {
			return err
		}
		if current.Status == status {
			result = current
			return nil
		}
		if !current.Status.IsActive() {
			return fmt.Errorf("%w: shipment is already %s", ErrIllegalStatus, current.Status)
		}

		orders, err := s.orders.LockOrders(ctx, current.OrderIDs)
		if err != nil {
			return err
		}
		if status == entities.ShipmentCompleted {
			err = checkComplete(orders)
		} else {
			err = s.releaseOrders(ctx, orders)
		}
		if err != nil {
			return err
		}
		if err := s.repository.DeactivateOrders(ctx, id); err != nil {
			return fmt.Errorf("release memberships: %w", err)
		}

		now := s.now()
		next := *current
		next.Status = status
		next.EndTime = &now
		result, err = s.repository.Update(ctx, next, current.Version)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func checkComplete(orders []entities.Order) error {
	var failures []entities.BatchFailure
	for _, o := range orders {
		switch o.Status {
		case entities.OrderDelivered, entities.OrderReturned, entities.OrderCancelled:
		default:
			failures = append(failures, entities.BatchFailure{OrderID: o.ID, Reason: fmt.Errorf("status is %s", o.Status)})
		}
	}
	if len(failures) > 0 {
		return &entities.BatchError{Kind: ErrIncompleteShipment, Failures: failures}
	}
	return nil
}

func (s *Service) releaseOrders(ctx context.Context, orders []entities.Order) error {
	var batch []entities.OrderStep
	for _, o := range orders {
		switch o.Status {
		case entities.OrderPickedUp:
			batch = append(batch, step(o.ID, entities.ActionRelease, batcher, ""))
		case entities.OrderInTransit:
			batch = append(batch, step(o.ID, entities.ActionFailDelivery, batcher, cancelReason))
		}
	}
	if len(batch) == 0 {
		return nil
	}
	_, err := s.orders.TransitionBatch(ctx, batch)
	return err
}

func (s *Service) GetShipment(ctx context.Context, id string) (*entities.Shipment, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: id is required", ErrInvalidShipment)
	}
	return s.repository.GetByID(ctx, id)
}

func steps(ids []string, action entities.OrderAction, actor entities.Actor, reason string) []entities.OrderStep {
	out := make([]entities.OrderStep, 0, len(ids))
	for _, id := range ids {
		out = append(out, step(id, action, actor, reason))
	}
	return out
}

func step(id string, action entities.OrderAction, actor entities.Actor, reason string) entities.OrderStep {
	return entities.OrderStep{
		OrderID: id,
		Command: entities.OrderCommand{Action: action, Actor: actor, Reason: reason},
	}
}

// asPartialBatch переупаковывает отказ пакетного перехода в ошибку батчера.
func asPartialBatch(err error) error {
	var batch *entities.BatchError
	if errors.As(err, &batch) {
		return &entities.BatchError{Kind: ErrPartialBatchRejected, Failures: batch.Failures}
	}
	return err
}

func dedupe(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id != "" && !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}
