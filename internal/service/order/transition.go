package order

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"logistics/internal/entities"
	"logistics/internal/pkg/outbox"
)

// Transition выполняет одно действие над заказом.
// Допустимость перехода проверяется по состоянию на момент коммита (под блокировкой строки),
// и только потом сравнивается версия, поэтому опоздавшая отмена получает ErrIllegalTransition.
func (s *Service) Transition(ctx context.Context, t entities.OrderTransition) (*entities.Order, error) {
	if !isValidID(t.OrderID) {
		return nil, fmt.Errorf("%w: order id is required", ErrInvalidOrder)
	}
	if t.ExpectedVersion <= 0 {
		return nil, fmt.Errorf("%w: expected version is required", ErrInvalidOrder)
	}
	if err := validateActor(t.Command.Actor); err != nil {
		return nil, err
	}
	if _, ok := t.Command.Action.TargetStatus(); !ok {
		return nil, fmt.Errorf("%w: unknown action %q", ErrInvalidOrder, t.Command.Action)
	}
	// pickup, depart и release проходят только через TransitionBatch батчера
	if t.Command.Action.Internal() {
		TransitionsTotal.WithLabelValues(t.Command.Action.String(), transitionResult(ErrInternalAction)).Inc()
		return nil, fmt.Errorf("%w: %s", ErrInternalAction, t.Command.Action)
	}

	// справочник офисов опрашивается до открытия транзакции
	var routedRegion string
	if t.Command.Action == entities.ActionConfirm {
		region, err := s.checkOfficeAssignment(ctx, t)
		if err != nil {
			TransitionsTotal.WithLabelValues(t.Command.Action.String(), transitionResult(err)).Inc()
			return nil, err
		}
		routedRegion = region
	}

	var updated *entities.Order
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		current, err := s.lockOne(ctx, t.OrderID)
		if err != nil {
			return err
		}
		if t.Command.Actor.Role == entities.RoleOwner && current.OwnerID != t.Command.Actor.ID {
			return ErrNotOwner
		}

		cmd := t.Command
		if cmd.At.IsZero() {
			cmd.At = s.now()
		}
		next, err := entities.TransitionOrder(*current, cmd)
		if err != nil {
			return err
		}
		if cmd.Actor.Role == entities.RoleDriver && cmd.Action.RequiresShipmentDriver() {
			if err := s.ensureShipmentDriver(ctx, current.ID, cmd.Actor.ID); err != nil {
				return err
			}
		}
		if current.Version != t.ExpectedVersion {
			return fmt.Errorf("%w: have %d, expected %d", ErrVersionConflict, current.Version, t.ExpectedVersion)
		}
		if routedRegion != "" && current.Recipient.RegionCode != routedRegion {
			return fmt.Errorf("%w: recipient region changed during confirmation", ErrVersionConflict)
		}

		updated, err = s.apply(ctx, *current, next, cmd)
		return err
	})
	TransitionsTotal.WithLabelValues(t.Command.Action.String(), transitionResult(err)).Inc()
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// TransitionBatch применяет действия к нескольким заказам атомарно. Сначала проверяются все шаги,
// и если хоть один недопустим, возвращается *entities.BatchError со всеми причинами без записи.
// Вызывается внутри транзакции вызывающего (батчер, сверка), иначе открывает свою.
func (s *Service) TransitionBatch(ctx context.Context, steps []entities.OrderStep) ([]entities.Order, error) {
	if len(steps) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(steps))
	for _, step := range steps {
		if !isValidID(step.OrderID) {
			return nil, fmt.Errorf("%w: order id is required", ErrInvalidOrder)
		}
		ids = append(ids, step.OrderID)
	}

	var result []entities.Order
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		locked, err := s.LockOrders(ctx, ids)
		if err != nil {
			return err
		}
		byID := make(map[string]entities.Order, len(locked))
		for _, o := range locked {
			byID[o.ID] = o
		}

		type planned struct {
			current entities.Order
			next    entities.Order
			cmd     entities.OrderCommand
		}
		plan := make([]planned, 0, len(steps))
		var failures []entities.BatchFailure

		for _, step := range steps {
			current, ok := byID[step.OrderID]
			if !ok {
				failures = append(failures, entities.BatchFailure{OrderID: step.OrderID, Reason: ErrOrderNotFound})
				continue
			}
			cmd := step.Command
			if cmd.At.IsZero() {
				cmd.At = s.now()
			}
			next, err := entities.TransitionOrder(current, cmd)
			if err != nil {
				failures = append(failures, entities.BatchFailure{OrderID: step.OrderID, Reason: err})
				continue
			}
			plan = append(plan, planned{current: current, next: next, cmd: cmd})
			// следующий шаг по тому же заказу видит результат предыдущего
			byID[step.OrderID] = next
		}
		if len(failures) > 0 {
			return &entities.BatchError{Kind: entities.ErrIllegalTransition, Failures: failures}
		}

		result = make([]entities.Order, 0, len(plan))
		versions := make(map[string]int64, len(plan))
		for _, p := range plan {
			expected, seen := versions[p.current.ID]
			if !seen {
				expected = p.current.Version
			}
			updated, err := s.apply(ctx, withVersion(p.current, expected), p.next, p.cmd)
			if err != nil {
				return err
			}
			versions[p.current.ID] = updated.Version
			result = append(result, *updated)
		}
		return nil
	})
	for _, step := range steps {
		TransitionsTotal.WithLabelValues(step.Command.Action.String(), transitionResult(err)).Inc()
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

// LockOrders блокирует заказы по возрастанию id, чтобы пересекающиеся пакеты не взаимоблокировались.
// Должна вызываться внутри транзакции.
func (s *Service) LockOrders(ctx context.Context, ids []string) ([]entities.Order, error) {
	sorted := slices.Clone(ids)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	orders, err := s.repository.LockByIDs(ctx, sorted)
	if err != nil {
		return nil, fmt.Errorf("lock orders: %w", err)
	}
	return orders, nil
}

func withVersion(o entities.Order, v int64) entities.Order {
	o.Version = v
	return o
}

// apply пишет новое состояние и побочные эффекты перехода в текущей транзакции.
func (s *Service) apply(ctx context.Context, current, next entities.Order, cmd entities.OrderCommand) (*entities.Order, error) {
	if err := next.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.repository.Update(ctx, next, current.Version)
	if err != nil {
		return nil, fmt.Errorf("update order %s: %w", current.ID, err)
	}

	if cmd.Action == entities.ActionCancel && current.PaymentStatus == entities.PaymentPaid {
		if err := s.postRefund(ctx, *updated, cmd.Actor); err != nil {
			return nil, err
		}
	}

	if err := s.emitStatusChanged(ctx, *updated, current.Status, cmd.Action.String(), cmd.Actor); err != nil {
		return nil, err
	}
	return updated, nil
}

// postRefund заводит расход на возврат оплаты. Он ждет ручного подтверждения офисом,
// после чего заказ становится Refunded.
func (s *Service) postRefund(ctx context.Context, o entities.Order, actor entities.Actor) error {
	officeID := s.settlementOfficeID
	if o.ToOfficeID != nil {
		officeID = *o.ToOfficeID
	}
	orderID := o.ID
	_, err := s.ledger.PostTransaction(ctx, entities.TransactionPost{
		Type:      entities.TransactionExpense,
		Purpose:   entities.PurposeRefund,
		Amount:    o.PayableFee(),
		OfficeID:  officeID,
		OrderID:   &orderID,
		Note:      "refund for cancelled order " + o.TrackingNumber,
		CreatedBy: actor.ID,
	})
	if err != nil {
		return fmt.Errorf("post refund: %w", err)
	}
	return nil
}

func (s *Service) checkOfficeAssignment(ctx context.Context, t entities.OrderTransition) (string, error) {
	current, err := s.repository.GetByID(ctx, t.OrderID)
	if err != nil {
		return "", err
	}

	toOffice := t.Command.ToOfficeID
	if toOffice == "" {
		toOffice = t.Command.Actor.OfficeID
	}
	if err := s.ensureServes(ctx, toOffice, current.Recipient.RegionCode); err != nil {
		return "", err
	}
	if t.Command.FromOfficeID != "" {
		if err := s.ensureServes(ctx, t.Command.FromOfficeID, current.Sender.RegionCode); err != nil {
			return "", err
		}
	}
	return current.Recipient.RegionCode, nil
}

func (s *Service) ensureShipmentDriver(ctx context.Context, orderID, driverID string) error {
	carrier, err := s.repository.ActiveShipmentDriver(ctx, orderID)
	if err != nil {
		return fmt.Errorf("active shipment of order %s: %w", orderID, err)
	}
	if carrier == "" {
		return fmt.Errorf("%w: order %s is in no active shipment", ErrNotShipmentDriver, orderID)
	}
	if carrier != driverID {
		return fmt.Errorf("%w: order %s is carried by %s, not %s", ErrNotShipmentDriver, orderID, carrier, driverID)
	}
	return nil
}

func (s *Service) ensureServes(ctx context.Context, officeID, regionCode string) error {
	if officeID == "" {
		return fmt.Errorf("%w: office id is required", ErrInvalidOrder)
	}
	offices, err := s.offices.GetOfficesServingRegion(ctx, regionCode)
	if err != nil {
		return fmt.Errorf("%w: lookup %s: %w", ErrNoServiceableOffice, regionCode, err)
	}
	if !entities.ContainsOffice(offices, officeID) {
		return fmt.Errorf("%w: office %s does not serve %s", ErrNoServiceableOffice, officeID, regionCode)
	}
	return nil
}

func (s *Service) emitStatusChanged(ctx context.Context, o entities.Order, from entities.OrderStatus, action string, actor entities.Actor) error {
	id := uuid.NewString()
	event, err := outbox.NewEvent(id, entities.TopicOrderEvents, o.ID, entities.OrderStatusChanged{
		EventID:   id,
		OrderID:   o.ID,
		OwnerID:   o.OwnerID,
		From:      from.String(),
		To:        o.Status.String(),
		Action:    action,
		ActorID:   actor.ID,
		Version:   o.Version,
		ChangedAt: o.UpdatedAt,
	})
	if err != nil {
		return err
	}
	if err := s.outbox.Add(ctx, event); err != nil {
		return fmt.Errorf("enqueue order event: %w", err)
	}
	return nil
}
