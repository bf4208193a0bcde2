package delivery_events

import (
	"fmt"

	"logistics/internal/entities"
)

// systemActorID: автор переходов без конкретного водителя (возврат принимает склад).
const systemActorID = "delivery-events"

type deliveryEvent struct {
	EventID  string `json:"event_id"`
	OrderID  string `json:"order_id"`
	DriverID string `json:"driver_id"`
	OfficeID string `json:"office_id,omitempty"`
	Kind     string `json:"kind"`
	Version  int64  `json:"version"`
	Reason   string `json:"reason,omitempty"`
}

func toDomain(e deliveryEvent) entities.DeliveryEvent {
	return entities.DeliveryEvent{
		EventID:  e.EventID,
		OrderID:  e.OrderID,
		DriverID: e.DriverID,
		OfficeID: e.OfficeID,
		Kind:     entities.DeliveryEventKind(e.Kind),
		Version:  e.Version,
		Reason:   e.Reason,
	}
}

func toCommand(e entities.DeliveryEvent) (entities.OrderCommand, error) {
	if e.EventID == "" || e.OrderID == "" {
		return entities.OrderCommand{}, fmt.Errorf("%w: event_id and order_id are required", entities.ErrValidation)
	}
	action, ok := e.Kind.Action()
	if !ok {
		return entities.OrderCommand{}, fmt.Errorf("%w: unknown event kind %q", entities.ErrValidation, e.Kind)
	}

	cmd := entities.OrderCommand{Action: action, Reason: e.Reason}
	switch {
	case e.Kind == entities.DeliveryEventDelivered:
		if e.DriverID == "" {
			return entities.OrderCommand{}, fmt.Errorf("%w: driver_id is required for delivery", entities.ErrValidation)
		}
		cmd.Actor = entities.Actor{ID: e.DriverID, Role: entities.RoleDriver}
	case e.Kind == entities.DeliveryEventFailed && e.DriverID != "":
		cmd.Actor = entities.Actor{ID: e.DriverID, Role: entities.RoleDriver}
	default:
		cmd.Actor = entities.Actor{ID: systemActorID, Role: entities.RoleSystem, OfficeID: e.OfficeID}
	}
	if e.Kind == entities.DeliveryEventFailed && cmd.Reason == "" {
		cmd.Reason = "delivery failed"
	}
	return cmd, nil
}
