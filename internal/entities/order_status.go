package entities

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// OrderStatus: состояние заказа.
//
//	draft ─> pending ─> confirmed ─> picked_up ─> in_transit ─> delivered
//	                      │  ▲           │              │
//	                      │  └─(release)─┤              └─> returning ─> returned
//	                      └──────────────┴─> cancelled
type OrderStatus string

const (
	OrderDraft     OrderStatus = "draft"
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderPickedUp  OrderStatus = "picked_up"
	OrderInTransit OrderStatus = "in_transit"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
	OrderReturning OrderStatus = "returning"
	OrderReturned  OrderStatus = "returned"
)

var AllOrderStatuses = []OrderStatus{
	OrderDraft, OrderPending, OrderConfirmed, OrderPickedUp, OrderInTransit,
	OrderDelivered, OrderCancelled, OrderReturning, OrderReturned,
}

func (s OrderStatus) String() string {
	return string(s)
}

func (s OrderStatus) Valid() bool {
	return slices.Contains(AllOrderStatuses, s)
}

func (s OrderStatus) IsTerminal() bool {
	return s == OrderDelivered || s == OrderCancelled || s == OrderReturned
}

func (s OrderStatus) SenderEditable() bool {
	return s == OrderDraft || s == OrderPending || s == OrderConfirmed
}

func (s OrderStatus) RecipientEditable() bool {
	return s.SenderEditable() || s == OrderPickedUp
}

type ActorRole string

const (
	RoleOwner  ActorRole = "owner"
	RoleOffice ActorRole = "office"
	RoleDriver ActorRole = "driver"
	// RoleSystem: внутренние переходы (батчер, воркер событий). Проверка роли для него не делается,
	// но таблица переходов действует.
	RoleSystem ActorRole = "system"
)

func (r ActorRole) Valid() bool {
	switch r {
	case RoleOwner, RoleOffice, RoleDriver, RoleSystem:
		return true
	}
	return false
}

type Actor struct {
	ID       string
	Role     ActorRole
	OfficeID string
}

type OrderAction string

const (
	ActionPublish        OrderAction = "publish"
	ActionConfirm        OrderAction = "confirm"
	ActionPickup         OrderAction = "pickup"
	ActionRelease        OrderAction = "release"
	ActionDepart         OrderAction = "depart"
	ActionDeliver        OrderAction = "deliver"
	ActionFailDelivery   OrderAction = "fail_delivery"
	ActionCompleteReturn OrderAction = "complete_return"
	ActionCancel         OrderAction = "cancel"
)

func (a OrderAction) String() string {
	return string(a)
}

// roles == nil: действие выполняет только система (батчер поездок), снаружи оно недоступно.
type transitionRule struct {
	from  []OrderStatus
	to    OrderStatus
	roles []ActorRole
}

var orderTransitions = map[OrderAction]transitionRule{
	ActionPublish:        {from: []OrderStatus{OrderDraft}, to: OrderPending, roles: []ActorRole{RoleOwner, RoleOffice}},
	ActionConfirm:        {from: []OrderStatus{OrderPending}, to: OrderConfirmed, roles: []ActorRole{RoleOffice}},
	ActionPickup:         {from: []OrderStatus{OrderConfirmed}, to: OrderPickedUp, roles: nil},
	ActionRelease:        {from: []OrderStatus{OrderPickedUp}, to: OrderConfirmed, roles: nil},
	ActionDepart:         {from: []OrderStatus{OrderPickedUp}, to: OrderInTransit, roles: nil},
	ActionDeliver:        {from: []OrderStatus{OrderInTransit}, to: OrderDelivered, roles: []ActorRole{RoleDriver}},
	ActionFailDelivery:   {from: []OrderStatus{OrderInTransit}, to: OrderReturning, roles: []ActorRole{RoleDriver, RoleOffice}},
	ActionCompleteReturn: {from: []OrderStatus{OrderReturning}, to: OrderReturned, roles: []ActorRole{RoleOffice}},
	ActionCancel:         {from: []OrderStatus{OrderConfirmed, OrderPickedUp}, to: OrderCancelled, roles: []ActorRole{RoleOwner, RoleOffice}},
}

// ParseOrderAction разбирает действие из внешнего запроса. Внутренние действия батчера
// (pickup, depart, release) снаружи не принимаются.
func ParseOrderAction(s string) (OrderAction, error) {
	a := OrderAction(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := orderTransitions[a]; !ok {
		return "", fmt.Errorf("%w: unknown order action %q", ErrValidation, s)
	}
	if a.Internal() {
		return "", fmt.Errorf("%w: order action %q is performed by the shipment batcher only", ErrValidation, s)
	}
	return a, nil
}

// Internal: действие доступно только системе.
func (a OrderAction) Internal() bool {
	rule, ok := orderTransitions[a]
	return ok && rule.roles == nil
}

// RequiresShipmentDriver: водитель может выполнить действие только над заказом своей активной поездки.
func (a OrderAction) RequiresShipmentDriver() bool {
	return a == ActionDeliver || a == ActionFailDelivery
}

// TargetStatus возвращает статус, в который ведет действие.
func (a OrderAction) TargetStatus() (OrderStatus, bool) {
	rule, ok := orderTransitions[a]
	return rule.to, ok
}

// CanTransition: есть ли ребро from -> to в таблице (для любого действия).
func CanTransition(from, to OrderStatus) bool {
	for _, rule := range orderTransitions {
		if rule.to == to && slices.Contains(rule.from, from) {
			return true
		}
	}
	return false
}

// OrderCommand: одно действие над заказом.
type OrderCommand struct {
	Action     OrderAction
	Actor      Actor
	ToOfficeID string
	// FromOfficeID заполняется при подтверждении, если офис отправления еще не назначен.
	FromOfficeID string
	Reason       string
	At           time.Time
}

// TransitionOrder применяет действие к заказу и возвращает новое значение.
// Исходный заказ не изменяется; при ошибке возвращается он же.
func TransitionOrder(o Order, cmd OrderCommand) (Order, error) {
	rule, ok := orderTransitions[cmd.Action]
	if !ok {
		return o, fmt.Errorf("%w: unknown order action %q", ErrValidation, cmd.Action)
	}
	if !slices.Contains(rule.from, o.Status) {
		return o, fmt.Errorf("%w: cannot %s order %s in status %s", ErrIllegalTransition, cmd.Action, o.ID, o.Status)
	}
	if cmd.Actor.Role != RoleSystem && !slices.Contains(rule.roles, cmd.Actor.Role) {
		return o, fmt.Errorf("%w: role %q may not %s", ErrIllegalTransition, cmd.Actor.Role, cmd.Action)
	}

	at := cmd.At
	if at.IsZero() {
		at = time.Now().UTC()
	}

	next := o
	switch cmd.Action {
	case ActionConfirm:
		if o.PaymentStatus == PaymentUnpaid && o.PaymentMethod != PaymentCash {
			return o, fmt.Errorf("%w: order %s must be paid before confirmation (method %s)",
				ErrIllegalTransition, o.ID, o.PaymentMethod)
		}
		toOffice := cmd.ToOfficeID
		if toOffice == "" {
			toOffice = cmd.Actor.OfficeID
		}
		if toOffice == "" {
			return o, fmt.Errorf("%w: destination office is required to confirm", ErrValidation)
		}
		next.ToOfficeID = &toOffice
		if next.FromOfficeID == nil && cmd.FromOfficeID != "" {
			fromOffice := cmd.FromOfficeID
			next.FromOfficeID = &fromOffice
		}
	case ActionDeliver:
		driverID := cmd.Actor.ID
		next.DeliveredAt = &at
		next.CODCollected = o.COD
		if driverID != "" {
			next.CollectedBy = &driverID
		}
	case ActionCancel, ActionFailDelivery:
		if cmd.Reason != "" {
			reason := cmd.Reason
			next.CancelReason = &reason
		}
	}

	next.Status = rule.to
	next.UpdatedAt = at
	return next, nil
}

// OrderStep: действие над конкретным заказом в пакетной операции.
type OrderStep struct {
	OrderID string
	Command OrderCommand
}

// OrderTransition: действие над заказом с версией, которую видел вызывающий.
type OrderTransition struct {
	OrderID         string
	ExpectedVersion int64
	Command         OrderCommand
}
