package entities

import "time"

const (
	TopicOrderEvents      = "order.events"
	TopicSubmissionEvents = "submission.events"
	TopicLedgerEvents     = "ledger.events"
)

// OutboxEvent пишется в той же транзакции, что и изменение, и публикуется после коммита.
type OutboxEvent struct {
	ID        string
	Topic     string
	Key       string
	Payload   []byte
	CreatedAt time.Time
	SentAt    *time.Time
}

// OrderStatusChanged: уведомление получателям (владелец, офис, водитель).
type OrderStatusChanged struct {
	EventID   string    `json:"event_id"`
	OrderID   string    `json:"order_id"`
	OwnerID   string    `json:"owner_id"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Action    string    `json:"action"`
	ActorID   string    `json:"actor_id"`
	Version   int64     `json:"version"`
	ChangedAt time.Time `json:"changed_at"`
}

type SubmissionStatusChanged struct {
	EventID      string    `json:"event_id"`
	SubmissionID string    `json:"submission_id"`
	SubmittedBy  string    `json:"submitted_by"`
	Status       string    `json:"status"`
	Amount       int64     `json:"amount"`
	ChangedAt    time.Time `json:"changed_at"`
}

type TransactionPosted struct {
	EventID       string    `json:"event_id"`
	TransactionID string    `json:"transaction_id"`
	OfficeID      string    `json:"office_id"`
	Type          string    `json:"type"`
	Purpose       string    `json:"purpose"`
	Status        string    `json:"status"`
	Amount        int64     `json:"amount"`
	At            time.Time `json:"at"`
}

// DeliveryEventKind: что сообщил водитель из поля.
type DeliveryEventKind string

const (
	DeliveryEventDelivered DeliveryEventKind = "delivered"
	DeliveryEventFailed    DeliveryEventKind = "failed"
	DeliveryEventReturned  DeliveryEventKind = "returned"
)

// Action сопоставляет событие водителя действию над заказом.
func (k DeliveryEventKind) Action() (OrderAction, bool) {
	switch k {
	case DeliveryEventDelivered:
		return ActionDeliver, true
	case DeliveryEventFailed:
		return ActionFailDelivery, true
	case DeliveryEventReturned:
		return ActionCompleteReturn, true
	}
	return "", false
}

type DeliveryEvent struct {
	EventID  string
	OrderID  string
	DriverID string
	OfficeID string
	Kind     DeliveryEventKind
	Version  int64
	Reason   string
}
