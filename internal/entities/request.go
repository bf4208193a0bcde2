package entities

import "time"

type RequestKind string

const (
	RequestCancelOrder      RequestKind = "CancelOrder"
	RequestDeliveryIncident RequestKind = "DeliveryIncident"
	RequestComplaint        RequestKind = "Complaint"
)

func (k RequestKind) Valid() bool {
	switch k {
	case RequestCancelOrder, RequestDeliveryIncident, RequestComplaint:
		return true
	}
	return false
}

type RequestStatus string

const (
	RequestOpen      RequestStatus = "Open"
	RequestResolved  RequestStatus = "Resolved"
	RequestDismissed RequestStatus = "Dismissed"
)

// CustomerRequest: обращение клиента или инцидент доставки по заказу.
type CustomerRequest struct {
	ID          string
	OrderID     string
	Kind        RequestKind
	Description string
	Images      []string
	Status      RequestStatus
	Resolution  *string
	CreatedBy   string
	ResolvedBy  *string
	CreatedAt   time.Time
	ResolvedAt  *time.Time
}
