package entities

import "time"

type ShipmentStatus string

const (
	ShipmentPending   ShipmentStatus = "Pending"
	ShipmentInTransit ShipmentStatus = "InTransit"
	ShipmentCompleted ShipmentStatus = "Completed"
	ShipmentCancelled ShipmentStatus = "Cancelled"
)

func (s ShipmentStatus) String() string {
	return string(s)
}

// IsActive: заказы в такой поездке заняты и не могут попасть в другую.
func (s ShipmentStatus) IsActive() bool {
	return s == ShipmentPending || s == ShipmentInTransit
}

type Shipment struct {
	ID        string
	VehicleID string
	DriverID  string
	Status    ShipmentStatus
	StartTime *time.Time
	EndTime   *time.Time
	OrderIDs  []string
	Version   int64
	CreatedAt time.Time
}

type ShipmentCreate struct {
	VehicleID string
	DriverID  string
	OrderIDs  []string
}
