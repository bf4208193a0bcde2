package dto

import (
	"time"

	"logistics/internal/entities"
)

type ShipmentCreate struct {
	VehicleID string   `json:"vehicle_id"`
	DriverID  string   `json:"driver_id"`
	OrderIDs  []string `json:"order_ids"`
}

type ShipmentFinish struct {
	Status string `json:"status"`
}

type Shipment struct {
	ID        string     `json:"id"`
	VehicleID string     `json:"vehicle_id"`
	DriverID  string     `json:"driver_id"`
	Status    string     `json:"status"`
	StartTime *time.Time `json:"start_time,omitempty"`
	EndTime   *time.Time `json:"end_time,omitempty"`
	OrderIDs  []string   `json:"order_ids"`
	Version   int64      `json:"version"`
	CreatedAt time.Time  `json:"created_at"`
}

func (c ShipmentCreate) ToDomain() entities.ShipmentCreate {
	return entities.ShipmentCreate{VehicleID: c.VehicleID, DriverID: c.DriverID, OrderIDs: c.OrderIDs}
}

func FromShipment(s entities.Shipment) Shipment {
	return Shipment{
		ID:        s.ID,
		VehicleID: s.VehicleID,
		DriverID:  s.DriverID,
		Status:    s.Status.String(),
		StartTime: s.StartTime,
		EndTime:   s.EndTime,
		OrderIDs:  s.OrderIDs,
		Version:   s.Version,
		CreatedAt: s.CreatedAt,
	}
}
