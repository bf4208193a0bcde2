package shipment

import "time"

type ShipmentDB struct {
	ID        string
	VehicleID string
	DriverID  string
	Status    string
	StartTime *time.Time
	EndTime   *time.Time
	OrderIDs  []string
	Version   int64
	CreatedAt time.Time
}

// порядок заказов в поездке совпадает с порядком при создании
const shipmentColumns = `s.id, s.vehicle_id, s.driver_id, s.status, s.start_time, s.end_time,
	ARRAY(SELECT so.order_id FROM shipment_orders so WHERE so.shipment_id = s.id ORDER BY so.position),
	s.version, s.created_at`

func (s *ShipmentDB) scanDest() []any {
	return []any{&s.ID, &s.VehicleID, &s.DriverID, &s.Status, &s.StartTime, &s.EndTime, &s.OrderIDs, &s.Version, &s.CreatedAt}
}
