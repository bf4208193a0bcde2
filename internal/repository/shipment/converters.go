package shipment

import "logistics/internal/entities"

func ToDomain(s *ShipmentDB) *entities.Shipment {
	if s == nil {
		return nil
	}
	orderIDs := s.OrderIDs
	if orderIDs == nil {
		orderIDs = []string{}
	}

	return &entities.Shipment{
		ID:        s.ID,
		VehicleID: s.VehicleID,
		DriverID:  s.DriverID,
		Status:    entities.ShipmentStatus(s.Status),
		StartTime: s.StartTime,
		EndTime:   s.EndTime,
		OrderIDs:  orderIDs,
		Version:   s.Version,
		CreatedAt: s.CreatedAt,
	}
}
