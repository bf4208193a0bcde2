package order

import (
	"logistics/internal/entities"
)

func ToDomain(o *OrderDB) *entities.Order {
	if o == nil {
		return nil
	}

	return &entities.Order{
		ID:             o.ID,
		TrackingNumber: o.TrackingNumber,
		OwnerID:        o.OwnerID,
		Sender: entities.Party{
			Name:       o.SenderName,
			Phone:      o.SenderPhone,
			Address:    o.SenderAddress,
			RegionCode: o.SenderRegion,
		},
		Recipient: entities.Party{
			Name:       o.RecipientName,
			Phone:      o.RecipientPhone,
			Address:    o.RecipientAddress,
			RegionCode: o.RecipientRegion,
		},
		Weight:         o.Weight,
		ServiceTypeID:  entities.ServiceType(o.ServiceType),
		COD:            o.COD,
		CODCollected:   o.CODCollected,
		CollectedBy:    o.CollectedBy,
		OrderValue:     o.OrderValue,
		Payer:          entities.Payer(o.Payer),
		PaymentMethod:  entities.PaymentMethod(o.PaymentMethod),
		PaymentStatus:  entities.PaymentStatus(o.PaymentStatus),
		DiscountAmount: o.DiscountAmount,
		ShippingFee:    o.ShippingFee,
		PromotionID:    o.PromotionID,
		Status:         entities.OrderStatus(o.Status),
		FromOfficeID:   o.FromOfficeID,
		ToOfficeID:     o.ToOfficeID,
		CancelReason:   o.CancelReason,
		Version:        o.Version,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
		DeliveredAt:    o.DeliveredAt,
	}
}

func FromDomain(o *entities.Order) *OrderDB {
	if o == nil {
		return nil
	}

	return &OrderDB{
		ID:               o.ID,
		TrackingNumber:   o.TrackingNumber,
		OwnerID:          o.OwnerID,
		SenderName:       o.Sender.Name,
		SenderPhone:      o.Sender.Phone,
		SenderAddress:    o.Sender.Address,
		SenderRegion:     o.Sender.RegionCode,
		RecipientName:    o.Recipient.Name,
		RecipientPhone:   o.Recipient.Phone,
		RecipientAddress: o.Recipient.Address,
		RecipientRegion:  o.Recipient.RegionCode,
		Weight:           o.Weight,
		ServiceType:      o.ServiceTypeID.String(),
		COD:              o.COD,
		CODCollected:     o.CODCollected,
		CollectedBy:      o.CollectedBy,
		OrderValue:       o.OrderValue,
		Payer:            string(o.Payer),
		PaymentMethod:    string(o.PaymentMethod),
		PaymentStatus:    string(o.PaymentStatus),
		DiscountAmount:   o.DiscountAmount,
		ShippingFee:      o.ShippingFee,
		PromotionID:      o.PromotionID,
		Status:           o.Status.String(),
		FromOfficeID:     o.FromOfficeID,
		ToOfficeID:       o.ToOfficeID,
		CancelReason:     o.CancelReason,
		Version:          o.Version,
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
		DeliveredAt:      o.DeliveredAt,
	}
}

func ToDomainList(ordersDB []OrderDB) []entities.Order {
	if len(ordersDB) == 0 {
		return []entities.Order{}
	}

	result := make([]entities.Order, len(ordersDB))
	for i, orderDB := range ordersDB {
		result[i] = *ToDomain(&orderDB)
	}
	return result
}
