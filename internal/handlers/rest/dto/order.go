package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"logistics/internal/entities"
	"logistics/internal/service/fee"
)

type Party struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	RegionCode string `json:"region_code"`
}

type OrderCreate struct {
	OwnerID       string          `json:"owner_id"`
	Sender        Party           `json:"sender"`
	Recipient     Party           `json:"recipient"`
	Weight        decimal.Decimal `json:"weight"`
	ServiceTypeID string          `json:"service_type_id"`
	COD           int64           `json:"cod"`
	OrderValue    int64           `json:"order_value"`
	Payer         string          `json:"payer"`
	PaymentMethod string          `json:"payment_method"`
	PromotionCode *string         `json:"promotion_code,omitempty"`
	Draft         bool            `json:"draft"`
}

type OrderEdit struct {
	Version int64 `json:"version"`

	SenderName    *string          `json:"sender_name,omitempty"`
	SenderPhone   *string          `json:"sender_phone,omitempty"`
	SenderAddress *string          `json:"sender_address,omitempty"`
	SenderRegion  *string          `json:"sender_region,omitempty"`
	Weight        *decimal.Decimal `json:"weight,omitempty"`
	ServiceTypeID *string          `json:"service_type_id,omitempty"`
	COD           *int64           `json:"cod,omitempty"`
	OrderValue    *int64           `json:"order_value,omitempty"`

	RecipientName    *string `json:"recipient_name,omitempty"`
	RecipientPhone   *string `json:"recipient_phone,omitempty"`
	RecipientAddress *string `json:"recipient_address,omitempty"`
	RecipientRegion  *string `json:"recipient_region,omitempty"`
}

type OrderTransition struct {
	Action       string `json:"action"`
	Version      int64  `json:"version"`
	ToOfficeID   string `json:"to_office_id,omitempty"`
	FromOfficeID string `json:"from_office_id,omitempty"`
	Reason       string `json:"reason,omitempty"`
}

type Order struct {
	ID             string          `json:"id"`
	TrackingNumber string          `json:"tracking_number"`
	OwnerID        string          `json:"owner_id"`
	Sender         Party           `json:"sender"`
	Recipient      Party           `json:"recipient"`
	Weight         decimal.Decimal `json:"weight"`
	ServiceTypeID  string          `json:"service_type_id"`
	COD            int64           `json:"cod"`
	CODCollected   int64           `json:"cod_collected"`
	CollectedBy    *string         `json:"collected_by,omitempty"`
	OrderValue     int64           `json:"order_value"`
	Payer          string          `json:"payer"`
	PaymentMethod  string          `json:"payment_method"`
	PaymentStatus  string          `json:"payment_status"`
	ShippingFee    int64           `json:"shipping_fee"`
	DiscountAmount int64           `json:"discount_amount"`
	PromotionID    *string         `json:"promotion_id,omitempty"`
	Status         string          `json:"status"`
	FromOfficeID   *string         `json:"from_office_id,omitempty"`
	ToOfficeID     *string         `json:"to_office_id,omitempty"`
	CancelReason   *string         `json:"cancel_reason,omitempty"`
	Version        int64           `json:"version"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	DeliveredAt    *time.Time      `json:"delivered_at,omitempty"`
}

type CreatedOrder struct {
	Order      Order   `json:"order"`
	PaymentURL *string `json:"payment_url,omitempty"`
}

type PaymentURL struct {
	URL string `json:"payment_url"`
}

type PaymentCallback struct {
	OrderID   string `json:"order_id"`
	Amount    int64  `json:"amount"`
	Reference string `json:"reference"`
	Signature string `json:"signature"`
}

type FeeQuoteRequest struct {
	Weight        decimal.Decimal `json:"weight"`
	ServiceTypeID string          `json:"service_type_id"`
	OriginRegion  string          `json:"origin_region"`
	DestRegion    string          `json:"dest_region"`
	PromotionCode *string         `json:"promotion_code,omitempty"`
}

type FeeQuote struct {
	RegionClass string  `json:"region_class"`
	BaseFee     int64   `json:"base_fee"`
	Discount    int64   `json:"discount"`
	FinalFee    int64   `json:"final_fee"`
	PromotionID *string `json:"promotion_id,omitempty"`
}

func (p Party) ToDomain() entities.Party {
	return entities.Party{Name: p.Name, Phone: p.Phone, Address: p.Address, RegionCode: p.RegionCode}
}

func fromParty(p entities.Party) Party {
	return Party{Name: p.Name, Phone: p.Phone, Address: p.Address, RegionCode: p.RegionCode}
}

func (c OrderCreate) ToDomain() entities.OrderCreate {
	return entities.OrderCreate{
		OwnerID:       c.OwnerID,
		Sender:        c.Sender.ToDomain(),
		Recipient:     c.Recipient.ToDomain(),
		Weight:        c.Weight,
		ServiceTypeID: entities.ServiceType(c.ServiceTypeID),
		COD:           c.COD,
		OrderValue:    c.OrderValue,
		Payer:         entities.Payer(c.Payer),
		PaymentMethod: entities.PaymentMethod(c.PaymentMethod),
		PromotionCode: c.PromotionCode,
		Draft:         c.Draft,
	}
}

func (e OrderEdit) ToDomain(id string, actor entities.Actor) entities.OrderEdit {
	edit := entities.OrderEdit{
		ID:               id,
		ExpectedVersion:  e.Version,
		Actor:            actor,
		SenderName:       e.SenderName,
		SenderPhone:      e.SenderPhone,
		SenderAddress:    e.SenderAddress,
		SenderRegion:     e.SenderRegion,
		Weight:           e.Weight,
		COD:              e.COD,
		OrderValue:       e.OrderValue,
		RecipientName:    e.RecipientName,
		RecipientPhone:   e.RecipientPhone,
		RecipientAddress: e.RecipientAddress,
		RecipientRegion:  e.RecipientRegion,
	}
	if e.ServiceTypeID != nil {
		st := entities.ServiceType(*e.ServiceTypeID)
		edit.ServiceTypeID = &st
	}
	return edit
}

func (t OrderTransition) ToDomain(id string, actor entities.Actor) (entities.OrderTransition, error) {
	action, err := entities.ParseOrderAction(t.Action)
	if err != nil {
		return entities.OrderTransition{}, err
	}
	return entities.OrderTransition{
		OrderID:         id,
		ExpectedVersion: t.Version,
		Command: entities.OrderCommand{
			Action:       action,
			Actor:        actor,
			ToOfficeID:   t.ToOfficeID,
			FromOfficeID: t.FromOfficeID,
			Reason:       t.Reason,
		},
	}, nil
}

func (c PaymentCallback) ToDomain() entities.PaymentCallback {
	return entities.PaymentCallback{
		OrderID:   c.OrderID,
		Amount:    c.Amount,
		Reference: c.Reference,
		Signature: c.Signature,
	}
}

func (q FeeQuoteRequest) ToDomain() entities.FeeQuoteRequest {
	return entities.FeeQuoteRequest{
		Weight:        q.Weight,
		ServiceTypeID: entities.ServiceType(q.ServiceTypeID),
		OriginRegion:  q.OriginRegion,
		DestRegion:    q.DestRegion,
		PromotionCode: q.PromotionCode,
	}
}

func FromFeeQuote(q fee.Quote) FeeQuote {
	return FeeQuote{
		RegionClass: string(q.RegionClass),
		BaseFee:     q.BaseFee,
		Discount:    q.Discount,
		FinalFee:    q.FinalFee,
		PromotionID: q.PromotionID,
	}
}

func FromOrder(o entities.Order) Order {
	return Order{
		ID:             o.ID,
		TrackingNumber: o.TrackingNumber,
		OwnerID:        o.OwnerID,
		Sender:         fromParty(o.Sender),
		Recipient:      fromParty(o.Recipient),
		Weight:         o.Weight,
		ServiceTypeID:  o.ServiceTypeID.String(),
		COD:            o.COD,
		CODCollected:   o.CODCollected,
		CollectedBy:    o.CollectedBy,
		OrderValue:     o.OrderValue,
		Payer:          string(o.Payer),
		PaymentMethod:  string(o.PaymentMethod),
		PaymentStatus:  string(o.PaymentStatus),
		ShippingFee:    o.ShippingFee,
		DiscountAmount: o.DiscountAmount,
		PromotionID:    o.PromotionID,
		Status:         o.Status.String(),
		FromOfficeID:   o.FromOfficeID,
		ToOfficeID:     o.ToOfficeID,
		CancelReason:   o.CancelReason,
		Version:        o.Version,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
		DeliveredAt:    o.DeliveredAt,
	}
}

func FromOrders(orders []entities.Order) []Order {
	out := make([]Order, 0, len(orders))
	for _, o := range orders {
		out = append(out, FromOrder(o))
	}
	return out
}
