package order

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderDB struct {
	ID               string
	TrackingNumber   string
	OwnerID          string
	SenderName       string
	SenderPhone      string
	SenderAddress    string
	SenderRegion     string
	RecipientName    string
	RecipientPhone   string
	RecipientAddress string
	RecipientRegion  string
	Weight           decimal.Decimal
	ServiceType      string
	COD              int64
	CODCollected     int64
	CollectedBy      *string
	OrderValue       int64
	Payer            string
	PaymentMethod    string
	PaymentStatus    string
	DiscountAmount   int64
	ShippingFee      int64
	PromotionID      *string
	Status           string
	FromOfficeID     *string
	ToOfficeID       *string
	CancelReason     *string
	Version          int64
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeliveredAt      *time.Time
}

const orderColumns = `id, tracking_number, owner_id,
	sender_name, sender_phone, sender_address, sender_region,
	recipient_name, recipient_phone, recipient_address, recipient_region,
	weight, service_type, cod, cod_collected, collected_by, order_value,
	payer, payment_method, payment_status, discount_amount, shipping_fee, promotion_id,
	status, from_office_id, to_office_id, cancel_reason, version, created_at, updated_at, delivered_at`

func (o *OrderDB) scanDest() []any {
	return []any{
		&o.ID, &o.TrackingNumber, &o.OwnerID,
		&o.SenderName, &o.SenderPhone, &o.SenderAddress, &o.SenderRegion,
		&o.RecipientName, &o.RecipientPhone, &o.RecipientAddress, &o.RecipientRegion,
		&o.Weight, &o.ServiceType, &o.COD, &o.CODCollected, &o.CollectedBy, &o.OrderValue,
		&o.Payer, &o.PaymentMethod, &o.PaymentStatus, &o.DiscountAmount, &o.ShippingFee, &o.PromotionID,
		&o.Status, &o.FromOfficeID, &o.ToOfficeID, &o.CancelReason, &o.Version, &o.CreatedAt, &o.UpdatedAt, &o.DeliveredAt,
	}
}
