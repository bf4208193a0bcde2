package entities

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type ServiceType string

const (
	ServiceStandard ServiceType = "standard"
	ServiceExpress  ServiceType = "express"
)

func (s ServiceType) String() string {
	return string(s)
}

type Payer string

const (
	PayerCustomer Payer = "Customer"
	PayerShop     Payer = "Shop"
)

func (p Payer) Valid() bool {
	return p == PayerCustomer || p == PayerShop
}

type PaymentMethod string

const (
	PaymentCash         PaymentMethod = "Cash"
	PaymentBankTransfer PaymentMethod = "BankTransfer"
	PaymentEWallet      PaymentMethod = "EWallet"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentBankTransfer, PaymentEWallet:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentUnpaid   PaymentStatus = "Unpaid"
	PaymentPaid     PaymentStatus = "Paid"
	PaymentRefunded PaymentStatus = "Refunded"
)

type Party struct {
	Name       string
	Phone      string
	Address    string
	RegionCode string
}

type Order struct {
	ID             string
	TrackingNumber string
	OwnerID        string
	Sender         Party
	Recipient      Party
	Weight         decimal.Decimal
	ServiceTypeID  ServiceType
	COD            int64
	CODCollected   int64
	CollectedBy    *string
	OrderValue     int64
	Payer          Payer
	PaymentMethod  PaymentMethod
	PaymentStatus  PaymentStatus
	DiscountAmount int64
	ShippingFee    int64
	PromotionID    *string
	Status         OrderStatus
	FromOfficeID   *string
	ToOfficeID     *string
	CancelReason   *string
	Version        int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeliveredAt    *time.Time
}

// PayableFee: сумма доставки к оплате после скидки.
func (o Order) PayableFee() int64 {
	return o.ShippingFee - o.DiscountAmount
}

// RequiresOnlinePayment: заказ оплачивается через платежный шлюз, а не наличными.
func (o Order) RequiresOnlinePayment() bool {
	return o.PaymentMethod != PaymentCash
}

// Validate проверяет инварианты агрегата. Те же правила продублированы CHECK-ограничениями в БД.
func (o Order) Validate() error {
	if o.ShippingFee < 0 {
		return fmt.Errorf("%w: shipping fee must be >= 0", ErrValidation)
	}
	if o.DiscountAmount < 0 || o.DiscountAmount > o.ShippingFee {
		return fmt.Errorf("%w: discount %d out of range [0, %d]", ErrValidation, o.DiscountAmount, o.ShippingFee)
	}
	if o.COD < 0 || o.OrderValue < 0 {
		return fmt.Errorf("%w: cod and order value must be >= 0", ErrValidation)
	}
	if !o.Weight.IsPositive() {
		return fmt.Errorf("%w: weight must be > 0", ErrValidation)
	}
	if o.ToOfficeID == nil && o.Status != OrderDraft && o.Status != OrderPending {
		return fmt.Errorf("%w: to office is required in status %s", ErrValidation, o.Status)
	}
	return nil
}

type OrderCreate struct {
	OwnerID       string
	Sender        Party
	Recipient     Party
	Weight        decimal.Decimal
	ServiceTypeID ServiceType
	COD           int64
	OrderValue    int64
	Payer         Payer
	PaymentMethod PaymentMethod
	PromotionCode *string
	Draft         bool
}

// OrderEdit: частичное редактирование. Отправитель и параметры посылки редактируются до picked_up,
// получатель до in_transit.
type OrderEdit struct {
	ID              string
	ExpectedVersion int64
	Actor           Actor

	SenderName    *string
	SenderPhone   *string
	SenderAddress *string
	SenderRegion  *string
	Weight        *decimal.Decimal
	ServiceTypeID *ServiceType
	COD           *int64
	OrderValue    *int64

	RecipientName    *string
	RecipientPhone   *string
	RecipientAddress *string
	RecipientRegion  *string
}

func (e OrderEdit) touchesSender() bool {
	return e.SenderName != nil || e.SenderPhone != nil || e.SenderAddress != nil || e.SenderRegion != nil ||
		e.Weight != nil || e.ServiceTypeID != nil || e.COD != nil || e.OrderValue != nil
}

func (e OrderEdit) touchesRecipient() bool {
	return e.RecipientName != nil || e.RecipientPhone != nil || e.RecipientAddress != nil || e.RecipientRegion != nil
}

// AffectsFee: правка меняет входы тарифа, нужен пересчет.
func (e OrderEdit) AffectsFee() bool {
	return e.Weight != nil || e.ServiceTypeID != nil || e.SenderRegion != nil || e.RecipientRegion != nil
}

// ApplyEdit возвращает копию заказа с примененной правкой или ErrInvalidStateForEdit.
func ApplyEdit(o Order, e OrderEdit) (Order, error) {
	if !e.touchesSender() && !e.touchesRecipient() {
		return o, fmt.Errorf("%w: nothing to edit", ErrValidation)
	}
	if e.touchesSender() && !o.Status.SenderEditable() {
		return o, fmt.Errorf("%w: sender fields are locked in status %s", ErrInvalidStateForEdit, o.Status)
	}
	if e.touchesRecipient() && !o.Status.RecipientEditable() {
		return o, fmt.Errorf("%w: recipient fields are locked in status %s", ErrInvalidStateForEdit, o.Status)
	}
	// офис назначения уже выбран под старый регион получателя
	if e.RecipientRegion != nil && o.ToOfficeID != nil && *e.RecipientRegion != o.Recipient.RegionCode {
		return o, fmt.Errorf("%w: recipient region is fixed once a destination office is assigned", ErrInvalidStateForEdit)
	}

	next := o
	setIf(&next.Sender.Name, e.SenderName)
	setIf(&next.Sender.Phone, e.SenderPhone)
	setIf(&next.Sender.Address, e.SenderAddress)
	setIf(&next.Sender.RegionCode, e.SenderRegion)
	setIf(&next.Recipient.Name, e.RecipientName)
	setIf(&next.Recipient.Phone, e.RecipientPhone)
	setIf(&next.Recipient.Address, e.RecipientAddress)
	setIf(&next.Recipient.RegionCode, e.RecipientRegion)
	setIf(&next.Weight, e.Weight)
	setIf(&next.ServiceTypeID, e.ServiceTypeID)
	setIf(&next.COD, e.COD)
	setIf(&next.OrderValue, e.OrderValue)

	return next, nil
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

type OrderFilter struct {
	OwnerID    *string
	OfficeID   *string
	Status     *OrderStatus
	CreatedGTE *time.Time
	Limit      uint64
	Offset     uint64
}

// CreatedOrder: результат оформления. PaymentURL есть только у онлайн-оплаты
// и только если платежный шлюз ответил.
type CreatedOrder struct {
	Order      Order
	PaymentURL *string
}

// PaymentCallback: уведомление платежного шлюза об оплате.
type PaymentCallback struct {
	OrderID   string
	Amount    int64
	Reference string
	Signature string
}

type FeeQuoteRequest struct {
	Weight        decimal.Decimal
	ServiceTypeID ServiceType
	OriginRegion  string
	DestRegion    string
	PromotionCode *string
}
