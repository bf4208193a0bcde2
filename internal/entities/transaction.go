package entities

import (
	"fmt"
	"time"
)

type TransactionType string

const (
	TransactionIncome  TransactionType = "Income"
	TransactionExpense TransactionType = "Expense"
)

type TransactionPurpose string

const (
	PurposeRefund          TransactionPurpose = "Refund"
	PurposeCODReturn       TransactionPurpose = "CODReturn"
	PurposeShippingService TransactionPurpose = "ShippingService"
	PurposeOfficeExpense   TransactionPurpose = "OfficeExpense"
	PurposeRevenueTransfer TransactionPurpose = "RevenueTransfer"
)

// AutoConfirmed: проводки, которые подтверждаются в момент записи.
func (p TransactionPurpose) AutoConfirmed() bool {
	return p == PurposeCODReturn || p == PurposeShippingService
}

// AllowsType проверяет сочетание назначения и направления проводки.
func (p TransactionPurpose) AllowsType(t TransactionType) bool {
	switch p {
	case PurposeRefund, PurposeOfficeExpense:
		return t == TransactionExpense
	case PurposeCODReturn, PurposeShippingService:
		return t == TransactionIncome
	case PurposeRevenueTransfer:
		return t == TransactionIncome || t == TransactionExpense
	}
	return false
}

type TransactionStatus string

const (
	TransactionPending   TransactionStatus = "Pending"
	TransactionConfirmed TransactionStatus = "Confirmed"
	TransactionRejected  TransactionStatus = "Rejected"
)

func (s TransactionStatus) IsTerminal() bool {
	return s == TransactionConfirmed || s == TransactionRejected
}

type Transaction struct {
	ID                  string
	Type                TransactionType
	Purpose             TransactionPurpose
	Amount              int64
	OfficeID            string
	Status              TransactionStatus
	OrderID             *string
	PaymentSubmissionID *string
	Images              []string
	Note                string
	CreatedBy           string
	ConfirmedBy         *string
	ConfirmedAt         *time.Time
	RejectReason        *string
	CreatedAt           time.Time
}

type TransactionPost struct {
	Type                TransactionType
	Purpose             TransactionPurpose
	Amount              int64
	OfficeID            string
	OrderID             *string
	PaymentSubmissionID *string
	Images              []string
	Note                string
	CreatedBy           string
}

func (p TransactionPost) Validate() error {
	if p.Amount <= 0 {
		return fmt.Errorf("%w: amount must be > 0", ErrValidation)
	}
	if p.OfficeID == "" {
		return fmt.Errorf("%w: office id is required", ErrValidation)
	}
	if p.CreatedBy == "" {
		return fmt.Errorf("%w: author is required", ErrValidation)
	}
	if !p.Purpose.AllowsType(p.Type) {
		return fmt.Errorf("%w: purpose %s does not allow type %s", ErrValidation, p.Purpose, p.Type)
	}
	if p.Purpose == PurposeCODReturn && p.PaymentSubmissionID == nil {
		return fmt.Errorf("%w: cod return must reference a submission", ErrValidation)
	}
	if (p.Purpose == PurposeRefund || p.Purpose == PurposeShippingService) && p.OrderID == nil {
		return fmt.Errorf("%w: %s must reference an order", ErrValidation, p.Purpose)
	}
	return nil
}

type TransactionFilter struct {
	OfficeID            *string
	Status              *TransactionStatus
	Purpose             *TransactionPurpose
	OrderID             *string
	PaymentSubmissionID *string
	Limit               uint64
	Offset              uint64
}

// Balance: доходы минус расходы по подтвержденным проводкам.
// Та же формула считается в SQL для отчетов; результаты обязаны совпадать.
func Balance(txs []Transaction) int64 {
	var balance int64
	for _, t := range txs {
		if t.Status != TransactionConfirmed {
			continue
		}
		switch t.Type {
		case TransactionIncome:
			balance += t.Amount
		case TransactionExpense:
			balance -= t.Amount
		}
	}
	return balance
}

type OfficeBalance struct {
	OfficeID string
	Income   int64
	Expense  int64
}

func (b OfficeBalance) Net() int64 {
	return b.Income - b.Expense
}
