package dto

import (
	"time"

	"logistics/internal/entities"
)

type TransactionPost struct {
	Type                string   `json:"type"`
	Purpose             string   `json:"purpose"`
	Amount              int64    `json:"amount"`
	OfficeID            string   `json:"office_id"`
	OrderID             *string  `json:"order_id,omitempty"`
	PaymentSubmissionID *string  `json:"payment_submission_id,omitempty"`
	Images              []string `json:"images,omitempty"`
	Note                string   `json:"note"`
}

type RevenueTransfer struct {
	FromOfficeID string `json:"from_office_id"`
	ToOfficeID   string `json:"to_office_id"`
	Amount       int64  `json:"amount"`
	Note         string `json:"note"`
}

type Transaction struct {
	ID                  string     `json:"id"`
	Type                string     `json:"type"`
	Purpose             string     `json:"purpose"`
	Amount              int64      `json:"amount"`
	OfficeID            string     `json:"office_id"`
	Status              string     `json:"status"`
	OrderID             *string    `json:"order_id,omitempty"`
	PaymentSubmissionID *string    `json:"payment_submission_id,omitempty"`
	Images              []string   `json:"images,omitempty"`
	Note                string     `json:"note"`
	CreatedBy           string     `json:"created_by"`
	ConfirmedBy         *string    `json:"confirmed_by,omitempty"`
	ConfirmedAt         *time.Time `json:"confirmed_at,omitempty"`
	RejectReason        *string    `json:"reject_reason,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
}

type OfficeBalance struct {
	OfficeID string `json:"office_id"`
	Income   int64  `json:"income"`
	Expense  int64  `json:"expense"`
	Balance  int64  `json:"balance"`
}

func (p TransactionPost) ToDomain(createdBy string) entities.TransactionPost {
	return entities.TransactionPost{
		Type:                entities.TransactionType(p.Type),
		Purpose:             entities.TransactionPurpose(p.Purpose),
		Amount:              p.Amount,
		OfficeID:            p.OfficeID,
		OrderID:             p.OrderID,
		PaymentSubmissionID: p.PaymentSubmissionID,
		Images:              p.Images,
		Note:                p.Note,
		CreatedBy:           createdBy,
	}
}

func FromTransaction(t entities.Transaction) Transaction {
	return Transaction{
		ID:                  t.ID,
		Type:                string(t.Type),
		Purpose:             string(t.Purpose),
		Amount:              t.Amount,
		OfficeID:            t.OfficeID,
		Status:              string(t.Status),
		OrderID:             t.OrderID,
		PaymentSubmissionID: t.PaymentSubmissionID,
		Images:              t.Images,
		Note:                t.Note,
		CreatedBy:           t.CreatedBy,
		ConfirmedBy:         t.ConfirmedBy,
		ConfirmedAt:         t.ConfirmedAt,
		RejectReason:        t.RejectReason,
		CreatedAt:           t.CreatedAt,
	}
}

func FromTransactions(txs []entities.Transaction) []Transaction {
	out := make([]Transaction, 0, len(txs))
	for _, t := range txs {
		out = append(out, FromTransaction(t))
	}
	return out
}

func FromBalances(balances []entities.OfficeBalance) []OfficeBalance {
	out := make([]OfficeBalance, 0, len(balances))
	for _, b := range balances {
		out = append(out, OfficeBalance{OfficeID: b.OfficeID, Income: b.Income, Expense: b.Expense, Balance: b.Net()})
	}
	return out
}
