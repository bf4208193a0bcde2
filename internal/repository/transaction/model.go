package transaction

import "time"

type TransactionDB struct {
	ID                  string
	Type                string
	Purpose             string
	Amount              int64
	OfficeID            string
	Status              string
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

const transactionColumns = `id, type, purpose, amount, office_id, status, order_id, payment_submission_id,
	images, note, created_by, confirmed_by, confirmed_at, reject_reason, created_at`

func (t *TransactionDB) scanDest() []any {
	return []any{
		&t.ID, &t.Type, &t.Purpose, &t.Amount, &t.OfficeID, &t.Status, &t.OrderID, &t.PaymentSubmissionID,
		&t.Images, &t.Note, &t.CreatedBy, &t.ConfirmedBy, &t.ConfirmedAt, &t.RejectReason, &t.CreatedAt,
	}
}
