package entities

import "time"

type SubmissionStatus string

const (
	SubmissionPending   SubmissionStatus = "Pending"
	SubmissionConfirmed SubmissionStatus = "Confirmed"
	SubmissionAdjusted  SubmissionStatus = "Adjusted"
	SubmissionRejected  SubmissionStatus = "Rejected"
)

func (s SubmissionStatus) String() string {
	return string(s)
}

// PaymentSubmission: сдача водителем собранных наложенных платежей в офис.
type PaymentSubmission struct {
	ID                   string
	OfficeID             string
	SubmittedBy          string
	TotalAmountSubmitted int64
	DeclaredAmount       *int64
	AdjustedAmount       *int64
	Note                 *string
	RejectReason         *string
	Status               SubmissionStatus
	OrderIDs             []string
	ReconciledAt         *time.Time
	ConfirmedBy          *string
	Version              int64
	CreatedAt            time.Time
}

// LedgerAmount: сумма, которая уходит в журнал при сверке.
func (s PaymentSubmission) LedgerAmount() int64 {
	if s.Status == SubmissionAdjusted && s.AdjustedAmount != nil {
		return *s.AdjustedAmount
	}
	return s.TotalAmountSubmitted
}

type SubmissionCreate struct {
	OfficeID      string
	SubmittedBy   string
	OrderIDs      []string
	DeclaredTotal *int64
}

type SubmissionFilter struct {
	OfficeID    *string
	SubmittedBy *string
	Status      *SubmissionStatus
	CreatedLT   *time.Time
	Limit       uint64
	Offset      uint64
}

// CODHolding: наложенный платеж, который водитель еще не сдал.
type CODHolding struct {
	OrderID        string
	TrackingNumber string
	DriverID       string
	OfficeID       *string
	Amount         int64
	DeliveredAt    time.Time
}
