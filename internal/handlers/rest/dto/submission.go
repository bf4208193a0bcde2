package dto

import (
	"time"

	"logistics/internal/entities"
)

type SubmissionCreate struct {
	OfficeID      string   `json:"office_id"`
	SubmittedBy   string   `json:"submitted_by"`
	OrderIDs      []string `json:"order_ids"`
	DeclaredTotal *int64   `json:"declared_total,omitempty"`
}

type SubmissionAdjust struct {
	Amount int64  `json:"amount"`
	Note   string `json:"note"`
}

type Reason struct {
	Reason string `json:"reason"`
}

type Submission struct {
	ID                   string     `json:"id"`
	OfficeID             string     `json:"office_id"`
	SubmittedBy          string     `json:"submitted_by"`
	TotalAmountSubmitted int64      `json:"total_amount_submitted"`
	DeclaredAmount       *int64     `json:"declared_amount,omitempty"`
	AdjustedAmount       *int64     `json:"adjusted_amount,omitempty"`
	Note                 *string    `json:"note,omitempty"`
	RejectReason         *string    `json:"reject_reason,omitempty"`
	Status               string     `json:"status"`
	OrderIDs             []string   `json:"order_ids"`
	ReconciledAt         *time.Time `json:"reconciled_at,omitempty"`
	ConfirmedBy          *string    `json:"confirmed_by,omitempty"`
	Version              int64      `json:"version"`
	CreatedAt            time.Time  `json:"created_at"`
}

type CODHolding struct {
	OrderID        string    `json:"order_id"`
	TrackingNumber string    `json:"tracking_number"`
	OfficeID       *string   `json:"office_id,omitempty"`
	Amount         int64     `json:"amount"`
	DeliveredAt    time.Time `json:"delivered_at"`
}

type DriverCash struct {
	DriverID string       `json:"driver_id"`
	Total    int64        `json:"total"`
	Holdings []CODHolding `json:"holdings"`
}

func (c SubmissionCreate) ToDomain() entities.SubmissionCreate {
	return entities.SubmissionCreate{
		OfficeID:      c.OfficeID,
		SubmittedBy:   c.SubmittedBy,
		OrderIDs:      c.OrderIDs,
		DeclaredTotal: c.DeclaredTotal,
	}
}

func FromSubmission(s entities.PaymentSubmission) Submission {
	return Submission{
		ID:                   s.ID,
		OfficeID:             s.OfficeID,
		SubmittedBy:          s.SubmittedBy,
		TotalAmountSubmitted: s.TotalAmountSubmitted,
		DeclaredAmount:       s.DeclaredAmount,
		AdjustedAmount:       s.AdjustedAmount,
		Note:                 s.Note,
		RejectReason:         s.RejectReason,
		Status:               s.Status.String(),
		OrderIDs:             s.OrderIDs,
		ReconciledAt:         s.ReconciledAt,
		ConfirmedBy:          s.ConfirmedBy,
		Version:              s.Version,
		CreatedAt:            s.CreatedAt,
	}
}

func FromSubmissions(subs []entities.PaymentSubmission) []Submission {
	out := make([]Submission, 0, len(subs))
	for _, s := range subs {
		out = append(out, FromSubmission(s))
	}
	return out
}

func FromDriverCash(driverID string, total int64, holdings []entities.CODHolding) DriverCash {
	out := DriverCash{DriverID: driverID, Total: total, Holdings: make([]CODHolding, 0, len(holdings))}
	for _, h := range holdings {
		out.Holdings = append(out.Holdings, CODHolding{
			OrderID:        h.OrderID,
			TrackingNumber: h.TrackingNumber,
			OfficeID:       h.OfficeID,
			Amount:         h.Amount,
			DeliveredAt:    h.DeliveredAt,
		})
	}
	return out
}
