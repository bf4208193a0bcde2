package submission

import "time"

type SubmissionDB struct {
	ID                   string
	OfficeID             string
	SubmittedBy          string
	TotalAmountSubmitted int64
	DeclaredAmount       *int64
	AdjustedAmount       *int64
	Note                 *string
	RejectReason         *string
	Status               string
	OrderIDs             []string
	ReconciledAt         *time.Time
	ConfirmedBy          *string
	Version              int64
	CreatedAt            time.Time
}

const submissionColumns = `s.id, s.office_id, s.submitted_by, s.total_amount_submitted, s.declared_amount,
	s.adjusted_amount, s.note, s.reject_reason, s.status,
	ARRAY(SELECT so.order_id FROM submission_orders so WHERE so.submission_id = s.id ORDER BY so.order_id),
	s.reconciled_at, s.confirmed_by, s.version, s.created_at`

func (s *SubmissionDB) scanDest() []any {
	return []any{
		&s.ID, &s.OfficeID, &s.SubmittedBy, &s.TotalAmountSubmitted, &s.DeclaredAmount,
		&s.AdjustedAmount, &s.Note, &s.RejectReason, &s.Status,
		&s.OrderIDs,
		&s.ReconciledAt, &s.ConfirmedBy, &s.Version, &s.CreatedAt,
	}
}
