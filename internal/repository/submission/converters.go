package submission

import "logistics/internal/entities"

func ToDomain(s *SubmissionDB) *entities.PaymentSubmission {
	if s == nil {
		return nil
	}
	orderIDs := s.OrderIDs
	if orderIDs == nil {
		orderIDs = []string{}
	}

	return &entities.PaymentSubmission{
		ID:                   s.ID,
		OfficeID:             s.OfficeID,
		SubmittedBy:          s.SubmittedBy,
		TotalAmountSubmitted: s.TotalAmountSubmitted,
		DeclaredAmount:       s.DeclaredAmount,
		AdjustedAmount:       s.AdjustedAmount,
		Note:                 s.Note,
		RejectReason:         s.RejectReason,
		Status:               entities.SubmissionStatus(s.Status),
		OrderIDs:             orderIDs,
		ReconciledAt:         s.ReconciledAt,
		ConfirmedBy:          s.ConfirmedBy,
		Version:              s.Version,
		CreatedAt:            s.CreatedAt,
	}
}
