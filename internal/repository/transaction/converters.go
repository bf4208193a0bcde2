package transaction

import "logistics/internal/entities"

func ToDomain(t *TransactionDB) *entities.Transaction {
	if t == nil {
		return nil
	}
	images := t.Images
	if images == nil {
		images = []string{}
	}

	return &entities.Transaction{
		ID:                  t.ID,
		Type:                entities.TransactionType(t.Type),
		Purpose:             entities.TransactionPurpose(t.Purpose),
		Amount:              t.Amount,
		OfficeID:            t.OfficeID,
		Status:              entities.TransactionStatus(t.Status),
		OrderID:             t.OrderID,
		PaymentSubmissionID: t.PaymentSubmissionID,
		Images:              images,
		Note:                t.Note,
		CreatedBy:           t.CreatedBy,
		ConfirmedBy:         t.ConfirmedBy,
		ConfirmedAt:         t.ConfirmedAt,
		RejectReason:        t.RejectReason,
		CreatedAt:           t.CreatedAt,
	}
}

func FromDomain(t *entities.Transaction) *TransactionDB {
	if t == nil {
		return nil
	}
	images := t.Images
	if images == nil {
		images = []string{}
	}

	return &TransactionDB{
		ID:                  t.ID,
		Type:                string(t.Type),
		Purpose:             string(t.Purpose),
		Amount:              t.Amount,
		OfficeID:            t.OfficeID,
		Status:              string(t.Status),
		OrderID:             t.OrderID,
		PaymentSubmissionID: t.PaymentSubmissionID,
		Images:              images,
		Note:                t.Note,
		CreatedBy:           t.CreatedBy,
		ConfirmedBy:         t.ConfirmedBy,
		ConfirmedAt:         t.ConfirmedAt,
		RejectReason:        t.RejectReason,
		CreatedAt:           t.CreatedAt,
	}
}
