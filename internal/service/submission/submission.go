package submission

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"logistics/internal/entities"
	"logistics/internal/pkg/outbox"
)

// confirmAttempts: повторы при serialization failure. Вторая попытка видит зафиксированную
// первой транзакцией сдачу и возвращает ее без новой проводки.
const confirmAttempts = 3

type Service struct {
	repository Repository
	orders     OrderService
	ledger     Ledger
	outbox     Outbox
	txManager  TxManager
	now        func() time.Time
}

func New(repository Repository, orders OrderService, ledger Ledger, outbox Outbox, txManager TxManager) *Service {
	return &Service{
		repository: repository,
		orders:     orders,
		ledger:     ledger,
		outbox:     outbox,
		txManager:  txManager,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) CreateSubmission(ctx context.Context, create entities.SubmissionCreate) (*entities.PaymentSubmission, error) {
	if strings.TrimSpace(create.OfficeID) == "" || strings.TrimSpace(create.SubmittedBy) == "" {
		return nil, fmt.Errorf("%w: office and submitter are required", ErrInvalidSubmission)
	}
	ids := dedupe(create.OrderIDs)
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: at least one order is required", ErrInvalidSubmission)
	}
	if create.DeclaredTotal != nil && *create.DeclaredTotal < 0 {
		return nil, fmt.Errorf("%w: declared total must be >= 0", ErrInvalidSubmission)
	}

	var created *entities.PaymentSubmission
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		orders, err := s.orders.LockOrders(ctx, ids)
		if err != nil {
			return err
		}
		active, err := s.repository.ActiveByOrders(ctx, ids)
		if err != nil {
			return fmt.Errorf("active submissions: %w", err)
		}

		total, failures := checkEligible(ids, orders, active, create.SubmittedBy)
		if len(failures) > 0 {
			return &entities.BatchError{Kind: ErrOrderNotEligible, Failures: failures}
		}
		if create.DeclaredTotal != nil && *create.DeclaredTotal != total {
			return fmt.Errorf("%w: declared %d, collected %d", ErrAmountMismatch, *create.DeclaredTotal, total)
		}

		created, err = s.repository.Create(ctx, entities.PaymentSubmission{
			ID:                   uuid.NewString(),
			OfficeID:             create.OfficeID,
			SubmittedBy:          create.SubmittedBy,
			TotalAmountSubmitted: total,
			DeclaredAmount:       create.DeclaredTotal,
			Status:               entities.SubmissionPending,
			OrderIDs:             ids,
			CreatedAt:            s.now(),
		})
		if err != nil {
			return fmt.Errorf("create submission: %w", err)
		}
		return s.emitChanged(ctx, *created, created.TotalAmountSubmitted)
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func checkEligible(ids []string, orders []entities.Order, active map[string]string, submittedBy string) (int64, []entities.BatchFailure) {
	byID := make(map[string]entities.Order, len(orders))
	for _, o := range orders {
		byID[o.ID] = o
	}

	var total int64
	var failures []entities.BatchFailure
	fail := func(id string, reason error) {
		failures = append(failures, entities.BatchFailure{OrderID: id, Reason: reason})
	}
	for _, id := range ids {
		o, ok := byID[id]
		switch {
		case !ok:
			fail(id, entities.ErrNotFound)
		case o.Status != entities.OrderDelivered:
			fail(id, fmt.Errorf("status is %s, want delivered", o.Status))
		case o.COD <= 0:
			fail(id, errors.New("order has no cod"))
		case o.CollectedBy == nil || *o.CollectedBy != submittedBy:
			fail(id, fmt.Errorf("cod was not collected by %s", submittedBy))
		case active[id] != "":
			fail(id, fmt.Errorf("already in submission %s", active[id]))
		default:
			total += o.COD
		}
	}
	return total, failures
}

// ConfirmSubmission идемпотентна: уже подтвержденная сдача возвращается как есть, без второй проводки.
func (s *Service) ConfirmSubmission(ctx context.Context, id, confirmedBy string) (*entities.PaymentSubmission, error) {
	if strings.TrimSpace(id) == "" || strings.TrimSpace(confirmedBy) == "" {
		return nil, fmt.Errorf("%w: id and confirmer are required", ErrInvalidSubmission)
	}

	var result *entities.PaymentSubmission
	err := retryOnConflict(func() error {
		return s.txManager.Do(ctx, func(ctx context.Context) error {
			current, err := s.repository.LockByID(ctx, id)
			if err != nil {
				return err
			}
			switch current.Status {
			case entities.SubmissionConfirmed:
				result = current
				return nil
			case entities.SubmissionAdjusted, entities.SubmissionRejected:
				return fmt.Errorf("%w: %s is %s", ErrNotPending, id, current.Status)
			}

			if err := s.verifyTotal(ctx, *current); err != nil {
				return err
			}

			now := s.now()
			next := *current
			next.Status = entities.SubmissionConfirmed
			next.ReconciledAt = &now
			next.ConfirmedBy = &confirmedBy

			result, err = s.reconcile(ctx, *current, next, "cod return for submission "+id)
			return err
		})
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// AdjustSubmission фиксирует исправленную сумму с обязательной пометкой и проводит именно ее.
func (s *Service) AdjustSubmission(ctx context.Context, id string, correctedAmount int64, note, by string) (*entities.PaymentSubmission, error) {
	if strings.TrimSpace(id) == "" || strings.TrimSpace(by) == "" {
		return nil, fmt.Errorf("%w: id and reviewer are required", ErrInvalidSubmission)
	}
	if correctedAmount <= 0 {
		return nil, fmt.Errorf("%w: corrected amount must be > 0", ErrInvalidSubmission)
	}
	if strings.TrimSpace(note) == "" {
		return nil, fmt.Errorf("%w: adjustment note is required", ErrInvalidSubmission)
	}

	var result *entities.PaymentSubmission
	err := retryOnConflict(func() error {
		return s.txManager.Do(ctx, func(ctx context.Context) error {
			current, err := s.repository.LockByID(ctx, id)
			if err != nil {
				return err
			}
			if current.Status == entities.SubmissionAdjusted &&
				current.AdjustedAmount != nil && *current.AdjustedAmount == correctedAmount {
				result = current
				return nil
			}
			if current.Status != entities.SubmissionPending {
				return fmt.Errorf("%w: %s is %s", ErrNotPending, id, current.Status)
			}

			now := s.now()
			next := *current
			next.Status = entities.SubmissionAdjusted
			next.AdjustedAmount = &correctedAmount
			next.Note = &note
			next.ReconciledAt = &now
			next.ConfirmedBy = &by

			result, err = s.reconcile(ctx, *current, next, "adjusted cod return for submission "+id+": "+note)
			return err
		})
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// RejectSubmission освобождает заказы, чтобы их можно было сдать заново.
func (s *Service) RejectSubmission(ctx context.Context, id, reason, by string) (*entities.PaymentSubmission, error) {
	if strings.TrimSpace(id) == "" || strings.TrimSpace(by) == "" {
		return nil, fmt.Errorf("%w: id and reviewer are required", ErrInvalidSubmission)
	}
	if strings.TrimSpace(reason) == "" {
		return nil, fmt.Errorf("%w: reject reason is required", ErrInvalidSubmission)
	}

	var result *entities.PaymentSubmission
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		current, err := s.repository.LockByID(ctx, id)
		if err != nil {
			return err
		}
		if current.Status == entities.SubmissionRejected {
			result = current
			return nil
		}
		if current.Status != entities.SubmissionPending {
			return fmt.Errorf("%w: %s is %s", ErrNotPending, id, current.Status)
		}

		next := *current
		next.Status = entities.SubmissionRejected
		next.RejectReason = &reason
		next.ConfirmedBy = &by

		result, err = s.repository.Update(ctx, next, current.Version)
		if err != nil {
			return fmt.Errorf("update submission: %w", err)
		}
		if err := s.repository.DeactivateOrders(ctx, id); err != nil {
			return fmt.Errorf("release orders: %w", err)
		}
		return s.emitChanged(ctx, *result, 0)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Service) GetSubmission(ctx context.Context, id string) (*entities.PaymentSubmission, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: id is required", ErrInvalidSubmission)
	}
	return s.repository.GetByID(ctx, id)
}

func (s *Service) ListSubmissions(ctx context.Context, filter entities.SubmissionFilter) ([]entities.PaymentSubmission, error) {
	if filter.Limit == 0 || filter.Limit > 500 {
		filter.Limit = 100
	}
	return s.repository.List(ctx, filter)
}

// DriverCashOnHand: наложенные платежи, собранные водителем и еще не сданные.
func (s *Service) DriverCashOnHand(ctx context.Context, driverID string) (int64, []entities.CODHolding, error) {
	if strings.TrimSpace(driverID) == "" {
		return 0, nil, fmt.Errorf("%w: driver id is required", ErrInvalidSubmission)
	}
	holdings, err := s.repository.Unsubmitted(ctx, &driverID, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("unsubmitted cod: %w", err)
	}
	var total int64
	for _, h := range holdings {
		total += h.Amount
	}
	return total, holdings, nil
}

// UnsubmittedSince: для сверки: доставленные до deadline и не сданные.
func (s *Service) UnsubmittedSince(ctx context.Context, deadline time.Time) ([]entities.CODHolding, error) {
	return s.repository.Unsubmitted(ctx, nil, &deadline)
}

// verifyTotal пересчитывает сумму по текущим значениям заказов под блокировкой.
func (s *Service) verifyTotal(ctx context.Context, sub entities.PaymentSubmission) error {
	orders, err := s.orders.LockOrders(ctx, sub.OrderIDs)
	if err != nil {
		return err
	}
	var total int64
	for _, o := range orders {
		total += o.COD
	}
	if len(orders) != len(sub.OrderIDs) || total != sub.TotalAmountSubmitted {
		return fmt.Errorf("%w: submitted %d, orders now sum to %d", ErrAmountMismatch, sub.TotalAmountSubmitted, total)
	}
	return nil
}

func (s *Service) reconcile(ctx context.Context, current, next entities.PaymentSubmission, note string) (*entities.PaymentSubmission, error) {
	updated, err := s.repository.Update(ctx, next, current.Version)
	if err != nil {
		return nil, fmt.Errorf("update submission: %w", err)
	}

	submissionID := updated.ID
	_, err = s.ledger.PostTransaction(ctx, entities.TransactionPost{
		Type:                entities.TransactionIncome,
		Purpose:             entities.PurposeCODReturn,
		Amount:              updated.LedgerAmount(),
		OfficeID:            updated.OfficeID,
		PaymentSubmissionID: &submissionID,
		Note:                note,
		CreatedBy:           *updated.ConfirmedBy,
	})
	if err != nil {
		return nil, fmt.Errorf("post cod return: %w", err)
	}

	if err := s.emitChanged(ctx, *updated, updated.LedgerAmount()); err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *Service) emitChanged(ctx context.Context, sub entities.PaymentSubmission, amount int64) error {
	id := uuid.NewString()
	event, err := outbox.NewEvent(id, entities.TopicSubmissionEvents, sub.ID, entities.SubmissionStatusChanged{
		EventID:      id,
		SubmissionID: sub.ID,
		SubmittedBy:  sub.SubmittedBy,
		Status:       sub.Status.String(),
		Amount:       amount,
		ChangedAt:    s.now(),
	})
	if err != nil {
		return err
	}
	if err := s.outbox.Add(ctx, event); err != nil {
		return fmt.Errorf("enqueue submission event: %w", err)
	}
	return nil
}

func retryOnConflict(fn func() error) error {
	var err error
	for range confirmAttempts {
		err = fn()
		if !errors.Is(err, entities.ErrConcurrencyConflict) {
			return err
		}
	}
	return err
}

func dedupe(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id != "" && !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}
