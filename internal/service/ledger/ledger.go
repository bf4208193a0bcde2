package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"logistics/internal/entities"
	"logistics/internal/pkg/outbox"
)

// ConfirmHook выполняется в транзакции подтверждения, например возврат отмечает заказ Refunded.
type ConfirmHook func(ctx context.Context, tx entities.Transaction) error

type Service struct {
	repository Repository
	outbox     Outbox
	txManager  TxManager
	hooks      map[entities.TransactionPurpose][]ConfirmHook
	now        func() time.Time
}

func New(repository Repository, outbox Outbox, txManager TxManager) *Service {
	return &Service{
		repository: repository,
		outbox:     outbox,
		txManager:  txManager,
		hooks:      make(map[entities.TransactionPurpose][]ConfirmHook),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// OnConfirm регистрирует хук. Вызывается при сборке приложения, до обработки запросов.
func (s *Service) OnConfirm(purpose entities.TransactionPurpose, hook ConfirmHook) {
	s.hooks[purpose] = append(s.hooks[purpose], hook)
}

func (s *Service) PostTransaction(ctx context.Context, post entities.TransactionPost) (*entities.Transaction, error) {
	if err := post.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidTransaction, err)
	}

	now := s.now()
	tx := entities.Transaction{
		ID:                  uuid.NewString(),
		Type:                post.Type,
		Purpose:             post.Purpose,
		Amount:              post.Amount,
		OfficeID:            post.OfficeID,
		Status:              entities.TransactionPending,
		OrderID:             post.OrderID,
		PaymentSubmissionID: post.PaymentSubmissionID,
		Images:              post.Images,
		Note:                post.Note,
		CreatedBy:           post.CreatedBy,
		CreatedAt:           now,
	}
	if tx.Images == nil {
		tx.Images = []string{}
	}
	if post.Purpose.AutoConfirmed() {
		by := post.CreatedBy
		tx.Status = entities.TransactionConfirmed
		tx.ConfirmedBy = &by
		tx.ConfirmedAt = &now
	}

	var created *entities.Transaction
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.repository.Create(ctx, tx)
		if err != nil {
			return fmt.Errorf("create transaction: %w", err)
		}
		return s.emitPosted(ctx, *created)
	})
	if err != nil {
		return nil, err
	}

	PostingsTotal.WithLabelValues(string(created.Purpose), string(created.Status)).Inc()
	if created.Status == entities.TransactionConfirmed {
		PostedAmount.WithLabelValues(string(created.Type)).Add(float64(created.Amount))
	}
	return created, nil
}

// ConfirmTransaction идемпотентна: повторное подтверждение возвращает запись без изменений.
func (s *Service) ConfirmTransaction(ctx context.Context, id, by string) (*entities.Transaction, error) {
	if strings.TrimSpace(id) == "" || strings.TrimSpace(by) == "" {
		return nil, fmt.Errorf("%w: id and confirmer are required", ErrInvalidTransaction)
	}

	var result *entities.Transaction
	confirmed := false
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		current, err := s.repository.LockByID(ctx, id)
		if err != nil {
			return err
		}
		switch current.Status {
		case entities.TransactionConfirmed:
			result = current
			return nil
		case entities.TransactionRejected:
			return fmt.Errorf("%w: %s is rejected", ErrAlreadyResolved, id)
		}

		now := s.now()
		next := *current
		next.Status = entities.TransactionConfirmed
		next.ConfirmedBy = &by
		next.ConfirmedAt = &now

		result, err = s.repository.Resolve(ctx, next)
		if err != nil {
			return fmt.Errorf("confirm transaction: %w", err)
		}
		for _, hook := range s.hooks[result.Purpose] {
			if err := hook(ctx, *result); err != nil {
				return fmt.Errorf("%s confirm hook: %w", result.Purpose, err)
			}
		}
		confirmed = true
		return s.emitPosted(ctx, *result)
	})
	if err != nil {
		return nil, err
	}

	if confirmed {
		PostingsTotal.WithLabelValues(string(result.Purpose), string(result.Status)).Inc()
		PostedAmount.WithLabelValues(string(result.Type)).Add(float64(result.Amount))
	}
	return result, nil
}

// RejectTransaction идемпотентна так же, как ConfirmTransaction.
func (s *Service) RejectTransaction(ctx context.Context, id, reason, by string) (*entities.Transaction, error) {
	if strings.TrimSpace(id) == "" || strings.TrimSpace(by) == "" {
		return nil, fmt.Errorf("%w: id and reviewer are required", ErrInvalidTransaction)
	}
	if strings.TrimSpace(reason) == "" {
		return nil, fmt.Errorf("%w: reject reason is required", ErrInvalidTransaction)
	}

	var result *entities.Transaction
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		current, err := s.repository.LockByID(ctx, id)
		if err != nil {
			return err
		}
		switch current.Status {
		case entities.TransactionRejected:
			result = current
			return nil
		case entities.TransactionConfirmed:
			return fmt.Errorf("%w: %s is confirmed", ErrAlreadyResolved, id)
		}

		now := s.now()
		next := *current
		next.Status = entities.TransactionRejected
		next.RejectReason = &reason
		next.ConfirmedBy = &by
		next.ConfirmedAt = &now

		result, err = s.repository.Resolve(ctx, next)
		if err != nil {
			return fmt.Errorf("reject transaction: %w", err)
		}
		return s.emitPosted(ctx, *result)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// TransferRevenue: перевод выручки между офисами: расход у источника и доход у получателя,
// обе проводки ждут подтверждения.
func (s *Service) TransferRevenue(
	ctx context.Context,
	fromOfficeID string,
	toOfficeID string,
	amount int64,
	note string,
	by string,
) ([]entities.Transaction, error) {
	if fromOfficeID == "" || toOfficeID == "" || fromOfficeID == toOfficeID {
		return nil, fmt.Errorf("%w: transfer needs two distinct offices", ErrInvalidTransaction)
	}

	var result []entities.Transaction
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		legs := []entities.TransactionPost{
			{Type: entities.TransactionExpense, OfficeID: fromOfficeID, Note: "transfer to " + toOfficeID + ": " + note},
			{Type: entities.TransactionIncome, OfficeID: toOfficeID, Note: "transfer from " + fromOfficeID + ": " + note},
		}
		for _, leg := range legs {
			leg.Purpose = entities.PurposeRevenueTransfer
			leg.Amount = amount
			leg.CreatedBy = by
			posted, err := s.PostTransaction(ctx, leg)
			if err != nil {
				return err
			}
			result = append(result, *posted)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Service) GetTransaction(ctx context.Context, id string) (*entities.Transaction, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: id is required", ErrInvalidTransaction)
	}
	return s.repository.GetByID(ctx, id)
}

func (s *Service) ListTransactions(ctx context.Context, filter entities.TransactionFilter) ([]entities.Transaction, error) {
	if filter.Limit == 0 || filter.Limit > 500 {
		filter.Limit = 100
	}
	return s.repository.List(ctx, filter)
}

// Balance считает только подтвержденные проводки. При officeID == nil считает по всем офисам.
// Суммы всех офисов берутся из одного снимка.
func (s *Service) Balance(ctx context.Context, officeID *string) ([]entities.OfficeBalance, error) {
	var balances []entities.OfficeBalance
	err := s.txManager.DoReadOnly(ctx, func(ctx context.Context) error {
		var err error
		balances, err = s.repository.Balances(ctx, officeID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("balances: %w", err)
	}
	return balances, nil
}

func (s *Service) emitPosted(ctx context.Context, tx entities.Transaction) error {
	id := uuid.NewString()
	event, err := outbox.NewEvent(id, entities.TopicLedgerEvents, tx.OfficeID, entities.TransactionPosted{
		EventID:       id,
		TransactionID: tx.ID,
		OfficeID:      tx.OfficeID,
		Type:          string(tx.Type),
		Purpose:       string(tx.Purpose),
		Status:        string(tx.Status),
		Amount:        tx.Amount,
		At:            s.now(),
	})
	if err != nil {
		return err
	}
	if err := s.outbox.Add(ctx, event); err != nil {
		return fmt.Errorf("enqueue ledger event: %w", err)
	}
	return nil
}
