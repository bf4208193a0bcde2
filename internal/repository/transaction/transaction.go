package transaction

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"logistics/internal/entities"
	"logistics/internal/repository"
	"logistics/internal/service/ledger"
)

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) Create(ctx context.Context, tx entities.Transaction) (*entities.Transaction, error) {
	m := FromDomain(&tx)
	query := `INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING ` + transactionColumns

	var created TransactionDB
	err := r.querier.QueryRow(ctx, query,
		m.ID, m.Type, m.Purpose, m.Amount, m.OfficeID, m.Status, m.OrderID, m.PaymentSubmissionID,
		m.Images, m.Note, m.CreatedBy, m.ConfirmedBy, m.ConfirmedAt, m.RejectReason, m.CreatedAt,
	).Scan(created.scanDest()...)
	if err != nil {
		if repository.IsPgErrorWithCode(err, repository.PgErrUniqueViolation) {
			return nil, ledger.ErrDuplicateCODReturn
		}
		if repository.IsPgErrorWithCode(err, repository.PgErrCheckViolation) {
			return nil, fmt.Errorf("%w: %s", ledger.ErrInvalidTransaction, repository.PgErrorDetail(err))
		}
		return nil, fmt.Errorf("unexpected transaction repository create error: %w", err)
	}

	return ToDomain(&created), nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*entities.Transaction, error) {
	return r.getOne(ctx, "getbyid", `SELECT `+transactionColumns+` FROM transactions WHERE id = $1`, id)
}

func (r *Repository) LockByID(ctx context.Context, id string) (*entities.Transaction, error) {
	return r.getOne(ctx, "lockbyid", `SELECT `+transactionColumns+` FROM transactions WHERE id = $1 FOR UPDATE`, id)
}

func (r *Repository) getOne(ctx context.Context, op, query, id string) (*entities.Transaction, error) {
	var m TransactionDB
	err := r.querier.QueryRow(ctx, query, id).Scan(m.scanDest()...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ledger.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("unexpected transaction repository %s error: %w", op, err)
	}
	return ToDomain(&m), nil
}

// Resolve меняет только Pending строки; подтвержденные и отклоненные защищены триггером.
func (r *Repository) Resolve(ctx context.Context, tx entities.Transaction) (*entities.Transaction, error) {
	query := `UPDATE transactions
		SET status = $2, confirmed_by = $3, confirmed_at = $4, reject_reason = $5
		WHERE id = $1 AND status = 'Pending'
		RETURNING ` + transactionColumns

	var m TransactionDB
	err := r.querier.QueryRow(ctx, query, tx.ID, string(tx.Status), tx.ConfirmedBy, tx.ConfirmedAt, tx.RejectReason).
		Scan(m.scanDest()...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || repository.IsPgErrorWithCode(err, repository.PgErrRaiseException) {
			return nil, fmt.Errorf("%w: %s", ledger.ErrAlreadyResolved, tx.ID)
		}
		return nil, fmt.Errorf("unexpected transaction repository resolve error: %w", err)
	}
	return ToDomain(&m), nil
}

func (r *Repository) List(ctx context.Context, filter entities.TransactionFilter) ([]entities.Transaction, error) {
	builder := qb.Select(transactionColumns).From("transactions")

	if filter.OfficeID != nil {
		builder = builder.Where(sq.Eq{"office_id": *filter.OfficeID})
	}
	if filter.Status != nil {
		builder = builder.Where(sq.Eq{"status": string(*filter.Status)})
	}
	if filter.Purpose != nil {
		builder = builder.Where(sq.Eq{"purpose": string(*filter.Purpose)})
	}
	if filter.OrderID != nil {
		builder = builder.Where(sq.Eq{"order_id": *filter.OrderID})
	}
	if filter.PaymentSubmissionID != nil {
		builder = builder.Where(sq.Eq{"payment_submission_id": *filter.PaymentSubmissionID})
	}
	builder = builder.OrderBy("created_at DESC", "id").Limit(filter.Limit).Offset(filter.Offset)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected transaction repository list error: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected transaction repository list error: %w", err)
	}
	defer rows.Close()

	result := make([]entities.Transaction, 0, 8)
	for rows.Next() {
		var m TransactionDB
		if err := rows.Scan(m.scanDest()...); err != nil {
			return nil, fmt.Errorf("unexpected transaction repository list error: %w", err)
		}
		result = append(result, *ToDomain(&m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected transaction repository list error: %w", err)
	}
	return result, nil
}

// Balances считает по тем же правилам, что entities.Balance: только Confirmed.
func (r *Repository) Balances(ctx context.Context, officeID *string) ([]entities.OfficeBalance, error) {
	builder := qb.
		Select(
			"office_id",
			"COALESCE(SUM(amount) FILTER (WHERE type = 'Income'), 0)::BIGINT",
			"COALESCE(SUM(amount) FILTER (WHERE type = 'Expense'), 0)::BIGINT",
		).
		From("transactions").
		Where(sq.Eq{"status": string(entities.TransactionConfirmed)})
	if officeID != nil {
		builder = builder.Where(sq.Eq{"office_id": *officeID})
	}
	builder = builder.GroupBy("office_id").OrderBy("office_id")

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected transaction repository balances error: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected transaction repository balances error: %w", err)
	}
	defer rows.Close()

	balances := make([]entities.OfficeBalance, 0, 4)
	for rows.Next() {
		var b entities.OfficeBalance
		if err := rows.Scan(&b.OfficeID, &b.Income, &b.Expense); err != nil {
			return nil, fmt.Errorf("unexpected transaction repository balances error: %w", err)
		}
		balances = append(balances, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected transaction repository balances error: %w", err)
	}
	return balances, nil
}
