package submission

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"logistics/internal/entities"
	"logistics/internal/repository"
	"logistics/internal/service/submission"
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

// Create пишет сдачу и ее заказы. Сумма по заказу фиксируется на момент сдачи.
// Должна вызываться в транзакции: две вставки.
func (r *Repository) Create(ctx context.Context, s entities.PaymentSubmission) (*entities.PaymentSubmission, error) {
	query := `INSERT INTO payment_submissions
		(id, office_id, submitted_by, total_amount_submitted, declared_amount, status, version, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, 1, $7)`
	_, err := r.querier.Exec(ctx, query,
		s.ID, s.OfficeID, s.SubmittedBy, s.TotalAmountSubmitted, s.DeclaredAmount, s.Status.String(), s.CreatedAt)
	if err != nil {
		if repository.IsPgErrorWithCode(err, repository.PgErrCheckViolation) {
			return nil, fmt.Errorf("%w: %s", submission.ErrInvalidSubmission, repository.PgErrorDetail(err))
		}
		return nil, fmt.Errorf("unexpected submission repository create error: %w", err)
	}

	query = `INSERT INTO submission_orders (submission_id, order_id, amount)
		SELECT $1, o.id, o.cod FROM orders o WHERE o.id = ANY($2)`
	_, err = r.querier.Exec(ctx, query, s.ID, s.OrderIDs)
	if err != nil {
		if repository.IsPgErrorWithCode(err, repository.PgErrUniqueViolation) {
			return nil, submission.ErrOrderAlreadySubmitted
		}
		return nil, fmt.Errorf("unexpected submission repository create error: %w", err)
	}

	return r.GetByID(ctx, s.ID)
}

func (r *Repository) GetByID(ctx context.Context, id string) (*entities.PaymentSubmission, error) {
	return r.getOne(ctx, "getbyid", `SELECT `+submissionColumns+` FROM payment_submissions s WHERE s.id = $1`, id)
}

func (r *Repository) LockByID(ctx context.Context, id string) (*entities.PaymentSubmission, error) {
	return r.getOne(ctx, "lockbyid", `SELECT `+submissionColumns+` FROM payment_submissions s WHERE s.id = $1 FOR UPDATE`, id)
}

func (r *Repository) getOne(ctx context.Context, op, query, id string) (*entities.PaymentSubmission, error) {
	var m SubmissionDB
	err := r.querier.QueryRow(ctx, query, id).Scan(m.scanDest()...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, submission.ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("unexpected submission repository %s error: %w", op, err)
	}
	return ToDomain(&m), nil
}

func (r *Repository) Update(ctx context.Context, s entities.PaymentSubmission, expectedVersion int64) (*entities.PaymentSubmission, error) {
	query := `UPDATE payment_submissions
		SET status = $3, adjusted_amount = $4, note = $5, reject_reason = $6,
			reconciled_at = $7, confirmed_by = $8, version = version + 1
		WHERE id = $1 AND version = $2`
	tag, err := r.querier.Exec(ctx, query,
		s.ID, expectedVersion, s.Status.String(), s.AdjustedAmount, s.Note, s.RejectReason, s.ReconciledAt, s.ConfirmedBy)
	if err != nil {
		switch {
		case repository.IsPgErrorWithCode(err, repository.PgErrRaiseException):
			return nil, fmt.Errorf("%w: %s", submission.ErrNotPending, repository.PgErrorDetail(err))
		case repository.IsPgErrorWithCode(err, repository.PgErrCheckViolation):
			return nil, fmt.Errorf("%w: %s", submission.ErrInvalidSubmission, repository.PgErrorDetail(err))
		}
		return nil, fmt.Errorf("unexpected submission repository update error: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("%w: submission %s is not at version %d", submission.ErrVersionConflict, s.ID, expectedVersion)
	}

	return r.GetByID(ctx, s.ID)
}

func (r *Repository) DeactivateOrders(ctx context.Context, submissionID string) error {
	query := `UPDATE submission_orders SET active = FALSE WHERE submission_id = $1 AND active`
	if _, err := r.querier.Exec(ctx, query, submissionID); err != nil {
		return fmt.Errorf("unexpected submission repository deactivate error: %w", err)
	}
	return nil
}

func (r *Repository) ActiveByOrders(ctx context.Context, orderIDs []string) (map[string]string, error) {
	query := `SELECT order_id, submission_id FROM submission_orders WHERE active AND order_id = ANY($1)`
	rows, err := r.querier.Query(ctx, query, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("unexpected submission repository active error: %w", err)
	}
	defer rows.Close()

	active := make(map[string]string, len(orderIDs))
	for rows.Next() {
		var orderID, submissionID string
		if err := rows.Scan(&orderID, &submissionID); err != nil {
			return nil, fmt.Errorf("unexpected submission repository active error: %w", err)
		}
		active[orderID] = submissionID
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected submission repository active error: %w", err)
	}
	return active, nil
}

func (r *Repository) List(ctx context.Context, filter entities.SubmissionFilter) ([]entities.PaymentSubmission, error) {
	builder := qb.Select(submissionColumns).From("payment_submissions s")

	if filter.OfficeID != nil {
		builder = builder.Where(sq.Eq{"s.office_id": *filter.OfficeID})
	}
	if filter.SubmittedBy != nil {
		builder = builder.Where(sq.Eq{"s.submitted_by": *filter.SubmittedBy})
	}
	if filter.Status != nil {
		builder = builder.Where(sq.Eq{"s.status": filter.Status.String()})
	}
	if filter.CreatedLT != nil {
		builder = builder.Where(sq.Lt{"s.created_at": *filter.CreatedLT})
	}
	builder = builder.OrderBy("s.created_at", "s.id").Limit(filter.Limit).Offset(filter.Offset)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected submission repository list error: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected submission repository list error: %w", err)
	}
	defer rows.Close()

	result := make([]entities.PaymentSubmission, 0, 8)
	for rows.Next() {
		var m SubmissionDB
		if err := rows.Scan(m.scanDest()...); err != nil {
			return nil, fmt.Errorf("unexpected submission repository list error: %w", err)
		}
		result = append(result, *ToDomain(&m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected submission repository list error: %w", err)
	}
	return result, nil
}

// Unsubmitted: доставленные заказы с наложенным платежом, которые не входят ни в одну активную сдачу.
func (r *Repository) Unsubmitted(ctx context.Context, driverID *string, deliveredBefore *time.Time) ([]entities.CODHolding, error) {
	builder := qb.
		Select("o.id", "o.tracking_number", "o.collected_by", "o.to_office_id", "o.cod", "o.delivered_at").
		From("orders o").
		Where(sq.Eq{"o.status": entities.OrderDelivered.String()}).
		Where(sq.Gt{"o.cod": 0}).
		Where("NOT EXISTS (SELECT 1 FROM submission_orders so WHERE so.order_id = o.id AND so.active)")
	if driverID != nil {
		builder = builder.Where(sq.Eq{"o.collected_by": *driverID})
	}
	if deliveredBefore != nil {
		builder = builder.Where(sq.Lt{"o.delivered_at": *deliveredBefore})
	}
	builder = builder.OrderBy("o.delivered_at", "o.id")

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected submission repository unsubmitted error: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected submission repository unsubmitted error: %w", err)
	}
	defer rows.Close()

	holdings := make([]entities.CODHolding, 0, 8)
	for rows.Next() {
		var h entities.CODHolding
		if err := rows.Scan(&h.OrderID, &h.TrackingNumber, &h.DriverID, &h.OfficeID, &h.Amount, &h.DeliveredAt); err != nil {
			return nil, fmt.Errorf("unexpected submission repository unsubmitted error: %w", err)
		}
		holdings = append(holdings, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected submission repository unsubmitted error: %w", err)
	}
	return holdings, nil
}
