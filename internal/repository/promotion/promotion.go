package promotion

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"logistics/internal/entities"
	"logistics/internal/repository"
	"logistics/internal/service/fee"
	"logistics/internal/service/promotion"
)

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const promotionColumns = `id, code, discount_type, discount_value, min_order_value, max_discount_amount,
	start_date, end_date, usage_limit, used_count, status, created_at`

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func scanDest(p *entities.Promotion) []any {
	return []any{
		&p.ID, &p.Code, &p.DiscountType, &p.DiscountValue, &p.MinOrderValue, &p.MaxDiscountAmount,
		&p.StartDate, &p.EndDate, &p.UsageLimit, &p.UsedCount, &p.Status, &p.CreatedAt,
	}
}

func (r *Repository) Create(ctx context.Context, p entities.Promotion) (*entities.Promotion, error) {
	query := `INSERT INTO promotions (` + promotionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 0, $10, $11)
		RETURNING ` + promotionColumns

	var created entities.Promotion
	err := r.querier.QueryRow(ctx, query,
		p.ID, p.Code, string(p.DiscountType), p.DiscountValue, p.MinOrderValue, p.MaxDiscountAmount,
		p.StartDate, p.EndDate, p.UsageLimit, string(p.Status), p.CreatedAt,
	).Scan(scanDest(&created)...)
	if err != nil {
		if repository.IsPgErrorWithCode(err, repository.PgErrUniqueViolation) {
			return nil, promotion.ErrPromotionCodeTaken
		}
		if repository.IsPgErrorWithCode(err, repository.PgErrCheckViolation) {
			return nil, fmt.Errorf("%w: %s", promotion.ErrInvalidPromotion, repository.PgErrorDetail(err))
		}
		return nil, fmt.Errorf("unexpected promotion repository create error: %w", err)
	}
	return &created, nil
}

func (r *Repository) GetByCode(ctx context.Context, code string) (*entities.Promotion, error) {
	return r.getOne(ctx, "getbycode", `SELECT `+promotionColumns+` FROM promotions WHERE UPPER(code) = UPPER($1)`, code)
}

func (r *Repository) GetByID(ctx context.Context, id string) (*entities.Promotion, error) {
	return r.getOne(ctx, "getbyid", `SELECT `+promotionColumns+` FROM promotions WHERE id = $1`, id)
}

func (r *Repository) getOne(ctx context.Context, op, query, arg string) (*entities.Promotion, error) {
	var p entities.Promotion
	err := r.querier.QueryRow(ctx, query, arg).Scan(scanDest(&p)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, promotion.ErrPromotionNotFound
		}
		return nil, fmt.Errorf("unexpected promotion repository %s error: %w", op, err)
	}
	return &p, nil
}

// IncrementUsage условный: лимит проверяется в том же UPDATE, гонка двух заказов за последнее
// использование решается на уровне строки.
func (r *Repository) IncrementUsage(ctx context.Context, id string) error {
	query := `UPDATE promotions SET used_count = used_count + 1
		WHERE id = $1 AND (usage_limit IS NULL OR used_count < usage_limit)`
	tag, err := r.querier.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("unexpected promotion repository increment error: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: usage limit reached", fee.ErrPromotionNotApplicable)
	}
	return nil
}

func (r *Repository) DecrementUsage(ctx context.Context, id string) error {
	query := `UPDATE promotions SET used_count = used_count - 1 WHERE id = $1 AND used_count > 0`
	if _, err := r.querier.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("unexpected promotion repository decrement error: %w", err)
	}
	return nil
}

func (r *Repository) List(ctx context.Context, status *entities.PromotionStatus) ([]entities.Promotion, error) {
	builder := qb.Select(promotionColumns).From("promotions")
	if status != nil {
		builder = builder.Where(sq.Eq{"status": string(*status)})
	}
	builder = builder.OrderBy("start_date DESC", "code")

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected promotion repository list error: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected promotion repository list error: %w", err)
	}
	defer rows.Close()

	result := make([]entities.Promotion, 0, 8)
	for rows.Next() {
		var p entities.Promotion
		if err := rows.Scan(scanDest(&p)...); err != nil {
			return nil, fmt.Errorf("unexpected promotion repository list error: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected promotion repository list error: %w", err)
	}
	return result, nil
}

func (r *Repository) ExpireEnded(ctx context.Context, now time.Time) (int64, error) {
	query := `UPDATE promotions SET status = 'expired' WHERE status = 'active' AND end_date < $1`
	tag, err := r.querier.Exec(ctx, query, now)
	if err != nil {
		return 0, fmt.Errorf("unexpected promotion repository expire error: %w", err)
	}
	return tag.RowsAffected(), nil
}
