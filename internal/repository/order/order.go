package order

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"logistics/internal/entities"
	"logistics/internal/repository"
	"logistics/internal/service/order"
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

// Create не падает на занятом трек-номере, а возвращает ErrTrackingNumberTaken:
// ON CONFLICT DO NOTHING оставляет транзакцию живой для повтора с новым номером.
func (r *Repository) Create(ctx context.Context, o entities.Order) (*entities.Order, error) {
	m := FromDomain(&o)
	query := `INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17,
			$18, $19, $20, $21, $22, $23, $24, $25, $26, $27, 1, $28, $28, NULL)
		ON CONFLICT (tracking_number) DO NOTHING
		RETURNING ` + orderColumns

	var created OrderDB
	err := r.querier.QueryRow(ctx, query,
		m.ID, m.TrackingNumber, m.OwnerID,
		m.SenderName, m.SenderPhone, m.SenderAddress, m.SenderRegion,
		m.RecipientName, m.RecipientPhone, m.RecipientAddress, m.RecipientRegion,
		m.Weight, m.ServiceType, m.COD, m.CODCollected, m.CollectedBy, m.OrderValue,
		m.Payer, m.PaymentMethod, m.PaymentStatus, m.DiscountAmount, m.ShippingFee, m.PromotionID,
		m.Status, m.FromOfficeID, m.ToOfficeID, m.CancelReason, m.CreatedAt,
	).Scan(created.scanDest()...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, order.ErrTrackingNumberTaken
		}
		if repository.IsPgErrorWithCode(err, repository.PgErrCheckViolation) {
			return nil, fmt.Errorf("%w: %s", order.ErrInvalidOrder, repository.PgErrorDetail(err))
		}
		return nil, fmt.Errorf("unexpected order repository create error: %w", err)
	}

	return ToDomain(&created), nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*entities.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	return r.getOne(ctx, "getbyid", query, id)
}

func (r *Repository) GetByTrackingNumber(ctx context.Context, trackingNumber string) (*entities.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE tracking_number = $1`
	return r.getOne(ctx, "getbytrackingnumber", query, trackingNumber)
}

func (r *Repository) getOne(ctx context.Context, op, query string, arg any) (*entities.Order, error) {
	var m OrderDB
	err := r.querier.QueryRow(ctx, query, arg).Scan(m.scanDest()...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, order.ErrOrderNotFound
		}
		return nil, fmt.Errorf("unexpected order repository %s error: %w", op, err)
	}
	return ToDomain(&m), nil
}

func (r *Repository) List(ctx context.Context, filter entities.OrderFilter) ([]entities.Order, error) {
	builder := qb.Select(orderColumns).From("orders")

	if filter.OwnerID != nil {
		builder = builder.Where(sq.Eq{"owner_id": *filter.OwnerID})
	}
	if filter.OfficeID != nil {
		builder = builder.Where(sq.Or{
			sq.Eq{"from_office_id": *filter.OfficeID},
			sq.Eq{"to_office_id": *filter.OfficeID},
		})
	}
	if filter.Status != nil {
		builder = builder.Where(sq.Eq{"status": filter.Status.String()})
	}
	if filter.CreatedGTE != nil {
		builder = builder.Where(sq.GtOrEq{"created_at": *filter.CreatedGTE})
	}

	builder = builder.OrderBy("created_at DESC", "id").Limit(filter.Limit).Offset(filter.Offset)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository list error: %w", err)
	}
	return r.queryList(ctx, "list", query, args...)
}

// LockByIDs берет блокировки строк в порядке id.
func (r *Repository) LockByIDs(ctx context.Context, ids []string) ([]entities.Order, error) {
	if len(ids) == 0 {
		return []entities.Order{}, nil
	}
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = ANY($1) ORDER BY id FOR UPDATE`
	return r.queryList(ctx, "lockbyids", query, ids)
}

func (r *Repository) queryList(ctx context.Context, op, query string, args ...any) ([]entities.Order, error) {
	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository %s error: %w", op, err)
	}
	defer rows.Close()

	models := make([]OrderDB, 0, 8)
	for rows.Next() {
		var m OrderDB
		if err := rows.Scan(m.scanDest()...); err != nil {
			return nil, fmt.Errorf("unexpected order repository %s error: %w", op, err)
		}
		models = append(models, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected order repository %s error: %w", op, err)
	}

	return ToDomainList(models), nil
}

// Update: compare-and-swap по версии. Допустимость смены статуса дополнительно проверяет триггер orders_guard.
func (r *Repository) Update(ctx context.Context, o entities.Order, expectedVersion int64) (*entities.Order, error) {
	m := FromDomain(&o)

	builder := qb.Update("orders").
		Set("sender_name", m.SenderName).
		Set("sender_phone", m.SenderPhone).
		Set("sender_address", m.SenderAddress).
		Set("sender_region", m.SenderRegion).
		Set("recipient_name", m.RecipientName).
		Set("recipient_phone", m.RecipientPhone).
		Set("recipient_address", m.RecipientAddress).
		Set("recipient_region", m.RecipientRegion).
		Set("weight", m.Weight).
		Set("service_type", m.ServiceType).
		Set("cod", m.COD).
		Set("cod_collected", m.CODCollected).
		Set("collected_by", m.CollectedBy).
		Set("order_value", m.OrderValue).
		Set("payment_status", m.PaymentStatus).
		Set("discount_amount", m.DiscountAmount).
		Set("shipping_fee", m.ShippingFee).
		Set("promotion_id", m.PromotionID).
		Set("status", m.Status).
		Set("from_office_id", m.FromOfficeID).
		Set("to_office_id", m.ToOfficeID).
		Set("cancel_reason", m.CancelReason).
		Set("delivered_at", m.DeliveredAt).
		Set("version", sq.Expr("version + 1")).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": m.ID, "version": expectedVersion}).
		Suffix("RETURNING " + orderColumns)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository update error: %w", err)
	}

	var updated OrderDB
	err = r.querier.QueryRow(ctx, query, args...).Scan(updated.scanDest()...)
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return nil, fmt.Errorf("%w: order %s is not at version %d", order.ErrVersionConflict, o.ID, expectedVersion)
		case repository.IsPgErrorWithCode(err, repository.PgErrRaiseException):
			return nil, fmt.Errorf("%w: %s", entities.ErrIllegalTransition, repository.PgErrorDetail(err))
		case repository.IsPgErrorWithCode(err, repository.PgErrCheckViolation):
			return nil, fmt.Errorf("%w: %s", order.ErrInvalidOrder, repository.PgErrorDetail(err))
		}
		return nil, fmt.Errorf("unexpected order repository update error: %w", err)
	}

	return ToDomain(&updated), nil
}

func (r *Repository) ActiveShipmentDriver(ctx context.Context, orderID string) (string, error) {
	query := `SELECT s.driver_id
		FROM shipment_orders so
		JOIN shipments s ON s.id = so.shipment_id
		WHERE so.order_id = $1 AND so.active`

	var driverID string
	err := r.querier.QueryRow(ctx, query, orderID).Scan(&driverID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("unexpected order repository activeshipmentdriver error: %w", err)
	}
	return driverID, nil
}
