package request

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"logistics/internal/entities"
	"logistics/internal/service/request"
)

const requestColumns = `id, order_id, kind, description, images, status, resolution,
	created_by, resolved_by, created_at, resolved_at`

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func scanDest(r *entities.CustomerRequest) []any {
	return []any{
		&r.ID, &r.OrderID, &r.Kind, &r.Description, &r.Images, &r.Status, &r.Resolution,
		&r.CreatedBy, &r.ResolvedBy, &r.CreatedAt, &r.ResolvedAt,
	}
}

func (r *Repository) Create(ctx context.Context, req entities.CustomerRequest) (*entities.CustomerRequest, error) {
	query := `INSERT INTO customer_requests (id, order_id, kind, description, images, status, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + requestColumns

	var created entities.CustomerRequest
	err := r.querier.QueryRow(ctx, query,
		req.ID, req.OrderID, string(req.Kind), req.Description, req.Images, string(req.Status), req.CreatedBy, req.CreatedAt,
	).Scan(scanDest(&created)...)
	if err != nil {
		return nil, fmt.Errorf("unexpected request repository create error: %w", err)
	}
	return &created, nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*entities.CustomerRequest, error) {
	return r.getOne(ctx, "getbyid", `SELECT `+requestColumns+` FROM customer_requests WHERE id = $1`, id)
}

func (r *Repository) LockByID(ctx context.Context, id string) (*entities.CustomerRequest, error) {
	return r.getOne(ctx, "lockbyid", `SELECT `+requestColumns+` FROM customer_requests WHERE id = $1 FOR UPDATE`, id)
}

func (r *Repository) getOne(ctx context.Context, op, query, id string) (*entities.CustomerRequest, error) {
	var req entities.CustomerRequest
	err := r.querier.QueryRow(ctx, query, id).Scan(scanDest(&req)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, request.ErrRequestNotFound
		}
		return nil, fmt.Errorf("unexpected request repository %s error: %w", op, err)
	}
	return &req, nil
}

func (r *Repository) Update(ctx context.Context, req entities.CustomerRequest) (*entities.CustomerRequest, error) {
	query := `UPDATE customer_requests
		SET status = $2, resolution = $3, resolved_by = $4, resolved_at = $5
		WHERE id = $1
		RETURNING ` + requestColumns

	var updated entities.CustomerRequest
	err := r.querier.QueryRow(ctx, query, req.ID, string(req.Status), req.Resolution, req.ResolvedBy, req.ResolvedAt).
		Scan(scanDest(&updated)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, request.ErrRequestNotFound
		}
		return nil, fmt.Errorf("unexpected request repository update error: %w", err)
	}
	return &updated, nil
}

func (r *Repository) ListByOrder(ctx context.Context, orderID string) ([]entities.CustomerRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM customer_requests WHERE order_id = $1 ORDER BY created_at, id`
	rows, err := r.querier.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("unexpected request repository list error: %w", err)
	}
	defer rows.Close()

	result := make([]entities.CustomerRequest, 0, 4)
	for rows.Next() {
		var req entities.CustomerRequest
		if err := rows.Scan(scanDest(&req)...); err != nil {
			return nil, fmt.Errorf("unexpected request repository list error: %w", err)
		}
		result = append(result, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected request repository list error: %w", err)
	}
	return result, nil
}
