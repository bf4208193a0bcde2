package shipment

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"logistics/internal/entities"
	"logistics/internal/repository"
	"logistics/internal/service/shipment"
)

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) Create(ctx context.Context, s entities.Shipment) (*entities.Shipment, error) {
	query := `INSERT INTO shipments (id, vehicle_id, driver_id, status, version, created_at)
		VALUES ($1, $2, $3, $4, 1, $5)`
	_, err := r.querier.Exec(ctx, query, s.ID, s.VehicleID, s.DriverID, s.Status.String(), s.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("unexpected shipment repository create error: %w", err)
	}

	query = `INSERT INTO shipment_orders (shipment_id, order_id, position)
		SELECT $1, ids.order_id, ids.position FROM UNNEST($2::TEXT[]) WITH ORDINALITY AS ids(order_id, position)`
	_, err = r.querier.Exec(ctx, query, s.ID, s.OrderIDs)
	if err != nil {
		if repository.IsPgErrorWithCode(err, repository.PgErrUniqueViolation) {
			return nil, shipment.ErrOrderAlreadyShipped
		}
		return nil, fmt.Errorf("unexpected shipment repository create error: %w", err)
	}

	return r.GetByID(ctx, s.ID)
}

func (r *Repository) GetByID(ctx context.Context, id string) (*entities.Shipment, error) {
	return r.getOne(ctx, "getbyid", `SELECT `+shipmentColumns+` FROM shipments s WHERE s.id = $1`, id)
}

func (r *Repository) LockByID(ctx context.Context, id string) (*entities.Shipment, error) {
	return r.getOne(ctx, "lockbyid", `SELECT `+shipmentColumns+` FROM shipments s WHERE s.id = $1 FOR UPDATE`, id)
}

func (r *Repository) getOne(ctx context.Context, op, query, id string) (*entities.Shipment, error) {
	var m ShipmentDB
	err := r.querier.QueryRow(ctx, query, id).Scan(m.scanDest()...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shipment.ErrShipmentNotFound
		}
		return nil, fmt.Errorf("unexpected shipment repository %s error: %w", op, err)
	}
	return ToDomain(&m), nil
}

func (r *Repository) Update(ctx context.Context, s entities.Shipment, expectedVersion int64) (*entities.Shipment, error) {
	query := `UPDATE shipments
		SET status = $3, start_time = $4, end_time = $5, version = version + 1
		WHERE id = $1 AND version = $2`
	tag, err := r.querier.Exec(ctx, query, s.ID, expectedVersion, s.Status.String(), s.StartTime, s.EndTime)
	if err != nil {
		if repository.IsPgErrorWithCode(err, repository.PgErrCheckViolation) {
			return nil, fmt.Errorf("%w: %s", shipment.ErrInvalidShipment, repository.PgErrorDetail(err))
		}
		return nil, fmt.Errorf("unexpected shipment repository update error: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("%w: shipment %s is not at version %d", shipment.ErrVersionConflict, s.ID, expectedVersion)
	}

	return r.GetByID(ctx, s.ID)
}

func (r *Repository) ActiveByOrders(ctx context.Context, orderIDs []string) (map[string]string, error) {
	query := `SELECT order_id, shipment_id FROM shipment_orders WHERE active AND order_id = ANY($1)`
	rows, err := r.querier.Query(ctx, query, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("unexpected shipment repository active error: %w", err)
	}
	defer rows.Close()

	active := make(map[string]string, len(orderIDs))
	for rows.Next() {
		var orderID, shipmentID string
		if err := rows.Scan(&orderID, &shipmentID); err != nil {
			return nil, fmt.Errorf("unexpected shipment repository active error: %w", err)
		}
		active[orderID] = shipmentID
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected shipment repository active error: %w", err)
	}
	return active, nil
}

func (r *Repository) DeactivateOrders(ctx context.Context, shipmentID string) error {
	query := `UPDATE shipment_orders SET active = FALSE WHERE shipment_id = $1 AND active`
	if _, err := r.querier.Exec(ctx, query, shipmentID); err != nil {
		return fmt.Errorf("unexpected shipment repository deactivate error: %w", err)
	}
	return nil
}
