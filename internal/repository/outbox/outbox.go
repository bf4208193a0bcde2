package outbox

import (
	"context"
	"fmt"
	"time"

	"logistics/internal/entities"
)

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

// Add пишет событие в текущей транзакции; после коммита его заберет outbox_relay.
func (r *Repository) Add(ctx context.Context, event entities.OutboxEvent) error {
	query := `INSERT INTO outbox (id, topic, key, payload, created_at) VALUES ($1, $2, $3, $4, $5)`
	createdAt := event.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	if _, err := r.querier.Exec(ctx, query, event.ID, event.Topic, event.Key, string(event.Payload), createdAt); err != nil {
		return fmt.Errorf("unexpected outbox repository add error: %w", err)
	}
	return nil
}

// FetchPending берет неотправленные события с блокировкой, пропуская занятые другим экземпляром relay.
func (r *Repository) FetchPending(ctx context.Context, limit int) ([]entities.OutboxEvent, error) {
	query := `SELECT id, topic, key, payload::TEXT, created_at
		FROM outbox
		WHERE sent_at IS NULL
		ORDER BY created_at, id
		LIMIT $1
		FOR UPDATE SKIP LOCKED`
	rows, err := r.querier.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("unexpected outbox repository fetch error: %w", err)
	}
	defer rows.Close()

	events := make([]entities.OutboxEvent, 0, limit)
	for rows.Next() {
		var (
			e       entities.OutboxEvent
			payload string
		)
		if err := rows.Scan(&e.ID, &e.Topic, &e.Key, &payload, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("unexpected outbox repository fetch error: %w", err)
		}
		e.Payload = []byte(payload)
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected outbox repository fetch error: %w", err)
	}
	return events, nil
}

func (r *Repository) MarkSent(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	query := `UPDATE outbox SET sent_at = NOW() WHERE id = ANY($1)`
	if _, err := r.querier.Exec(ctx, query, ids); err != nil {
		return fmt.Errorf("unexpected outbox repository mark sent error: %w", err)
	}
	return nil
}
