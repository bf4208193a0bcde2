package outbox

import (
	"encoding/json"
	"fmt"
	"time"

	"logistics/internal/entities"
)

// NewEvent сериализует payload в строку outbox. id совпадает с event_id внутри payload,
// по нему потребители отбрасывают повторы.
func NewEvent(id, topic, key string, payload any) (entities.OutboxEvent, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return entities.OutboxEvent{}, fmt.Errorf("marshal %s event: %w", topic, err)
	}
	return entities.OutboxEvent{
		ID:        id,
		Topic:     topic,
		Key:       key,
		Payload:   raw,
		CreatedAt: time.Now().UTC(),
	}, nil
}
