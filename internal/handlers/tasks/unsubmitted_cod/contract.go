package unsubmitted_cod

import (
	"context"
	"time"

	"logistics/internal/entities"
)

type Service interface {
	UnsubmittedSince(ctx context.Context, deadline time.Time) ([]entities.CODHolding, error)
}
