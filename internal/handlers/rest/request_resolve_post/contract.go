//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=request_resolve_post_test
package request_resolve_post

import (
	"context"

	"logistics/internal/entities"
	"logistics/pkg/logger"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	ResolveRequest(ctx context.Context, id, resolution string, by entities.Actor) (*entities.CustomerRequest, error)
}
