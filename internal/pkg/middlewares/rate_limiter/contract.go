//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=rate_limiter_test
package rate_limiter

import "logistics/pkg/logger"

// Limiter: общий лимит на весь сервис.
type Limiter interface {
	Allow() bool
}

// KeyedLimiter: отдельное ведро на каждого автора запроса.
type KeyedLimiter interface {
	AllowKey(key string) bool
}

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}
