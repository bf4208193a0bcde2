package rate_limiter

import (
	"net"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"logistics/internal/pkg/middlewares/actor"
	"logistics/pkg/logger"
)

const (
	scopeGlobal = "global"
	scopeActor  = "actor"
)

// Middleware ограничивает сервис целиком.
func Middleware(log handlerLogger, rateLimiterQPS int, rlimiter Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !rlimiter.Allow() {
				reject(w, r, log, rateLimiterQPS, scopeGlobal)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// PerActorMiddleware ограничивает каждого автора отдельно, чтобы один клиент не выбрал общий лимит.
// Анонимные запросы делят ведро по адресу клиента. Ставится после actor.Middleware.
func PerActorMiddleware(log handlerLogger, rateLimiterQPS int, rlimiter KeyedLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !rlimiter.AllowKey(limiterKey(r)) {
				reject(w, r, log, rateLimiterQPS, scopeActor)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func limiterKey(r *http.Request) string {
	if a, ok := actor.FromContext(r.Context()); ok {
		return "actor:" + a.ID
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "addr:" + host
}

func reject(w http.ResponseWriter, r *http.Request, log handlerLogger, qps int, scope string) {
	handlerPath := r.URL.Path
	route := mux.CurrentRoute(r)
	if route != nil {
		if template, err := route.GetPathTemplate(); err == nil {
			handlerPath = template
		}
	}

	log.With(
		logger.NewField("method", r.Method),
		logger.NewField("path", r.URL.Path),
		logger.NewField("route", handlerPath),
		logger.NewField("remote_addr", r.RemoteAddr),
		logger.NewField("scope", scope),
	).Warn("rate limit exceeded")

	RateLimitExceededTotal.WithLabelValues(r.Method, handlerPath, scope).Inc()

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(qps))
	w.Header().Set("Retry-After", "1")
	w.WriteHeader(http.StatusTooManyRequests)

	_, err := w.Write([]byte(`{"code":"rate_limited","message":"Rate limit exceeded. Try again later."}`))
	if err != nil {
		log.With(
			logger.NewField("error", err),
			logger.NewField("path", r.URL.Path),
		).Error("failed to write rate limit response")
	}
}
