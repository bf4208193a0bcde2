package actor

import (
	"context"
	"net/http"
	"strings"

	"logistics/internal/entities"
)

const (
	HeaderActorID  = "X-Actor-ID"
	HeaderRole     = "X-Actor-Role"
	HeaderOfficeID = "X-Office-ID"
)

type ctxKey struct{}

// Middleware кладет в контекст автора запроса из заголовков. Аутентификация выполняется на шлюзе
// перед сервисом, сюда приходят уже проверенные заголовки. Запрос без автора пропускается:
// обязательность решает хендлер.
func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := strings.TrimSpace(r.Header.Get(HeaderActorID))
			if id == "" {
				next.ServeHTTP(w, r)
				return
			}

			role := entities.ActorRole(strings.ToLower(strings.TrimSpace(r.Header.Get(HeaderRole))))
			// system зарезервирована для внутренних переходов и снаружи не принимается
			if !role.Valid() || role == entities.RoleSystem {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(`{"code":"validation","message":"unknown actor role"}`))
				return
			}

			a := entities.Actor{
				ID:       id,
				Role:     role,
				OfficeID: strings.TrimSpace(r.Header.Get(HeaderOfficeID)),
			}
			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), a)))
		})
	}
}

func WithActor(ctx context.Context, a entities.Actor) context.Context {
	return context.WithValue(ctx, ctxKey{}, a)
}

func FromContext(ctx context.Context) (entities.Actor, bool) {
	a, ok := ctx.Value(ctxKey{}).(entities.Actor)
	return a, ok
}
