package response

import (
	"net/http"
	"slices"

	"logistics/internal/entities"
	"logistics/internal/pkg/middlewares/actor"
)

// RequireActor достает автора запроса и проверяет роль. Пустой список ролей пускает любого автора.
// При отказе ответ уже записан.
func RequireActor(w http.ResponseWriter, r *http.Request, log Logger, roles ...entities.ActorRole) (entities.Actor, bool) {
	a, ok := actor.FromContext(r.Context())
	if !ok {
		JSON(w, log, http.StatusUnauthorized, errorBody{Code: "unauthorized", Message: "actor headers are required"})
		return entities.Actor{}, false
	}
	if len(roles) > 0 && !slices.Contains(roles, a.Role) {
		Forbidden(w, log, "role "+string(a.Role)+" is not allowed")
		return entities.Actor{}, false
	}
	return a, true
}
