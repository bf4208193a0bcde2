package balance_get

import (
	"net/http"

	"logistics/internal/entities"
	"logistics/internal/handlers/rest/dto"
	"logistics/internal/handlers/rest/response"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With()

	return &Handler{
		service: service,
		log:     handlerLog,
	}
}

// ServeHTTP возвращает баланс по подтвержденным проводкам. Без office_id считает по всем офисам.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if _, ok := response.RequireActor(w, r, h.log, entities.RoleOffice); !ok {
		return
	}

	var officeID *string
	if v := r.URL.Query().Get("office_id"); v != "" {
		officeID = &v
	}

	balances, err := h.service.Balance(r.Context(), officeID)
	if err != nil {
		response.Error(w, h.log, err)
		return
	}

	response.JSON(w, h.log, http.StatusOK, dto.FromBalances(balances))
}
