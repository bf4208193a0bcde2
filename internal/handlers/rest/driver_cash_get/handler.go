package driver_cash_get

import (
	"net/http"

	"github.com/gorilla/mux"
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

// ServeHTTP показывает наложенные платежи, которые водитель собрал и еще не сдал.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	author, ok := response.RequireActor(w, r, h.log, entities.RoleDriver, entities.RoleOffice)
	if !ok {
		return
	}

	driverID := mux.Vars(r)["id"]
	if driverID == "" {
		response.BadRequest(w, h.log, "driver id is required")
		return
	}
	if author.Role == entities.RoleDriver && author.ID != driverID {
		response.Forbidden(w, h.log, "drivers can only see their own cash")
		return
	}

	total, holdings, err := h.service.DriverCashOnHand(r.Context(), driverID)
	if err != nil {
		response.Error(w, h.log, err)
		return
	}

	response.JSON(w, h.log, http.StatusOK, dto.FromDriverCash(driverID, total, holdings))
}
