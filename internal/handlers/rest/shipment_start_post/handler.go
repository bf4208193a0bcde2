package shipment_start_post

import (
	"net/http"

	"github.com/gorilla/mux"
	"logistics/internal/entities"
	"logistics/internal/handlers/rest/dto"
	"logistics/internal/handlers/rest/response"
	"logistics/pkg/logger"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With()

	return &Handler{
		log:     handlerLog,
		service: service,
	}
}

// ServeHTTP отправляет поездку в путь: все ее заказы переходят в in_transit одной транзакцией.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	author, ok := response.RequireActor(w, r, h.log, entities.RoleOffice, entities.RoleDriver)
	if !ok {
		return
	}

	id := mux.Vars(r)["id"]
	if id == "" {
		response.BadRequest(w, h.log, "shipment id is required")
		return
	}

	started, err := h.service.StartShipment(r.Context(), id)
	if err != nil {
		response.Error(w, h.log, err)
		return
	}

	h.log.Info("shipment started",
		logger.NewField("shipment_id", started.ID),
		logger.NewField("actor_id", author.ID),
	)

	response.JSON(w, h.log, http.StatusOK, dto.FromShipment(*started))
}
