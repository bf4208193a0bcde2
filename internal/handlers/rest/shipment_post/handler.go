package shipment_post

import (
	"encoding/json"
	"net/http"

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

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if _, ok := response.RequireActor(w, r, h.log, entities.RoleOffice); !ok {
		return
	}

	var createDTO dto.ShipmentCreate
	if err := json.NewDecoder(r.Body).Decode(&createDTO); err != nil {
		response.BadRequest(w, h.log, "invalid request body")
		return
	}

	created, err := h.service.CreateShipment(r.Context(), createDTO.ToDomain())
	if err != nil {
		response.Error(w, h.log, err)
		return
	}

	h.log.Info("shipment created",
		logger.NewField("shipment_id", created.ID),
		logger.NewField("orders", len(created.OrderIDs)),
	)

	response.JSON(w, h.log, http.StatusCreated, dto.FromShipment(*created))
}
