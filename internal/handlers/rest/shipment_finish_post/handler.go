package shipment_finish_post

import (
	"encoding/json"
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

	var finishDTO dto.ShipmentFinish
	if err := json.NewDecoder(r.Body).Decode(&finishDTO); err != nil {
		response.BadRequest(w, h.log, "invalid request body")
		return
	}

	status := entities.ShipmentStatus(finishDTO.Status)
	if status != entities.ShipmentCompleted && status != entities.ShipmentCancelled {
		response.BadRequest(w, h.log, "status must be Completed or Cancelled")
		return
	}

	finished, err := h.service.FinishShipment(r.Context(), id, status)
	if err != nil {
		response.Error(w, h.log, err)
		return
	}

	h.log.Info("shipment finished",
		logger.NewField("shipment_id", finished.ID),
		logger.NewField("status", finished.Status.String()),
		logger.NewField("actor_id", author.ID),
	)

	response.JSON(w, h.log, http.StatusOK, dto.FromShipment(*finished))
}
