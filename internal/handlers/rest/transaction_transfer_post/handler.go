package transaction_transfer_post

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
	author, ok := response.RequireActor(w, r, h.log, entities.RoleOffice)
	if !ok {
		return
	}

	var transferDTO dto.RevenueTransfer
	if err := json.NewDecoder(r.Body).Decode(&transferDTO); err != nil {
		response.BadRequest(w, h.log, "invalid request body")
		return
	}

	legs, err := h.service.TransferRevenue(
		r.Context(),
		transferDTO.FromOfficeID,
		transferDTO.ToOfficeID,
		transferDTO.Amount,
		transferDTO.Note,
		author.ID,
	)
	if err != nil {
		response.Error(w, h.log, err)
		return
	}

	h.log.Info("revenue transfer posted",
		logger.NewField("from_office_id", transferDTO.FromOfficeID),
		logger.NewField("to_office_id", transferDTO.ToOfficeID),
		logger.NewField("amount", transferDTO.Amount),
	)

	response.JSON(w, h.log, http.StatusCreated, dto.FromTransactions(legs))
}
