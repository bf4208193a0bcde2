package transaction_post

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

	var postDTO dto.TransactionPost
	if err := json.NewDecoder(r.Body).Decode(&postDTO); err != nil {
		response.BadRequest(w, h.log, "invalid request body")
		return
	}

	// CODReturn и ShippingService проводит только система, перевод выручки идет через /transaction/transfer
	switch entities.TransactionPurpose(postDTO.Purpose) {
	case entities.PurposeRefund, entities.PurposeOfficeExpense:
	default:
		response.BadRequest(w, h.log, "purpose "+postDTO.Purpose+" cannot be posted manually")
		return
	}

	posted, err := h.service.PostTransaction(r.Context(), postDTO.ToDomain(author.ID))
	if err != nil {
		response.Error(w, h.log, err)
		return
	}

	h.log.Info("transaction posted",
		logger.NewField("transaction_id", posted.ID),
		logger.NewField("purpose", string(posted.Purpose)),
		logger.NewField("amount", posted.Amount),
	)

	response.JSON(w, h.log, http.StatusCreated, dto.FromTransaction(*posted))
}
