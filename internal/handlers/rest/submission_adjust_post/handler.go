package submission_adjust_post

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
	author, ok := response.RequireActor(w, r, h.log, entities.RoleOffice)
	if !ok {
		return
	}

	id := mux.Vars(r)["id"]
	if id == "" {
		response.BadRequest(w, h.log, "submission id is required")
		return
	}

	var adjustDTO dto.SubmissionAdjust
	if err := json.NewDecoder(r.Body).Decode(&adjustDTO); err != nil {
		response.BadRequest(w, h.log, "invalid request body")
		return
	}

	adjusted, err := h.service.AdjustSubmission(r.Context(), id, adjustDTO.Amount, adjustDTO.Note, author.ID)
	if err != nil {
		response.Error(w, h.log, err)
		return
	}

	h.log.Warn("submission adjusted",
		logger.NewField("submission_id", adjusted.ID),
		logger.NewField("collected", adjusted.TotalAmountSubmitted),
		logger.NewField("received", adjusted.LedgerAmount()),
		logger.NewField("adjusted_by", author.ID),
	)

	response.JSON(w, h.log, http.StatusOK, dto.FromSubmission(*adjusted))
}
