package submission_post

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
	author, ok := response.RequireActor(w, r, h.log, entities.RoleDriver, entities.RoleOffice)
	if !ok {
		return
	}

	var createDTO dto.SubmissionCreate
	if err := json.NewDecoder(r.Body).Decode(&createDTO); err != nil {
		response.BadRequest(w, h.log, "invalid request body")
		return
	}

	switch author.Role {
	case entities.RoleDriver:
		// водитель сдает только собранные им деньги
		createDTO.SubmittedBy = author.ID
	case entities.RoleOffice:
		if createDTO.OfficeID == "" {
			createDTO.OfficeID = author.OfficeID
		}
	}

	created, err := h.service.CreateSubmission(r.Context(), createDTO.ToDomain())
	if err != nil {
		response.Error(w, h.log, err)
		return
	}

	h.log.Info("submission created",
		logger.NewField("submission_id", created.ID),
		logger.NewField("driver_id", created.SubmittedBy),
		logger.NewField("total", created.TotalAmountSubmitted),
	)

	response.JSON(w, h.log, http.StatusCreated, dto.FromSubmission(*created))
}
