package submission_get

import (
	"net/http"

	"github.com/gorilla/mux"
	"logistics/internal/entities"
	"logistics/internal/handlers/rest/dto"
	"logistics/internal/handlers/rest/response"
	"logistics/internal/service/submission"
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

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	author, ok := response.RequireActor(w, r, h.log, entities.RoleDriver, entities.RoleOffice)
	if !ok {
		return
	}

	id := mux.Vars(r)["id"]
	if id == "" {
		response.BadRequest(w, h.log, "submission id is required")
		return
	}

	sub, err := h.service.GetSubmission(r.Context(), id)
	if err != nil {
		response.Error(w, h.log, err)
		return
	}

	if author.Role == entities.RoleDriver && sub.SubmittedBy != author.ID {
		response.Error(w, h.log, submission.ErrSubmissionNotFound)
		return
	}

	response.JSON(w, h.log, http.StatusOK, dto.FromSubmission(*sub))
}
