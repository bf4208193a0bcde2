package request_dismiss_post

import (
	"encoding/json"
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
		log:     handlerLog,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	author, ok := response.RequireActor(w, r, h.log, entities.RoleOffice)
	if !ok {
		return
	}

	var reasonDTO dto.Reason
	if err := json.NewDecoder(r.Body).Decode(&reasonDTO); err != nil {
		response.BadRequest(w, h.log, "invalid request body")
		return
	}

	dismissed, err := h.service.DismissRequest(r.Context(), mux.Vars(r)["id"], reasonDTO.Reason, author.ID)
	if err != nil {
		response.Error(w, h.log, err)
		return
	}

	response.JSON(w, h.log, http.StatusOK, dto.FromRequest(*dismissed))
}
