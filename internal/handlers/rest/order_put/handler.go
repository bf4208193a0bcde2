package order_put

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
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
	author, ok := response.RequireActor(w, r, h.log)
	if !ok {
		return
	}

	id := mux.Vars(r)["id"]
	if id == "" {
		response.BadRequest(w, h.log, "order id is required")
		return
	}

	var editDTO dto.OrderEdit
	if err := json.NewDecoder(r.Body).Decode(&editDTO); err != nil {
		response.BadRequest(w, h.log, "invalid request body")
		return
	}
	if editDTO.Version <= 0 {
		response.BadRequest(w, h.log, "version is required")
		return
	}

	updated, err := h.service.EditOrder(r.Context(), editDTO.ToDomain(id, author))
	if err != nil {
		response.Error(w, h.log, err)
		return
	}

	response.JSON(w, h.log, http.StatusOK, dto.FromOrder(*updated))
}
