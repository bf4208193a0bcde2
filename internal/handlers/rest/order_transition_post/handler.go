package order_transition_post

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
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
	author, ok := response.RequireActor(w, r, h.log)
	if !ok {
		return
	}

	id := mux.Vars(r)["id"]
	if id == "" {
		response.BadRequest(w, h.log, "order id is required")
		return
	}

	var transitionDTO dto.OrderTransition
	if err := json.NewDecoder(r.Body).Decode(&transitionDTO); err != nil {
		response.BadRequest(w, h.log, "invalid request body")
		return
	}

	transition, err := transitionDTO.ToDomain(id, author)
	if err != nil {
		response.Error(w, h.log, err)
		return
	}

	updated, err := h.service.Transition(r.Context(), transition)
	if err != nil {
		response.Error(w, h.log, err)
		return
	}

	h.log.Info("order transitioned",
		logger.NewField("order_id", updated.ID),
		logger.NewField("action", transition.Command.Action.String()),
		logger.NewField("status", updated.Status.String()),
		logger.NewField("actor_id", author.ID),
	)

	response.JSON(w, h.log, http.StatusOK, dto.FromOrder(*updated))
}
