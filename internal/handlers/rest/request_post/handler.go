package request_post

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
	author, ok := response.RequireActor(w, r, h.log)
	if !ok {
		return
	}

	var openDTO dto.RequestOpen
	if err := json.NewDecoder(r.Body).Decode(&openDTO); err != nil {
		response.BadRequest(w, h.log, "invalid request body")
		return
	}

	opened, err := h.service.OpenRequest(
		r.Context(),
		openDTO.OrderID,
		entities.RequestKind(openDTO.Kind),
		openDTO.Description,
		openDTO.Images,
		author.ID,
	)
	if err != nil {
		response.Error(w, h.log, err)
		return
	}

	h.log.Info("customer request opened",
		logger.NewField("request_id", opened.ID),
		logger.NewField("order_id", opened.OrderID),
		logger.NewField("kind", string(opened.Kind)),
	)

	response.JSON(w, h.log, http.StatusCreated, dto.FromRequest(*opened))
}
