package request_resolve_post

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

// ServeHTTP закрывает обращение. Для CancelOrder это отменяет сам заказ от имени сотрудника офиса.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	author, ok := response.RequireActor(w, r, h.log, entities.RoleOffice)
	if !ok {
		return
	}

	var resolveDTO dto.RequestResolve
	if err := json.NewDecoder(r.Body).Decode(&resolveDTO); err != nil {
		response.BadRequest(w, h.log, "invalid request body")
		return
	}

	resolved, err := h.service.ResolveRequest(r.Context(), mux.Vars(r)["id"], resolveDTO.Resolution, author)
	if err != nil {
		response.Error(w, h.log, err)
		return
	}

	h.log.Info("customer request resolved",
		logger.NewField("request_id", resolved.ID),
		logger.NewField("resolved_by", author.ID),
	)

	response.JSON(w, h.log, http.StatusOK, dto.FromRequest(*resolved))
}
