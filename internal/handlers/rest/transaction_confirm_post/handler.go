package transaction_confirm_post

import (
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

	confirmed, err := h.service.ConfirmTransaction(r.Context(), mux.Vars(r)["id"], author.ID)
	if err != nil {
		response.Error(w, h.log, err)
		return
	}

	h.log.Info("transaction confirmed",
		logger.NewField("transaction_id", confirmed.ID),
		logger.NewField("confirmed_by", author.ID),
	)

	response.JSON(w, h.log, http.StatusOK, dto.FromTransaction(*confirmed))
}
