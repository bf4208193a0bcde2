package submission_confirm_post

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

// ServeHTTP подтверждает сдачу. Повторное подтверждение возвращает ту же сдачу без второй проводки.
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

	confirmed, err := h.service.ConfirmSubmission(r.Context(), id, author.ID)
	if err != nil {
		response.Error(w, h.log, err)
		return
	}

	h.log.Info("submission confirmed",
		logger.NewField("submission_id", confirmed.ID),
		logger.NewField("amount", confirmed.LedgerAmount()),
		logger.NewField("confirmed_by", author.ID),
	)

	response.JSON(w, h.log, http.StatusOK, dto.FromSubmission(*confirmed))
}
