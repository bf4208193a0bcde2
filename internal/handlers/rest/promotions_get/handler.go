package promotions_get

import (
	"net/http"

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
		service: service,
		log:     handlerLog,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var status *entities.PromotionStatus
	if v := r.URL.Query().Get("status"); v != "" {
		s := entities.PromotionStatus(v)
		switch s {
		case entities.PromotionActive, entities.PromotionInactive, entities.PromotionExpired:
		default:
			response.BadRequest(w, h.log, "invalid query parameter status")
			return
		}
		status = &s
	}

	promos, err := h.service.ListPromotions(r.Context(), status)
	if err != nil {
		response.Error(w, h.log, err)
		return
	}

	response.JSON(w, h.log, http.StatusOK, dto.FromPromotions(promos))
}
