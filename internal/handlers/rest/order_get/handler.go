package order_get

import (
	"net/http"

	"github.com/gorilla/mux"
	"logistics/internal/entities"
	"logistics/internal/handlers/rest/dto"
	"logistics/internal/handlers/rest/response"
	"logistics/internal/service/order"
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
	author, ok := response.RequireActor(w, r, h.log)
	if !ok {
		return
	}

	id := mux.Vars(r)["id"]
	if id == "" {
		response.BadRequest(w, h.log, "order id is required")
		return
	}

	orderEntity, err := h.service.GetOrder(r.Context(), id)
	if err != nil {
		response.Error(w, h.log, err)
		return
	}

	// чужие заказы владельцу не показываем
	if author.Role == entities.RoleOwner && orderEntity.OwnerID != author.ID {
		response.Error(w, h.log, order.ErrOrderNotFound)
		return
	}

	response.JSON(w, h.log, http.StatusOK, dto.FromOrder(*orderEntity))
}
