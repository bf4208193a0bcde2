package order_payment_url_get

import (
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
		service: service,
		log:     handlerLog,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if _, ok := response.RequireActor(w, r, h.log); !ok {
		return
	}

	id := mux.Vars(r)["id"]
	if id == "" {
		response.BadRequest(w, h.log, "order id is required")
		return
	}

	url, err := h.service.PaymentURL(r.Context(), id)
	if err != nil {
		response.Error(w, h.log, err)
		return
	}

	response.JSON(w, h.log, http.StatusOK, dto.PaymentURL{URL: url})
}
