package payment_callback_post

import (
	"encoding/json"
	"net/http"

	"logistics/internal/handlers/rest/dto"
	"logistics/internal/handlers/rest/response"
	"logistics/pkg/logger"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With(logger.NewField("handler", "payment_callback"))

	return &Handler{
		log:     handlerLog,
		service: service,
	}
}

// ServeHTTP принимает уведомление платежного шлюза. Авторство подтверждается подписью, а не заголовками.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var callbackDTO dto.PaymentCallback
	if err := json.NewDecoder(r.Body).Decode(&callbackDTO); err != nil {
		response.BadRequest(w, h.log, "invalid request body")
		return
	}

	paid, err := h.service.MarkPaid(r.Context(), callbackDTO.ToDomain())
	if err != nil {
		h.log.Warn("payment callback rejected",
			logger.NewField("order_id", callbackDTO.OrderID),
			logger.NewField("reference", callbackDTO.Reference),
			logger.NewField("error", err),
		)
		response.Error(w, h.log, err)
		return
	}

	response.JSON(w, h.log, http.StatusOK, dto.FromOrder(*paid))
}
