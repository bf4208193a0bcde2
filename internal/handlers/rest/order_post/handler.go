package order_post

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
	author, ok := response.RequireActor(w, r, h.log, entities.RoleOwner, entities.RoleOffice)
	if !ok {
		return
	}

	var orderCreateDTO dto.OrderCreate
	if err := json.NewDecoder(r.Body).Decode(&orderCreateDTO); err != nil {
		response.BadRequest(w, h.log, "invalid request body")
		return
	}

	// владелец оформляет заказ только на себя, сотрудник офиса на указанного владельца
	if author.Role == entities.RoleOwner {
		orderCreateDTO.OwnerID = author.ID
	}

	created, err := h.service.CreateOrder(r.Context(), orderCreateDTO.ToDomain())
	if err != nil {
		response.Error(w, h.log, err)
		return
	}

	h.log.Info("order created",
		logger.NewField("order_id", created.Order.ID),
		logger.NewField("tracking_number", created.Order.TrackingNumber),
	)

	response.JSON(w, h.log, http.StatusCreated, dto.CreatedOrder{
		Order:      dto.FromOrder(created.Order),
		PaymentURL: created.PaymentURL,
	})
}
