package order_tracking_get

import (
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
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

// tracking: публичный вид заказа по трек-номеру, без персональных данных и сумм.
type tracking struct {
	TrackingNumber string     `json:"tracking_number"`
	Status         string     `json:"status"`
	FromOfficeID   *string    `json:"from_office_id,omitempty"`
	ToOfficeID     *string    `json:"to_office_id,omitempty"`
	UpdatedAt      time.Time  `json:"updated_at"`
	DeliveredAt    *time.Time `json:"delivered_at,omitempty"`
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	trackingNumber := strings.ToUpper(strings.TrimSpace(mux.Vars(r)["tracking"]))
	if trackingNumber == "" {
		response.BadRequest(w, h.log, "tracking number is required")
		return
	}

	o, err := h.service.GetByTrackingNumber(r.Context(), trackingNumber)
	if err != nil {
		response.Error(w, h.log, err)
		return
	}

	response.JSON(w, h.log, http.StatusOK, tracking{
		TrackingNumber: o.TrackingNumber,
		Status:         o.Status.String(),
		FromOfficeID:   o.FromOfficeID,
		ToOfficeID:     o.ToOfficeID,
		UpdatedAt:      o.UpdatedAt,
		DeliveredAt:    o.DeliveredAt,
	})
}
