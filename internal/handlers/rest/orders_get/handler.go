package orders_get

import (
	"net/http"
	"strconv"
	"time"

	"logistics/internal/entities"
	"logistics/internal/handlers/rest/dto"
	"logistics/internal/handlers/rest/response"
)

const (
	defaultLimit = 50
	maxLimit     = 500
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

	filter, err := parseFilter(r)
	if err != nil {
		response.BadRequest(w, h.log, err.Error())
		return
	}

	// владелец видит только свои заказы
	if author.Role == entities.RoleOwner {
		filter.OwnerID = &author.ID
	}

	orders, err := h.service.ListOrders(r.Context(), filter)
	if err != nil {
		response.Error(w, h.log, err)
		return
	}

	response.JSON(w, h.log, http.StatusOK, dto.FromOrders(orders))
}

func parseFilter(r *http.Request) (entities.OrderFilter, error) {
	q := r.URL.Query()
	filter := entities.OrderFilter{Limit: defaultLimit}

	if v := q.Get("owner_id"); v != "" {
		filter.OwnerID = &v
	}
	if v := q.Get("office_id"); v != "" {
		filter.OfficeID = &v
	}
	if v := q.Get("status"); v != "" {
		status := entities.OrderStatus(v)
		if !status.Valid() {
			return filter, errBadParam("status")
		}
		filter.Status = &status
	}
	if v := q.Get("created_from"); v != "" {
		from, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return filter, errBadParam("created_from")
		}
		filter.CreatedGTE = &from
	}
	if v := q.Get("limit"); v != "" {
		limit, err := strconv.ParseUint(v, 10, 64)
		if err != nil || limit == 0 {
			return filter, errBadParam("limit")
		}
		filter.Limit = min(limit, maxLimit)
	}
	if v := q.Get("offset"); v != "" {
		offset, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return filter, errBadParam("offset")
		}
		filter.Offset = offset
	}

	return filter, nil
}

type errBadParam string

func (e errBadParam) Error() string {
	return "invalid query parameter " + string(e)
}
