package transactions_get

import (
	"errors"
	"net/http"
	"strconv"

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
	if _, ok := response.RequireActor(w, r, h.log, entities.RoleOffice); !ok {
		return
	}

	filter, err := parseFilter(r)
	if err != nil {
		response.BadRequest(w, h.log, err.Error())
		return
	}

	txs, err := h.service.ListTransactions(r.Context(), filter)
	if err != nil {
		response.Error(w, h.log, err)
		return
	}

	response.JSON(w, h.log, http.StatusOK, dto.FromTransactions(txs))
}

func parseFilter(r *http.Request) (entities.TransactionFilter, error) {
	q := r.URL.Query()
	var filter entities.TransactionFilter

	if v := q.Get("office_id"); v != "" {
		filter.OfficeID = &v
	}
	if v := q.Get("order_id"); v != "" {
		filter.OrderID = &v
	}
	if v := q.Get("payment_submission_id"); v != "" {
		filter.PaymentSubmissionID = &v
	}
	if v := q.Get("status"); v != "" {
		status := entities.TransactionStatus(v)
		switch status {
		case entities.TransactionPending, entities.TransactionConfirmed, entities.TransactionRejected:
		default:
			return filter, errors.New("invalid query parameter status")
		}
		filter.Status = &status
	}
	if v := q.Get("purpose"); v != "" {
		purpose := entities.TransactionPurpose(v)
		if !purpose.AllowsType(entities.TransactionIncome) && !purpose.AllowsType(entities.TransactionExpense) {
			return filter, errors.New("invalid query parameter purpose")
		}
		filter.Purpose = &purpose
	}
	if v := q.Get("limit"); v != "" {
		limit, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return filter, errors.New("invalid query parameter limit")
		}
		filter.Limit = limit
	}
	if v := q.Get("offset"); v != "" {
		offset, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return filter, errors.New("invalid query parameter offset")
		}
		filter.Offset = offset
	}

	return filter, nil
}
