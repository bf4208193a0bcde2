package submissions_get

import (
	"errors"
	"net/http"
	"strconv"

	"logistics/internal/entities"
	"logistics/internal/handlers/rest/dto"
	"logistics/internal/handlers/rest/response"
)

const defaultLimit = 50

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
	author, ok := response.RequireActor(w, r, h.log, entities.RoleDriver, entities.RoleOffice)
	if !ok {
		return
	}

	filter, err := parseFilter(r)
	if err != nil {
		response.BadRequest(w, h.log, err.Error())
		return
	}
	if author.Role == entities.RoleDriver {
		filter.SubmittedBy = &author.ID
	}

	subs, err := h.service.ListSubmissions(r.Context(), filter)
	if err != nil {
		response.Error(w, h.log, err)
		return
	}

	response.JSON(w, h.log, http.StatusOK, dto.FromSubmissions(subs))
}

func parseFilter(r *http.Request) (entities.SubmissionFilter, error) {
	q := r.URL.Query()
	filter := entities.SubmissionFilter{Limit: defaultLimit}

	if v := q.Get("office_id"); v != "" {
		filter.OfficeID = &v
	}
	if v := q.Get("submitted_by"); v != "" {
		filter.SubmittedBy = &v
	}
	if v := q.Get("status"); v != "" {
		status := entities.SubmissionStatus(v)
		switch status {
		case entities.SubmissionPending, entities.SubmissionConfirmed, entities.SubmissionAdjusted, entities.SubmissionRejected:
		default:
			return filter, errors.New("invalid query parameter status")
		}
		filter.Status = &status
	}
	if v := q.Get("limit"); v != "" {
		limit, err := strconv.ParseUint(v, 10, 64)
		if err != nil || limit == 0 {
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
