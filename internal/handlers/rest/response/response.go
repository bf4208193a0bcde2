package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"logistics/internal/entities"
	"logistics/internal/service/order"
	"logistics/internal/service/shipment"
	"logistics/internal/service/submission"
	"logistics/pkg/logger"
)

type Logger interface {
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type failure struct {
	OrderID string `json:"order_id"`
	Reason  string `json:"reason"`
}

type errorBody struct {
	Code     string    `json:"code"`
	Message  string    `json:"message"`
	Failures []failure `json:"failures,omitempty"`
}

func JSON(w http.ResponseWriter, log Logger, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}

// BadRequest для тела или параметров, которые не удалось разобрать.
func BadRequest(w http.ResponseWriter, log Logger, msg string) {
	JSON(w, log, http.StatusBadRequest, errorBody{Code: "validation", Message: msg})
}

func Forbidden(w http.ResponseWriter, log Logger, msg string) {
	JSON(w, log, http.StatusForbidden, errorBody{Code: "forbidden", Message: msg})
}

// Error переводит доменную ошибку в HTTP-ответ. Внутренние ошибки логируются,
// клиенту уходит только общий текст.
func Error(w http.ResponseWriter, log Logger, err error) {
	status, code := Classify(err)
	body := errorBody{Code: code, Message: err.Error()}

	var batch *entities.BatchError
	if errors.As(err, &batch) {
		for _, f := range batch.Failures {
			body.Failures = append(body.Failures, failure{OrderID: f.OrderID, Reason: f.Reason.Error()})
		}
	}

	if status == http.StatusInternalServerError {
		log.With(
			logger.NewField("error", err),
		).Error("request failed")
		body.Message = "internal error"
	}

	JSON(w, log, status, body)
}

func Classify(err error) (int, string) {
	var batch *entities.BatchError
	switch {
	case errors.As(err, &batch):
		return http.StatusUnprocessableEntity, "batch_rejected"
	case errors.Is(err, entities.ErrValidation):
		return http.StatusBadRequest, "validation"
	case errors.Is(err, entities.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, entities.ErrConcurrencyConflict),
		errors.Is(err, order.ErrTrackingNumberTaken):
		return http.StatusConflict, "conflict"
	case errors.Is(err, entities.ErrIllegalTransition):
		return http.StatusUnprocessableEntity, "illegal_transition"
	case errors.Is(err, entities.ErrInvalidStateForEdit):
		return http.StatusUnprocessableEntity, "invalid_state_for_edit"
	case errors.Is(err, submission.ErrAmountMismatch):
		return http.StatusUnprocessableEntity, "amount_mismatch"
	case errors.Is(err, order.ErrNoServiceableOffice):
		return http.StatusUnprocessableEntity, "no_serviceable_office"
	case errors.Is(err, submission.ErrOrderNotEligible),
		errors.Is(err, shipment.ErrIncompleteShipment),
		errors.Is(err, shipment.ErrPartialBatchRejected):
		return http.StatusUnprocessableEntity, "unprocessable"
	default:
		return http.StatusInternalServerError, "internal"
	}
}
