package entities

import (
	"errors"
	"fmt"
	"strings"
)

// Базовые классы ошибок. Сервисы оборачивают их своими sentinel-ошибками,
// а хендлеры по errors.Is выбирают HTTP-код.
var (
	ErrValidation          = errors.New("validation error")
	ErrNotFound            = errors.New("not found")
	ErrIllegalTransition   = errors.New("illegal transition")
	ErrConcurrencyConflict = errors.New("concurrency conflict")
	ErrInvalidStateForEdit = errors.New("invalid state for edit")
)

// BatchFailure: причина, по которой конкретный заказ не прошел проверку в пакетной операции.
type BatchFailure struct {
	OrderID string
	Reason  error
}

// BatchError собирает все отказы пакетной операции, чтобы клиент увидел каждую причину, а не первую.
type BatchError struct {
	Kind     error
	Failures []BatchFailure
}

func (e *BatchError) Error() string {
	parts := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		parts = append(parts, fmt.Sprintf("%s: %v", f.OrderID, f.Reason))
	}
	return fmt.Sprintf("%v: %s", e.Kind, strings.Join(parts, "; "))
}

func (e *BatchError) Unwrap() error {
	return e.Kind
}
