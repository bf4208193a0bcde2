//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=stale_submissions_test
package stale_submissions

import (
	"context"

	"logistics/internal/entities"
)

type Service interface {
	ListSubmissions(ctx context.Context, filter entities.SubmissionFilter) ([]entities.PaymentSubmission, error)
}
