package office

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"logistics/internal/entities"
	retrierconfig "logistics/pkg/retrier"
	"logistics/pkg/retrier/backoff_adapter"
)

const (
	serviceName = "office-directory"

	MethodOfficesServingRegion = "/offices.v1.OfficeDirectory/GetOfficesServingRegion"
)

const (
	initialInterval = 100 * time.Millisecond
	maxInterval     = 2 * time.Second
	maxElapsedTime  = 1 * time.Second
	randomization   = 0.5
	multiplier      = 2.0
)

type OfficeGateway struct {
	conn    invoker
	retrier retrier
	timeout time.Duration
}

func New(conn invoker, timeout time.Duration) *OfficeGateway {
	retryConfig := retrierconfig.Config{
		InitialInterval: initialInterval,
		MaxInterval:     maxInterval,
		MaxElapsedTime:  maxElapsedTime,
		Randomization:   randomization,
		Multiplier:      multiplier,
		ShouldRetry:     isRetryableCode,
	}

	return &OfficeGateway{
		conn:    conn,
		retrier: backoff_adapter.New(retryConfig),
		timeout: timeout,
	}
}

// GetOfficesServingRegion возвращает офисы, обслуживающие регион. Пустой список не ошибка:
// решение о том, что регион не обслуживается, принимает сервис заказов.
func (g *OfficeGateway) GetOfficesServingRegion(ctx context.Context, regionCode string) ([]entities.Office, error) {
	regionCode = strings.TrimSpace(regionCode)
	if regionCode == "" {
		return nil, fmt.Errorf("%w: region code is required", entities.ErrValidation)
	}

	req, err := toRequest(regionCode)
	if err != nil {
		return nil, fmt.Errorf("gateway office: %w", err)
	}

	resp := &structpb.Struct{}
	err = g.executeWithMetrics(ctx, "GetOfficesServingRegion", func(ctx context.Context) error {
		if g.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, g.timeout)
			defer cancel()
		}
		resp.Reset()
		return g.conn.Invoke(ctx, MethodOfficesServingRegion, req, resp)
	})
	if err != nil {
		return nil, fmt.Errorf("gateway office, offices serving %s: %w", regionCode, err)
	}

	offices, err := toDomainList(resp)
	if err != nil {
		return nil, fmt.Errorf("gateway office, malformed response: %w", err)
	}
	return offices, nil
}

func isRetryableCode(err error) bool {
	if err == nil {
		return false
	}
	st, ok := status.FromError(err)
	if !ok {
		return false
	}

	switch st.Code() {
	case codes.ResourceExhausted,
		codes.Unavailable,
		codes.DeadlineExceeded:
		return true
	default:
		return false
	}
}

func (g *OfficeGateway) executeWithMetrics(ctx context.Context, method string, fn func(context.Context) error) error {
	var attempt uint64
	start := time.Now()

	err := g.retrier.ExecuteWithContext(ctx, func(ctx context.Context) error {
		attempt++
		return fn(ctx)
	})

	grpcCode := getGRPCCode(err)
	GatewayRequestDuration.WithLabelValues(serviceName, method, grpcCode).Observe(time.Since(start).Seconds())

	if attempt > 1 {
		GatewayRetriesTotal.WithLabelValues(serviceName, method, grpcCode).Inc()
	}

	return err
}

func getGRPCCode(err error) string {
	if err == nil {
		return "OK"
	}
	if st, ok := status.FromError(err); ok {
		return st.Code().String()
	}
	return "UNKNOWN"
}
