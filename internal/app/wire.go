//go:build wireinject
// +build wireinject

package app

import (
	"context"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/google/wire"
	"github.com/jackc/pgx/v5/pgxpool"
	"google.golang.org/grpc"
	"logistics/internal/pkg/config"
	ledgerService "logistics/internal/service/ledger"
	orderService "logistics/internal/service/order"
	promotionService "logistics/internal/service/promotion"
	requestService "logistics/internal/service/request"
	shipmentService "logistics/internal/service/shipment"
	submissionService "logistics/internal/service/submission"
	"logistics/pkg/logger"
)

// InitializeApplication для HTTP сервиса (cmd/service)
func InitializeApplication(
	ctx context.Context,
	log logger.Logger,
	pool *pgxpool.Pool,
	getter *pgxv5.CtxGetter,
	conn *grpc.ClientConn,
	cfg *config.Config,
) (*Application, error) {
	wire.Build(
		domainSet,

		provideProducer,
		provideOutboxRelayTask,
		provideUnsubmittedCODTask,
		provideStaleSubmissionsTask,
		providePromotionExpiryTask,
		provideTaskList,
		provideBackgroundWorkers,
		provideLedgerSnapshot,

		wire.Struct(new(Application), "*"),

		wire.Bind(new(ServiceOrder), new(*orderService.Service)),
		wire.Bind(new(ServiceShipment), new(*shipmentService.Service)),
		wire.Bind(new(ServiceSubmission), new(*submissionService.Service)),
		wire.Bind(new(ServiceLedger), new(*ledgerService.Service)),
		wire.Bind(new(ServicePromotion), new(*promotionService.Service)),
		wire.Bind(new(ServiceRequest), new(*requestService.Service)),
	)
	return &Application{}, nil
}

// InitializeKafkaWorkerApp для Kafka воркера (cmd/worker-delivery-events)
func InitializeKafkaWorkerApp(
	ctx context.Context,
	log logger.Logger,
	pool *pgxpool.Pool,
	getter *pgxv5.CtxGetter,
	conn *grpc.ClientConn,
	cfg *config.Config,
) (*KafkaWorkerApp, error) {
	wire.Build(
		domainSet,
		wire.Struct(new(KafkaWorkerApp), "*"),
	)
	return nil, nil
}
