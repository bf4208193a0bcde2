package app

import (
	"context"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/google/wire"
	"github.com/jackc/pgx/v5/pgxpool"
	"google.golang.org/grpc"
	"logistics/internal/entities"
	"logistics/internal/gateway/grpc/office"
	"logistics/internal/gateway/payment"
	"logistics/internal/handlers/rest/balance_get"
	"logistics/internal/handlers/rest/driver_cash_get"
	"logistics/internal/handlers/rest/fee_quote_post"
	"logistics/internal/handlers/rest/order_get"
	"logistics/internal/handlers/rest/order_payment_url_get"
	"logistics/internal/handlers/rest/order_post"
	"logistics/internal/handlers/rest/order_put"
	"logistics/internal/handlers/rest/order_requests_get"
	"logistics/internal/handlers/rest/order_tracking_get"
	"logistics/internal/handlers/rest/order_transition_post"
	"logistics/internal/handlers/rest/orders_get"
	"logistics/internal/handlers/rest/payment_callback_post"
	"logistics/internal/handlers/rest/promotion_get"
	"logistics/internal/handlers/rest/promotion_post"
	"logistics/internal/handlers/rest/promotions_get"
	"logistics/internal/handlers/rest/request_dismiss_post"
	"logistics/internal/handlers/rest/request_get"
	"logistics/internal/handlers/rest/request_post"
	"logistics/internal/handlers/rest/request_resolve_post"
	"logistics/internal/handlers/rest/shipment_finish_post"
	"logistics/internal/handlers/rest/shipment_get"
	"logistics/internal/handlers/rest/shipment_post"
	"logistics/internal/handlers/rest/shipment_start_post"
	"logistics/internal/handlers/rest/submission_adjust_post"
	"logistics/internal/handlers/rest/submission_confirm_post"
	"logistics/internal/handlers/rest/submission_get"
	"logistics/internal/handlers/rest/submission_post"
	"logistics/internal/handlers/rest/submission_reject_post"
	"logistics/internal/handlers/rest/submissions_get"
	"logistics/internal/handlers/rest/transaction_confirm_post"
	"logistics/internal/handlers/rest/transaction_get"
	"logistics/internal/handlers/rest/transaction_post"
	"logistics/internal/handlers/rest/transaction_reject_post"
	"logistics/internal/handlers/rest/transaction_transfer_post"
	"logistics/internal/handlers/rest/transactions_get"
	"logistics/internal/handlers/tasks/ledger_snapshot"
	"logistics/internal/handlers/tasks/outbox_relay"
	"logistics/internal/handlers/tasks/promotion_expiry"
	"logistics/internal/handlers/tasks/stale_submissions"
	"logistics/internal/handlers/tasks/unsubmitted_cod"
	"logistics/internal/pkg/config"
	"logistics/internal/pkg/kafka"
	orderRepo "logistics/internal/repository/order"
	outboxRepo "logistics/internal/repository/outbox"
	promotionRepo "logistics/internal/repository/promotion"
	requestRepo "logistics/internal/repository/request"
	shipmentRepo "logistics/internal/repository/shipment"
	submissionRepo "logistics/internal/repository/submission"
	transactionRepo "logistics/internal/repository/transaction"
	"logistics/internal/service/fee"
	ledgerService "logistics/internal/service/ledger"
	orderService "logistics/internal/service/order"
	promotionService "logistics/internal/service/promotion"
	requestService "logistics/internal/service/request"
	shipmentService "logistics/internal/service/shipment"
	submissionService "logistics/internal/service/submission"
	"logistics/pkg/background"
	"logistics/pkg/logger"
	"logistics/pkg/querier"
	"logistics/pkg/tx"
)

type Application struct {
	ServiceOrder      ServiceOrder
	ServiceShipment   ServiceShipment
	ServiceSubmission ServiceSubmission
	ServiceLedger     ServiceLedger
	ServicePromotion  ServicePromotion
	ServiceRequest    ServiceRequest
	BackgroundWorkers *background.Worker
	LedgerSnapshot    *ledger_snapshot.Job
	Producer          *kafka.Producer
}

type KafkaWorkerApp struct {
	OrderService *orderService.Service
}

type ServiceOrder interface {
	fee_quote_post.Service
	order_post.Service
	order_get.Service
	order_tracking_get.Service
	orders_get.Service
	order_put.Service
	order_transition_post.Service
	order_payment_url_get.Service
	payment_callback_post.Service
}

type ServiceShipment interface {
	shipment_post.Service
	shipment_get.Service
	shipment_start_post.Service
	shipment_finish_post.Service
}

type ServiceSubmission interface {
	submission_post.Service
	submission_get.Service
	submissions_get.Service
	submission_confirm_post.Service
	submission_adjust_post.Service
	submission_reject_post.Service
	driver_cash_get.Service
}

type ServiceLedger interface {
	transaction_post.Service
	transaction_get.Service
	transactions_get.Service
	transaction_confirm_post.Service
	transaction_reject_post.Service
	transaction_transfer_post.Service
	balance_get.Service
}

type ServicePromotion interface {
	promotion_post.Service
	promotion_get.Service
	promotions_get.Service
}

type ServiceRequest interface {
	request_post.Service
	order_requests_get.Service
	request_resolve_post.Service
	request_dismiss_post.Service
	request_get.Service
}

// domainSet собирает репозитории, шлюзы и сервисы. Общий для HTTP сервиса и Kafka воркера.
var domainSet = wire.NewSet(
	provideTxManager,
	provideQuerier,

	provideOrderRepository,
	provideShipmentRepository,
	provideSubmissionRepository,
	provideTransactionRepository,
	providePromotionRepository,
	provideRequestRepository,
	provideOutboxRepository,

	provideFeeEngine,
	provideOfficeGateway,
	providePaymentGateway,

	provideLedgerService,
	providePromotionService,
	provideOrderService,
	provideShipmentService,
	provideSubmissionService,
	provideRequestService,

	wire.Bind(new(ledgerService.Repository), new(*transactionRepo.Repository)),
	wire.Bind(new(ledgerService.Outbox), new(*outboxRepo.Repository)),
	wire.Bind(new(ledgerService.TxManager), new(*tx.Manager)),

	wire.Bind(new(promotionService.Repository), new(*promotionRepo.Repository)),

	wire.Bind(new(orderService.Repository), new(*orderRepo.Repository)),
	wire.Bind(new(orderService.PromotionRepository), new(*promotionRepo.Repository)),
	wire.Bind(new(orderService.OfficeDirectory), new(*office.OfficeGateway)),
	wire.Bind(new(orderService.PaymentGateway), new(*payment.Gateway)),
	wire.Bind(new(orderService.Outbox), new(*outboxRepo.Repository)),
	wire.Bind(new(orderService.TxManager), new(*tx.Manager)),

	wire.Bind(new(shipmentService.Repository), new(*shipmentRepo.Repository)),
	wire.Bind(new(shipmentService.OrderService), new(*orderService.Service)),
	wire.Bind(new(shipmentService.TxManager), new(*tx.Manager)),

	wire.Bind(new(submissionService.Repository), new(*submissionRepo.Repository)),
	wire.Bind(new(submissionService.OrderService), new(*orderService.Service)),
	wire.Bind(new(submissionService.Ledger), new(*ledgerService.Service)),
	wire.Bind(new(submissionService.Outbox), new(*outboxRepo.Repository)),
	wire.Bind(new(submissionService.TxManager), new(*tx.Manager)),

	wire.Bind(new(requestService.Repository), new(*requestRepo.Repository)),
	wire.Bind(new(requestService.OrderService), new(*orderService.Service)),
	wire.Bind(new(requestService.TxManager), new(*tx.Manager)),
)

func provideTxManager(pool *pgxpool.Pool) *tx.Manager {
	return tx.New(pool, tx.WithConflictError(entities.ErrConcurrencyConflict))
}

func provideQuerier(pool *pgxpool.Pool, getter *pgxv5.CtxGetter) *querier.Querier {
	return querier.New(pool, getter)
}

func provideOrderRepository(querier *querier.Querier) *orderRepo.Repository {
	return orderRepo.New(querier)
}

func provideShipmentRepository(querier *querier.Querier) *shipmentRepo.Repository {
	return shipmentRepo.New(querier)
}

func provideSubmissionRepository(querier *querier.Querier) *submissionRepo.Repository {
	return submissionRepo.New(querier)
}

func provideTransactionRepository(querier *querier.Querier) *transactionRepo.Repository {
	return transactionRepo.New(querier)
}

func providePromotionRepository(querier *querier.Querier) *promotionRepo.Repository {
	return promotionRepo.New(querier)
}

func provideRequestRepository(querier *querier.Querier) *requestRepo.Repository {
	return requestRepo.New(querier)
}

func provideOutboxRepository(querier *querier.Querier) *outboxRepo.Repository {
	return outboxRepo.New(querier)
}

func provideFeeEngine() (*fee.Engine, error) {
	return fee.New(fee.DefaultRateTable())
}

func provideOfficeGateway(conn *grpc.ClientConn, cfg *config.Config) *office.OfficeGateway {
	return office.New(conn, cfg.OfficeDirectory.Timeout)
}

func providePaymentGateway(cfg *config.Config) (*payment.Gateway, error) {
	return payment.New(cfg.Payment.BaseURL, cfg.Payment.Secret)
}

func provideLedgerService(
	repository ledgerService.Repository,
	outbox ledgerService.Outbox,
	txManager ledgerService.TxManager,
) *ledgerService.Service {
	return ledgerService.New(repository, outbox, txManager)
}

func providePromotionService(repository promotionService.Repository) *promotionService.Service {
	return promotionService.New(repository)
}

// provideOrderService также подписывает заказ на подтверждение возвратов в журнале.
func provideOrderService(
	log logger.Logger,
	cfg *config.Config,
	repository orderService.Repository,
	promotions orderService.PromotionRepository,
	ledger *ledgerService.Service,
	offices orderService.OfficeDirectory,
	payments orderService.PaymentGateway,
	outbox orderService.Outbox,
	txManager orderService.TxManager,
	fees *fee.Engine,
) *orderService.Service {
	svc := orderService.New(
		repository,
		promotions,
		ledger,
		offices,
		payments,
		outbox,
		txManager,
		fees,
		log.With(logger.NewField("service", "order")),
		cfg.Ledger.SettlementOfficeID,
	)
	ledger.OnConfirm(entities.PurposeRefund, svc.MarkRefunded)
	return svc
}

func provideShipmentService(
	repository shipmentService.Repository,
	orders shipmentService.OrderService,
	txManager shipmentService.TxManager,
) *shipmentService.Service {
	return shipmentService.New(repository, orders, txManager)
}

func provideSubmissionService(
	repository submissionService.Repository,
	orders submissionService.OrderService,
	ledger submissionService.Ledger,
	outbox submissionService.Outbox,
	txManager submissionService.TxManager,
) *submissionService.Service {
	return submissionService.New(repository, orders, ledger, outbox, txManager)
}

func provideRequestService(
	repository requestService.Repository,
	orders requestService.OrderService,
	txManager requestService.TxManager,
) *requestService.Service {
	return requestService.New(repository, orders, txManager)
}

func provideProducer(ctx context.Context, log logger.Logger, cfg *config.Config) (*kafka.Producer, error) {
	return kafka.NewProducer(ctx, log, &cfg.Kafka, cfg.Kafka.BrokerList())
}

func provideOutboxRelayTask(
	log logger.Logger,
	cfg *config.Config,
	outbox *outboxRepo.Repository,
	producer *kafka.Producer,
	txManager *tx.Manager,
) *outbox_relay.OutboxRelay {
	return outbox_relay.NewOutboxRelay(log, outbox, producer, txManager, cfg.Tasks.OutboxRelayInterval, cfg.Tasks.OutboxBatchSize)
}

func provideUnsubmittedCODTask(log logger.Logger, cfg *config.Config, submissions *submissionService.Service) *unsubmitted_cod.UnsubmittedCOD {
	return unsubmitted_cod.NewUnsubmittedCOD(log, submissions, cfg.Tasks.UnsubmittedCODInterval, cfg.Tasks.CODSubmissionSLA)
}

func provideStaleSubmissionsTask(log logger.Logger, cfg *config.Config, submissions *submissionService.Service) *stale_submissions.StaleSubmissions {
	return stale_submissions.New(log, submissions, cfg.Tasks.StaleSubmissionsInterval, cfg.Tasks.SubmissionReviewWindow)
}

func providePromotionExpiryTask(log logger.Logger, cfg *config.Config, promotions *promotionService.Service) *promotion_expiry.PromotionExpiry {
	return promotion_expiry.NewPromotionExpiry(log, promotions, cfg.Tasks.PromotionExpiryInterval)
}

func provideTaskList(
	outboxRelay *outbox_relay.OutboxRelay,
	unsubmittedCOD *unsubmitted_cod.UnsubmittedCOD,
	staleSubmissions *stale_submissions.StaleSubmissions,
	promotionExpiry *promotion_expiry.PromotionExpiry,
) []background.Task {
	return []background.Task{
		outboxRelay,
		unsubmittedCOD,
		staleSubmissions,
		promotionExpiry,
	}
}

func provideBackgroundWorkers(ctx context.Context, log logger.Logger, tasks []background.Task) (*background.Worker, error) {
	return background.New(ctx, log, tasks)
}

func provideLedgerSnapshot(log logger.Logger, cfg *config.Config, ledger *ledgerService.Service) *ledger_snapshot.Job {
	return ledger_snapshot.New(log, ledger, cfg.Ledger.SnapshotCron)
}
