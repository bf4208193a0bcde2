package main

import (
	"context"
	"fmt"
	stdlog "log"
	"net"
	"net/http"
	_ "net/http/pprof" //nolint:gosec // localhost-only ${PPROF_PORT}
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"logistics/api"
	application "logistics/internal/app"
	"logistics/internal/handlers/rest/balance_get"
	"logistics/internal/handlers/rest/driver_cash_get"
	"logistics/internal/handlers/rest/fee_quote_post"
	"logistics/internal/handlers/rest/healthcheck_head"
	"logistics/internal/handlers/rest/order_get"
	"logistics/internal/handlers/rest/order_payment_url_get"
	"logistics/internal/handlers/rest/order_post"
	"logistics/internal/handlers/rest/order_put"
	"logistics/internal/handlers/rest/order_requests_get"
	"logistics/internal/handlers/rest/order_tracking_get"
	"logistics/internal/handlers/rest/order_transition_post"
	"logistics/internal/handlers/rest/orders_get"
	"logistics/internal/handlers/rest/payment_callback_post"
	"logistics/internal/handlers/rest/ping_get"
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
	"logistics/internal/pkg/config"
	"logistics/internal/pkg/dotenv"
	"logistics/internal/pkg/grpcclient"
	metrics_system "logistics/internal/pkg/metrics"
	"logistics/internal/pkg/middlewares/actor"
	"logistics/internal/pkg/middlewares/graceful_shutdown"
	"logistics/internal/pkg/middlewares/metrics"
	"logistics/internal/pkg/middlewares/openapi"
	"logistics/internal/pkg/middlewares/rate_limiter"
	"logistics/internal/pkg/middlewares/timeout"
	"logistics/internal/pkg/postgres"
	"logistics/migrations"
	"logistics/pkg/logger"
	"logistics/pkg/logger/zap_adapter"
	"logistics/pkg/token_bucket"
)

const limiterPruneInterval = time.Minute

func main() {
	zapLogger, err := zap_adapter.NewZapAdapter()
	if err != nil {
		stdlog.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := zapLogger.Sync(); err != nil {
			stdlog.Printf("failed to sync logger: %v", err)
		}
	}()

	var appLogger logger.Logger = zapLogger
	mainLog := appLogger.With()

	mainLog.Info("starting logistics application")

	loaded, err := dotenv.Load()
	if err != nil {
		mainLog.Error("failed to load .env file", logger.NewField("error", err))
		return
	}
	if !loaded {
		mainLog.Warn("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		mainLog.Error("load config", logger.NewField("error", err))
		return
	}

	err = run(context.Background(), cfg, appLogger)
	if err != nil {
		mainLog.Error("application failed", logger.NewField("error", err))
		return
	}
}

const (
	shutdownPeriod      = 15 * time.Second
	shutdownHardPeriod  = 3 * time.Second
	readinessDrainDelay = 5 * time.Second
)

//nolint:contextcheck // Получаю предупреждения от линтера в местах де наследуюсь от context.Background(), хотя это часть gracefull shutdown
func run(ctx context.Context, cfg *config.Config, log logger.Logger) error {

	// https://victoriametrics.com/blog/go-graceful-shutdown/#b-use-basecontext-to-provide-a-global-context-to-all-connections
	var isShuttingDown atomic.Bool

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	runLog := log.With()

	pool, err := postgres.NewConnPool(ctx, log, &cfg.Database)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer pool.Close()

	if err := migrations.Up(ctx, pool); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}

	conn, err := grpcclient.NewConnClient(ctx, log, &cfg.OfficeDirectory)
	if err != nil {
		return fmt.Errorf("gRPC client: %w", err)
	}
	defer func() {
		err := conn.Close()
		if err != nil {
			runLog.Error("failed to close gRPC connection",
				logger.NewField("error", err),
			)
		}
	}()

	// фоновые задачи живут до SIGTERM
	businessApp, err := application.InitializeApplication(ctx, log, pool, pgxv5.DefaultCtxGetter, conn, cfg)
	if err != nil {
		return fmt.Errorf("business logic: %w", err)
	}
	defer func() {
		if err := businessApp.Producer.Close(); err != nil {
			runLog.Error("failed to close kafka producer", logger.NewField("error", err))
		}
	}()

	if err := businessApp.LedgerSnapshot.Start(); err != nil {
		return fmt.Errorf("ledger snapshot: %w", err)
	}
	defer businessApp.LedgerSnapshot.Stop()

	metrics_system.StartSystemMetricsCollector(ctx, pool)

	// ongoingCtx используется для BaseContext и не должен отменяться при SIGTERM.
	// Он отменяется только после server.Shutdown() для завершения in-flight запросов.
	// https://victoriametrics.com/blog/go-graceful-shutdown/#b-use-basecontext-to-provide-a-global-context-to-all-connections
	ongoingCtx, stopOngoingGracefully := context.WithCancel(context.Background())
	defer stopOngoingGracefully()

	validator, err := openapi.NewValidator(ctx, log, api.OpenAPI)
	if err != nil {
		return fmt.Errorf("openapi: %w", err)
	}

	actorLimiter := token_bucket.NewKeyed(cfg.Server.ActorRateLimitQPS, float64(cfg.Server.ActorRateLimitQPS))
	go pruneLimiter(ctx, actorLimiter)

	// основной http сервер
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: initRouter(ongoingCtx, log, &isShuttingDown, businessApp, pool, validator, actorLimiter, cfg.Server),
		BaseContext: func(_ net.Listener) context.Context {
			return ongoingCtx
		},

		ReadHeaderTimeout: 5 * time.Second, // Slowloris DoS gosec G112
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		defer close(serverErr)
		runLog.Info("server starting",
			logger.NewField("port", cfg.Server.Port),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()
	// основной http сервер

	// pprof http сервер
	var pprofServer *http.Server
	var pprofServerErr chan error
	if cfg.Server.PprofEnabled {
		pprofServer = &http.Server{
			Addr:    fmt.Sprintf(":%s", cfg.Server.PprofPort),
			Handler: initPprofRouter(&isShuttingDown, pool),
			BaseContext: func(_ net.Listener) context.Context {
				return ongoingCtx
			},

			ReadHeaderTimeout: 5 * time.Second, // Slowloris DoS gosec G112
			ReadTimeout:       60 * time.Second,
			WriteTimeout:      60 * time.Second,
			IdleTimeout:       60 * time.Second,
		}

		pprofServerErr = make(chan error, 1)
		go func() {
			defer close(pprofServerErr)
			runLog.Info("pprof server starting",
				logger.NewField("port", cfg.Server.PprofPort),
			)
			if err := pprofServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				pprofServerErr <- err
			}
		}()
	}
	// pprof http сервер

	select {
	case <-ctx.Done():
		runLog.Info("Shutdown signal received")
	case err := <-serverErr:
		return fmt.Errorf("server: %w", err)
	case err := <-pprofServerErr: // if !cfg.Server.PprofEnabled будет nil по умолчанию, и данный кейс будет проигнорирован
		return fmt.Errorf("pprof server: %w", err)
	}

	stop()
	isShuttingDown.Store(true)

	time.Sleep(readinessDrainDelay)
	runLog.Info("draining requests")

	// shutdownCtx должен быть независим от ctx, который уже отменен на этом этапе.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownPeriod)

	defer cancel()

	var shutdownErr error
	err = server.Shutdown(shutdownCtx)
	if pprofServer != nil {
		shutdownErr = pprofServer.Shutdown(shutdownCtx)
		if shutdownErr != nil {
			runLog.Error("pprof server shutdown error", logger.NewField("error", shutdownErr))
		} else {
			runLog.Info("pprof server stopped")
		}
	}

	stopOngoingGracefully()
	if err != nil || shutdownErr != nil {
		runLog.Info("Graceful shutdown timeout, forcing close")
		time.Sleep(shutdownHardPeriod)
	}

	select {
	case <-businessApp.BackgroundWorkers.Done():
		runLog.Info("background tasks stopped")
	case <-shutdownCtx.Done():
		runLog.Warn("background tasks did not stop in time")
	}

	runLog.Info("Server stopped")
	return nil
}

func initRouter(
	ongoingCtx context.Context,
	log logger.Logger,
	isShuttingDown *atomic.Bool,
	app *application.Application,
	db healthcheck_head.Pinger,
	validator *openapi.Validator,
	actorLimiter rate_limiter.KeyedLimiter,
	cfg config.HTTPServer,
) http.Handler {
	router := mux.NewRouter()

	router.Use(graceful_shutdown.Middleware(isShuttingDown, ongoingCtx, shutdownPeriod))

	router.Use(timeout.Middleware(cfg.RequestTimeout))
	router.Use(actor.Middleware())
	router.Use(metrics.Middleware(log))
	router.Use(rate_limiter.Middleware(log, cfg.RateLimiterQPS, token_bucket.NewTokenBucket(cfg.RateLimiterQPS, float64(cfg.RateLimiterBurst))))
	router.Use(rate_limiter.PerActorMiddleware(log, cfg.ActorRateLimitQPS, actorLimiter))
	router.Use(validator.Middleware())
	router.Handle("/metrics", promhttp.Handler())

	router.Handle("/healthcheck", healthcheck_head.New(isShuttingDown, db)).Methods("HEAD")
	router.Handle("/ping", ping_get.New(log)).Methods("GET")

	router.Handle("/fee/quote", fee_quote_post.New(log, app.ServiceOrder)).Methods("POST")

	router.Handle("/order", order_post.New(log, app.ServiceOrder)).Methods("POST")
	router.Handle("/orders", orders_get.New(log, app.ServiceOrder)).Methods("GET")
	router.Handle("/order/tracking/{tracking}", order_tracking_get.New(log, app.ServiceOrder)).Methods("GET")
	router.Handle("/order/{id}", order_get.New(log, app.ServiceOrder)).Methods("GET")
	router.Handle("/order/{id}", order_put.New(log, app.ServiceOrder)).Methods("PUT")
	router.Handle("/order/{id}/transition", order_transition_post.New(log, app.ServiceOrder)).Methods("POST")
	router.Handle("/order/{id}/payment-url", order_payment_url_get.New(log, app.ServiceOrder)).Methods("GET")
	router.Handle("/order/{id}/requests", order_requests_get.New(log, app.ServiceRequest)).Methods("GET")
	router.Handle("/payment/callback", payment_callback_post.New(log, app.ServiceOrder)).Methods("POST")

	router.Handle("/shipment", shipment_post.New(log, app.ServiceShipment)).Methods("POST")
	router.Handle("/shipment/{id}", shipment_get.New(log, app.ServiceShipment)).Methods("GET")
	router.Handle("/shipment/{id}/start", shipment_start_post.New(log, app.ServiceShipment)).Methods("POST")
	router.Handle("/shipment/{id}/finish", shipment_finish_post.New(log, app.ServiceShipment)).Methods("POST")

	router.Handle("/submission", submission_post.New(log, app.ServiceSubmission)).Methods("POST")
	router.Handle("/submissions", submissions_get.New(log, app.ServiceSubmission)).Methods("GET")
	router.Handle("/submission/{id}", submission_get.New(log, app.ServiceSubmission)).Methods("GET")
	router.Handle("/submission/{id}/confirm", submission_confirm_post.New(log, app.ServiceSubmission)).Methods("POST")
	router.Handle("/submission/{id}/adjust", submission_adjust_post.New(log, app.ServiceSubmission)).Methods("POST")
	router.Handle("/submission/{id}/reject", submission_reject_post.New(log, app.ServiceSubmission)).Methods("POST")
	router.Handle("/driver/{id}/cash", driver_cash_get.New(log, app.ServiceSubmission)).Methods("GET")

	router.Handle("/transaction", transaction_post.New(log, app.ServiceLedger)).Methods("POST")
	router.Handle("/transaction/transfer", transaction_transfer_post.New(log, app.ServiceLedger)).Methods("POST")
	router.Handle("/transactions", transactions_get.New(log, app.ServiceLedger)).Methods("GET")
	router.Handle("/transaction/{id}", transaction_get.New(log, app.ServiceLedger)).Methods("GET")
	router.Handle("/transaction/{id}/confirm", transaction_confirm_post.New(log, app.ServiceLedger)).Methods("POST")
	router.Handle("/transaction/{id}/reject", transaction_reject_post.New(log, app.ServiceLedger)).Methods("POST")
	router.Handle("/balance", balance_get.New(log, app.ServiceLedger)).Methods("GET")

	router.Handle("/promotion", promotion_post.New(log, app.ServicePromotion)).Methods("POST")
	router.Handle("/promotion/{code}", promotion_get.New(log, app.ServicePromotion)).Methods("GET")
	router.Handle("/promotions", promotions_get.New(log, app.ServicePromotion)).Methods("GET")

	router.Handle("/request", request_post.New(log, app.ServiceRequest)).Methods("POST")
	router.Handle("/request/{id}/resolve", request_resolve_post.New(log, app.ServiceRequest)).Methods("POST")
	router.Handle("/request/{id}", request_get.New(log, app.ServiceRequest)).Methods("GET")
	router.Handle("/request/{id}/dismiss", request_dismiss_post.New(log, app.ServiceRequest)).Methods("POST")

	return router
}

func initPprofRouter(isShuttingDown *atomic.Bool, db healthcheck_head.Pinger) http.Handler {
	router := mux.NewRouter()

	router.Handle("/healthcheck", healthcheck_head.New(isShuttingDown, db)).Methods("HEAD")
	router.PathPrefix("/debug/pprof/").Handler(http.DefaultServeMux)

	return router
}

// pruneLimiter выбрасывает ведра авторов, которые давно не обращались.
func pruneLimiter(ctx context.Context, limiter *token_bucket.Keyed) {
	ticker := time.NewTicker(limiterPruneInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			limiter.Prune()
		}
	}
}
