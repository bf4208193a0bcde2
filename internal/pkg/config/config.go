package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type (
	Tasks struct {
		OutboxRelayInterval      time.Duration
		OutboxBatchSize          int
		UnsubmittedCODInterval   time.Duration
		CODSubmissionSLA         time.Duration // сколько водитель может держать наложенный платеж
		StaleSubmissionsInterval time.Duration
		SubmissionReviewWindow   time.Duration // сколько сдача может ждать сверки
		PromotionExpiryInterval  time.Duration
	}

	HTTPServer struct {
		Port              string
		RequestTimeout    time.Duration // middleware timeout
		RateLimiterQPS    int           // middleware rate limiter capacity
		RateLimiterBurst  int           // middleware rate limiter burst/refill
		ActorRateLimitQPS int           // лимит на одного автора, по умолчанию десятая часть общего
		PprofEnabled      bool
		PprofPort         string
	}

	Database struct {
		Host     string
		Port     string
		User     string
		Password string
		DBName   string
		SSLMode  string
	}

	OfficeDirectory struct {
		GRPCHost string
		Timeout  time.Duration
	}

	Payment struct {
		BaseURL string
		Secret  string
	}

	Ledger struct {
		SettlementOfficeID string
		SnapshotCron       string
	}

	Kafka struct {
		PortHealthcheck     string
		Brokers             string
		DeliveryEventsTopic string
		ConsumerGroup       string
		Sarama              Sarama
		Handlers            KafkaHandlers
	}

	Sarama struct {
		Version                   string
		ConsumerOffsetsAutocommit bool
	}

	KafkaHandlers struct {
		DeliveryEvents DeliveryEvents
	}

	DeliveryEvents struct {
		ProcessTimeout time.Duration
	}

	Config struct {
		Tasks           Tasks
		Server          HTTPServer
		Database        Database
		OfficeDirectory OfficeDirectory
		Payment         Payment
		Ledger          Ledger
		Kafka           Kafka
	}
)

// BrokerList разбирает KAFKA_BROKERS, список через запятую.
func (k Kafka) BrokerList() []string {
	brokers := strings.Split(k.Brokers, ",")
	res := make([]string, 0, len(brokers))
	for _, b := range brokers {
		if b = strings.TrimSpace(b); b != "" {
			res = append(res, b)
		}
	}
	return res
}

func Load() (*Config, error) {
	cfg, err := loadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("environment loading: %w", err)
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("validation: %w", err)
	}
	return cfg, nil
}

func loadFromEnv() (*Config, error) {
	var (
		env envReader
		cfg Config
	)

	cfg.Tasks = Tasks{
		OutboxRelayInterval:      env.duration("BACKGROUND_OUTBOX_RELAY_INTERVAL"),
		OutboxBatchSize:          env.int("BACKGROUND_OUTBOX_BATCH_SIZE"),
		UnsubmittedCODInterval:   env.duration("BACKGROUND_UNSUBMITTED_COD_INTERVAL"),
		CODSubmissionSLA:         env.duration("COD_SUBMISSION_SLA"),
		StaleSubmissionsInterval: env.duration("BACKGROUND_STALE_SUBMISSIONS_INTERVAL"),
		SubmissionReviewWindow:   env.duration("SUBMISSION_REVIEW_WINDOW"),
		PromotionExpiryInterval:  env.duration("BACKGROUND_PROMOTION_EXPIRY_INTERVAL"),
	}
	cfg.Server = HTTPServer{
		Port:              os.Getenv("PORT"),
		RequestTimeout:    env.duration("MIDDLEWARE_REQUEST_TIMEOUT"),
		RateLimiterQPS:    env.int("MIDDLEWARE_RATE_LIMIT_QPS"),
		RateLimiterBurst:  env.int("MIDDLEWARE_RATE_LIMIT_BURST"),
		ActorRateLimitQPS: env.int("MIDDLEWARE_ACTOR_RATE_LIMIT_QPS"),
		PprofEnabled:      env.bool("PPROF_ENABLED"),
		PprofPort:         os.Getenv("PPROF_PORT"),
	}
	cfg.Database = Database{
		Host:     os.Getenv("POSTGRES_HOST"),
		Port:     os.Getenv("POSTGRES_PORT"),
		User:     os.Getenv("POSTGRES_USER"),
		Password: os.Getenv("POSTGRES_PASSWORD"),
		DBName:   os.Getenv("POSTGRES_DB"),
		SSLMode:  os.Getenv("POSTGRES_SSLMODE"),
	}
	cfg.OfficeDirectory = OfficeDirectory{
		GRPCHost: os.Getenv("OFFICE_DIRECTORY_GRPC_HOST"),
		Timeout:  env.duration("OFFICE_DIRECTORY_TIMEOUT"),
	}
	cfg.Payment = Payment{
		BaseURL: os.Getenv("PAYMENT_BASE_URL"),
		Secret:  os.Getenv("PAYMENT_SECRET"),
	}
	cfg.Ledger = Ledger{
		SettlementOfficeID: os.Getenv("LEDGER_SETTLEMENT_OFFICE_ID"),
		SnapshotCron:       os.Getenv("LEDGER_SNAPSHOT_CRON"),
	}
	cfg.Kafka = Kafka{
		Brokers:             os.Getenv("KAFKA_BROKERS"),
		DeliveryEventsTopic: os.Getenv("KAFKA_DELIVERY_EVENTS_TOPIC"),
		ConsumerGroup:       os.Getenv("KAFKA_CONSUMER_GROUP"),
		PortHealthcheck:     os.Getenv("KAFKA_HTTP_HEALTHCHECK_PORT"),
		Sarama: Sarama{
			Version:                   os.Getenv("KAFKA_SARAMA_VERSION"),
			ConsumerOffsetsAutocommit: env.bool("KAFKA_SARAMA_OFFSETS_AUTOCOMMIT"),
		},
		Handlers: KafkaHandlers{
			DeliveryEvents: DeliveryEvents{
				ProcessTimeout: env.duration("KAFKA_HANDLER_DELIVERY_EVENTS_PROCESS_TIMEOUT"),
			},
		},
	}

	if env.err != nil {
		return nil, fmt.Errorf("loading config: %w", env.err)
	}
	if cfg.Server.ActorRateLimitQPS == 0 {
		cfg.Server.ActorRateLimitQPS = max(cfg.Server.RateLimiterQPS/10, 1)
	}
	return &cfg, nil
}

func validateConfig(cfg *Config) error {
	required := []struct {
		ok  bool
		msg string
	}{
		{cfg.Server.Port != "", "server port is required (set via PORT env variable)"},
		{cfg.Server.RequestTimeout != 0, "MIDDLEWARE_REQUEST_TIMEOUT is required"},
		{cfg.Server.RateLimiterQPS != 0, "MIDDLEWARE_RATE_LIMIT_QPS is required"},
		{cfg.Server.RateLimiterBurst != 0, "MIDDLEWARE_RATE_LIMIT_BURST is required"},
		{cfg.Server.PprofPort != "" || !cfg.Server.PprofEnabled, "PprofPort is required (set via PPROF_PORT env variable)"},

		{cfg.Database.Host != "", "POSTGRES_HOST is required"},
		{cfg.Database.Port != "", "POSTGRES_PORT is required"},
		{cfg.Database.User != "", "POSTGRES_USER is required"},
		{cfg.Database.Password != "", "POSTGRES_PASSWORD is required"},
		{cfg.Database.DBName != "", "POSTGRES_DB is required"},
		{cfg.Database.SSLMode != "", "POSTGRES_SSLMODE is required"},

		{cfg.Tasks.OutboxRelayInterval != 0, "BACKGROUND_OUTBOX_RELAY_INTERVAL is required"},
		{cfg.Tasks.OutboxBatchSize > 0, "BACKGROUND_OUTBOX_BATCH_SIZE is required"},
		{cfg.Tasks.UnsubmittedCODInterval != 0, "BACKGROUND_UNSUBMITTED_COD_INTERVAL is required"},
		{cfg.Tasks.CODSubmissionSLA != 0, "COD_SUBMISSION_SLA is required"},
		{cfg.Tasks.StaleSubmissionsInterval != 0, "BACKGROUND_STALE_SUBMISSIONS_INTERVAL is required"},
		{cfg.Tasks.SubmissionReviewWindow != 0, "SUBMISSION_REVIEW_WINDOW is required"},
		{cfg.Tasks.PromotionExpiryInterval != 0, "BACKGROUND_PROMOTION_EXPIRY_INTERVAL is required"},

		{cfg.OfficeDirectory.GRPCHost != "", "OFFICE_DIRECTORY_GRPC_HOST is required"},
		{cfg.OfficeDirectory.Timeout != 0, "OFFICE_DIRECTORY_TIMEOUT is required"},

		{cfg.Payment.BaseURL != "", "PAYMENT_BASE_URL is required"},
		{cfg.Payment.Secret != "", "PAYMENT_SECRET is required"},

		{cfg.Ledger.SettlementOfficeID != "", "LEDGER_SETTLEMENT_OFFICE_ID is required"},
		{cfg.Ledger.SnapshotCron != "", "LEDGER_SNAPSHOT_CRON is required"},

		{cfg.Kafka.Brokers != "", "KAFKA_BROKERS is required"},
		{cfg.Kafka.DeliveryEventsTopic != "", "KAFKA_DELIVERY_EVENTS_TOPIC is required"},
		{cfg.Kafka.ConsumerGroup != "", "KAFKA_CONSUMER_GROUP is required"},
		{cfg.Kafka.PortHealthcheck != "", "KAFKA_HTTP_HEALTHCHECK_PORT is required"},
		{cfg.Kafka.Sarama.Version != "", "KAFKA_SARAMA_VERSION is required"},
		{cfg.Kafka.Handlers.DeliveryEvents.ProcessTimeout != 0, "KAFKA_HANDLER_DELIVERY_EVENTS_PROCESS_TIMEOUT is required"},
	}

	for _, r := range required {
		if !r.ok {
			return errors.New(r.msg)
		}
	}
	return nil
}

// envReader запоминает первую ошибку разбора, чтобы не проверять каждую переменную отдельно.
type envReader struct {
	err error
}

func (r *envReader) int(key string) int {
	val := os.Getenv(key)
	if val == "" || r.err != nil {
		return 0
	}

	res, err := strconv.Atoi(val)
	if err != nil {
		r.err = fmt.Errorf("invalid int format for %s=%q: %w", key, val, err)
	}
	return res
}

func (r *envReader) duration(key string) time.Duration {
	val := os.Getenv(key)
	if val == "" || r.err != nil {
		return 0
	}

	res, err := time.ParseDuration(val)
	if err != nil {
		r.err = fmt.Errorf("invalid duration format for %s=%q: %w", key, val, err)
	}
	return res
}

func (r *envReader) bool(key string) bool {
	val := os.Getenv(key)
	if val == "" || r.err != nil {
		return false
	}

	res, err := strconv.ParseBool(val)
	if err != nil {
		r.err = fmt.Errorf("invalid bool format for %s=%q: %w", key, val, err)
	}
	return res
}
