//go:build integration

package integration_test

import (
	"context"
	"log"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"logistics/internal/entities"
	"logistics/migrations"
	"logistics/pkg/querier"
	"logistics/pkg/tx"
)

var (
	poolInstance    *pgxpool.Pool
	querierInstance *querier.Querier
	setupOnce       sync.Once
)

// setup поднимает один контейнер postgres на весь прогон и накатывает миграции.
// Контейнер убирает reaper testcontainers после завершения процесса.
func setup() {
	setupOnce.Do(func() {
		ctx := context.Background()

		container, err := postgres.Run(ctx,
			"postgres:15-alpine",
			postgres.WithDatabase("logistics"),
			postgres.WithUsername("logistics"),
			postgres.WithPassword("logistics"),
			testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
		)
		if err != nil {
			log.Fatalf("failed to start postgres container: %v", err)
		}

		dsn, err := container.ConnectionString(ctx, "sslmode=disable")
		if err != nil {
			log.Fatalf("failed to get connection string: %v", err)
		}

		poolInstance, err = pgxpool.New(ctx, dsn)
		if err != nil {
			log.Fatalf("failed to create pool: %v", err)
		}

		if err := migrations.Up(ctx, poolInstance); err != nil {
			log.Fatalf("failed to apply migrations: %v", err)
		}

		querierInstance = querier.New(poolInstance, pgxv5.DefaultCtxGetter)
	})
}

func GetQuerier() *querier.Querier {
	setup()
	return querierInstance
}

func GetTxManager() *tx.Manager {
	setup()
	return tx.New(poolInstance, tx.WithConflictError(entities.ErrConcurrencyConflict))
}

func SetupDB(t *testing.T, setupSql string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if setupSql == "" {
		return
	}
	_, err := GetQuerier().Exec(ctx, setupSql)

	require.NoError(t, err)
}

func TeardownDB(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// триггер transactions_guard запрещает DELETE, TRUNCATE его не вызывает
	_, err := GetQuerier().Exec(ctx, `
		TRUNCATE TABLE outbox, customer_requests, transactions, submission_orders, payment_submissions,
			shipment_orders, shipments, orders, promotions RESTART IDENTITY CASCADE;
	`)
	require.NoError(t, err)
}

// DeliveredOrderSQL: заказ, доставленный водителем driverID с наложенным платежом cod.
func DeliveredOrderSQL(id, trackingNumber, driverID string, cod int64) string {
	return `INSERT INTO orders (id, tracking_number, owner_id, sender_name, sender_phone, sender_address, sender_region,
			recipient_name, recipient_phone, recipient_address, recipient_region, weight, service_type, cod,
			cod_collected, collected_by, order_value, payer, payment_method, payment_status, shipping_fee, status,
			from_office_id, to_office_id, delivered_at)
		VALUES ('` + id + `', '` + trackingNumber + `', 'shop-1', 'Shop', '0900000001', '1 Le Loi', 'S-HCM',
			'Lan', '0900000002', '2 Tran Phu', 'N-HN', 1.5, 'standard', ` + strconv.FormatInt(cod, 10) + `,
			` + strconv.FormatInt(cod, 10) + `, '` + driverID + `', 0, 'Customer', 'Cash', 'Unpaid', 30000, 'delivered',
			'office-hcm', 'office-hn', NOW() - INTERVAL '2 days');`
}
