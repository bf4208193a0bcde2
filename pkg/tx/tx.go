package tx

import (
	"context"
	"errors"
	"fmt"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/avito-tech/go-transaction-manager/trm/manager"
	"github.com/avito-tech/go-transaction-manager/trm/settings"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	pgErrSerializationFailure = "40001"
	pgErrDeadlockDetected     = "40P01"
)

// Manager инкапсулирует логику управления транзакциями.
type Manager struct {
	internal    *manager.Manager
	conflictErr error
}

type Option func(*Manager)

// WithConflictError задает доменную ошибку, которой оборачиваются serialization failure и deadlock,
// чтобы вызывающий код мог отличить их от остальных ошибок и повторить запрос.
func WithConflictError(err error) Option {
	return func(m *Manager) {
		m.conflictErr = err
	}
}

// New создаёт новый менеджер транзакций.
func New(db pgxv5.Transactional, opts ...Option) *Manager {
	m := &Manager{
		internal: manager.Must(pgxv5.NewDefaultFactory(db)),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) execWithIsoLevel(
	ctx context.Context,
	level pgx.TxIsoLevel,
	accessMode pgx.TxAccessMode,
	fn func(ctx context.Context) error,
) error {
	txSettings := pgxv5.MustSettings(
		settings.Must(),
		pgxv5.WithTxOptions(pgx.TxOptions{IsoLevel: level, AccessMode: accessMode}),
	)
	err := m.internal.DoWithSettings(ctx, txSettings, fn)
	if err != nil && m.conflictErr != nil && isConflict(err) && !errors.Is(err, m.conflictErr) {
		return fmt.Errorf("%w: %w", m.conflictErr, err)
	}
	return err
}

// Do выполняет fn в Serializable транзакции. Вложенные вызовы переиспользуют внешнюю транзакцию.
func (m *Manager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.execWithIsoLevel(ctx, pgx.Serializable, pgx.ReadWrite, fn)
}

// DoReadOnly для отчетов и сверок, которым нужен согласованный снимок без блокировок на запись.
func (m *Manager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.execWithIsoLevel(ctx, pgx.RepeatableRead, pgx.ReadOnly, fn)
}

func isConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgErrSerializationFailure || pgErr.Code == pgErrDeadlockDetected
	}
	return false
}
