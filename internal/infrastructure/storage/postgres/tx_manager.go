package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"agrofleet/internal/core/tx"
	"agrofleet/pkg/logger"
)

var tracer = otel.Tracer("agrofleet/tx")

var _ tx.Manager = (*TxManager)(nil)

// DefaultStatementTimeout bounds every statement run inside a transaction.
const DefaultStatementTimeout = 30 * time.Second

// TxManager runs service units of work in read-committed transactions. The
// active pgx.Tx travels in the context, so nested calls join it.
type TxManager struct {
	pool *pgxpool.Pool

	// StatementTimeout is applied with SET LOCAL; zero disables it.
	StatementTimeout time.Duration
}

func NewTxManager(pool *Pool) *TxManager {
	return &TxManager{pool: pool.Pool, StatementTimeout: DefaultStatementTimeout}
}

type txKey struct{}

func (m *TxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.GetTx(ctx) != nil {
		return fn(ctx)
	}

	ctx, span := tracer.Start(ctx, "db.transaction",
		trace.WithAttributes(attribute.String("db.isolation", string(pgx.ReadCommitted))))
	defer span.End()

	dbTx, err := m.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("begin transaction: %w", err)
	}

	if m.StatementTimeout > 0 {
		stmt := fmt.Sprintf("SET LOCAL statement_timeout = '%dms'", m.StatementTimeout.Milliseconds())
		if _, err := dbTx.Exec(ctx, stmt); err != nil {
			_ = dbTx.Rollback(ctx)
			return fmt.Errorf("set statement_timeout: %w", err)
		}
	}

	if err := fn(context.WithValue(ctx, txKey{}, dbTx)); err != nil {
		// ctx may already be cancelled; the rollback must still reach the server.
		if rbErr := dbTx.Rollback(context.Background()); rbErr != nil {
			logger.Error(ctx, "rollback failed", "error", rbErr, "cause", err)
		}
		span.RecordError(err)
		return err
	}

	if err := dbTx.Commit(ctx); err != nil {
		span.RecordError(err)
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// GetTx returns the transaction carried by ctx, or nil.
func (m *TxManager) GetTx(ctx context.Context) pgx.Tx {
	dbTx, _ := ctx.Value(txKey{}).(pgx.Tx)
	return dbTx
}

// Querier is satisfied by both pgx.Tx and *pgxpool.Pool.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// GetQuerier returns the transaction in ctx, or the pool outside one.
func (m *TxManager) GetQuerier(ctx context.Context) Querier {
	if dbTx := m.GetTx(ctx); dbTx != nil {
		return dbTx
	}
	return m.pool
}
