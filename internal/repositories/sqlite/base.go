package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"restaurant-pos-store/internal/repositories"

	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
)

// querier is satisfied by both *sqlx.DB and *sqlx.Tx
type querier interface {
	sqlx.ExtContext
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error)
}

type txKey struct{}

// withTx returns a context that routes repository calls through tx
func withTx(ctx context.Context, tx *sqlx.Tx) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// txFromContext returns the transaction carried by ctx, if any
func txFromContext(ctx context.Context) *sqlx.Tx {
	tx, _ := ctx.Value(txKey{}).(*sqlx.Tx)
	return tx
}

// BaseRepository provides common functionality for all SQLite repositories
type BaseRepository[T any] struct {
	db     *sqlx.DB
	table  string
	logger *logrus.Logger
}

// NewBaseRepository creates a new base repository
func NewBaseRepository[T any](db *sqlx.DB, table string, logger *logrus.Logger) *BaseRepository[T] {
	if logger == nil {
		logger = logrus.New()
	}
	return &BaseRepository[T]{
		db:     db,
		table:  table,
		logger: logger,
	}
}

// conn returns the transaction carried by ctx, falling back to the database
func (r *BaseRepository[T]) conn(ctx context.Context) querier {
	if tx := txFromContext(ctx); tx != nil {
		return tx
	}
	return r.db
}

// logQuery logs a query with its execution time
func (r *BaseRepository[T]) logQuery(operation string, query string, args []interface{}, duration time.Duration, err error) {
	fields := logrus.Fields{
		"operation": operation,
		"table":     r.table,
		"query":     query,
		"args":      args,
		"duration":  duration,
	}

	if err != nil {
		fields["error"] = err.Error()
		r.logger.WithFields(fields).Error("Query failed")
	} else {
		r.logger.WithFields(fields).Debug("Query executed")
	}
}

// selectAll runs a multi-row query into dest
func (r *BaseRepository[T]) selectAll(ctx context.Context, operation string, dest interface{}, query string, args ...interface{}) error {
	start := time.Now()
	err := r.conn(ctx).SelectContext(ctx, dest, query, args...)
	r.logQuery(operation, query, args, time.Since(start), err)

	if err != nil {
		return r.wrapError(operation, "", err)
	}
	return nil
}

// getOne runs a single-row query into dest. sql.ErrNoRows is returned
// unwrapped so callers can decide whether absence is an error.
func (r *BaseRepository[T]) getOne(ctx context.Context, operation string, dest interface{}, query string, args ...interface{}) error {
	start := time.Now()
	err := r.conn(ctx).GetContext(ctx, dest, query, args...)

	if errors.Is(err, sql.ErrNoRows) {
		r.logQuery(operation, query, args, time.Since(start), nil)
		return err
	}
	r.logQuery(operation, query, args, time.Since(start), err)

	if err != nil {
		return r.wrapError(operation, "", err)
	}
	return nil
}

// executeExec executes a non-query statement and logs the result
func (r *BaseRepository[T]) executeExec(ctx context.Context, operation, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	result, err := r.conn(ctx).ExecContext(ctx, query, args...)
	r.logQuery(operation, query, args, time.Since(start), err)

	if err != nil {
		return nil, r.wrapError(operation, "", err)
	}
	return result, nil
}

// executeNamed executes a statement with named parameters bound from arg
func (r *BaseRepository[T]) executeNamed(ctx context.Context, operation, query string, arg interface{}) (sql.Result, error) {
	start := time.Now()
	result, err := r.conn(ctx).NamedExecContext(ctx, query, arg)
	r.logQuery(operation, query, []interface{}{arg}, time.Since(start), err)

	if err != nil {
		return nil, r.wrapError(operation, "", err)
	}
	return result, nil
}

// count runs a COUNT(*) style query
func (r *BaseRepository[T]) count(ctx context.Context, operation, query string, args ...interface{}) (int64, error) {
	var n int64
	if err := r.getOne(ctx, operation, &n, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, err
	}
	return n, nil
}

// wrapError classifies a driver error into a repository error
func (r *BaseRepository[T]) wrapError(operation, id string, err error) error {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
		return repositories.ConstraintError(operation, r.table, err)
	}
	return repositories.NewRepositoryError(operation, r.table, id, err)
}

// formatID renders an identity for error messages
func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
