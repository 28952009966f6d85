package sqlite

import (
	"context"

	"restaurant-pos-store/internal/repositories"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

// SQLiteTransaction implements the Transaction interface for SQLite
type SQLiteTransaction struct {
	tx     *sqlx.Tx
	ctx    context.Context
	logger *logrus.Logger
}

// NewSQLiteTransaction creates a new SQLite transaction whose context
// routes repository calls through tx
func NewSQLiteTransaction(ctx context.Context, tx *sqlx.Tx, logger *logrus.Logger) repositories.Transaction {
	if logger == nil {
		logger = logrus.New()
	}
	return &SQLiteTransaction{
		tx:     tx,
		ctx:    withTx(ctx, tx),
		logger: logger,
	}
}

// Commit commits the transaction
func (t *SQLiteTransaction) Commit() error {
	err := t.tx.Commit()
	if err != nil {
		t.logger.WithError(err).Error("Failed to commit transaction")
		return repositories.TransactionError("commit", err)
	}
	t.logger.Debug("Transaction committed successfully")
	return nil
}

// Rollback rolls back the transaction
func (t *SQLiteTransaction) Rollback() error {
	err := t.tx.Rollback()
	if err != nil {
		t.logger.WithError(err).Error("Failed to rollback transaction")
		return repositories.TransactionError("rollback", err)
	}
	t.logger.Debug("Transaction rolled back successfully")
	return nil
}

// Context returns the transaction context
func (t *SQLiteTransaction) Context() context.Context {
	return t.ctx
}

// SQLiteTransactionManager implements the TransactionManager interface for SQLite
type SQLiteTransactionManager struct {
	db     *sqlx.DB
	logger *logrus.Logger
}

// NewSQLiteTransactionManager creates a new SQLite transaction manager
func NewSQLiteTransactionManager(db *sqlx.DB, logger *logrus.Logger) *SQLiteTransactionManager {
	if logger == nil {
		logger = logrus.New()
	}
	return &SQLiteTransactionManager{
		db:     db,
		logger: logger,
	}
}

// BeginTransaction starts a new transaction
func (tm *SQLiteTransactionManager) BeginTransaction(ctx context.Context) (repositories.Transaction, error) {
	tx, err := tm.db.BeginTxx(ctx, nil)
	if err != nil {
		tm.logger.WithError(err).Error("Failed to begin transaction")
		return nil, repositories.TransactionError("begin", err)
	}

	tm.logger.Debug("Transaction started successfully")
	return NewSQLiteTransaction(ctx, tx, tm.logger), nil
}

// WithTransaction executes a function within a transaction. When ctx
// already carries a transaction fn joins it and the outer caller commits.
func (tm *SQLiteTransactionManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if txFromContext(ctx) != nil {
		return fn(ctx)
	}

	tx, err := tm.BeginTransaction(ctx)
	if err != nil {
		return err
	}

	// Ensure transaction is cleaned up
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(tx.Context()); err != nil {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			tm.logger.WithError(rollbackErr).Error("Failed to rollback transaction after error")
		}
		return err
	}

	return tx.Commit()
}
