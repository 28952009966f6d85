package repositories

import (
	"errors"
	"fmt"
)

// Error kinds surfaced by the store
var (
	// ErrConfiguration is returned when the database location cannot be resolved or created
	ErrConfiguration = errors.New("configuration error")

	// ErrStorage is returned when the engine fails to open, read, write or commit
	ErrStorage = errors.New("storage error")

	// ErrNotFound is returned when a required singleton is missing
	ErrNotFound = errors.New("entity not found")

	// ErrValidation is returned by callers that reject a request before it reaches the store
	ErrValidation = errors.New("validation error")

	// ErrConstraint is returned when a database constraint is violated
	ErrConstraint = errors.New("constraint violation")

	// ErrTransaction is returned when a transaction cannot begin, commit or roll back
	ErrTransaction = errors.New("transaction error")

	// ErrConnection is returned when the database connection is unusable
	ErrConnection = errors.New("database connection error")

	// ErrInvalidID is returned when an identity is not positive
	ErrInvalidID = errors.New("invalid ID")
)

// RepositoryError represents a repository-specific error with additional context
type RepositoryError struct {
	Op      string // Operation that failed
	Entity  string // Entity type
	ID      string // Entity ID (if applicable)
	Kind    error  // One of the sentinel kinds above
	Err     error  // Underlying error
	Message string // Human-readable message
}

// Error implements the error interface
func (e *RepositoryError) Error() string {
	if e.Message != "" {
		return e.Message
	}

	if e.ID != "" {
		return fmt.Sprintf("%s %s operation failed for ID %s: %v", e.Entity, e.Op, e.ID, e.Err)
	}

	return fmt.Sprintf("%s %s operation failed: %v", e.Entity, e.Op, e.Err)
}

// Unwrap returns the underlying error
func (e *RepositoryError) Unwrap() error {
	return e.Err
}

// Is matches either the error kind or anything in the wrapped chain
func (e *RepositoryError) Is(target error) bool {
	if e.Kind != nil && e.Kind == target {
		return true
	}
	// constraint, transaction and connection failures are storage failures
	if target == ErrStorage && isStorageKind(e.Kind) {
		return true
	}
	return errors.Is(e.Err, target)
}

func isStorageKind(kind error) bool {
	switch kind {
	case ErrStorage, ErrConstraint, ErrTransaction, ErrConnection:
		return true
	}
	return false
}

// NewRepositoryError creates a storage-kind repository error
func NewRepositoryError(op, entity, id string, err error) *RepositoryError {
	return &RepositoryError{
		Op:     op,
		Entity: entity,
		ID:     id,
		Kind:   ErrStorage,
		Err:    err,
	}
}

// NewRepositoryErrorWithMessage creates a storage-kind repository error with a custom message
func NewRepositoryErrorWithMessage(op, entity, id, message string, err error) *RepositoryError {
	return &RepositoryError{
		Op:      op,
		Entity:  entity,
		ID:      id,
		Kind:    ErrStorage,
		Err:     err,
		Message: message,
	}
}

// NotFoundError creates a "not found" repository error
func NotFoundError(entity, id string) *RepositoryError {
	return &RepositoryError{
		Op:      "get",
		Entity:  entity,
		ID:      id,
		Kind:    ErrNotFound,
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s with ID %s not found", entity, id),
	}
}

// ValidationError creates a "validation" repository error
func ValidationError(entity, id string, err error) *RepositoryError {
	return &RepositoryError{
		Op:      "validate",
		Entity:  entity,
		ID:      id,
		Kind:    ErrValidation,
		Err:     err,
		Message: fmt.Sprintf("validation failed for %s: %v", entity, err),
	}
}

// ConstraintError creates a "constraint violation" repository error
func ConstraintError(op, entity string, err error) *RepositoryError {
	return &RepositoryError{
		Op:      op,
		Entity:  entity,
		Kind:    ErrConstraint,
		Err:     err,
		Message: fmt.Sprintf("constraint violation for %s during %s: %v", entity, op, err),
	}
}

// TransactionError creates a "transaction" repository error
func TransactionError(op string, err error) *RepositoryError {
	return &RepositoryError{
		Op:      op,
		Entity:  "transaction",
		Kind:    ErrTransaction,
		Err:     err,
		Message: fmt.Sprintf("transaction %s failed: %v", op, err),
	}
}

// ConnectionError creates a "connection" repository error
func ConnectionError(err error) *RepositoryError {
	return &RepositoryError{
		Op:      "connect",
		Entity:  "database",
		Kind:    ErrConnection,
		Err:     err,
		Message: fmt.Sprintf("database connection failed: %v", err),
	}
}

// ConfigurationError creates a "configuration" error for an unusable database location
func ConfigurationError(op, path string, err error) *RepositoryError {
	return &RepositoryError{
		Op:      op,
		Entity:  "database",
		ID:      path,
		Kind:    ErrConfiguration,
		Err:     err,
		Message: fmt.Sprintf("database location %q unusable: %v", path, err),
	}
}

// IsNotFound checks if an error is a "not found" error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation checks if an error is a "validation" error
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsConstraint checks if an error is a "constraint violation" error
func IsConstraint(err error) bool {
	return errors.Is(err, ErrConstraint)
}

// IsTransaction checks if an error is a "transaction" error
func IsTransaction(err error) bool {
	return errors.Is(err, ErrTransaction)
}

// IsStorage checks if an error is any kind of storage failure
func IsStorage(err error) bool {
	return errors.Is(err, ErrStorage)
}

// IsConfiguration checks if an error is a "configuration" error
func IsConfiguration(err error) bool {
	return errors.Is(err, ErrConfiguration)
}
