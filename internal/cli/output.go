package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"restaurant-pos-store/internal/database"
	"restaurant-pos-store/internal/repositories"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Operation failed (validation, storage, unhealthy database)
	ExitCommandError = 2 // Command error (bad arguments, unusable configuration)
)

// Error codes reported in the JSON error envelope.
const (
	CodeValidation = "E_VALIDATION"
	CodeNotFound   = "E_NOT_FOUND"
	CodeStorage    = "E_STORAGE"
	CodeConfig     = "E_CONFIG"
	CodeRestore    = "E_RESTORE"
	CodeUnhealthy  = "E_UNHEALTHY"
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)

	// Reported is set once the error has been written by an OutputFormatter
	Reported bool
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// IsReported reports whether err was already written to the user
func IsReported(err error) bool {
	var exitErr *ExitError
	return errors.As(err, &exitErr) && exitErr.Reported
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // Diagnostics and text-mode errors (defaults to Writer)
	Verbose   bool
	TraceID   string
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status  string      `json:"status"`             // "ok" or "error"
	Data    interface{} `json:"data,omitempty"`     // success payload
	Error   *CLIError   `json:"error,omitempty"`    // error details
	TraceID string      `json:"trace_id,omitempty"` // invocation id
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// Success outputs data. In text mode render writes the human-readable form;
// a nil render prints data with fmt.
func (f *OutputFormatter) Success(data interface{}, render func(w io.Writer)) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status:  "ok",
			Data:    data,
			TraceID: f.TraceID,
		})
	}

	if render != nil {
		render(f.Writer)
		return nil
	}
	fmt.Fprintln(f.Writer, data)
	return nil
}

// Error outputs an error in the configured format.
func (f *OutputFormatter) Error(code, message string, details interface{}) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "error",
			Error: &CLIError{
				Code:    code,
				Message: message,
				Details: details,
			},
			TraceID: f.TraceID,
		})
	}

	w := f.GetErrWriter()
	fmt.Fprintf(w, "Error [%s]: %s\n", code, message)
	if f.Verbose && details != nil {
		fmt.Fprintf(w, "Details: %v\n", details)
	}
	return nil
}

// Fail reports err and returns an ExitError carrying the matching exit code
func (f *OutputFormatter) Fail(message string, err error) error {
	code, exit := classify(err)

	var details interface{}
	var snapErr *database.SnapshotError
	if errors.As(err, &snapErr) && snapErr.BackupPath != "" {
		details = map[string]string{"backup_path": snapErr.BackupPath}
	}

	_ = f.Error(code, fmt.Sprintf("%s: %v", message, err), details)

	exitErr := WrapExitError(exit, message, err)
	exitErr.Reported = true
	return exitErr
}

// VerboseLog outputs a message only if verbose mode is enabled.
func (f *OutputFormatter) VerboseLog(format string, args ...interface{}) {
	if !f.Verbose {
		return
	}
	fmt.Fprintf(f.GetErrWriter(), format+"\n", args...)
}

// GetErrWriter returns ErrWriter if set, otherwise Writer.
func (f *OutputFormatter) GetErrWriter() io.Writer {
	if f.ErrWriter != nil {
		return f.ErrWriter
	}
	return f.Writer
}

// classify maps an error to its envelope code and exit code
func classify(err error) (string, int) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Code == ExitCommandError {
		if repositories.IsConfiguration(err) {
			return CodeConfig, ExitCommandError
		}
		return CodeValidation, ExitCommandError
	}

	switch {
	case database.IsRestoreFailed(err):
		return CodeRestore, ExitFailure
	case repositories.IsConfiguration(err):
		return CodeConfig, ExitCommandError
	case repositories.IsValidation(err):
		return CodeValidation, ExitFailure
	case repositories.IsNotFound(err):
		return CodeNotFound, ExitFailure
	default:
		return CodeStorage, ExitFailure
	}
}
