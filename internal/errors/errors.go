package errors

import (
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// ConnectionFailure indicates a data source is not reachable
	ConnectionFailure ErrorCode = "CONNECTION_FAILURE"
	// ExecutionFailure indicates a statement was rejected or failed at runtime
	ExecutionFailure ErrorCode = "EXECUTION_FAILURE"
	// ClassificationUnresolved indicates no source could be determined for a question
	ClassificationUnresolved ErrorCode = "CLASSIFICATION_UNRESOLVED"
	// ClassificationAmbiguous indicates a tie between two or more sources
	ClassificationAmbiguous ErrorCode = "CLASSIFICATION_AMBIGUOUS"
	// SourceUnknown indicates a source name not present in the configuration
	SourceUnknown ErrorCode = "SOURCE_UNKNOWN"
	// InvalidParameter indicates a missing or malformed operation argument
	InvalidParameter ErrorCode = "INVALID_PARAMETER"
	// InternalError indicates unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// Suggestion represents an actionable follow-up for an error
type Suggestion struct {
	Action      string `json:"action"`
	Description string `json:"description,omitempty"`
}

// QueryError represents an MDB error with code, message, and suggestions
type QueryError struct {
	Code        ErrorCode    `json:"code"`
	Message     string       `json:"message"`
	Details     interface{}  `json:"details,omitempty"`
	Suggestions []Suggestion `json:"suggestions,omitempty"`
	cause       error        // Underlying error (not exported to JSON)
}

// New creates a new QueryError
func New(code ErrorCode, message string, cause error) *QueryError {
	return &QueryError{
		Code:        code,
		Message:     message,
		cause:       cause,
		Suggestions: SuggestedActions(code),
	}
}

// Error implements the error interface
func (e *QueryError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *QueryError) Unwrap() error {
	return e.cause
}

// WithDetails adds details to the error
func (e *QueryError) WithDetails(details interface{}) *QueryError {
	e.Details = details
	return e
}

// NewInvalidParameterError creates an error for a missing or malformed argument
func NewInvalidParameterError(param, reason string) *QueryError {
	msg := fmt.Sprintf("missing or invalid parameter '%s'", param)
	if reason != "" {
		msg = fmt.Sprintf("%s: %s", msg, reason)
	}
	return New(InvalidParameter, msg, nil)
}

// NewSourceUnknownError creates an error for an unconfigured source name
func NewSourceUnknownError(source string, available []string) *QueryError {
	return New(SourceUnknown, fmt.Sprintf("unknown database '%s'", source), nil).
		WithDetails(map[string]interface{}{"available": available})
}

// NewExecutionError wraps a driver failure for a statement on a source
func NewExecutionError(source string, cause error) *QueryError {
	return New(ExecutionFailure, fmt.Sprintf("query execution failed on %s", source), cause)
}

// NewConnectionError wraps a connect/ping failure for a source
func NewConnectionError(source string, cause error) *QueryError {
	return New(ConnectionFailure, fmt.Sprintf("database connection failed for %s", source), cause)
}

// ErrorActions maps error codes to suggested follow-ups
var ErrorActions = map[ErrorCode][]Suggestion{
	ClassificationUnresolved: {
		{
			Action:      "databases",
			Description: "List the configured databases and what each contains",
		},
		{
			Action:      "query",
			Description: "Rephrase the question using terms from one database's domain",
		},
	},
	ClassificationAmbiguous: {
		{
			Action:      "sql",
			Description: "Run the statement directly against the intended database",
		},
	},
	ConnectionFailure: {
		{
			Action:      "databases",
			Description: "Check which databases are configured and reachable",
		},
	},
	ExecutionFailure: {
		{
			Action:      "schema",
			Description: "Inspect the database schema to verify table and column names",
		},
	},
}

// SuggestedActions returns suggested follow-ups for an error code
func SuggestedActions(code ErrorCode) []Suggestion {
	if actions, ok := ErrorActions[code]; ok {
		return actions
	}
	return nil
}
