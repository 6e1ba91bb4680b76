// Package cli implements the command-line interface.
package cli

// Error codes for structured error responses.
// These codes are stable and can be relied upon by scripts.
const (
	// Config errors
	ErrConfigInvalid       = "CONFIG_INVALID"
	ErrServerNotConfigured = "SERVER_NOT_CONFIGURED"

	// Schema errors
	ErrSchemaInvalid     = "SCHEMA_INVALID"
	ErrSubrecordNotFound = "SUBRECORD_NOT_FOUND"
	ErrFieldNotFound     = "FIELD_NOT_FOUND"

	// Definition errors
	ErrDefinitionNotFound = "DEFINITION_NOT_FOUND"
	ErrDefinitionInvalid  = "DEFINITION_INVALID"

	// Extract errors
	ErrExtractFailed = "EXTRACT_FAILED"
	ErrWriteFailed   = "WRITE_FAILED"

	// History errors
	ErrHistoryError = "HISTORY_ERROR"

	// Input errors
	ErrInvalidInput    = "INVALID_INPUT"
	ErrMissingArgument = "MISSING_ARGUMENT"

	// Internal errors
	ErrInternal = "INTERNAL_ERROR"
)
