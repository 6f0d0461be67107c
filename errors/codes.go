package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Transcription pipeline errors
const (
	// ErrCodeProvider indicates a transcription backend call failed:
	// subprocess non-zero exit, non-2xx HTTP response, or a response whose
	// critical parts could not be parsed.
	ErrCodeProvider ErrorCode = "PROVIDER_ERROR"
	// ErrCodePersistence indicates a chain-of-custody record or export
	// artifact could not be written.
	ErrCodePersistence ErrorCode = "PERSISTENCE_ERROR"
	// ErrCodeUnsupportedFormat indicates an export was requested with an
	// unrecognized format.
	ErrCodeUnsupportedFormat ErrorCode = "UNSUPPORTED_FORMAT"
)

// Validation errors
const (
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeMissingField indicates a required field is missing.
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"
)

// Resource errors
const (
	// ErrCodeNotFound indicates the requested resource was not found.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
)

// Internal errors
const (
	// ErrCodeInternal indicates an internal server error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)
