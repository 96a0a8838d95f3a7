package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation and configuration errors (100-199)
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeMissingParameter     ErrorCode = 102
	ErrCodeInvalidVersion       ErrorCode = 103
	ErrCodeInvalidThreshold     ErrorCode = 104
	ErrCodeConfigNotFound       ErrorCode = 105

	// Data/Resource errors (200-299)
	ErrCodeDataNotFound          ErrorCode = 200
	ErrCodeDataSourceUnavailable ErrorCode = 201
	ErrCodeQueryFailed           ErrorCode = 202
	ErrCodeNoDataFound           ErrorCode = 203
	ErrCodeMissingColumn         ErrorCode = 204
	ErrCodeUnsupportedFormat     ErrorCode = 205

	// Statistics errors (300-399)
	ErrCodeEmptyData ErrorCode = 300

	// Report output errors (400-499)
	ErrCodeReportWriteFailed  ErrorCode = 400
	ErrCodeReportRenderFailed ErrorCode = 401

	// Generator errors (500-599)
	ErrCodeGeneratorConfig      ErrorCode = 500
	ErrCodeGeneratorWriteFailed ErrorCode = 501
)
