package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Configuration errors (100-199)
	ErrCodeInvalidConfiguration ErrorCode = 100
	ErrCodeMissingCredential    ErrorCode = 101
	ErrCodeInvalidParameter     ErrorCode = 102
	ErrCodeInvalidWindow        ErrorCode = 103
	ErrCodeInvalidDateRange     ErrorCode = 104
	ErrCodeConfigVersion        ErrorCode = 105

	// Data/series errors (200-299)
	ErrCodeInsufficientData ErrorCode = 200
	ErrCodeInvalidSeries    ErrorCode = 201
	ErrCodeDataNotFound     ErrorCode = 202
	ErrCodeNonPositivePrice ErrorCode = 203

	// Authentication errors (300-399)
	ErrCodeAuthFailed      ErrorCode = 300
	ErrCodeTokenLoadFailed ErrorCode = 301
	ErrCodeTokenSaveFailed ErrorCode = 302

	// Market data fetch errors (400-499)
	ErrCodeFetchFailed         ErrorCode = 400
	ErrCodeProviderUnsupported ErrorCode = 401
	ErrCodeResponseParseFailed ErrorCode = 402

	// Export/chart errors (500-599)
	ErrCodeExportFailed         ErrorCode = 500
	ErrCodeChartRenderFailed    ErrorCode = 501
	ErrCodeWriterNotInitialized ErrorCode = 502
	ErrCodeWriterUnsupported    ErrorCode = 503
)
