package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeInvalidPeriod        ErrorCode = 102
	ErrCodeInvalidInterval      ErrorCode = 103
	ErrCodeInvalidMarket        ErrorCode = 104

	// Data/Resource errors (200-299)
	ErrCodeNoDataFound           ErrorCode = 200
	ErrCodeSymbolNotFound        ErrorCode = 201
	ErrCodeInsufficientCoverage  ErrorCode = 202
	ErrCodeDataSourceUnavailable ErrorCode = 203

	// Market data errors (700-799)
	ErrCodeMarketDataFetchFailed ErrorCode = 700
	ErrCodeMarketDataParseFailed ErrorCode = 701
	ErrCodeMarketDataStatus      ErrorCode = 702
	ErrCodeSessionFailed         ErrorCode = 703
)
