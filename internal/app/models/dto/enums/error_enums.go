package enums

// ErrorCode represents standardized error codes returned by the gateway
type ErrorCode string

const (
	ErrorCodeUnauthorized         ErrorCode = "AUTH_008"
	ErrorCodeResourceNotFound     ErrorCode = "RES_001"
	ErrorCodeValidationFailed     ErrorCode = "VAL_001"
	ErrorCodeInternalServer       ErrorCode = "SRV_001"
	ErrorCodeExternalServiceError ErrorCode = "SRV_003"
	ErrorCodeBadRequest           ErrorCode = "BAD_REQUEST"
)

// ErrorSeverity represents the severity level of an error
type ErrorSeverity string

const (
	ErrorSeverityInfo    ErrorSeverity = "INFO"
	ErrorSeverityWarning ErrorSeverity = "WARNING"
	ErrorSeverityError   ErrorSeverity = "ERROR"
)
