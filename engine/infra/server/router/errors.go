package router

// Error codes carried in the "code" member of problem responses.
const (
	ErrInternalCode           = "INTERNAL_ERROR"
	ErrBadRequestCode         = "BAD_REQUEST"
	ErrValidationCode         = "VALIDATION_FAILED"
	ErrUnauthorizedCode       = "UNAUTHORIZED"
	ErrNotFoundCode           = "NOT_FOUND"
	ErrConflictCode           = "CONFLICT"
	ErrPayloadTooLargeCode    = "PAYLOAD_TOO_LARGE"
	ErrTooManyRequestsCode    = "TOO_MANY_REQUESTS"
	ErrServiceUnavailableCode = "SERVICE_UNAVAILABLE"
)
