package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Tree construction and lookup errors
const (
	// ErrCodeTreeInvalid indicates a node set that does not form a valid tree.
	ErrCodeTreeInvalid ErrorCode = "TREE_INVALID"
	// ErrCodeUnknownNode indicates a node name not present in the tree.
	ErrCodeUnknownNode ErrorCode = "UNKNOWN_NODE"
	// ErrCodeUnknownTree indicates a tree name not present in the catalog.
	ErrCodeUnknownTree ErrorCode = "UNKNOWN_TREE"
	// ErrCodeUnknownOperation indicates an operation name not present in the registry.
	ErrCodeUnknownOperation ErrorCode = "UNKNOWN_OPERATION"
)

// Execution errors (retryable: the caller may trigger the run again)
const (
	// ErrCodeOperationFailed indicates a node operation failed during a run.
	ErrCodeOperationFailed ErrorCode = "OPERATION_FAILED"
	// ErrCodeUpstream indicates an upstream data source returned an error.
	ErrCodeUpstream ErrorCode = "UPSTREAM_ERROR"
	// ErrCodeTimeout indicates the request timed out.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
)

// Resource errors
const (
	// ErrCodeNotFound indicates the requested resource was not found.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
)

// Validation errors
const (
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeMissingField indicates a required field is missing.
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"
)

// Authentication/Authorization errors
const (
	// ErrCodeUnauthorized indicates the request is unauthorized.
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	// ErrCodeForbidden indicates the request is forbidden.
	ErrCodeForbidden ErrorCode = "FORBIDDEN"
	// ErrCodeTokenExpired indicates the authentication token has expired.
	ErrCodeTokenExpired ErrorCode = "TOKEN_EXPIRED"
	// ErrCodeInvalidToken indicates the authentication token is invalid.
	ErrCodeInvalidToken ErrorCode = "INVALID_TOKEN"
	// ErrCodeRateLimited indicates the caller exceeded the request rate limit.
	ErrCodeRateLimited ErrorCode = "RATE_LIMITED"
)

// Internal errors
const (
	// ErrCodeInternal indicates an internal server error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeOperationFailed: true,
	ErrCodeUpstream:        true,
	ErrCodeTimeout:         true,
	ErrCodeRateLimited:     true,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
