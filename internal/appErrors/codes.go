package appErrors

// Error codes grouped by domain
const (
	// Authentication
	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	CodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	CodeForbidden          ErrorCode = "FORBIDDEN"
	CodeInvalidToken       ErrorCode = "INVALID_TOKEN"

	// Validation
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeWeakPassword     ErrorCode = "WEAK_PASSWORD"

	// Resources
	CodeUserNotFound         ErrorCode = "USER_NOT_FOUND"
	CodeGigNotFound          ErrorCode = "GIG_NOT_FOUND"
	CodeBidNotFound          ErrorCode = "BID_NOT_FOUND"
	CodeNotificationNotFound ErrorCode = "NOTIFICATION_NOT_FOUND"

	// Business rules
	CodeEmailAlreadyExists ErrorCode = "EMAIL_ALREADY_EXISTS"
	CodeNotGigOwner        ErrorCode = "NOT_GIG_OWNER"
	CodeCannotBidOwnGig    ErrorCode = "CANNOT_BID_OWN_GIG"
	CodeGigNotOpen         ErrorCode = "GIG_NOT_OPEN"
	CodeGigAlreadyAssigned ErrorCode = "GIG_ALREADY_ASSIGNED"
	CodeBidAlreadyExists   ErrorCode = "BID_ALREADY_EXISTS"

	// System
	CodeInternalError ErrorCode = "INTERNAL_ERROR"
)
