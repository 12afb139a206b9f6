package appErrors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
)

type ErrorCode string

// AppError is the application error carried from services up to the HTTP
// boundary. Code is the stable programmatic signal; HTTPCode is the status
// the boundary responds with.
type AppError struct {
	Code     ErrorCode   `json:"code"`
	Message  string      `json:"message"`
	Details  interface{} `json:"details,omitempty"`
	Err      error       `json:"-"`
	HTTPCode int         `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code ErrorCode, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		HTTPCode: httpCode,
	}
}

func Wrap(err error, code ErrorCode, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		Err:      err,
		HTTPCode: httpCode,
	}
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	return &AppError{
		Code:     e.Code,
		Message:  e.Message,
		Details:  details,
		Err:      e.Err,
		HTTPCode: e.HTTPCode,
	}
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	type alias struct {
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}
	return json.Marshal(&alias{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}

// Is wraps the standard errors.Is
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As wraps the standard errors.As
func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// Predefined errors
var (
	// Authentication
	ErrInvalidCredentials = New(CodeInvalidCredentials, "Invalid email or password", http.StatusUnauthorized)
	ErrUnauthorized       = New(CodeUnauthorized, "Authentication required", http.StatusUnauthorized)
	ErrForbidden          = New(CodeForbidden, "Access denied", http.StatusForbidden)
	ErrInvalidToken       = New(CodeInvalidToken, "Invalid or expired token", http.StatusUnauthorized)

	// Users
	ErrUserNotFound       = New(CodeUserNotFound, "User not found", http.StatusNotFound)
	ErrEmailAlreadyExists = New(CodeEmailAlreadyExists, "Email already exists", http.StatusConflict)
	ErrWeakPassword       = New(CodeWeakPassword, "Password must be at least 6 characters", http.StatusBadRequest)

	// Validation
	ErrValidationFailed = New(CodeValidationFailed, "Validation failed", http.StatusBadRequest)

	// Gigs
	ErrGigNotFound        = New(CodeGigNotFound, "Gig not found", http.StatusNotFound)
	ErrNotGigOwner        = New(CodeNotGigOwner, "Not authorized to manage this gig", http.StatusForbidden)
	ErrGigNotOpen         = New(CodeGigNotOpen, "This gig is no longer accepting bids", http.StatusConflict)
	ErrGigAlreadyAssigned = New(CodeGigAlreadyAssigned, "This gig has already been assigned", http.StatusConflict)

	// Bids
	ErrBidNotFound      = New(CodeBidNotFound, "Bid not found", http.StatusNotFound)
	ErrCannotBidOwnGig  = New(CodeCannotBidOwnGig, "Cannot bid on your own gig", http.StatusForbidden)
	ErrBidAlreadyExists = New(CodeBidAlreadyExists, "You have already submitted a bid for this gig", http.StatusConflict)

	// Notifications
	ErrNotificationNotFound = New(CodeNotificationNotFound, "Notification not found", http.StatusNotFound)
)

func ValidationError(details interface{}) *AppError {
	return ErrValidationFailed.WithDetails(details)
}

func InternalError(err error) *AppError {
	return Wrap(err, CodeInternalError, "Internal server error", http.StatusInternalServerError)
}

func NewUnauthorizedError(message string) *AppError {
	return New(CodeUnauthorized, message, http.StatusUnauthorized)
}

func NewBadRequestError(message string) *AppError {
	return New(CodeValidationFailed, message, http.StatusBadRequest)
}
