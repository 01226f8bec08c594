// Package errors provides standardized error handling for the intake pipeline.
package errors

import (
	"fmt"
	"net/http"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

// Rejections are client-correctable and always 4xx; everything after the
// application insert is either partial (success-with-warning) or silent.
const (
	ErrCodeOriginNotAllowed     ErrorCode = "ORIGIN_NOT_ALLOWED"
	ErrCodeSuspiciousUserAgent  ErrorCode = "SUSPICIOUS_USER_AGENT"
	ErrCodeMissingRequiredField ErrorCode = "MISSING_REQUIRED_FIELD"
	ErrCodeFieldTooLong         ErrorCode = "FIELD_TOO_LONG"
	ErrCodeInvalidEmailFormat   ErrorCode = "INVALID_EMAIL_FORMAT"
	ErrCodeDuplicateSubmission  ErrorCode = "DUPLICATE_SUBMISSION"
	ErrCodeRateLimited          ErrorCode = "RATE_LIMITED"

	ErrCodeDatabaseInsertFailed ErrorCode = "DATABASE_INSERT_FAILED"

	ErrCodeDocumentDecodeFailed  ErrorCode = "DOCUMENT_DECODE_FAILED"
	ErrCodeDocumentUploadFailed  ErrorCode = "DOCUMENT_UPLOAD_FAILED"
	ErrCodeSignatureRecordFailed ErrorCode = "SIGNATURE_RECORD_FAILED"
	ErrCodeDocumentLinkFailed    ErrorCode = "DOCUMENT_LINK_FAILED"

	ErrCodeNotificationSendFailed ErrorCode = "NOTIFICATION_SEND_FAILED"
	ErrCodeDocumentRenderFailed   ErrorCode = "DOCUMENT_RENDER_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. Error Constructors
// ==========================

// NewOriginNotAllowedError creates a non-retryable origin rejection.
func NewOriginNotAllowedError(origin string) *StandardError {
	return &StandardError{
		Code:      ErrCodeOriginNotAllowed,
		Message:   "Origin not allowed",
		Details:   fmt.Sprintf("origin: %s", origin),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSuspiciousUserAgentError creates a non-retryable anti-abuse rejection.
func NewSuspiciousUserAgentError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSuspiciousUserAgent,
		Message:   "Invalid request",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewMissingRequiredFieldError creates a non-retryable validation rejection.
func NewMissingRequiredFieldError(field string) *StandardError {
	return &StandardError{
		Code:      ErrCodeMissingRequiredField,
		Message:   fmt.Sprintf("Missing required field: %s", field),
		Details:   fmt.Sprintf("field: %s", field),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewFieldTooLongError creates a non-retryable length-bound rejection.
func NewFieldTooLongError(field string, max int) *StandardError {
	return &StandardError{
		Code:      ErrCodeFieldTooLong,
		Message:   fmt.Sprintf("Field %s exceeds maximum length of %d characters", field, max),
		Details:   fmt.Sprintf("field: %s, max: %d", field, max),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidEmailFormatError creates a non-retryable email-shape rejection.
func NewInvalidEmailFormatError(email string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidEmailFormat,
		Message:   "Invalid email format",
		Details:   fmt.Sprintf("email: %s", email),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDuplicateSubmissionError creates a non-retryable duplicate rejection.
// The message names the email and the window so the applicant knows why.
func NewDuplicateSubmissionError(email string, windowHours int) *StandardError {
	return &StandardError{
		Code: ErrCodeDuplicateSubmission,
		Message: fmt.Sprintf(
			"An application for %s was already submitted within the last %d hours. Please wait before submitting again.",
			email, windowHours,
		),
		Details:   fmt.Sprintf("email: %s", email),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewRateLimitedError creates a non-retryable rate-limit rejection.
func NewRateLimitedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeRateLimited,
		Message:   "Too many requests. Please try again later.",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseInsertFailedError creates a retryable insert error. Nothing has
// been persisted when this fires, so an identical resubmission is safe.
func NewDatabaseInsertFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseInsertFailed,
		Message:   "Failed to save application",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewDocumentDecodeFailedError creates a post-commit document error.
func NewDocumentDecodeFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDocumentDecodeFailed,
		Message:   "Signed document could not be decoded",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDocumentUploadFailedError creates a post-commit upload error.
func NewDocumentUploadFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDocumentUploadFailed,
		Message:   "Signed document could not be stored",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSignatureRecordFailedError creates a post-commit signature insert error.
func NewSignatureRecordFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSignatureRecordFailed,
		Message:   "Signature record could not be saved",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewDocumentLinkFailedError creates a post-commit link insert error.
func NewDocumentLinkFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDocumentLinkFailed,
		Message:   "Signed document link could not be saved",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotificationSendFailedError creates a silent best-effort error.
func NewNotificationSendFailedError(notificationType string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotificationSendFailed,
		Message:   "Notification delivery failed",
		Details:   fmt.Sprintf("type: %s, error: %s", notificationType, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewDocumentRenderFailedError creates a hard-stop client-side render error.
func NewDocumentRenderFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDocumentRenderFailed,
		Message:   "Agreement document could not be rendered",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. HTTP Status Mapping
// ==========================

// httpStatusMapping maps rejection codes to their HTTP status. Codes that do
// not appear here never reach the client as errors (partial and best-effort
// failures surface as success-with-warning or log lines).
var httpStatusMapping = map[ErrorCode]int{
	ErrCodeOriginNotAllowed:     http.StatusForbidden,
	ErrCodeSuspiciousUserAgent:  http.StatusBadRequest,
	ErrCodeMissingRequiredField: http.StatusBadRequest,
	ErrCodeFieldTooLong:         http.StatusBadRequest,
	ErrCodeInvalidEmailFormat:   http.StatusBadRequest,
	ErrCodeDuplicateSubmission:  http.StatusTooManyRequests,
	ErrCodeRateLimited:          http.StatusTooManyRequests,
	ErrCodeDatabaseInsertFailed: http.StatusInternalServerError,
}

// HTTPStatus returns the status an error code maps to, defaulting to 500.
func HTTPStatus(code ErrorCode) int {
	if status, ok := httpStatusMapping[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// IsRejection reports whether the code belongs to the client-correctable
// rejection family (4xx, fail-fast, no partial work performed).
func IsRejection(code ErrorCode) bool {
	status, ok := httpStatusMapping[code]
	return ok && status < http.StatusInternalServerError
}
