// Package errors provides the standardized error taxonomy shared by all
// task handlers. Every external failure is mapped onto a small closed set
// of error kinds instead of being printed and swallowed at the call site.
package errors

import (
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeBillingAPI        ErrorCode = "BILLING_API_ERROR"
	ErrCodeSubscriptionCheck ErrorCode = "SUBSCRIPTION_CHECK_FAILED"
	ErrCodeUserLookup        ErrorCode = "USER_LOOKUP_FAILED"

	ErrCodeUnsupportedVendor ErrorCode = "UNSUPPORTED_VENDOR"
	ErrCodeValidationFailed  ErrorCode = "VALIDATION_FAILED"
	ErrCodeTransportFailed   ErrorCode = "TRANSPORT_FAILED"
	ErrCodeVendorRejected    ErrorCode = "VENDOR_REJECTED"

	ErrCodeAuthenticationFailed ErrorCode = "AUTHENTICATION_FAILED"
	ErrCodeResourceNotFound     ErrorCode = "RESOURCE_NOT_FOUND"
	ErrCodeCloudAPI             ErrorCode = "CLOUD_API_ERROR"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
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

// NewBillingAPIError wraps a payment-processor SDK failure.
// Retryability follows the upstream status: 5xx responses are transient.
func NewBillingAPIError(err error, retryable bool) *StandardError {
	return &StandardError{
		Code:      ErrCodeBillingAPI,
		Message:   "Payment processor API error",
		Details:   err.Error(),
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
	}
}

// NewSubscriptionCheckFailedError creates a retryable subscription-check error.
func NewSubscriptionCheckFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSubscriptionCheck,
		Message:   "Subscription status check failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewUserLookupFailedError creates a retryable user store error.
func NewUserLookupFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeUserLookup,
		Message:   "User record lookup failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewUnsupportedVendorError creates a non-retryable routing error. The
// vendor identifier is rejected before any network call is attempted.
func NewUnsupportedVendorError(vendorID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnsupportedVendor,
		Message:   "Vendor identifier not in routing table",
		Details:   fmt.Sprintf("vendor: %s", vendorID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewValidationFailedError creates a non-retryable payload validation error.
func NewValidationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   "Payload validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewTransportFailedError creates a retryable network transport error.
func NewTransportFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeTransportFailed,
		Message:   "Vendor endpoint unreachable",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewVendorRejectedError records a non-success vendor response. Distinct
// from TRANSPORT_FAILED: the vendor was reached and said no.
func NewVendorRejectedError(statusCode int) *StandardError {
	return &StandardError{
		Code:      ErrCodeVendorRejected,
		Message:   "Vendor rejected the request",
		Details:   fmt.Sprintf("statusCode: %d", statusCode),
		Retryable: statusCode >= 500,
		Timestamp: time.Now().UTC(),
	}
}

// NewAuthenticationFailedError creates a non-retryable credential error.
func NewAuthenticationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeAuthenticationFailed,
		Message:   "Cloud credentials missing or invalid",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewResourceNotFoundError creates a non-retryable not-found error.
func NewResourceNotFoundError(resource, details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeResourceNotFound,
		Message:   fmt.Sprintf("Resource not found: %s", resource),
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCloudAPIError wraps any other cloud control-plane failure.
func NewCloudAPIError(operation string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCloudAPI,
		Message:   fmt.Sprintf("Cloud API call '%s' failed", operation),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Utility Functions
// ==========================

// Normalize ensures any error is carried as a StandardError.
func Normalize(err error) *StandardError {
	if stdErr, ok := err.(*StandardError); ok {
		return stdErr
	}
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// IsRetryable reports whether the error carries a transient failure.
func IsRetryable(err error) bool {
	return Normalize(err).Retryable
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "BILLING") || strings.Contains(codeStr, "SUBSCRIPTION"):
		return "BILLING"
	case strings.Contains(codeStr, "VENDOR") || strings.Contains(codeStr, "TRANSPORT"):
		return "VENDOR"
	case strings.Contains(codeStr, "CLOUD") || strings.Contains(codeStr, "AUTHENTICATION") || strings.Contains(codeStr, "RESOURCE"):
		return "CLOUD"
	case strings.Contains(codeStr, "VALIDATION"):
		return "VALIDATION"
	case strings.Contains(codeStr, "USER"):
		return "STORE"
	default:
		return "OTHER"
	}
}
