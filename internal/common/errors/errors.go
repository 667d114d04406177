// Package errors provides standardized error handling for the inference service.
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

// Encoding contract errors: the input record cannot be transformed into the
// feature vector the classifier was trained on.
const (
	ErrCodeUnknownCategory         ErrorCode = "UNKNOWN_CATEGORY"
	ErrCodeMissingOrInvalidNumeric ErrorCode = "MISSING_OR_INVALID_NUMERIC"
	ErrCodeDegenerateScale         ErrorCode = "DEGENERATE_SCALE"

	ErrCodeInputValidationFailed ErrorCode = "INPUT_VALIDATION_FAILED"
	ErrCodePredictionFailed      ErrorCode = "PREDICTION_FAILED"

	ErrCodeArtifactLoadFailed ErrorCode = "ARTIFACT_LOAD_FAILED"

	ErrCodeAuditWriteFailed       ErrorCode = "AUDIT_WRITE_FAILED"
	ErrCodeCacheUnavailable       ErrorCode = "CACHE_UNAVAILABLE"
	ErrCodeNotificationSendFailed ErrorCode = "NOTIFICATION_SEND_FAILED"
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

// NewUnknownCategoryError reports an input string that is not among the
// categories the fitted encoder knows. Never retryable: the same input will
// always fail again.
func NewUnknownCategoryError(field, value string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnknownCategory,
		Message:   "Value not among the fitted categories for field",
		Details:   fmt.Sprintf("field: %s, value: %q", field, value),
		Retryable: false,
		Metadata:  map[string]interface{}{"field": field, "value": value},
		Timestamp: time.Now().UTC(),
	}
}

// NewMissingOrInvalidNumericError reports a numeric field that cannot be
// parsed and cannot be imputed.
func NewMissingOrInvalidNumericError(field, value string) *StandardError {
	return &StandardError{
		Code:      ErrCodeMissingOrInvalidNumeric,
		Message:   "Numeric field cannot be parsed or imputed",
		Details:   fmt.Sprintf("field: %s, value: %q", field, value),
		Retryable: false,
		Metadata:  map[string]interface{}{"field": field},
		Timestamp: time.Now().UTC(),
	}
}

// NewDegenerateScaleError reports a scaler column whose fitted min equals its
// fitted max, making min-max scaling undefined.
func NewDegenerateScaleError(field string) *StandardError {
	return &StandardError{
		Code:      ErrCodeDegenerateScale,
		Message:   "Fitted min equals fitted max, scaling is undefined",
		Details:   fmt.Sprintf("field: %s", field),
		Retryable: false,
		Metadata:  map[string]interface{}{"field": field},
		Timestamp: time.Now().UTC(),
	}
}

// NewInputValidationFailedError reports a request payload that failed schema
// validation before encoding.
func NewInputValidationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInputValidationFailed,
		Message:   "Input record failed validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewPredictionFailedError reports a classifier invocation failure on an
// already-encoded feature vector.
func NewPredictionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodePredictionFailed,
		Message:   "Classifier invocation failed",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewArtifactLoadFailedError reports a serialized transformer that cannot be
// loaded at startup. Fatal: the service must not start.
func NewArtifactLoadFailedError(artifact string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeArtifactLoadFailed,
		Message:   "Artifact bundle load failed",
		Details:   fmt.Sprintf("artifact: %s, error: %s", artifact, err.Error()),
		Retryable: false,
		Metadata:  map[string]interface{}{"artifact": artifact},
		Timestamp: time.Now().UTC(),
	}
}

// NewAuditWriteFailedError reports a failed prediction-audit insert.
// Retryable at the infrastructure level, but never blocks a response.
func NewAuditWriteFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeAuditWriteFailed,
		Message:   "Prediction audit insert failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewCacheUnavailableError reports a cache round trip failure.
func NewCacheUnavailableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCacheUnavailable,
		Message:   "Prediction cache unavailable",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotificationSendFailedError reports a churn alert that could not be
// delivered.
func NewNotificationSendFailedError(channel string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotificationSendFailed,
		Message:   "Churn alert delivery failed",
		Details:   fmt.Sprintf("channel: %s, error: %s", channel, err.Error()),
		Retryable: true,
		Metadata:  map[string]interface{}{"channel": channel},
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Utility Functions
// ==========================

// AsStandardError normalizes any error to a StandardError.
func AsStandardError(err error) *StandardError {
	if stdErr, ok := err.(*StandardError); ok {
		return stdErr
	}
	return &StandardError{
		Code:      "INTERNAL_ERROR",
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// GetRetryCount returns how many times an error code may be retried.
// Per-request encoding errors are logically invalid input: a retry would
// always fail again, so the count is zero.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeAuditWriteFailed,
		ErrCodeNotificationSendFailed,
		ErrCodeCacheUnavailable:
		return 3

	default:
		return 0
	}
}

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// IsEncodingContractError reports whether the code belongs to the feature
// encoding contract (the caller sent a record the fitted transformers cannot
// represent).
func IsEncodingContractError(code ErrorCode) bool {
	switch code {
	case ErrCodeUnknownCategory, ErrCodeMissingOrInvalidNumeric, ErrCodeDegenerateScale:
		return true
	}
	return false
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case IsEncodingContractError(code):
		return "ENCODING"
	case strings.Contains(codeStr, "VALIDATION"):
		return "VALIDATION"
	case strings.Contains(codeStr, "ARTIFACT"):
		return "ARTIFACT"
	case strings.Contains(codeStr, "AUDIT") || strings.Contains(codeStr, "CACHE"):
		return "STORAGE"
	case strings.Contains(codeStr, "NOTIFICATION"):
		return "NOTIFICATION"
	default:
		return "OTHER"
	}
}
