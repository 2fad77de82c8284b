// Package errors provides standardized error handling for BPMN workflow integration.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

// Business errors: thrown to the process, never retried.
const (
	ErrCodeInvalidInput     ErrorCode = "INVALID_INPUT"
	ErrCodeIssueNotFound    ErrorCode = "ISSUE_NOT_FOUND"
	ErrCodeProfileNotFound  ErrorCode = "PROFILE_NOT_FOUND"
	ErrCodeInvalidProfile   ErrorCode = "INVALID_PROFILE"
	ErrCodeInvalidIssue     ErrorCode = "INVALID_ISSUE"
	ErrCodeInvalidThreshold ErrorCode = "INVALID_THRESHOLD"
)

// Technical errors: failed with retries.
const (
	ErrCodeDatasetLoadFailed      ErrorCode = "DATASET_LOAD_FAILED"
	ErrCodeDatasetPersistFailed   ErrorCode = "DATASET_PERSIST_FAILED"
	ErrCodeIndexFailed            ErrorCode = "INDEX_FAILED"
	ErrCodeNotificationSendFailed ErrorCode = "NOTIFICATION_SEND_FAILED"
)

const ErrCodeInternal ErrorCode = "INTERNAL_ERROR"

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	Cause     error                  `json:"-"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error {
	return e.Cause
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}
	for k, v := range e.ErrorVariables {
		vars[k] = v
	}
	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

func newError(code ErrorCode, message string, cause error) *StandardError {
	details := ""
	if cause != nil {
		details = cause.Error()
	}
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: IsRetryableErrorCode(code),
		Timestamp: time.Now().UTC(),
		Cause:     cause,
	}
}

// NewInvalidInputError creates a non-retryable error for malformed job variables.
func NewInvalidInputError(details string) *StandardError {
	e := newError(ErrCodeInvalidInput, "Invalid job input", nil)
	e.Details = details
	return e
}

func NewIssueNotFoundError(index, count int) *StandardError {
	e := newError(ErrCodeIssueNotFound, "Issue index out of range", nil)
	e.Details = fmt.Sprintf("issueIndex: %d, issues: %d", index, count)
	e.Metadata = map[string]interface{}{"issueIndex": index}
	return e
}

func NewProfileNotFoundError(profileID string) *StandardError {
	e := newError(ErrCodeProfileNotFound, "Profile not found in dataset", nil)
	e.Details = fmt.Sprintf("profileId: %s", profileID)
	e.Metadata = map[string]interface{}{"profileId": profileID}
	return e
}

// NewDatasetLoadFailedError creates a retryable error for an unreachable or
// unreadable dataset.
func NewDatasetLoadFailedError(source string, err error) *StandardError {
	e := newError(ErrCodeDatasetLoadFailed, "Dataset load failed", err)
	e.Metadata = map[string]interface{}{"source": source}
	return e
}

func NewDatasetPersistFailedError(err error) *StandardError {
	return newError(ErrCodeDatasetPersistFailed, "Dataset persist failed", err)
}

func NewIndexFailedError(index string, err error) *StandardError {
	e := newError(ErrCodeIndexFailed, "Micro-community indexing failed", err)
	e.Metadata = map[string]interface{}{"index": index}
	return e
}

// NewNotificationSendFailedError creates a retryable notification send error.
func NewNotificationSendFailedError(channel string, err error) *StandardError {
	e := newError(ErrCodeNotificationSendFailed, "Notification delivery failed", err)
	e.Details = fmt.Sprintf("channel: %s, error: %v", channel, err)
	return e
}

// ==========================
// 4. Error Conversion to BPMN
// ==========================

// BPMNErrorMapping maps internal error codes to BPMN error codes. They are
// identical today; the map is the single place to rename one.
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeInvalidInput:           "INVALID_INPUT",
	ErrCodeIssueNotFound:          "ISSUE_NOT_FOUND",
	ErrCodeProfileNotFound:        "PROFILE_NOT_FOUND",
	ErrCodeInvalidProfile:         "INVALID_PROFILE",
	ErrCodeInvalidIssue:           "INVALID_ISSUE",
	ErrCodeInvalidThreshold:       "INVALID_THRESHOLD",
	ErrCodeDatasetLoadFailed:      "DATASET_LOAD_FAILED",
	ErrCodeDatasetPersistFailed:   "DATASET_PERSIST_FAILED",
	ErrCodeIndexFailed:            "INDEX_FAILED",
	ErrCodeNotificationSendFailed: "NOTIFICATION_SEND_FAILED",
}

// GetRetryCount returns the recommended retry count for a code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeDatasetLoadFailed,
		ErrCodeDatasetPersistFailed,
		ErrCodeIndexFailed,
		ErrCodeNotificationSendFailed:
		return 3
	default:
		return 0 // Business errors: no retry
	}
}

// ConvertToBPMNError converts a StandardError to a BPMNError for Camunda.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	vars := map[string]interface{}{
		"originalErrorCode": string(stdErr.Code),
		"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
	}
	for k, v := range stdErr.Metadata {
		vars[k] = v
	}

	return &BPMNError{
		Code:           bpmnCode,
		Message:        stdErr.Message,
		Details:        stdErr.Details,
		Retryable:      stdErr.Retryable,
		Retries:        retries,
		ErrorVariables: vars,
	}
}

// ==========================
// 5. Utility Functions
// ==========================

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// IsKnownErrorCode reports whether code has a BPMN mapping.
func IsKnownErrorCode(code ErrorCode) bool {
	_, ok := BPMNErrorMapping[code]
	return ok
}

// Classify finds the error code carried by err. Package sentinels are
// created as errors.New("<CODE>"), so any wrapped error whose message is a
// known code identifies it.
func Classify(err error) ErrorCode {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr.Code
	}
	for e := err; e != nil; e = stderrors.Unwrap(e) {
		if code := ErrorCode(e.Error()); IsKnownErrorCode(code) {
			return code
		}
	}
	return ErrCodeInternal
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.HasPrefix(codeStr, "DATASET"):
		return "DATASET"
	case strings.HasPrefix(codeStr, "INDEX"):
		return "SEARCH"
	case strings.Contains(codeStr, "NOTIFICATION"):
		return "NOTIFICATION"
	case strings.HasSuffix(codeStr, "NOT_FOUND"):
		return "LOOKUP"
	case strings.HasPrefix(codeStr, "INVALID"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
