// Package errors provides standardized error handling for the demo generation pipeline.
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

const (
	ErrCodeConfigInvalid  ErrorCode = "CONFIG_INVALID"
	ErrCodeCatalogInvalid ErrorCode = "CATALOG_INVALID"

	ErrCodeTextGenerationFailed ErrorCode = "TEXT_GENERATION_FAILED"
	ErrCodeTextGenerationEmpty  ErrorCode = "TEXT_GENERATION_EMPTY"

	ErrCodeSynthesisFailed ErrorCode = "SYNTHESIS_FAILED"
	ErrCodeNoDialogue      ErrorCode = "NO_DIALOGUE"

	ErrCodeArtifactWriteFailed ErrorCode = "ARTIFACT_WRITE_FAILED"
	ErrCodeReportWriteFailed   ErrorCode = "REPORT_WRITE_FAILED"
	ErrCodeItemPanic           ErrorCode = "ITEM_PANIC"

	ErrCodeNotificationSendFailed ErrorCode = "NOTIFICATION_SEND_FAILED"

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

	cause error
}

func (e *StandardError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("StandardError[%s]: %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// Unwrap exposes the underlying cause so errors.Is keeps working on wrapped sentinels.
func (e *StandardError) Unwrap() error {
	return e.cause
}

// WithMetadata returns e after merging the given key/value pairs into Metadata.
func (e *StandardError) WithMetadata(kv map[string]interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{}, len(kv))
	}
	for k, v := range kv {
		e.Metadata[k] = v
	}
	return e
}

func newError(code ErrorCode, message string, retryable bool, cause error, details string) *StandardError {
	if details == "" && cause != nil {
		details = cause.Error()
	}
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
		cause:     cause,
	}
}

// ==========================
// 2. Error Constructors
// ==========================

// NewConfigInvalidError creates a fatal configuration error.
func NewConfigInvalidError(err error) *StandardError {
	return newError(ErrCodeConfigInvalid, "Invalid configuration", false, err, "")
}

// NewCatalogInvalidError creates a fatal error for template or industry files.
func NewCatalogInvalidError(path string, err error) *StandardError {
	return newError(ErrCodeCatalogInvalid, "Invalid catalog file", false, err,
		fmt.Sprintf("path: %s, error: %v", path, err))
}

// NewTextGenerationFailedError wraps a text-generation transport or API failure.
func NewTextGenerationFailedError(provider string, err error) *StandardError {
	return newError(ErrCodeTextGenerationFailed, "Text generation service error", false, err,
		fmt.Sprintf("provider: %s, error: %v", provider, err))
}

// NewTextGenerationEmptyError reports a response that carried no usable dialogue.
func NewTextGenerationEmptyError(provider string, err error) *StandardError {
	return newError(ErrCodeTextGenerationEmpty, "Text generation returned no usable dialogue", false, err,
		fmt.Sprintf("provider: %s, error: %v", provider, err))
}

// NewSynthesisFailedError wraps a speech synthesis failure for one dialogue line.
func NewSynthesisFailedError(lineIndex int, err error) *StandardError {
	return newError(ErrCodeSynthesisFailed, "Speech synthesis failed", false, err,
		fmt.Sprintf("line: %d, error: %v", lineIndex, err))
}

// NewNoDialogueError reports a script with no speaker-tagged lines.
func NewNoDialogueError() *StandardError {
	return newError(ErrCodeNoDialogue, "Script contains no speaker-tagged lines", false, nil, "")
}

// NewArtifactWriteFailedError wraps a filesystem failure for a per-industry artifact.
func NewArtifactWriteFailedError(path string, err error) *StandardError {
	return newError(ErrCodeArtifactWriteFailed, "Artifact write failed", false, err,
		fmt.Sprintf("path: %s, error: %v", path, err))
}

// NewReportWriteFailedError wraps a failure to persist the run report.
func NewReportWriteFailedError(path string, err error) *StandardError {
	return newError(ErrCodeReportWriteFailed, "Run report write failed", false, err,
		fmt.Sprintf("path: %s, error: %v", path, err))
}

// NewItemPanicError converts a recovered panic into an error.
func NewItemPanicError(recovered interface{}) *StandardError {
	return newError(ErrCodeItemPanic, "Unexpected panic while processing item", false, nil,
		fmt.Sprintf("%v", recovered))
}

// NewNotificationSendFailedError creates a retryable notification send error.
func NewNotificationSendFailedError(channel string, err error) *StandardError {
	return newError(ErrCodeNotificationSendFailed, "Notification delivery failed", true, err,
		fmt.Sprintf("channel: %s, error: %v", channel, err))
}

// ==========================
// 3. Utility Functions
// ==========================

// Normalize ensures we always have a StandardError.
func Normalize(err error) *StandardError {
	if err == nil {
		return nil
	}
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}
	return newError(ErrCodeInternal, "Unexpected error", false, err, "")
}

// CodeOf returns the error code carried by err, or INTERNAL_ERROR.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return ""
	}
	return Normalize(err).Code
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "CONFIG") || strings.Contains(codeStr, "CATALOG"):
		return "CONFIGURATION"
	case strings.Contains(codeStr, "TEXT_GENERATION"):
		return "GENERATION"
	case strings.Contains(codeStr, "SYNTHESIS") || strings.Contains(codeStr, "DIALOGUE"):
		return "SYNTHESIS"
	case strings.Contains(codeStr, "WRITE"):
		return "STORAGE"
	case strings.Contains(codeStr, "NOTIFICATION"):
		return "NOTIFICATION"
	default:
		return "OTHER"
	}
}
