package errors

import (
	"fmt"
)

// ErrorHandler logs per-item failures with standardized fields.
type ErrorHandler struct {
	logger Logger
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// HandleItemError normalizes err, logs it, and returns the normalized error.
func (h *ErrorHandler) HandleItemError(industry string, err error) *StandardError {
	if err == nil {
		return nil
	}
	stdErr := Normalize(err)
	h.logger.Error("Item failed", map[string]interface{}{
		"industry":      industry,
		"errorCode":     string(stdErr.Code),
		"message":       stdErr.Message,
		"details":       stdErr.Details,
		"retryable":     stdErr.Retryable,
		"errorCategory": GetErrorCategory(stdErr.Code),
	})
	return stdErr
}

// RecoverItem converts a recovered panic value into an ITEM_PANIC error.
// Usage: defer func() { if r := recover(); r != nil { err = h.RecoverItem(industry, r) } }()
func (h *ErrorHandler) RecoverItem(industry string, recovered interface{}) error {
	stdErr := NewItemPanicError(recovered).WithMetadata(map[string]interface{}{
		"industry": industry,
	})
	h.logger.Error("Recovered panic", map[string]interface{}{
		"industry": industry,
		"panic":    fmt.Sprintf("%v", recovered),
	})
	return stdErr
}
