package errors

import (
	stderrors "errors"
	"fmt"
)

// Error codes
const (
	CodeConfig = "CONFIG_ERROR"
	CodeAuth   = "AUTH_ERROR"
	CodeRemote = "REMOTE_ERROR"
	CodeIO     = "IO_ERROR"
)

// AppError is the common shape of every error the CLI reports to a user.
type AppError struct {
	Message string
	Code    string
	Context map[string]any
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// ErrorCode is promoted to every typed wrapper below.
func (e *AppError) ErrorCode() string {
	return e.Code
}

func newAppError(message, code string, context map[string]any, cause error) *AppError {
	if context == nil {
		context = map[string]any{}
	}
	return &AppError{
		Message: message,
		Code:    code,
		Context: context,
		Cause:   cause,
	}
}

// ConfigError reports missing or invalid configuration.
type ConfigError struct {
	*AppError
}

func NewConfigError(message string, context map[string]any, cause error) *ConfigError {
	return &ConfigError{AppError: newAppError(message, CodeConfig, context, cause)}
}

// AuthError reports a failure to obtain an authenticated service handle.
type AuthError struct {
	*AppError
	Method string
}

func NewAuthError(message, method string, cause error) *AuthError {
	return &AuthError{
		AppError: newAppError(message, CodeAuth, map[string]any{"method": method}, cause),
		Method:   method,
	}
}

// RemoteError reports a fault from a YouTube Data API call.
type RemoteError struct {
	*AppError
	Operation  string
	StatusCode int
	Reason     string
}

func NewRemoteError(message, operation string, cause error) *RemoteError {
	return &RemoteError{
		AppError:  newAppError(message, CodeRemote, map[string]any{"operation": operation}, cause),
		Operation: operation,
	}
}

// WithStatus records the HTTP status and API reason of the failed call.
func (e *RemoteError) WithStatus(statusCode int, reason string) *RemoteError {
	e.StatusCode = statusCode
	e.Reason = reason
	e.Context["status_code"] = statusCode
	if reason != "" {
		e.Context["reason"] = reason
	}
	return e
}

// IOError reports a failure while persisting the report file.
type IOError struct {
	*AppError
	Path string
}

func NewIOError(message, path string, cause error) *IOError {
	return &IOError{
		AppError: newAppError(message, CodeIO, map[string]any{"path": path}, cause),
		Path:     path,
	}
}

// ExitCode maps an error to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return 1
}

// CodeOf returns the error code carried by err, or "" for foreign errors.
func CodeOf(err error) string {
	var coded interface{ ErrorCode() string }
	if stderrors.As(err, &coded) {
		return coded.ErrorCode()
	}
	return ""
}
