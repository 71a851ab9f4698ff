package operation

import (
	"errors"
	"fmt"
)

// ErrorCode classifies an operation failure.
type ErrorCode string

const (
	// CodeResourceConstraint means admission was refused due to system
	// load. Retryable: the caller may resubmit later.
	CodeResourceConstraint ErrorCode = "RESOURCE_CONSTRAINT"

	// CodeNotAuthorized means the authorization gate refused the
	// operation before validation. Never conflated with resource or
	// structural errors.
	CodeNotAuthorized ErrorCode = "NOT_AUTHORIZED"

	// CodeInvalidParams means a required parameter is missing or malformed.
	CodeInvalidParams ErrorCode = "INVALID_PARAMS"

	// CodeInvalidSetting means a SYSTEM_SETTINGS operation named a
	// setting outside the recognized whitelist.
	CodeInvalidSetting ErrorCode = "INVALID_SETTING"

	// CodeInvalidOperation means the operation type itself is unknown.
	CodeInvalidOperation ErrorCode = "INVALID_OPERATION"

	// CodeFileAccess means a validation-time file-system reachability
	// check failed.
	CodeFileAccess ErrorCode = "FILE_ACCESS_ERROR"

	// CodeExecution means the handler failed during the side-effecting
	// call. Retryability depends on the underlying driver error.
	CodeExecution ErrorCode = "EXECUTION_ERROR"
)

// Retryable reports whether a failure with this code may succeed on
// resubmission without the caller changing anything.
func (c ErrorCode) Retryable() bool {
	return c == CodeResourceConstraint
}

// ErrNotSupported marks a capability that is deliberately unimplemented
// (SYSTEM_SETTINGS SET). It surfaces under CodeExecution but remains
// errors.Is-distinguishable from runtime failures.
var ErrNotSupported = errors.New("not supported")

// Error is the terminal, immutable error attachment of a failed operation.
type Error struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Cause   error     `json:"-"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the underlying driver error for errors.Is/As.
func (e *Error) Unwrap() error { return e.Cause }

// NewError builds an operation error wrapping an optional cause.
func NewError(code ErrorCode, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// AsError coerces any error into an *Error, defaulting to CodeExecution
// for plain driver errors so handlers can propagate failures unchanged.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	var opErr *Error
	if errors.As(err, &opErr) {
		return opErr
	}
	return &Error{Code: CodeExecution, Message: err.Error(), Cause: err}
}
