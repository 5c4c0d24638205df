// Package errors provides the unified error type and factory functions for the
// appeal engine.  Every layer (domain, application, infrastructure, interfaces)
// uses AppError as the single carrier for structured error information,
// enabling consistent HTTP responses, logging, and monitoring.
package errors

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// stackDepth is the maximum number of frames captured per error.
const stackDepth = 32

// captureStack returns a formatted call-stack string starting two frames above
// the caller (skipping captureStack itself and New/Wrap).
func captureStack(skip int) string {
	pcs := make([]uintptr, stackDepth)
	n := runtime.Callers(skip+2, pcs)
	if n == 0 {
		return ""
	}
	frames := runtime.CallersFrames(pcs[:n])
	var sb strings.Builder
	for {
		f, more := frames.Next()
		// Trim standard-library noise to keep traces readable.
		if !strings.Contains(f.File, "runtime/") {
			fmt.Fprintf(&sb, "\n\t%s:%d %s", f.File, f.Line, f.Function)
		}
		if !more {
			break
		}
	}
	return sb.String()
}

// AppError is the single structured error type used throughout the engine.
// It satisfies the standard error interface and supports Go 1.13+ error
// wrapping so that errors.Is / errors.As / errors.Unwrap work transparently
// across all layers.
//
// Usage:
//
//	return errors.New(errors.ErrCodeSessionNotFound, "session abc not found")
//	return errors.Wrap(repoErr, errors.ErrCodeDatabaseError, "failed to load outcomes")
//	return errors.Validation("ticket number does not match the PCN format").
//	           WithDetail("input=" + raw)
type AppError struct {
	// Code is the typed error code that uniquely identifies the failure category.
	Code ErrorCode

	// Message is the primary human-readable description, suitable for API
	// responses returned to callers.
	Message string

	// Detail carries supplementary context (stage names, session IDs, raw
	// input excerpts) that aids debugging without leaking internals to users.
	Detail string

	// Cause is the underlying error, enabling errors.Is / errors.As traversal.
	Cause error

	// Stack is the formatted call stack captured at creation.  It is not part
	// of Error() output; structured logging middleware reads it directly.
	Stack string
}

// Error implements the standard error interface.
// Format: "[<code>] <message>: <detail>"; the detail segment is omitted when empty.
func (e *AppError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Detail)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause error.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithDetail returns a shallow copy of the receiver with Detail set.
// Safe to call on a nil pointer (returns nil).
func (e *AppError) WithDetail(detail string) *AppError {
	if e == nil {
		return nil
	}
	clone := *e
	clone.Detail = detail
	return &clone
}

// WithCause returns a shallow copy of the receiver with Cause set to err.
func (e *AppError) WithCause(err error) *AppError {
	if e == nil {
		return nil
	}
	clone := *e
	clone.Cause = err
	return &clone
}

// New constructs a fresh AppError with the given code and message.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Stack:   captureStack(1),
	}
}

// Wrap constructs an AppError that wraps an existing error.  If err is nil,
// Wrap returns nil so it can be used inline on a call result.  When err is
// already an *AppError and code is ErrCodeInternal the original code is
// preserved, preventing loss of the original classification during
// cross-layer propagation.
func Wrap(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}
	if code == ErrCodeInternal {
		var ae *AppError
		if errors.As(err, &ae) {
			code = ae.Code
		}
	}
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   err,
		Stack:   captureStack(1),
	}
}

// IsCode reports whether any error in err's chain is an *AppError with the
// given code.
func IsCode(err error, code ErrorCode) bool {
	var ae *AppError
	for err != nil {
		if errors.As(err, &ae) && ae.Code == code {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}

// IsValidation reports whether err represents a recoverable field-validation
// failure (re-prompt, stage unchanged).
func IsValidation(err error) bool {
	return IsCode(err, ErrCodeValidation) || IsCode(err, ErrCodeFieldValidation)
}

// IsAmbiguous reports whether err represents unrecognized categorical input,
// recovered via an enumerated-options re-prompt.
func IsAmbiguous(err error) bool {
	return IsCode(err, ErrCodeAmbiguousInput)
}

// IsNotFound reports whether any error in err's chain carries a not-found code.
func IsNotFound(err error) bool {
	var ae *AppError
	for err != nil {
		if errors.As(err, &ae) {
			switch ae.Code {
			case ErrCodeNotFound, ErrCodeSessionNotFound, ErrCodeCaseNotFound, ErrCodeGroundNotFound:
				return true
			}
		}
		err = errors.Unwrap(err)
	}
	return false
}

// IsCollaborator reports whether err originates from an external collaborator
// (renderer, submitter, OCR).  Such failures are retryable and must leave
// session state untouched.
func IsCollaborator(err error) bool {
	return IsCode(err, ErrCodeExternalService) ||
		IsCode(err, ErrCodeRenderFailed) ||
		IsCode(err, ErrCodeSubmissionFailed) ||
		IsCode(err, ErrCodeOCRFailed)
}

// IsIntegrity reports whether err is an internal state-integrity breach.
// These must never occur when the transition table is correct and are treated
// as fatal in tests.
func IsIntegrity(err error) bool {
	return IsCode(err, ErrCodeStateIntegrity)
}

// GetCode extracts the ErrorCode from the first *AppError in err's chain,
// or ErrCodeInternal when none is present.  Middleware uses this as a single
// metric label without coupling to specific domain errors.
func GetCode(err error) ErrorCode {
	if err == nil {
		return ErrorCode("OK")
	}
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Code
	}
	return ErrCodeInternal
}

// Convenience factories for the most common conditions.  Call sites read
// naturally:
//
//	return errors.Validation("date must be D/M/YYYY")
//	return errors.Ambiguous("unknown ticket type")

// Validation constructs an ErrCodeFieldValidation AppError.
func Validation(message string) *AppError {
	return &AppError{Code: ErrCodeFieldValidation, Message: message, Stack: captureStack(1)}
}

// Ambiguous constructs an ErrCodeAmbiguousInput AppError.
func Ambiguous(message string) *AppError {
	return &AppError{Code: ErrCodeAmbiguousInput, Message: message, Stack: captureStack(1)}
}

// NotFound constructs an ErrCodeNotFound AppError.
func NotFound(message string) *AppError {
	return &AppError{Code: ErrCodeNotFound, Message: message, Stack: captureStack(1)}
}

// Integrity constructs an ErrCodeStateIntegrity AppError.
func Integrity(message string) *AppError {
	return &AppError{Code: ErrCodeStateIntegrity, Message: message, Stack: captureStack(1)}
}

// Collaborator constructs an ErrCodeExternalService AppError.
func Collaborator(message string) *AppError {
	return &AppError{Code: ErrCodeExternalService, Message: message, Stack: captureStack(1)}
}

// Internal constructs an ErrCodeInternal AppError.  Use for unexpected
// server-side failures where no more specific code applies.
func Internal(message string) *AppError {
	return &AppError{Code: ErrCodeInternal, Message: message, Stack: captureStack(1)}
}

// Conflict constructs an ErrCodeConflict AppError.
func Conflict(message string) *AppError {
	return &AppError{Code: ErrCodeConflict, Message: message, Stack: captureStack(1)}
}
