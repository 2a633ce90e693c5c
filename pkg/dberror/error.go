// Package dberror defines the structured errors raised by table and join
// operations.
//
// Every JoinError is marked with the sentinel of its category, so callers
// branch with errors.Is:
//
//	if errors.Is(err, dberror.ErrTypeMismatch) { ... }
//
// and recover the structured detail with errors.As when they need the code,
// hint or originating operation.
package dberror

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrorCategory classifies errors by the kind of caller mistake that
// produced them.
type ErrorCategory int

const (
	// CategoryConfiguration covers join setups that cannot work regardless of
	// the data, such as different join-column counts on the two sides.
	CategoryConfiguration ErrorCategory = iota

	// CategoryTypeMismatch covers paired join columns of different kinds.
	CategoryTypeMismatch

	// CategoryNameCollision covers duplicate output column names when the
	// caller did not allow them.
	CategoryNameCollision

	// CategoryUnsupported covers column kinds an operation cannot handle.
	CategoryUnsupported
)

func (c ErrorCategory) String() string {
	switch c {
	case CategoryConfiguration:
		return "configuration"
	case CategoryTypeMismatch:
		return "type mismatch"
	case CategoryNameCollision:
		return "name collision"
	case CategoryUnsupported:
		return "unsupported"
	default:
		return "unknown"
	}
}

// Sentinels used as error marks.
var (
	ErrConfiguration   = errors.New("join configuration error")
	ErrColumnNotFound  = errors.New("column not found")
	ErrTypeMismatch    = errors.New("join column type mismatch")
	ErrNameCollision   = errors.New("column name collision")
	ErrUnsupportedType = errors.New("unsupported column type")
)

// JoinError is a structured error with context about where it was raised.
type JoinError struct {
	// Code is a stable identifier such as "JOIN_TYPE_MISMATCH".
	Code     string
	Category ErrorCategory
	Message  string
	// Detail describes this instance, e.g. which columns were involved.
	Detail string
	// Hint suggests how the caller can fix the problem.
	Hint      string
	Operation string
	Component string
	Cause     error
}

// New starts a JoinError. Call Err to obtain the marked error value.
func New(category ErrorCategory, code, message string) *JoinError {
	return &JoinError{Code: code, Category: category, Message: message}
}

// Wrap attaches join context to err. If err already carries a JoinError its
// code is kept: a copy gains the missing operation and component, and the
// result is still marked as err. The JoinError inside err is never modified.
func Wrap(err error, code, operation, component string) error {
	if err == nil {
		return nil
	}
	var je *JoinError
	if errors.As(err, &je) {
		if je.Operation != "" && je.Component != "" {
			return err
		}
		cp := *je
		if cp.Operation == "" {
			cp.Operation = operation
		}
		if cp.Component == "" {
			cp.Component = component
		}
		return errors.Mark(cp.Err(), err)
	}
	je = &JoinError{
		Code:      code,
		Category:  CategoryConfiguration,
		Message:   "operation failed",
		Operation: operation,
		Component: component,
		Cause:     err,
	}
	return je.Err()
}

// Error formats as
// [CODE] Message: Detail (operation: Op, component: Comp) caused by: cause
func (e *JoinError) Error() string {
	var b strings.Builder

	fmt.Fprintf(&b, "[%s] %s", e.Code, e.Message)
	if e.Detail != "" {
		fmt.Fprintf(&b, ": %s", e.Detail)
	}
	if e.Operation != "" {
		fmt.Fprintf(&b, " (operation: %s", e.Operation)
		if e.Component != "" {
			fmt.Fprintf(&b, ", component: %s", e.Component)
		}
		b.WriteString(")")
	}
	if e.Cause != nil {
		fmt.Fprintf(&b, " caused by: %v", e.Cause)
	}
	return b.String()
}

func (e *JoinError) Unwrap() error {
	return e.Cause
}

// sentinel returns the mark for the error's category.
func (e *JoinError) sentinel() error {
	switch e.Category {
	case CategoryTypeMismatch:
		return ErrTypeMismatch
	case CategoryNameCollision:
		return ErrNameCollision
	case CategoryUnsupported:
		return ErrUnsupportedType
	default:
		return ErrConfiguration
	}
}

// Err finalises e: it records a stack trace and marks the error with its
// category sentinel.
func (e *JoinError) Err() error {
	return errors.Mark(errors.WithStackDepth(e, 1), e.sentinel())
}

func (e *JoinError) WithDetail(format string, args ...any) *JoinError {
	e.Detail = fmt.Sprintf(format, args...)
	return e
}

func (e *JoinError) WithHint(hint string) *JoinError {
	e.Hint = hint
	return e
}

func (e *JoinError) In(operation, component string) *JoinError {
	e.Operation = operation
	e.Component = component
	return e
}
