package container

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode classifies a container failure.
type ErrorCode uint16

const (
	ErrCodeUnknown ErrorCode = iota
	ErrCodeInvalidClass
	ErrCodeNotInstantiable
	ErrCodeUnresolvedDependency
	ErrCodeSelfDependency
	ErrCodeCircularDependency
	ErrCodeDepthExceeded
	ErrCodeInvalidCallable
	ErrCodeInvalidArgument
	ErrCodeFactoryFailed
	ErrCodeTypeMismatch
)

var codeNames = map[ErrorCode]string{
	ErrCodeUnknown:              "UNKNOWN",
	ErrCodeInvalidClass:         "INVALID_CLASS",
	ErrCodeNotInstantiable:      "NOT_INSTANTIABLE",
	ErrCodeUnresolvedDependency: "UNRESOLVED_DEPENDENCY",
	ErrCodeSelfDependency:       "SELF_DEPENDENCY",
	ErrCodeCircularDependency:   "CIRCULAR_DEPENDENCY",
	ErrCodeDepthExceeded:        "DEPTH_EXCEEDED",
	ErrCodeInvalidCallable:      "INVALID_CALLABLE",
	ErrCodeInvalidArgument:      "INVALID_ARGUMENT",
	ErrCodeFactoryFailed:        "FACTORY_FAILED",
	ErrCodeTypeMismatch:         "TYPE_MISMATCH",
}

func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%d)", c)
}

// Error is the single error type returned by the container. Compare with
// errors.Is against the Err* sentinels; matching is by Code.
type Error struct {
	Code    ErrorCode
	Message string
	Alias   string
	Param   string // parameter that could not be resolved
	Cause   error
	Chain   []string
}

// Sentinels for errors.Is.
var (
	ErrInvalidClass         = &Error{Code: ErrCodeInvalidClass}
	ErrNotInstantiable      = &Error{Code: ErrCodeNotInstantiable}
	ErrUnresolvedDependency = &Error{Code: ErrCodeUnresolvedDependency}
	ErrSelfDependency       = &Error{Code: ErrCodeSelfDependency}
	ErrCircularDependency   = &Error{Code: ErrCodeCircularDependency}
	ErrDepthExceeded        = &Error{Code: ErrCodeDepthExceeded}
	ErrInvalidCallable      = &Error{Code: ErrCodeInvalidCallable}
	ErrInvalidArgument      = &Error{Code: ErrCodeInvalidArgument}
	ErrFactoryFailed        = &Error{Code: ErrCodeFactoryFailed}
	ErrTypeMismatch         = &Error{Code: ErrCodeTypeMismatch}
)

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("[%s]", e.Code))

	if e.Alias != "" {
		b.WriteString(fmt.Sprintf(" alias=%q:", e.Alias))
	}

	b.WriteString(" ")
	b.WriteString(e.Message)

	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}

	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

func newError(code ErrorCode, alias, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Alias:   alias,
		Cause:   cause,
	}
}

func errInvalidClass(className string) *Error {
	return newError(ErrCodeInvalidClass, className, "invalid class name: "+className, nil)
}

func errNotInstantiable(className string) *Error {
	return newError(ErrCodeNotInstantiable, className, "class is not instantiable: "+className, nil)
}

func errUnresolvedDependency(param string, cause error) *Error {
	e := newError(ErrCodeUnresolvedDependency, "", "dependency could not be resolved: "+param, cause)
	e.Param = param
	return e
}

func errSelfDependency(className string) *Error {
	return newError(ErrCodeSelfDependency, className, "class depends on itself: "+className, nil)
}

func errCircularDependency(chain []string) *Error {
	e := newError(
		ErrCodeCircularDependency,
		chain[len(chain)-1],
		"circular dependency detected: "+strings.Join(chain, " -> "),
		nil,
	)
	e.Chain = chain
	return e
}

func errDepthExceeded(alias string, limit int) *Error {
	return newError(ErrCodeDepthExceeded, alias, fmt.Sprintf("resolution depth limit %d exceeded", limit), nil)
}

func errInvalidCallable(message string) *Error {
	return newError(ErrCodeInvalidCallable, "", message, nil)
}

func errInvalidArgument(param string, value any, want string) *Error {
	return newError(
		ErrCodeInvalidArgument,
		"",
		fmt.Sprintf("argument %q of type %T is not assignable to %s", param, value, want),
		nil,
	)
}

func errFactoryFailed(name string, cause error) *Error {
	return newError(ErrCodeFactoryFailed, "", fmt.Sprintf("%s returned error", name), cause)
}

func errTypeMismatch(alias string, got any, want string) *Error {
	return newError(ErrCodeTypeMismatch, alias, fmt.Sprintf("resolved to %T, want %s", got, want), nil)
}

func IsInvalidClass(err error) bool       { return hasCode(err, ErrCodeInvalidClass) }
func IsNotInstantiable(err error) bool    { return hasCode(err, ErrCodeNotInstantiable) }
func IsUnresolved(err error) bool         { return hasCode(err, ErrCodeUnresolvedDependency) }
func IsSelfDependency(err error) bool     { return hasCode(err, ErrCodeSelfDependency) }
func IsCircularDependency(err error) bool { return hasCode(err, ErrCodeCircularDependency) }
func IsFactoryFailed(err error) bool      { return hasCode(err, ErrCodeFactoryFailed) }

func hasCode(err error, code ErrorCode) bool {
	return errors.Is(err, &Error{Code: code})
}

// fatal reports errors that must not be swallowed by type-based resolution.
func fatal(err error) bool {
	return errors.Is(err, ErrSelfDependency) ||
		errors.Is(err, ErrCircularDependency) ||
		errors.Is(err, ErrDepthExceeded)
}
