// Package errz defines the error taxonomy shared by the cloning engine.
//
// Every failure surfaced by protoclone is an *Error carrying a Kind. Callers
// match on kinds with errors.Is and the sentinel values below:
//
//	if errors.Is(err, errz.ErrNoPolicy) {
//		// declare a policy for the slot or configure a default
//	}
package errz

import (
	"fmt"
)

// Kind represents the category of an error.
type Kind int

const (
	// InvalidConfiguration indicates a malformed configuration record.
	InvalidConfiguration Kind = iota + 1
	// TypeMismatch indicates a policy was applied to a value of the wrong
	// structural kind.
	TypeMismatch
	// UndeclaredSlot indicates a write to a slot that has no cloning table
	// entry on a protected object.
	UndeclaredSlot
	// NoPolicy indicates that no per-slot, per-type or default policy
	// resolved for a slot at clone time.
	NoPolicy
	// MissingCloneCapability indicates a value that was expected to clone
	// itself has no clone operation.
	MissingCloneCapability
	// ReservedSlot indicates an attempt to write or declare a reserved name.
	ReservedSlot
)

// String returns the string representation of the error kind.
func (k Kind) String() string {
	switch k {
	case InvalidConfiguration:
		return "invalid configuration"
	case TypeMismatch:
		return "type mismatch"
	case UndeclaredSlot:
		return "undeclared slot"
	case NoPolicy:
		return "no policy"
	case MissingCloneCapability:
		return "missing clone capability"
	case ReservedSlot:
		return "reserved slot"
	default:
		return "error"
	}
}

// Code returns the stable identifier of the error kind.
func (k Kind) Code() Code {
	if code, ok := kindCodes[k]; ok {
		return code
	}
	return ""
}

// Error is the structured error type returned by every protoclone package.
type Error struct {
	Kind    Kind
	Message string
	// Slot is the slot name the failure relates to, if any.
	Slot  string
	Cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.String()
	} else {
		msg = fmt.Sprintf("%s: %s", e.Kind.String(), msg)
	}
	if e.Slot != "" {
		msg = fmt.Sprintf("%s (slot %q)", msg, e.Slot)
	}
	return msg
}

// Unwrap returns the underlying cause of the error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error of the same kind. This lets the
// sentinel values match any error of their kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// WithSlot records the slot name the error relates to.
func (e *Error) WithSlot(name string) *Error {
	e.Slot = name
	return e
}

// WithCause wraps the error with a cause.
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// New creates a new Error with the given kind and message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf creates a new Error with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Sentinels for use with errors.Is.
var (
	ErrInvalidConfiguration   = &Error{Kind: InvalidConfiguration}
	ErrTypeMismatch           = &Error{Kind: TypeMismatch}
	ErrUndeclaredSlot         = &Error{Kind: UndeclaredSlot}
	ErrNoPolicy               = &Error{Kind: NoPolicy}
	ErrMissingCloneCapability = &Error{Kind: MissingCloneCapability}
	ErrReservedSlot           = &Error{Kind: ReservedSlot}
)

func InvalidConfigurationf(format string, args ...any) *Error {
	return Newf(InvalidConfiguration, format, args...)
}

func TypeMismatchf(format string, args ...any) *Error {
	return Newf(TypeMismatch, format, args...)
}

func UndeclaredSlotf(format string, args ...any) *Error {
	return Newf(UndeclaredSlot, format, args...)
}

func NoPolicyf(format string, args ...any) *Error {
	return Newf(NoPolicy, format, args...)
}

// MissingCloneCapabilityf returns a MissingCloneCapability error whose cause
// is a TypeMismatch, so the error matches both kinds.
func MissingCloneCapabilityf(format string, args ...any) *Error {
	msg := fmt.Sprintf(format, args...)
	return New(MissingCloneCapability, msg).WithCause(New(TypeMismatch, msg))
}

func ReservedSlotf(format string, args ...any) *Error {
	return Newf(ReservedSlot, format, args...)
}
