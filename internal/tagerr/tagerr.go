// Package tagerr implements the classified error taxonomy shared by every
// parser and renderer in the module.
package tagerr

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies why a parse or render call failed.
type Kind int

// Error kinds, per the format-independent error taxonomy.
const (
	// TRUNCATED indicates the input is shorter than a structure's declared
	// length.
	TRUNCATED Kind = iota
	// InvalidMagic indicates a required signature did not match.
	InvalidMagic
	// InvalidVersion indicates a version field is outside the accepted range.
	InvalidVersion
	// InvalidField indicates a length/count/enum/flag value violates the
	// format.
	InvalidField
	// CRCMismatch indicates Ogg CRC validation was requested and failed.
	CRCMismatch
	// SizeLimit indicates a packet or tag exceeds a configured safety cap.
	SizeLimit
	// Unsupported indicates a feature known to the format but not
	// implemented (e.g. ID3v2 encryption).
	Unsupported
	// Encoding indicates text bytes were not decodable in the declared
	// encoding.
	Encoding
	// IOError indicates an underlying storage failure.
	IOError
	// NotFound indicates the requested file does not exist.
	NotFound
	// Cancelled indicates an async call was cancelled.
	Cancelled
	// NoSource indicates a save-to-source call on an in-memory value with no
	// backing path.
	NoSource
)

func (k Kind) String() string {
	switch k {
	case TRUNCATED:
		return "TRUNCATED"
	case InvalidMagic:
		return "INVALID_MAGIC"
	case InvalidVersion:
		return "INVALID_VERSION"
	case InvalidField:
		return "INVALID_FIELD"
	case CRCMismatch:
		return "CRC_MISMATCH"
	case SizeLimit:
		return "SIZE_LIMIT"
	case Unsupported:
		return "UNSUPPORTED"
	case Encoding:
		return "ENCODING"
	case IOError:
		return "IO_ERROR"
	case NotFound:
		return "NOT_FOUND"
	case Cancelled:
		return "CANCELLED"
	case NoSource:
		return "NO_SOURCE"
	default:
		return "UNKNOWN"
	}
}

// Error is a classified error carrying a Kind plus a human-readable cause.
// The cause is built with github.com/pkg/errors and carries a stack trace,
// which %+v prints when applied to the value Unwrap returns. Error itself
// has no Cause or Format method: errors.Cause stops at the *Error, and %+v
// on it prints only the Error() text.
type Error struct {
	Kind Kind
	Op   string // component/operation that produced the error, e.g. "id3v2.parseHeader"
	err  error
}

func (e *Error) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Kind, e.err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.err)
}

// Unwrap exposes the wrapped cause for errors.Is/errors.As.
func (e *Error) Unwrap() error { return e.err }

// New builds a classified error from a message.
func New(kind Kind, op, text string) *Error {
	return &Error{Kind: kind, Op: op, err: errors.New(text)}
}

// Newf builds a classified error from a format string.
func Newf(kind Kind, op, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Op: op, err: errors.Errorf(format, args...)}
}

// Wrap attaches a Kind and Op to an existing error, preserving it as the
// cause chain.
func Wrap(kind Kind, op string, err error) *Error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, err: errors.Wrap(err, op)}
}

// Is reports whether err is a classified Error of the given Kind.
func Is(err error, kind Kind) bool {
	var te *Error
	if errors.As(err, &te) {
		return te.Kind == kind
	}
	return false
}

// KindOf returns the Kind of a classified error, or IOError if err is not
// one of ours (a conservative default for unexpected wrapped errors).
func KindOf(err error) Kind {
	var te *Error
	if errors.As(err, &te) {
		return te.Kind
	}
	return IOError
}

// Result is the boolean-checkable outcome type required by spec.md §7:
// callers can check IsSuccess without inspecting Value, and an error string
// is always populated on failure.
type Result[T any] struct {
	Value     T
	err       *Error
	IsSuccess bool
}

// Ok builds a successful Result.
func Ok[T any](v T) Result[T] {
	return Result[T]{Value: v, IsSuccess: true}
}

// Fail builds a failed Result.
func Fail[T any](err *Error) Result[T] {
	return Result[T]{err: err, IsSuccess: false}
}

// Err returns the classified error, or nil on success.
func (r Result[T]) Err() *Error {
	if r.IsSuccess {
		return nil
	}
	return r.err
}

// ErrorString returns a human-readable error message, or "" on success.
func (r Result[T]) ErrorString() string {
	if r.IsSuccess || r.err == nil {
		return ""
	}
	return r.err.Error()
}
