// Package errdefs defines the error kinds shared across the scoring pipeline.
package errdefs

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration marks an invalid task, dimensionality, or conflicting selection.
	ErrConfiguration = errors.New("configuration error")
	// ErrFormat marks an unrecognised input structure or file extension.
	ErrFormat = errors.New("format error")
	// ErrResource marks a lexical resource that is missing an expected entry.
	ErrResource = errors.New("resource error")
	// ErrTranscription marks a failed or empty out-of-vocabulary transcription.
	ErrTranscription = errors.New("transcription error")
)

// Error attaches an operation name and cause to one of the kinds above.
type Error struct {
	Kind error
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%v: %s", e.Kind, e.Op)
	}
	return fmt.Sprintf("%v: %s: %v", e.Kind, e.Op, e.Err)
}

// Unwrap exposes both the kind and the cause to errors.Is/As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func newf(kind error, op, format string, args ...any) error {
	return &Error{Kind: kind, Op: op, Err: fmt.Errorf(format, args...)}
}

func Configuration(op, format string, args ...any) error {
	return newf(ErrConfiguration, op, format, args...)
}

func Format(op, format string, args ...any) error {
	return newf(ErrFormat, op, format, args...)
}

func Resource(op, format string, args ...any) error {
	return newf(ErrResource, op, format, args...)
}

func Transcription(op, format string, args ...any) error {
	return newf(ErrTranscription, op, format, args...)
}

// Wrap tags an existing error with a kind. A nil err yields nil.
func Wrap(kind error, op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Err: err}
}

// Code is a short classification used as a log field.
type Code string

const (
	CodeUnknown       Code = "unknown"
	CodeConfiguration Code = "configuration"
	CodeFormat        Code = "format"
	CodeResource      Code = "resource"
	CodeTranscription Code = "transcription"
)

// Classify maps err to its Code using errors.Is only.
func Classify(err error) Code {
	switch {
	case err == nil:
		return CodeUnknown
	case errors.Is(err, ErrConfiguration):
		return CodeConfiguration
	case errors.Is(err, ErrFormat):
		return CodeFormat
	case errors.Is(err, ErrResource):
		return CodeResource
	case errors.Is(err, ErrTranscription):
		return CodeTranscription
	default:
		return CodeUnknown
	}
}
