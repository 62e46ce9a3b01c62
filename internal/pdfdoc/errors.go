package pdfdoc

import (
	"errors"
	"fmt"
)

// ErrorKind classifies pipeline failures.
type ErrorKind int

const (
	KindNotFound ErrorKind = iota + 1
	KindNotAPdf
	KindFileTooLarge
	KindLoad
	KindNoPages
	KindNoReadableText
	KindIO
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindNotAPdf:
		return "not_a_pdf"
	case KindFileTooLarge:
		return "file_too_large"
	case KindLoad:
		return "load_error"
	case KindNoPages:
		return "no_pages"
	case KindNoReadableText:
		return "no_readable_text"
	case KindIO:
		return "io_error"
	default:
		return "unknown"
	}
}

// Error is returned by every failing step of the pipeline. Its message is
// meant to be shown to the user as is.
type Error struct {
	Kind ErrorKind
	Msg  string
	Err  error
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() error { return e.Err }

func newError(kind ErrorKind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

func loadError(err error) *Error {
	return newError(KindLoad, fmt.Sprintf("Failed to load PDF: %v", err), err)
}

// IsKind reports whether err is a pipeline error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var pe *Error
	return errors.As(err, &pe) && pe.Kind == kind
}
