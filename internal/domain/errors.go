package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why an invocation failed
type ErrorKind string

const (
	ErrorKindUsage      ErrorKind = "usage"
	ErrorKindNotFound   ErrorKind = "not_found"
	ErrorKindExtraction ErrorKind = "extraction"
	ErrorKindConfig     ErrorKind = "config"
)

// Error is a failure with a kind attached. Its message is what ends up in
// the "error" field of the JSON result.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Err == nil:
		return e.Message
	case e.Message == "":
		return e.Err.Error()
	default:
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a new domain error
func NewError(kind ErrorKind, message string, err error) *Error {
	return &Error{
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// UsageError reports a wrong argument count for program
func UsageError(program string) *Error {
	return NewError(ErrorKindUsage, fmt.Sprintf("Usage: %s <pdf_file_path>", program), nil)
}

// NotFoundError reports a path that does not name an existing entry
func NotFoundError(path string) *Error {
	return NewError(ErrorKindNotFound, "File not found: "+path, nil)
}

// ExtractionError wraps a failure raised while decoding the document. The
// underlying message is reported as-is.
func ExtractionError(err error) *Error {
	if err == nil {
		err = errors.New("unknown extraction failure")
	}
	return NewError(ErrorKindExtraction, "", err)
}

func ConfigError(message string, err error) *Error {
	return NewError(ErrorKindConfig, message, err)
}

// KindOf returns the kind of the first *Error in err's chain, or "" if none.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}
