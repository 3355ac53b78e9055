package types

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures that abort a run.
type ErrorKind int

const (
	ParameterError ErrorKind = iota
	NotFoundError
	IOError
	EncodingError
	ParseError
)

var errorKindNames = map[ErrorKind]string{
	ParameterError: "parameter",
	NotFoundError:  "not found",
	IOError:        "io",
	EncodingError:  "encoding",
	ParseError:     "parse",
}

// String returns a short label for the kind.
func (kind ErrorKind) String() string {
	if name, ok := errorKindNames[kind]; ok {
		return name
	}
	return "unknown"
}

// Error is a single-line, user-facing failure carrying its subject and cause.
type Error struct {
	Kind    ErrorKind
	Subject string
	Detail  string
	Err     error
}

// Error renders the failure as one descriptive line.
func (failure *Error) Error() string {
	switch failure.Kind {
	case NotFoundError:
		return fmt.Sprintf("Error - %s does not exist", failure.Subject)
	case ParameterError:
		return "Error - " + failure.Detail
	case EncodingError:
		return fmt.Sprintf("Error - Initialize %s tokenizer: %v", failure.Subject, failure.Err)
	case ParseError:
		return fmt.Sprintf("Error - parse %s -> %s: %v", failure.Subject, failure.Detail, failure.Err)
	default:
		if failure.Err == nil {
			return fmt.Sprintf("Error - %s %s", failure.Detail, failure.Subject)
		}
		return fmt.Sprintf("Error - %s %s: %v", failure.Detail, failure.Subject, failure.Err)
	}
}

// Unwrap exposes the underlying cause.
func (failure *Error) Unwrap() error {
	return failure.Err
}

// NewParameterError reports a bad or missing flag value.
func NewParameterError(format string, arguments ...any) error {
	return &Error{Kind: ParameterError, Detail: fmt.Sprintf(format, arguments...)}
}

// NewNotFoundError reports a missing file or directory argument.
func NewNotFoundError(path string) error {
	return &Error{Kind: NotFoundError, Subject: path}
}

// NewIOError reports a failed filesystem operation on path.
func NewIOError(operation string, path string, cause error) error {
	return &Error{Kind: IOError, Subject: path, Detail: operation, Err: cause}
}

// NewEncodingError reports a tokenizer that could not be initialised.
func NewEncodingError(encoding string, cause error) error {
	return &Error{Kind: EncodingError, Subject: encoding, Err: cause}
}

// NewParseError reports a value that could not be converted to target.
func NewParseError(value string, target string, cause error) error {
	return &Error{Kind: ParseError, Subject: value, Detail: target, Err: cause}
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var failure *Error
	if !errors.As(err, &failure) {
		return false
	}
	return failure.Kind == kind
}
