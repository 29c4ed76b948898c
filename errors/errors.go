package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io/fs"
)

// Kind classifies a dataset failure.
type Kind int

const (
	// KindIOFailure covers any read/write failure that is not a missing file
	// (permissions, disk errors, network errors for remote storage).
	KindIOFailure Kind = iota
	// KindNotFound means the spreadsheet or dataset does not exist at the expected location.
	KindNotFound
	// KindParseFailure means the content exists but cannot be interpreted.
	KindParseFailure
)

// String returns the wire name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindParseFailure:
		return "parse_failure"
	default:
		return "io_failure"
	}
}

func (k Kind) text() string {
	switch k {
	case KindNotFound:
		return "file not found"
	case KindParseFailure:
		return "parse failure"
	default:
		return "io failure"
	}
}

// Error represents a dataset or conversion error
type Error struct {
	Kind Kind   `json:"kind"`
	Op   string `json:"op"`
	Path string `json:"path"`
	Err  error  `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	msg := e.Kind.text()
	if e.Op != "" || e.Path != "" {
		msg = fmt.Sprintf("%s %s: %s", e.Op, e.Path, msg)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// MarshalJSON encodes the kind as its wire name.
func (e *Error) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind    string `json:"kind"`
		Op      string `json:"op,omitempty"`
		Path    string `json:"path,omitempty"`
		Message string `json:"message"`
	}{e.Kind.String(), e.Op, e.Path, e.Error()})
}

// New creates a new Error
func New(kind Kind, op, path string, err error) *Error {
	return &Error{
		Kind: kind,
		Op:   op,
		Path: path,
		Err:  err,
	}
}

// NotFound is shorthand for New(KindNotFound, ...).
func NotFound(op, path string, err error) *Error {
	return New(KindNotFound, op, path, err)
}

// ParseFailure is shorthand for New(KindParseFailure, ...).
func ParseFailure(op, path string, err error) *Error {
	return New(KindParseFailure, op, path, err)
}

// IOFailure is shorthand for New(KindIOFailure, ...).
func IOFailure(op, path string, err error) *Error {
	return New(KindIOFailure, op, path, err)
}

// ClassifyRead wraps an error from opening or reading a file. A missing file
// becomes KindNotFound, anything else KindIOFailure. Errors that are already
// classified are returned unchanged.
func ClassifyRead(op, path string, err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if stderrors.As(err, &e) {
		return err
	}
	if stderrors.Is(err, fs.ErrNotExist) {
		return NotFound(op, path, err)
	}
	return IOFailure(op, path, err)
}

// KindOf reports the kind of err. Unclassified errors are treated as IO failures.
func KindOf(err error) Kind {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return KindIOFailure
}

func IsNotFound(err error) bool {
	var e *Error
	return stderrors.As(err, &e) && e.Kind == KindNotFound
}

func IsParseFailure(err error) bool {
	var e *Error
	return stderrors.As(err, &e) && e.Kind == KindParseFailure
}

func IsIOFailure(err error) bool {
	var e *Error
	return stderrors.As(err, &e) && e.Kind == KindIOFailure
}
