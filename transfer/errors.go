package transfer

import (
	"errors"
	"fmt"
)

// Error kinds. Every failure returned by this module matches exactly one of
// these with errors.Is.
var (
	ErrPortEnumeration = errors.New("port enumeration failed")
	ErrPortOpen        = errors.New("port open failed")
	ErrTransfer        = errors.New("transfer failed")
	ErrFileTransfer    = errors.New("file transfer failed")
)

// Error describes a failed operation on a port or file.
type Error struct {
	Kind     error
	Op       string
	Resource string
	Err      error
}

func (e *Error) Error() string {
	if e.Resource != "" {
		return fmt.Sprintf("%s '%s': %v: %v", e.Op, e.Resource, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

func NewError(kind error, op, resource string, err error) *Error {
	return &Error{Kind: kind, Op: op, Resource: resource, Err: err}
}
