package registry

import (
	"errors"
	"fmt"
)

// NotFoundError indicates that a tool or resource name is not registered.
type NotFoundError struct {
	Kind string // "Tool" or "Resource"
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.Name)
}

// InvocationError wraps any failure raised by a registered operation.
// Message carries the operation error's text verbatim.
type InvocationError struct {
	Message string
	Err     error
}

func (e *InvocationError) Error() string {
	return e.Message
}

func (e *InvocationError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is a registry NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
