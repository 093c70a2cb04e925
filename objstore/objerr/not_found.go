package objerr

import (
	"errors"
	"fmt"
)

// NotFoundError indicates that something (usually an object or a bucket) was not found; this is an expected condition
// for existence checks and must not be treated as fatal by callers performing them.
type NotFoundError struct {
	Type string
	Name string
}

// Error implements the 'error' interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s '%s' not found", e.Type, e.Name)
}

// IsNotFoundError returns a boolean indicating whether the given error is a 'NotFoundError'.
func IsNotFoundError(err error) bool {
	var notFoundError *NotFoundError
	return errors.As(err, &notFoundError)
}
