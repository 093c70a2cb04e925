package objerr

import "fmt"

// ServiceError wraps a non-success remote response which isn't otherwise classified; it retains the bucket/key being
// accessed for context and unwraps to the underlying client error.
type ServiceError struct {
	Bucket string
	Key    string

	inner error
}

// NewServiceError wraps the given error, attributing it to the provided bucket/key.
func NewServiceError(bucket, key string, err error) *ServiceError {
	return &ServiceError{Bucket: bucket, Key: key, inner: err}
}

// Error implements the 'error' interface.
func (e *ServiceError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("remote service error for bucket '%s': %v", e.Bucket, e.inner)
	}

	return fmt.Sprintf("remote service error for '%s' in bucket '%s': %v", e.Key, e.Bucket, e.inner)
}

// Unwrap exposes the underlying client error to 'errors.Is/As'.
func (e *ServiceError) Unwrap() error {
	return e.inner
}
