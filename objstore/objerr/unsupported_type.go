package objerr

import "fmt"

// UnsupportedTypeError is returned by layers above the engine when a caller supplies an unsupported data type for a
// typed property, for example a numeric width the dataset format can't represent; the engine itself never raises it.
type UnsupportedTypeError struct {
	Type string
}

// Error implements the 'error' interface.
func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported data type '%s'", e.Type)
}
