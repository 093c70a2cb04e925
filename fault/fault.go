// Package fault exposes the fault-injection boundary of the transfer engine; every remote call site crosses a named
// point before/after the call, and a test collaborator may install an injector which forces a synthetic failure or
// delay at that point without modifying engine logic.
package fault

// Sensitivity tags a point with how disruptive a failure injected there would be, allowing injectors to target a
// subset of points.
type Sensitivity uint8

const (
	// SensitivityNormal tags points where a failure is recoverable by the owning operation.
	SensitivityNormal Sensitivity = iota

	// SensitivityHigh tags points where a failure is expected to fail the owning operation outright.
	SensitivityHigh
)

// Injector decides whether a synthetic failure should be raised at the given point; returning a non-nil error causes
// the call site to behave as if the remote call failed with that error.
//
// NOTE: Injectors may be crossed concurrently from any number of worker Goroutines and must be thread safe.
type Injector interface {
	Point(name string, sensitivity Sensitivity) error
}

// InjectorFunc is a convenience wrapper allowing a bare function to be used as an 'Injector'.
type InjectorFunc func(name string, sensitivity Sensitivity) error

var _ Injector = (InjectorFunc)(nil)

// Point implements the 'Injector' interface.
func (f InjectorFunc) Point(name string, sensitivity Sensitivity) error {
	return f(name, sensitivity)
}

// Cross is a nil-safe helper used by call sites, crossing a nil injector is a no-op.
func Cross(injector Injector, name string, sensitivity Sensitivity) error {
	if injector == nil {
		return nil
	}

	return injector.Point(name, sensitivity)
}
