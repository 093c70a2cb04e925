package fault

import (
	"sync"
	"sync/atomic"
)

// TripInjector raises the given error on the nth crossing of a matching point, all other crossings succeed; used to
// deterministically fail a single remote call deep inside an operation.
type TripInjector struct {
	// Name restricts the injector to points with this name, an empty name matches every point.
	Name string

	// After is the number of matching crossings which succeed before the error is raised.
	After uint64

	// Err is the error raised at the trip point.
	Err error

	crossed atomic.Uint64
}

var _ Injector = (*TripInjector)(nil)

// Point implements the 'Injector' interface.
func (t *TripInjector) Point(name string, _ Sensitivity) error {
	if t.Name != "" && t.Name != name {
		return nil
	}

	if t.crossed.Add(1) == t.After+1 {
		return t.Err
	}

	return nil
}

// CountInjector records how many times each point was crossed without ever raising an error; used by tests asserting
// that call sites actually cross the fault boundary.
type CountInjector struct {
	lock     sync.Mutex
	crossing map[string]uint64
}

var _ Injector = (*CountInjector)(nil)

// Point implements the 'Injector' interface.
func (c *CountInjector) Point(name string, _ Sensitivity) error {
	c.lock.Lock()
	defer c.lock.Unlock()

	if c.crossing == nil {
		c.crossing = make(map[string]uint64)
	}

	c.crossing[name]++

	return nil
}

// Crossings returns the number of times the point with the given name was crossed.
func (c *CountInjector) Crossings(name string) uint64 {
	c.lock.Lock()
	defer c.lock.Unlock()

	return c.crossing[name]
}
