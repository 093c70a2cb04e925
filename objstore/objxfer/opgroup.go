package objxfer

import (
	"fmt"
	"sync"
)

// trackedOp is one registered operation, the 'wait' closure blocks until the underlying future resolves and runs the
// registered continuation.
type trackedOp struct {
	label string
	wait  func() error
}

// OpGroup tracks any number of outstanding asynchronous operations, each carrying a human readable label and an
// optional completion continuation.
//
// Continuations are run strictly in the order operations were registered regardless of the order the underlying
// futures resolve in; downstream consumers, manifest writers for example, rely on deterministic ordering even though
// network completion order is nondeterministic.
type OpGroup struct {
	lock sync.Mutex
	ops  []trackedOp
}

// Add registers the given operation with the group. The continuation, when supplied, runs once the operation has
// completed whether it succeeded or not; cleanup registered this way is never skipped.
func (g *OpGroup) Add(op *Op, label string, onComplete func() error) {
	wait := func() error {
		err := op.Wait()

		if onComplete == nil {
			return err
		}

		cerr := onComplete()
		if err == nil {
			err = cerr
		}

		return err
	}

	g.add(trackedOp{label: label, wait: wait})
}

// AddWithResult registers the given future with the group, threading its value into the continuation. The
// continuation only runs if the operation succeeded since there is no value to thread on failure.
func AddWithResult[T any](g *OpGroup, future *Future[T], label string, onComplete func(value T) error) {
	wait := func() error {
		value, err := future.Wait()
		if err != nil {
			return err
		}

		if onComplete == nil {
			return nil
		}

		return onComplete(value)
	}

	g.add(trackedOp{label: label, wait: wait})
}

func (g *OpGroup) add(op trackedOp) {
	g.lock.Lock()
	defer g.lock.Unlock()

	g.ops = append(g.ops, op)
}

// Finish drains the group in registration order blocking on each operation in turn, running its continuation, and
// returns the first error encountered. All registered operations are waited on even after a failure so that
// outstanding remote work is accounted for before control returns to the caller.
//
// A <nil> return means every registered operation observed success.
func (g *OpGroup) Finish() error {
	g.lock.Lock()
	ops := g.ops
	g.ops = nil
	g.lock.Unlock()

	var first error

	for _, op := range ops {
		err := op.wait()
		if err != nil && first == nil {
			first = fmt.Errorf("operation '%s' failed: %w", op.label, err)
		}
	}

	return first
}

// ReadGroup tracks outstanding read-side operations, downloads and listings.
type ReadGroup struct {
	OpGroup
}

// NewReadGroup returns a new empty read group.
func NewReadGroup() *ReadGroup {
	return &ReadGroup{}
}

// WriteGroup tracks outstanding write-side operations, uploads and deletions.
type WriteGroup struct {
	OpGroup
}

// NewWriteGroup returns a new empty write group.
func NewWriteGroup() *WriteGroup {
	return &WriteGroup{}
}
