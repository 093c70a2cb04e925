// Package objxfer implements the transfer engine; it moves large byte ranges to and from a remote object store in
// parallel, exposing a small synchronous/asynchronous surface over an 'objcli.Client'.
package objxfer

import "sync"

type result[T any] struct {
	value T
	err   error
}

// Future is the handle to the eventual result of an asynchronous operation; it is resolved exactly once and may be
// waited on any number of times.
type Future[T any] struct {
	ch   chan result[T]
	once sync.Once
	res  result[T]
}

// NewFuture returns a new unresolved future.
func NewFuture[T any]() *Future[T] {
	return &Future[T]{ch: make(chan result[T], 1)}
}

// Complete resolves the future with the given value/error; completing a future more than once is a programming error
// and will block, futures are single-producer by construction.
func (f *Future[T]) Complete(value T, err error) {
	f.ch <- result[T]{value: value, err: err}
}

// Wait blocks until the future is resolved, then returns its value/error; subsequent calls return immediately with
// the same result.
func (f *Future[T]) Wait() (T, error) {
	f.once.Do(func() { f.res = <-f.ch })

	return f.res.value, f.res.err
}

// Op is the handle to the eventual outcome of an asynchronous operation which produces no value beyond success or
// failure.
type Op struct {
	fut *Future[struct{}]
}

// NewOp returns a new unresolved operation handle.
func NewOp() *Op {
	return &Op{fut: NewFuture[struct{}]()}
}

// Complete resolves the operation with the given error.
func (o *Op) Complete(err error) {
	o.fut.Complete(struct{}{}, err)
}

// Wait blocks until the operation has completed, then returns its error; subsequent calls return immediately with
// the same result.
func (o *Op) Wait() error {
	_, err := o.fut.Wait()

	return err
}
