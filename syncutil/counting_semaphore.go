// Package syncutil contains the synchronization primitives used to hand off between many concurrent remote
// completions and a single blocking consumer.
package syncutil

import (
	"errors"
	"sync"

	"github.com/stratastore/transfer-common/log"
)

// ErrGoalInProgress is returned by 'SetGoal' if the previous goal has not been fully drained yet.
var ErrGoalInProgress = errors.New("previous goal has not been reached")

// CountingSemaphore is a goal-counted semaphore; a goal is set once per cycle, any number of concurrent completions
// decrement it, and a single waiter blocks until the count reaches zero.
//
// The zero value is ready to use, and a semaphore whose goal was never set (or was set to zero) never blocks a waiter.
type CountingSemaphore struct {
	lock      sync.Mutex
	cond      *sync.Cond
	remaining uint64
}

// NewCountingSemaphore returns a new counting semaphore with no goal set.
func NewCountingSemaphore() *CountingSemaphore {
	return &CountingSemaphore{}
}

// SetGoal sets the number of times 'Done' must be called before 'Wait' unblocks. Returns 'ErrGoalInProgress' if called
// whilst a previous goal is still being drained.
func (c *CountingSemaphore) SetGoal(goal uint64) error {
	c.lock.Lock()
	defer c.lock.Unlock()

	if c.remaining != 0 {
		return ErrGoalInProgress
	}

	c.remaining = goal

	return nil
}

// Done marks one unit of work as complete, it is safe to call concurrently from any number of completion paths.
//
// NOTE: Decrementing past zero is a programming error, not a recoverable condition, and triggers a panic.
func (c *CountingSemaphore) Done() {
	c.lock.Lock()
	defer c.lock.Unlock()

	if c.remaining == 0 {
		log.Panicf("(syncutil) 'Done' called more times than the current goal")
	}

	c.remaining--

	if c.remaining == 0 {
		c.broadcast()
	}
}

// Wait blocks the calling Goroutine until the goal has been reached, returning immediately if no goal was set or the
// goal was zero.
func (c *CountingSemaphore) Wait() {
	c.lock.Lock()
	defer c.lock.Unlock()

	for c.remaining > 0 {
		if c.cond == nil {
			c.cond = sync.NewCond(&c.lock)
		}

		c.cond.Wait()
	}
}

// broadcast wakes any waiters, must be called with the lock held.
func (c *CountingSemaphore) broadcast() {
	if c.cond != nil {
		c.cond.Broadcast()
	}
}
